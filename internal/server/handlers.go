package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lox/handreplay/internal/metrics"
	"github.com/lox/handreplay/internal/parser"
	"github.com/lox/handreplay/internal/phh"
	"github.com/lox/handreplay/internal/replay"
)

const maxUploadBytes = 32 << 20

type uploadResponse struct {
	*parser.BatchResult
	Stored int `json:"stored"`
	Known  int `json:"known"`
}

type sessionResponse struct {
	SessionID string          `json:"session_id"`
	HandID    string          `json:"hand_id"`
	Socket    string          `json:"socket"`
	Snapshot  replay.Snapshot `json:"snapshot"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	blocks := parser.Split(string(body))
	if len(blocks) == 0 {
		s.writeError(w, http.StatusBadRequest, parser.ErrEmptyInput.Error())
		return
	}

	res := parser.ParseBlocks(r.Context(), blocks, parser.BatchOptions{
		Workers:  s.cfg.Parser.Workers,
		MaxHands: s.cfg.Parser.MaxHands,
		Logger:   s.logger,
	})
	metrics.Metrics.BatchParsed(res.Parsed, res.Duplicates)
	for _, result := range res.Results {
		if !result.OK() && result.Err != nil {
			metrics.Metrics.HandFailed(string(result.Err.Stage))
		}
	}

	out := uploadResponse{BatchResult: res}
	for _, result := range res.Hands() {
		if s.hands.Put(result.Hand) {
			out.Known++
			continue
		}
		out.Stored++
	}

	s.logger.Info().
		Int("total", res.Total).
		Int("parsed", res.Parsed).
		Int("failed", res.Failed).
		Int("stored", out.Stored).
		Msg("Parsed upload")
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetHand(w http.ResponseWriter, r *http.Request) {
	h, ok := s.hands.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "hand not found")
		return
	}
	s.writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleGetPHH(w http.ResponseWriter, r *http.Request) {
	h, ok := s.hands.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "hand not found")
		return
	}
	hh, err := phh.FromHand(h)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	data, err := phh.EncodeToBytes(hh)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	h, ok := s.hands.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "hand not found")
		return
	}
	id, snap, err := s.sessions.Open(h)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: id,
		HandID:    h.HandID,
		Socket:    "/ws/sessions/" + id,
		Snapshot:  snap,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
