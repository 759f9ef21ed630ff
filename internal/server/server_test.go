package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handreplay/internal/config"
	"github.com/lox/handreplay/internal/handtest"
)

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestUploadStoresHands(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	file := handtest.CashSixMax + "\n\n" + handtest.HeadsUp + "\n\nPokerStars Hand #9: nonsense\n"
	w := upload(t, srv, file)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Total   int `json:"total"`
		Parsed  int `json:"parsed"`
		Failed  int `json:"failed"`
		Stored  int `json:"stored"`
		Known   int `json:"known"`
		Results []struct {
			OK     bool   `json:"ok"`
			HandID string `json:"hand_id"`
			Stage  string `json:"stage"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Parsed)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 2, resp.Stored)
	assert.Equal(t, 0, resp.Known)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "243567890123", resp.Results[0].HandID)
	assert.False(t, resp.Results[2].OK)
	assert.Equal(t, "header", resp.Results[2].Stage)
	assert.Equal(t, 2, srv.Hands().Len())

	// A second upload of the same hand is recognised.
	w = upload(t, srv, handtest.HeadsUp)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Stored)
	assert.Equal(t, 1, resp.Known)
}

func TestUploadEmptyBody(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	w := upload(t, srv, "\n\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "empty input")
}

func TestGetHand(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	require.Equal(t, http.StatusOK, upload(t, srv, handtest.HeadsUp).Code)

	w := get(srv, "/api/hands/1000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1000", body["hand_id"])
	assert.Equal(t, "Heads Up", body["table_name"])

	w = get(srv, "/api/hands/404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "hand not found")
}

func TestGetPHH(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	require.Equal(t, http.StatusOK, upload(t, srv, handtest.HeadsUp).Code)

	w := get(srv, "/api/hands/1000/phh")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/toml", w.Header().Get("Content-Type"))

	var doc map[string]any
	_, err := toml.Decode(w.Body.String(), &doc)
	require.NoError(t, err)
	assert.Equal(t, "NT", doc["variant"])
	assert.Contains(t, doc, "actions")

	assert.Equal(t, http.StatusNotFound, get(srv, "/api/hands/1/phh").Code)
}

func TestOpenSession(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	require.Equal(t, http.StatusOK, upload(t, srv, handtest.HeadsUp).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/hands/1000/sessions", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		SessionID string         `json:"session_id"`
		HandID    string         `json:"hand_id"`
		Socket    string         `json:"socket"`
		Snapshot  map[string]any `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "1000", resp.HandID)
	assert.Equal(t, "/ws/sessions/"+resp.SessionID, resp.Socket)
	assert.Equal(t, "preflop", resp.Snapshot["current_street"])
	assert.Equal(t, float64(30), resp.Snapshot["pot"])
	assert.Equal(t, 1, srv.Sessions().Len())

	req = httptest.NewRequest(http.MethodPost, "/api/hands/missing/sessions", nil)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	require.Equal(t, http.StatusOK, upload(t, srv, handtest.HeadsUp).Code)

	w := get(srv, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "handreplay_hands_parsed_total")
}

func TestNewRejectsBadCacheSize(t *testing.T) {
	cfg := config.Default()
	cfg.Replay.CacheSize = 0
	_, err := New(cfg, testLogger())
	assert.Error(t, err)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/hands", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func upload(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/hands", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}
