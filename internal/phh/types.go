// Package phh exports parsed hands in the Poker Hand History TOML format.
package phh

import "time"

// HandHistory represents a single poker hand encoded in PHH format. Players
// are ordered clockwise from the seat after the button, so p1 is the small
// blind at a full table and the button acts last.
type HandHistory struct {
	Variant           string    `toml:"variant"`
	Table             string    `toml:"table,omitempty"`
	SeatCount         int       `toml:"seat_count,omitempty"`
	Seats             []int     `toml:"seats,omitempty"`
	Antes             []float64 `toml:"antes"`
	BlindsOrStraddles []float64 `toml:"blinds_or_straddles"`
	MinBet            float64   `toml:"min_bet"`
	StartingStacks    []float64 `toml:"starting_stacks"`
	FinishingStacks   []float64 `toml:"finishing_stacks,omitempty"`
	Winnings          []float64 `toml:"winnings,omitempty"`
	Actions           []string  `toml:"actions"`
	Players           []string  `toml:"players,omitempty"`
	Event             string    `toml:"event,omitempty"`
	Currency          string    `toml:"currency,omitempty"`
	Level             string    `toml:"level,omitempty"`
	HandID            string    `toml:"hand"`
	Time              string    `toml:"time,omitempty"`
	TimeZone          string    `toml:"time_zone,omitempty"`
	Day               int       `toml:"day,omitempty"`
	Month             int       `toml:"month,omitempty"`
	Year              int       `toml:"year,omitempty"`
	Rake              float64   `toml:"rake,omitempty"`

	Timestamp time.Time `toml:"-"`
}

func (h *HandHistory) populateTimeFields() {
	t := h.Timestamp
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	h.Time = utc.Format("15:04:05")
	h.TimeZone = "UTC"
	h.Day = utc.Day()
	h.Month = int(utc.Month())
	h.Year = utc.Year()
}
