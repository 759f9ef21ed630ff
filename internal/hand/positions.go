package hand

import (
	"fmt"
	"sort"
)

// ButtonDistance is the number of seats clockwise from the button, counting
// only occupied seats. It returns -1 when the player or button is unknown.
func (h *ParsedHand) ButtonDistance(name string) int {
	seats := make([]int, 0, len(h.Players))
	for _, p := range h.Players {
		seats = append(seats, p.Seat)
	}
	sort.Ints(seats)

	player, ok := h.PlayerByName(name)
	if !ok {
		return -1
	}
	button := -1
	target := -1
	for i, s := range seats {
		if s == h.ButtonSeat {
			button = i
		}
		if s == player.Seat {
			target = i
		}
	}
	if button < 0 {
		return -1
	}
	return (target - button + len(seats)) % len(seats)
}

// PositionName labels the player's seat relative to the button.
func (h *ParsedHand) PositionName(name string) string {
	distance := h.ButtonDistance(name)
	if distance < 0 {
		return ""
	}
	return positionName(distance, len(h.Players))
}

func positionName(buttonDistance, totalPlayers int) string {
	if totalPlayers == 2 {
		if buttonDistance == 0 {
			return "BTN/SB"
		}
		return "BB"
	}

	// Walk back from the button so late positions keep their names at short tables.
	late := []string{"BTN", "CO", "HJ"}
	switch buttonDistance {
	case 0:
		return "BTN"
	case 1:
		return "SB"
	case 2:
		return "BB"
	}
	fromButton := totalPlayers - buttonDistance
	if fromButton < len(late) {
		return late[fromButton]
	}
	switch buttonDistance {
	case 3:
		return "UTG"
	case 4:
		return "UTG+1"
	}
	return fmt.Sprintf("MP%d", buttonDistance-4)
}
