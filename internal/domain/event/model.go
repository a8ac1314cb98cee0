package event

import (
	"sort"
	"time"
)

type Type string

const (
	TypeAcquisition Type = "acquisition"
	TypeRelease     Type = "release"
	TypeGamePlayed  Type = "game_played"
)

// Event is one entry in the canonical per-season event stream. Exactly one
// shape applies per type: roster events carry Player/OwnerID, game events
// carry the pairing fields.
type Event struct {
	Type   Type
	Season int
	Week   int

	// Roster event fields.
	Player  string
	OwnerID string
	At      time.Time

	// Game event fields. Owner ids are already resolved from season-scoped
	// roster ids.
	HomeOwnerID string
	HomePoints  float64
	AwayOwnerID string
	AwayPoints  float64
}

// Gap names a resource the normalizer could not resolve. Aggregates carry
// gaps alongside best-effort results instead of failing outright.
type Gap struct {
	Season   int    `json:"season"`
	Week     int    `json:"week,omitempty"`
	Resource string `json:"resource"`
	Reason   string `json:"reason"`
}

// SeasonStream is the canonical, time-ordered event stream for one season.
type SeasonStream struct {
	Season int
	Events []Event
	Gaps   []Gap
}

// Sort orders events chronologically: roster events by timestamp, game
// events by week. Within the same instant an acquisition sorts before a
// release so replay applies the loss last and a same-instant gain/loss
// tie resolves to the loss.
func (s *SeasonStream) Sort() {
	sort.SliceStable(s.Events, func(i, j int) bool {
		left, right := s.Events[i], s.Events[j]
		if left.Week != right.Week {
			return left.Week < right.Week
		}
		if !left.At.Equal(right.At) {
			return left.At.Before(right.At)
		}
		return typeRank(left.Type) < typeRank(right.Type)
	})
}

func typeRank(t Type) int {
	switch t {
	case TypeAcquisition:
		return 0
	case TypeRelease:
		return 1
	default:
		return 2
	}
}
