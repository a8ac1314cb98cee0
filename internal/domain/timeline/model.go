package timeline

import "time"

// State is the ownership state of one (player, franchise) pair.
type State string

const (
	StateUnowned State = "unowned"
	StateOwned   State = "owned"
)

// Holding tracks the most recent acquisition of a player by a franchise.
// The zero value is StateUnowned-equivalent via its State() method.
type Holding struct {
	state      State
	AcquiredAt time.Time
	Season     int
	Week       int
}

func (h Holding) State() State {
	if h.state == "" {
		return StateUnowned
	}
	return h.state
}

// ApplyGain records an acquisition. When the player is already held the
// later of the existing and new acquisition timestamps wins. The reset
// flag reports whether downstream state accumulated before this gain must
// be voided; any acquisition voids prior eligibility facts.
func (h Holding) ApplyGain(at time.Time, season, week int) (Holding, bool) {
	if h.State() == StateOwned && h.AcquiredAt.After(at) {
		return h, false
	}
	return Holding{
		state:      StateOwned,
		AcquiredAt: at,
		Season:     season,
		Week:       week,
	}, true
}

// ApplyLoss records a release. A loss at or after the recorded acquisition
// purges the holding; a gain and a loss at the same instant resolve to the
// loss. Stale losses that predate the current acquisition are ignored.
func (h Holding) ApplyLoss(at time.Time) (Holding, bool) {
	if h.State() != StateOwned {
		return h, false
	}
	if at.Before(h.AcquiredAt) {
		return h, false
	}
	return Holding{}, true
}
