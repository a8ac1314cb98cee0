package eligibility

// State is the taxi-squad eligibility state of one (player, franchise)
// pair.
type State string

const (
	// StateDormant means no live acquisition exists for the pair.
	StateDormant State = "dormant"
	// StateTracking means the player is held but has never been fielded
	// since the current acquisition.
	StateTracking State = "tracking"
	// StateActivated means the player was fielded in a played game.
	// Terminal until the next release/acquisition cycle.
	StateActivated State = "activated"
)

// WeekRef points at the season week where a transition happened.
type WeekRef struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}

// Status is the eligibility snapshot for one (player, franchise) pair.
// Activated is monotonic-true until the next acquisition resets it.
type Status struct {
	State       State    `json:"state"`
	ActivatedAt *WeekRef `json:"activatedAt,omitempty"`
	// PendingActivation is set only for the current unresolved scoring
	// week: the player is slotted as a starter but the game has not
	// resolved yet.
	PendingActivation bool `json:"pendingActivation,omitempty"`
}

// OnAcquisition starts tracking from scratch, voiding anything accumulated
// before the acquisition.
func (s Status) OnAcquisition() Status {
	return Status{State: StateTracking}
}

// OnRelease clears forward tracking until a new acquisition arrives.
func (s Status) OnRelease() Status {
	return Status{State: StateDormant}
}

// OnFielded records that the player consumed an active-roster spot in a
// played game. No-op unless currently tracking.
func (s Status) OnFielded(at WeekRef) Status {
	if s.State != StateTracking {
		return s
	}
	ref := at
	return Status{State: StateActivated, ActivatedAt: &ref}
}

// OnPendingStart flags an unresolved starter slot for the current week.
func (s Status) OnPendingStart() Status {
	if s.State != StateTracking {
		return s
	}
	s.PendingActivation = true
	return s
}
