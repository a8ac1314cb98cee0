package eligibility

import (
	"errors"
	"testing"
)

func TestCheckQuota(t *testing.T) {
	t.Parallel()

	positions := map[string]string{
		"qb1": "QB",
		"qb2": "QB",
		"rb1": "RB",
		"wr1": "WR",
	}

	t.Run("within limits", func(t *testing.T) {
		err := CheckQuota([]string{"qb1", "rb1", "wr1"}, positions, DefaultRules())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("slot limit exceeded", func(t *testing.T) {
		err := CheckQuota([]string{"qb1", "rb1", "wr1", "qb2"}, positions, DefaultRules())
		if !errors.Is(err, ErrExceededSlotLimit) {
			t.Fatalf("expected ErrExceededSlotLimit, got %v", err)
		}
	})

	t.Run("quarterback limit exceeded", func(t *testing.T) {
		err := CheckQuota([]string{"qb1", "qb2"}, positions, DefaultRules())
		if !errors.Is(err, ErrExceededQuarterbackLimit) {
			t.Fatalf("expected ErrExceededQuarterbackLimit, got %v", err)
		}
	})

	t.Run("unknown positions count toward slots only", func(t *testing.T) {
		err := CheckQuota([]string{"qb1", "mystery1", "mystery2"}, positions, DefaultRules())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	t.Run("acquisition starts tracking", func(t *testing.T) {
		got := Status{State: StateActivated}.OnAcquisition()
		if got.State != StateTracking || got.ActivatedAt != nil {
			t.Fatalf("acquisition must reset to tracking: %+v", got)
		}
	})

	t.Run("release clears to dormant", func(t *testing.T) {
		got := Status{State: StateTracking, PendingActivation: true}.OnRelease()
		if got.State != StateDormant || got.PendingActivation {
			t.Fatalf("release must clear tracking: %+v", got)
		}
	})

	t.Run("fielded while tracking activates", func(t *testing.T) {
		got := Status{State: StateTracking}.OnFielded(WeekRef{Season: 2024, Week: 3})
		if got.State != StateActivated {
			t.Fatalf("unexpected state: %s", got.State)
		}
		if got.ActivatedAt == nil || got.ActivatedAt.Week != 3 {
			t.Fatalf("unexpected activation ref: %+v", got.ActivatedAt)
		}
	})

	t.Run("activated is terminal against further fielding", func(t *testing.T) {
		first := Status{State: StateTracking}.OnFielded(WeekRef{Season: 2024, Week: 3})
		second := first.OnFielded(WeekRef{Season: 2024, Week: 9})
		if second.ActivatedAt.Week != 3 {
			t.Fatalf("activation week must not move: %+v", second.ActivatedAt)
		}
	})

	t.Run("fielded while dormant is a no-op", func(t *testing.T) {
		got := Status{State: StateDormant}.OnFielded(WeekRef{Season: 2024, Week: 1})
		if got.State != StateDormant {
			t.Fatalf("unexpected state: %s", got.State)
		}
	})

	t.Run("pending start only while tracking", func(t *testing.T) {
		got := Status{State: StateTracking}.OnPendingStart()
		if !got.PendingActivation {
			t.Fatalf("expected pending activation")
		}
		dormant := Status{State: StateDormant}.OnPendingStart()
		if dormant.PendingActivation {
			t.Fatalf("dormant pair must not go pending")
		}
	})
}
