package eligibility

import (
	"errors"
	"fmt"
)

var (
	ErrExceededSlotLimit        = errors.New("max taxi squad slots exceeded")
	ErrExceededQuarterbackLimit = errors.New("max taxi squad quarterbacks exceeded")
)

// Rules stores taxi-squad quota parameters.
type Rules struct {
	MaxSlots        int
	MaxQuarterbacks int
}

func DefaultRules() Rules {
	return Rules{
		MaxSlots:        3,
		MaxQuarterbacks: 1,
	}
}

// CheckQuota validates a franchise's current taxi slot list against the
// configured maxima. positionByPlayer may be partial; players with unknown
// positions count toward the slot limit only.
func CheckQuota(taxiPlayers []string, positionByPlayer map[string]string, rules Rules) error {
	if rules.MaxSlots > 0 && len(taxiPlayers) > rules.MaxSlots {
		return fmt.Errorf("%w: max=%d current=%d", ErrExceededSlotLimit, rules.MaxSlots, len(taxiPlayers))
	}

	quarterbacks := 0
	for _, playerID := range taxiPlayers {
		if positionByPlayer[playerID] == "QB" {
			quarterbacks++
		}
	}
	if rules.MaxQuarterbacks > 0 && quarterbacks > rules.MaxQuarterbacks {
		return fmt.Errorf("%w: max=%d current=%d", ErrExceededQuarterbackLimit, rules.MaxQuarterbacks, quarterbacks)
	}

	return nil
}
