package scoring

import "math"

// Source names the strategy that produced a season total.
type Source string

const (
	// SourceProvider sums provider-computed per-player weekly point values.
	// Exact parity with upstream scoring including nonlinear bonuses.
	SourceProvider Source = "provider"
	// SourceDerived multiplies raw weekly stat values by the league's
	// per-category multipliers. May diverge from the provider for
	// nonlinear or conditional bonus rules.
	SourceDerived Source = "derived"
)

// PlayerSeasonTotal is one player's accumulated points over a week window.
type PlayerSeasonTotal struct {
	PlayerID string  `json:"playerId"`
	Points   float64 `json:"points"`
	Weeks    int     `json:"weeks"`
}

// RoundWeekly applies the fixed 4-decimal rounding used on each weekly
// addition to bound floating-point drift over a full season.
func RoundWeekly(value float64) float64 {
	return math.Round(value*10000) / 10000
}

// DisplayPoints truncates to 2 decimals for display.
func DisplayPoints(value float64) float64 {
	return math.Trunc(value*100) / 100
}

// Accumulate adds one week's value to a running total under the weekly
// rounding policy. Order-invariant for a fixed set of weekly values.
func Accumulate(total, weekly float64) float64 {
	return RoundWeekly(total + RoundWeekly(weekly))
}

// DerivedWeekPoints computes one player's weekly points from raw stat
// values and the league's per-category multipliers. Stat keys without a
// configured multiplier contribute nothing.
func DerivedWeekPoints(stats map[string]float64, multipliers map[string]float64) float64 {
	total := 0.0
	for key, value := range stats {
		multiplier, ok := multipliers[key]
		if !ok {
			continue
		}
		total += value * multiplier
	}
	return RoundWeekly(total)
}

// Position constants the awards resolver cares about. Defense and special
// teams units are excluded from skill positions.
const (
	PositionQuarterback  = "QB"
	PositionRunningBack  = "RB"
	PositionWideReceiver = "WR"
	PositionTightEnd     = "TE"
	PositionKicker       = "K"
)

var skillPositions = map[string]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
}

// IsSkillPosition reports whether a position is award-eligible.
func IsSkillPosition(position string) bool {
	_, ok := skillPositions[position]
	return ok
}
