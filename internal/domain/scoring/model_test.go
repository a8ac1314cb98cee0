package scoring

import (
	"math/rand"
	"testing"
)

func TestAccumulateOrderInvariance(t *testing.T) {
	t.Parallel()

	weekly := []float64{12.3456, 8.11, 0.0004, 21.9999, 14.25, 3.3333}

	forward := 0.0
	for _, v := range weekly {
		forward = Accumulate(forward, v)
	}

	shuffled := append([]float64(nil), weekly...)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		total := 0.0
		for _, v := range shuffled {
			total = Accumulate(total, v)
		}
		if total != forward {
			t.Fatalf("accumulation is order-dependent: got=%v want=%v", total, forward)
		}
	}
}

func TestRoundingPolicy(t *testing.T) {
	t.Parallel()

	if got := RoundWeekly(10.12345); got != 10.1234 && got != 10.1235 {
		t.Fatalf("unexpected weekly rounding: %v", got)
	}
	if got := RoundWeekly(10.12341); got != 10.1234 {
		t.Fatalf("unexpected weekly rounding: %v", got)
	}
	if got := DisplayPoints(10.1299); got != 10.12 {
		t.Fatalf("display must truncate, not round: %v", got)
	}
}

func TestDerivedWeekPoints(t *testing.T) {
	t.Parallel()

	multipliers := map[string]float64{
		"pass_td": 4,
		"pass_yd": 0.04,
		"rush_yd": 0.1,
	}
	stats := map[string]float64{
		"pass_td":  3,
		"pass_yd":  250,
		"fum_lost": 1, // no multiplier configured
	}

	got := DerivedWeekPoints(stats, multipliers)
	if got != 22 {
		t.Fatalf("unexpected derived points: got=%v want=22", got)
	}
}

func TestIsSkillPosition(t *testing.T) {
	t.Parallel()

	for _, pos := range []string{"QB", "RB", "WR", "TE", "K"} {
		if !IsSkillPosition(pos) {
			t.Fatalf("%s must be award-eligible", pos)
		}
	}
	for _, pos := range []string{"DEF", "DST", "IDP", ""} {
		if IsSkillPosition(pos) {
			t.Fatalf("%s must not be award-eligible", pos)
		}
	}
}
