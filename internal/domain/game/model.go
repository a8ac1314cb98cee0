package game

type Category string

const (
	CategoryRegular     Category = "regular"
	CategoryPlayoff     Category = "playoff"
	CategoryConsolation Category = "consolation"
	// CategoryAmbiguous marks a post-regular-season pairing whose bracket
	// membership is mixed. Ambiguous games are excluded from
	// category-specific aggregates but still count toward all-time totals.
	CategoryAmbiguous Category = "ambiguous"
)

// Record is one played pairing with its derived category. Category is a
// pure function of the week and bracket membership, never supplied by the
// provider.
type Record struct {
	Season      int      `json:"season"`
	Week        int      `json:"week"`
	HomeOwnerID string   `json:"homeOwnerId"`
	HomePoints  float64  `json:"homePoints"`
	AwayOwnerID string   `json:"awayOwnerId"`
	AwayPoints  float64  `json:"awayPoints"`
	Category    Category `json:"category"`
	// CategoryInferred is set when no consolation bracket was exposed and
	// the category fell back to "not in championship set". Leagues with
	// byes or odd bracket sizes can audit these rows.
	CategoryInferred bool `json:"categoryInferred,omitempty"`
}

// Margin is the absolute score difference. A margin of zero has no winner.
func (r Record) Margin() float64 {
	diff := r.HomePoints - r.AwayPoints
	if diff < 0 {
		return -diff
	}
	return diff
}

// Combined is the total of both sides' scores.
func (r Record) Combined() float64 {
	return r.HomePoints + r.AwayPoints
}

// Winner returns the owner id of the winning side, or "" on a tie.
func (r Record) Winner() string {
	switch {
	case r.HomePoints > r.AwayPoints:
		return r.HomeOwnerID
	case r.AwayPoints > r.HomePoints:
		return r.AwayOwnerID
	default:
		return ""
	}
}

// Loser returns the owner id of the losing side, or "" on a tie.
func (r Record) Loser() string {
	switch {
	case r.HomePoints > r.AwayPoints:
		return r.AwayOwnerID
	case r.AwayPoints > r.HomePoints:
		return r.HomeOwnerID
	default:
		return ""
	}
}
