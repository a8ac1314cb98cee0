package game

// BracketSets holds playoff participant sets flattened across all rounds,
// keyed by stable owner id.
type BracketSets struct {
	Championship map[string]struct{}
	// Consolation may be nil when the provider exposed no consolation
	// bracket for the season.
	Consolation map[string]struct{}
}

// HasConsolation reports whether a consolation bracket was exposed at all.
func (b BracketSets) HasConsolation() bool {
	return b.Consolation != nil
}

// Classify labels one played pairing. Deterministic: identical inputs
// always yield the same category.
//
// Weeks strictly before playoffStartWeek are regular season. At or after
// that week a pairing is a playoff game when both sides are championship
// bracket participants and a consolation game when both sides are
// consolation participants. When no consolation bracket was exposed, both
// sides being outside the championship set falls back to consolation; the
// returned inferred flag marks that fallback. Mixed membership is
// ambiguous.
func Classify(week, playoffStartWeek int, homeOwnerID, awayOwnerID string, brackets BracketSets) (Category, bool) {
	if week < playoffStartWeek {
		return CategoryRegular, false
	}

	_, homeChamp := brackets.Championship[homeOwnerID]
	_, awayChamp := brackets.Championship[awayOwnerID]
	if homeChamp && awayChamp {
		return CategoryPlayoff, false
	}

	if brackets.HasConsolation() {
		_, homeCons := brackets.Consolation[homeOwnerID]
		_, awayCons := brackets.Consolation[awayOwnerID]
		if homeCons && awayCons {
			return CategoryConsolation, false
		}
		return CategoryAmbiguous, false
	}

	if !homeChamp && !awayChamp {
		return CategoryConsolation, true
	}
	return CategoryAmbiguous, false
}
