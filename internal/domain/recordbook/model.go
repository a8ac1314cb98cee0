package recordbook

import "github.com/riskibarqy/league-history/internal/domain/game"

// ScoreEntry is a best-so-far snapshot for a single-team score metric.
type ScoreEntry struct {
	Season  int     `json:"season"`
	Week    int     `json:"week"`
	OwnerID string  `json:"ownerId"`
	Points  float64 `json:"points"`
}

// GameEntry is a best-so-far snapshot for a whole-pairing metric.
type GameEntry struct {
	Season      int     `json:"season"`
	Week        int     `json:"week"`
	HomeOwnerID string  `json:"homeOwnerId"`
	AwayOwnerID string  `json:"awayOwnerId"`
	Value       float64 `json:"value"`
}

// StreakEntry is a completed-or-active run of same-outcome games.
type StreakEntry struct {
	OwnerID     string `json:"ownerId"`
	Length      int    `json:"length"`
	StartSeason int    `json:"startSeason"`
	StartWeek   int    `json:"startWeek"`
	EndSeason   int    `json:"endSeason"`
	EndWeek     int    `json:"endWeek"`
}

// Book accumulates record-book extremes over one chronological pass.
// Co-leaders are preserved as multiple entries when tied exactly.
type Book struct {
	HighestScores  []ScoreEntry `json:"highestScores"`
	LowestScores   []ScoreEntry `json:"lowestScores"`
	BiggestWins    []GameEntry  `json:"biggestWins"`
	ClosestWins    []GameEntry  `json:"closestWins"`
	HighestCombine []GameEntry  `json:"highestCombined"`

	LongestWinStreaks  []StreakEntry `json:"longestWinStreaks"`
	LongestLossStreaks []StreakEntry `json:"longestLossStreaks"`

	// WeeklyHighs counts, per franchise, the weeks where its score equaled
	// that week's league-wide maximum. Every tied franchise is credited.
	WeeklyHighs map[string]int `json:"weeklyHighs"`

	TotalGames int `json:"totalGames"`
}

func NewBook() *Book {
	return &Book{WeeklyHighs: make(map[string]int)}
}

// ObserveScores feeds both sides of a played pairing into the single-team
// extremes. Each side is compared independently of the game's outcome.
func (b *Book) ObserveScores(rec game.Record) {
	b.TotalGames++

	for _, side := range []ScoreEntry{
		{Season: rec.Season, Week: rec.Week, OwnerID: rec.HomeOwnerID, Points: rec.HomePoints},
		{Season: rec.Season, Week: rec.Week, OwnerID: rec.AwayOwnerID, Points: rec.AwayPoints},
	} {
		switch {
		case len(b.HighestScores) == 0 || side.Points > b.HighestScores[0].Points:
			b.HighestScores = []ScoreEntry{side}
		case side.Points == b.HighestScores[0].Points:
			b.HighestScores = append(b.HighestScores, side)
		}
		switch {
		case len(b.LowestScores) == 0 || side.Points < b.LowestScores[0].Points:
			b.LowestScores = []ScoreEntry{side}
		case side.Points == b.LowestScores[0].Points:
			b.LowestScores = append(b.LowestScores, side)
		}
	}
}

// ObserveMargin feeds the win margin into the biggest/closest-win metrics.
// Ties carry no winner and are skipped entirely.
func (b *Book) ObserveMargin(rec game.Record) {
	margin := rec.Margin()
	if margin == 0 {
		return
	}

	entry := GameEntry{
		Season:      rec.Season,
		Week:        rec.Week,
		HomeOwnerID: rec.HomeOwnerID,
		AwayOwnerID: rec.AwayOwnerID,
		Value:       margin,
	}

	switch {
	case len(b.BiggestWins) == 0 || margin > b.BiggestWins[0].Value:
		b.BiggestWins = []GameEntry{entry}
	case margin == b.BiggestWins[0].Value:
		b.BiggestWins = append(b.BiggestWins, entry)
	}

	switch {
	case len(b.ClosestWins) == 0 || margin < b.ClosestWins[0].Value:
		b.ClosestWins = []GameEntry{entry}
	case margin == b.ClosestWins[0].Value:
		b.ClosestWins = append(b.ClosestWins, entry)
	}
}

// ObserveCombined feeds the combined score into the highest-combined metric.
func (b *Book) ObserveCombined(rec game.Record) {
	entry := GameEntry{
		Season:      rec.Season,
		Week:        rec.Week,
		HomeOwnerID: rec.HomeOwnerID,
		AwayOwnerID: rec.AwayOwnerID,
		Value:       rec.Combined(),
	}

	switch {
	case len(b.HighestCombine) == 0 || entry.Value > b.HighestCombine[0].Value:
		b.HighestCombine = []GameEntry{entry}
	case entry.Value == b.HighestCombine[0].Value:
		b.HighestCombine = append(b.HighestCombine, entry)
	}
}

// CreditWeeklyHighs credits every franchise whose score equals the week's
// maximum.
func (b *Book) CreditWeeklyHighs(weekScores map[string]float64) {
	if len(weekScores) == 0 {
		return
	}

	max := 0.0
	first := true
	for _, points := range weekScores {
		if first || points > max {
			max = points
			first = false
		}
	}
	for ownerID, points := range weekScores {
		if points == max {
			b.WeeklyHighs[ownerID]++
		}
	}
}
