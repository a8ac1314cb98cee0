package league

import "fmt"

// Season describes one season of a league chain. Sleeper-style providers
// issue a fresh league id per season; Year is the join key across them.
type Season struct {
	LeagueID         string
	Year             int
	PlayoffStartWeek int
	RegularWeeks     int
}

func (s Season) ValidateBasic() error {
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.Year <= 0 {
		return fmt.Errorf("season year must be greater than zero")
	}
	if s.PlayoffStartWeek <= 0 {
		return fmt.Errorf("playoff start week must be greater than zero")
	}
	return nil
}

// TotalWeeks is the number of scoring weeks in the season including the
// playoff rounds.
func (s Season) TotalWeeks() int {
	total := s.RegularWeeks + playoffRounds
	if total < s.PlayoffStartWeek {
		total = s.PlayoffStartWeek + playoffRounds - 1
	}
	return total
}

const playoffRounds = 3

// Settings carries the league-specific scoring configuration for one season.
type Settings struct {
	Season           int
	PlayoffStartWeek int
	// ScoringRules maps provider stat keys to point multipliers, e.g.
	// "pass_td" -> 4.0.
	ScoringRules map[string]float64
}
