package sleeper

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

type leagueEnvelope struct {
	LeagueID         string             `json:"league_id"`
	Name             string             `json:"name"`
	Season           string             `json:"season"`
	Status           string             `json:"status"`
	PreviousLeagueID string             `json:"previous_league_id"`
	Settings         leagueSettingsRaw  `json:"settings"`
	ScoringSettings  map[string]float64 `json:"scoring_settings"`
}

type leagueSettingsRaw struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	Leg              int `json:"leg"`
	TaxiSlots        int `json:"taxi_slots"`
}

type rosterItem struct {
	RosterID int64    `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Reserve  []string `json:"reserve"`
	Taxi     []string `json:"taxi"`
}

type userItem struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Metadata    userMetadata `json:"metadata"`
}

type userMetadata struct {
	TeamName string `json:"team_name"`
}

func (u userItem) teamName() string {
	if name := strings.TrimSpace(u.Metadata.TeamName); name != "" {
		return name
	}
	return strings.TrimSpace(u.DisplayName)
}

type matchupItem struct {
	RosterID      int64              `json:"roster_id"`
	MatchupID     int64              `json:"matchup_id"`
	Points        float64            `json:"points"`
	PlayersPoints map[string]float64 `json:"players_points"`
	Starters      []string           `json:"starters"`
	Players       []string           `json:"players"`
}

type transactionItem struct {
	Type      string           `json:"type"`
	Status    string           `json:"status"`
	CreatedMs int64            `json:"created"`
	Leg       int              `json:"leg"`
	Adds      map[string]int64 `json:"adds"`
	Drops     map[string]int64 `json:"drops"`
}

type bracketMatch struct {
	Round int         `json:"r"`
	Match int         `json:"m"`
	Team1 bracketSlot `json:"t1"`
	Team2 bracketSlot `json:"t2"`
}

// bracketSlot is a bracket participant that is either a roster id or an
// unresolved reference object like {"w": 3}. References decode to zero.
type bracketSlot struct {
	RosterID int64
}

func (s *bracketSlot) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" || strings.HasPrefix(trimmed, "{") {
		s.RosterID = 0
		return nil
	}

	var id int64
	if err := sonic.Unmarshal(data, &id); err != nil {
		s.RosterID = 0
		return nil
	}
	s.RosterID = id
	return nil
}

type playerItem struct {
	Position string         `json:"position"`
	Metadata playerMetadata `json:"metadata"`
}

type playerMetadata struct {
	RookieYear string `json:"rookie_year"`
}

func (p playerItem) rookieYear() int {
	raw := strings.TrimSpace(p.Metadata.RookieYear)
	if raw == "" {
		return 0
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
