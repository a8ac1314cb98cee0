package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/league-history/internal/domain/league"
)

// ExternalRoster is one franchise's roster listing for the season the
// league id belongs to. RosterID is season-scoped; OwnerID is the stable
// cross-season key.
type ExternalRoster struct {
	RosterID int64
	OwnerID  string
	TeamName string
	Players  []string
	Starters []string
	// Reserve slots still consume an active-roster spot.
	Reserve []string
	Taxi    []string
}

// ExternalMatchup is one side of a weekly head-to-head pairing. Two rows
// sharing a PairingID form one game.
type ExternalMatchup struct {
	RosterID      int64
	PairingID     int64
	Points        float64
	PlayersPoints map[string]float64
	Starters      []string
	Players       []string
}

// ExternalTransaction is one completed or pending roster transaction.
// Adds and Drops map player ids to the season-scoped roster id gaining or
// losing the player.
type ExternalTransaction struct {
	Type      string
	Status    string
	CreatedAt time.Time
	Week      int
	Adds      map[string]int64
	Drops     map[string]int64
}

// IsComplete reports whether the transaction actually executed.
func (t ExternalTransaction) IsComplete() bool {
	return t.Status == "complete"
}

// ExternalBracketMatch is one pairing in a playoff bracket round.
// Participants are season-scoped roster ids; zero means not yet decided.
type ExternalBracketMatch struct {
	Round int
	Team1 int64
	Team2 int64
}

// ExternalBrackets carries both playoff brackets for a season.
// ConsolationExposed distinguishes "no consolation bracket exists" from
// "the provider returned an empty list".
type ExternalBrackets struct {
	Championship       []ExternalBracketMatch
	Consolation        []ExternalBracketMatch
	ConsolationExposed bool
}

// ExternalLeagueSettings is the per-season league configuration.
type ExternalLeagueSettings struct {
	Season           int
	PlayoffStartWeek int
	RegularWeeks     int
	ScoringRules     map[string]float64
}

// ExternalPlayerMeta is the slice of the player directory the engine
// needs: position for award eligibility, rookie year for Rookie of the
// Year resolution. RookieYear is zero when the provider has no metadata.
type ExternalPlayerMeta struct {
	Position   string
	RookieYear int
}

// ProviderGateway is the read-only, idempotent, freely retryable boundary
// to the upstream sports-data provider.
type ProviderGateway interface {
	// GetLeagueSeasons walks the league's season chain, oldest first.
	GetLeagueSeasons(ctx context.Context, leagueID string) ([]league.Season, error)
	GetSeasonRosters(ctx context.Context, leagueID string) ([]ExternalRoster, error)
	GetWeeklyResults(ctx context.Context, leagueID string, week int) ([]ExternalMatchup, error)
	GetTransactions(ctx context.Context, leagueID string, week int) ([]ExternalTransaction, error)
	GetBrackets(ctx context.Context, leagueID string) (ExternalBrackets, error)
	GetLeagueSettings(ctx context.Context, leagueID string) (ExternalLeagueSettings, error)
	// GetWeeklyStats returns raw per-player stat values for one week of a
	// season year, used by the derived scoring fallback.
	GetWeeklyStats(ctx context.Context, seasonYear, week int) (map[string]map[string]float64, error)
	GetPlayerDirectory(ctx context.Context) (map[string]ExternalPlayerMeta, error)
}
