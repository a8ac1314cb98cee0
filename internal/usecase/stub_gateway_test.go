package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/league-history/internal/domain/league"
)

// stubGateway serves canned provider data keyed the way the real client
// would fetch it.
type stubGateway struct {
	seasons      []league.Season
	rosters      map[string][]ExternalRoster
	matchups     map[string]map[int][]ExternalMatchup
	transactions map[string]map[int][]ExternalTransaction
	brackets     map[string]ExternalBrackets
	settings     map[string]ExternalLeagueSettings
	stats        map[string]map[string]map[string]float64
	players      map[string]ExternalPlayerMeta

	failWeeks   map[string]map[int]bool
	playersErr  error
	seasonsErr  error
	settingsErr error
}

func (g *stubGateway) GetLeagueSeasons(_ context.Context, leagueID string) ([]league.Season, error) {
	if g.seasonsErr != nil {
		return nil, g.seasonsErr
	}
	return g.seasons, nil
}

func (g *stubGateway) GetSeasonRosters(_ context.Context, leagueID string) ([]ExternalRoster, error) {
	rosters, ok := g.rosters[leagueID]
	if !ok {
		return nil, fmt.Errorf("no rosters for league %s", leagueID)
	}
	return rosters, nil
}

func (g *stubGateway) GetWeeklyResults(_ context.Context, leagueID string, week int) ([]ExternalMatchup, error) {
	if g.failWeeks[leagueID][week] {
		return nil, fmt.Errorf("week %d unavailable", week)
	}
	return g.matchups[leagueID][week], nil
}

func (g *stubGateway) GetTransactions(_ context.Context, leagueID string, week int) ([]ExternalTransaction, error) {
	return g.transactions[leagueID][week], nil
}

func (g *stubGateway) GetBrackets(_ context.Context, leagueID string) (ExternalBrackets, error) {
	return g.brackets[leagueID], nil
}

func (g *stubGateway) GetLeagueSettings(_ context.Context, leagueID string) (ExternalLeagueSettings, error) {
	if g.settingsErr != nil {
		return ExternalLeagueSettings{}, g.settingsErr
	}
	settings, ok := g.settings[leagueID]
	if !ok {
		return ExternalLeagueSettings{}, fmt.Errorf("no settings for league %s", leagueID)
	}
	return settings, nil
}

func (g *stubGateway) GetWeeklyStats(_ context.Context, seasonYear, week int) (map[string]map[string]float64, error) {
	key := fmt.Sprintf("%d:%d", seasonYear, week)
	stats, ok := g.stats[key]
	if !ok {
		return nil, fmt.Errorf("no stats for %s", key)
	}
	return stats, nil
}

func (g *stubGateway) GetPlayerDirectory(_ context.Context) (map[string]ExternalPlayerMeta, error) {
	if g.playersErr != nil {
		return nil, g.playersErr
	}
	return g.players, nil
}
