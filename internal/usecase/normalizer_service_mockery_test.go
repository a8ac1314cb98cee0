package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/domain/league"
	usecasemock "github.com/riskibarqy/league-history/internal/mocks/usecase"
	"github.com/riskibarqy/league-history/internal/platform/logging"
	"github.com/riskibarqy/league-history/internal/usecase"
)

func TestNormalizeLeague_SeasonListFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := usecasemock.NewProviderGateway(t)

	gateway.
		On("GetLeagueSeasons", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "lg-broken").
		Return(nil, errors.New("provider unreachable")).
		Once()

	service := usecase.NewNormalizerService(gateway, logging.NewNop(), 2)
	if _, err := service.NormalizeLeague(ctx, "lg-broken"); err == nil {
		t.Fatalf("expected error when the season chain cannot be listed")
	}
}

func TestNormalizeLeague_SingleSeasonUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := usecasemock.NewProviderGateway(t)
	leagueID := "lg-2024"
	season := league.Season{LeagueID: leagueID, Year: 2024, PlayoffStartWeek: 2, RegularWeeks: 1}

	gateway.
		On("GetLeagueSeasons", mock.Anything, leagueID).
		Return([]league.Season{season}, nil).
		Once()
	gateway.
		On("GetLeagueSettings", mock.Anything, leagueID).
		Return(usecase.ExternalLeagueSettings{Season: 2024, PlayoffStartWeek: 2, RegularWeeks: 1}, nil).
		Once()
	gateway.
		On("GetSeasonRosters", mock.Anything, leagueID).
		Return([]usecase.ExternalRoster{
			{RosterID: 1, OwnerID: "owner-a", TeamName: "Alpha", Players: []string{"p1"}},
			{RosterID: 2, OwnerID: "owner-b", TeamName: "Bravo", Players: []string{"p2"}},
		}, nil).
		Once()
	gateway.
		On("GetWeeklyResults", mock.Anything, leagueID, mock.AnythingOfType("int")).
		Return([]usecase.ExternalMatchup{
			{RosterID: 1, PairingID: 7, Points: 101.5},
			{RosterID: 2, PairingID: 7, Points: 88.25},
		}, nil)
	gateway.
		On("GetTransactions", mock.Anything, leagueID, mock.AnythingOfType("int")).
		Return(nil, nil)
	gateway.
		On("GetBrackets", mock.Anything, leagueID).
		Return(usecase.ExternalBrackets{}, nil).
		Once()

	service := usecase.NewNormalizerService(gateway, logging.NewNop(), 2)
	dataset, err := service.NormalizeLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("normalize league: %v", err)
	}
	if len(dataset.Seasons) != 1 {
		t.Fatalf("unexpected season count: %d", len(dataset.Seasons))
	}
	franchise, ok := dataset.Identity.Get("owner-a")
	if !ok || franchise.CanonicalName != "Alpha" {
		t.Fatalf("unexpected franchise for owner-a: %+v", franchise)
	}

	games := 0
	for _, item := range dataset.Seasons[0].Stream.Events {
		if item.Type == event.TypeGamePlayed {
			games++
		}
	}
	if games != season.TotalWeeks() {
		t.Fatalf("unexpected game count: got=%d want=%d", games, season.TotalWeeks())
	}
}
