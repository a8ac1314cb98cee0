package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/domain/league"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

var fixtureBase = time.Date(2024, time.September, 5, 17, 0, 0, 0, time.UTC)

// newLeagueFixture builds a four-franchise single-season league:
// two regular weeks, playoffs from week 3, championship bracket A/B and
// consolation bracket C/D.
func newLeagueFixture() *stubGateway {
	return &stubGateway{
		seasons: []league.Season{
			{LeagueID: "lg-2024", Year: 2024, PlayoffStartWeek: 3, RegularWeeks: 2},
		},
		settings: map[string]ExternalLeagueSettings{
			"lg-2024": {
				Season:           2024,
				PlayoffStartWeek: 3,
				RegularWeeks:     2,
				ScoringRules:     map[string]float64{"pass_td": 4, "rush_yd": 0.1},
			},
		},
		rosters: map[string][]ExternalRoster{
			"lg-2024": {
				{RosterID: 1, OwnerID: "owner-a", TeamName: "Alpha", Players: []string{"p1", "p9"}, Starters: []string{"p1"}, Taxi: []string{"p9"}},
				{RosterID: 2, OwnerID: "owner-b", TeamName: "Bravo", Players: []string{"p2"}, Starters: []string{"p2"}},
				{RosterID: 3, OwnerID: "owner-c", TeamName: "Charlie", Players: []string{"p3"}, Starters: []string{"p3"}},
				{RosterID: 4, OwnerID: "owner-d", TeamName: "Delta", Players: []string{"p4"}, Starters: []string{"p4"}},
			},
		},
		matchups: map[string]map[int][]ExternalMatchup{
			"lg-2024": {
				1: {
					{RosterID: 1, PairingID: 1, Points: 100.5, Starters: []string{"p1"}, Players: []string{"p1", "p9"}, PlayersPoints: map[string]float64{"p1": 90.5, "p9": 10}},
					{RosterID: 2, PairingID: 1, Points: 90.25, Starters: []string{"p2"}, Players: []string{"p2"}, PlayersPoints: map[string]float64{"p2": 90.25}},
					{RosterID: 3, PairingID: 2, Points: 80, Starters: []string{"p3"}, Players: []string{"p3"}, PlayersPoints: map[string]float64{"p3": 80}},
					{RosterID: 4, PairingID: 2, Points: 80, Starters: []string{"p4"}, Players: []string{"p4"}, PlayersPoints: map[string]float64{"p4": 80}},
				},
				2: {
					{RosterID: 1, PairingID: 1, Points: 50, Starters: []string{"p1"}, Players: []string{"p1"}, PlayersPoints: map[string]float64{"p1": 50}},
					{RosterID: 3, PairingID: 1, Points: 60, Starters: []string{"p3"}, Players: []string{"p3"}, PlayersPoints: map[string]float64{"p3": 60}},
					// Unplayed placeholder pairing: combined score zero.
					{RosterID: 2, PairingID: 2, Points: 0, Starters: []string{"p2"}, Players: []string{"p2"}},
					{RosterID: 4, PairingID: 2, Points: 0, Starters: []string{"p4"}, Players: []string{"p4"}},
				},
				3: {
					{RosterID: 1, PairingID: 1, Points: 110, Starters: []string{"p1"}, Players: []string{"p1"}, PlayersPoints: map[string]float64{"p1": 110}},
					{RosterID: 2, PairingID: 1, Points: 95, Starters: []string{"p2"}, Players: []string{"p2"}, PlayersPoints: map[string]float64{"p2": 95}},
					{RosterID: 3, PairingID: 2, Points: 70, Starters: []string{"p3"}, Players: []string{"p3"}, PlayersPoints: map[string]float64{"p3": 70}},
					{RosterID: 4, PairingID: 2, Points: 65, Starters: []string{"p4"}, Players: []string{"p4"}, PlayersPoints: map[string]float64{"p4": 65}},
				},
			},
		},
		transactions: map[string]map[int][]ExternalTransaction{
			"lg-2024": {
				1: {
					{Type: "waiver", Status: "complete", CreatedAt: fixtureBase, Week: 1, Adds: map[string]int64{"p9": 1}},
					{Type: "waiver", Status: "failed", CreatedAt: fixtureBase.Add(time.Minute), Week: 1, Adds: map[string]int64{"p8": 2}},
				},
				2: {
					// owner-a drops p9 and re-adds it an hour later.
					{Type: "free_agent", Status: "complete", CreatedAt: fixtureBase.Add(48 * time.Hour), Week: 2, Drops: map[string]int64{"p9": 1}},
					{Type: "free_agent", Status: "complete", CreatedAt: fixtureBase.Add(49 * time.Hour), Week: 2, Adds: map[string]int64{"p9": 1}},
				},
			},
		},
		brackets: map[string]ExternalBrackets{
			"lg-2024": {
				Championship:       []ExternalBracketMatch{{Round: 1, Team1: 1, Team2: 2}},
				Consolation:        []ExternalBracketMatch{{Round: 1, Team1: 3, Team2: 4}},
				ConsolationExposed: true,
			},
		},
		players: map[string]ExternalPlayerMeta{
			"p1": {Position: "QB"},
			"p2": {Position: "RB", RookieYear: 2024},
			"p3": {Position: "WR"},
			"p4": {Position: "TE"},
			"p9": {Position: "QB", RookieYear: 2023},
		},
	}
}

func newNormalizer(gateway ProviderGateway) *NormalizerService {
	return NewNormalizerService(gateway, logging.NewNop(), 2)
}

func TestNormalizeLeague_BuildsIdentityAndStreams(t *testing.T) {
	t.Parallel()

	service := newNormalizer(newLeagueFixture())
	dataset, err := service.NormalizeLeague(context.Background(), "lg-2024")
	if err != nil {
		t.Fatalf("normalize league: %v", err)
	}

	if len(dataset.Seasons) != 1 {
		t.Fatalf("expected 1 season, got %d", len(dataset.Seasons))
	}
	owner, ok := dataset.Identity.ResolveOwner(2024, 3)
	if !ok || owner != "owner-c" {
		t.Fatalf("expected roster 3 to resolve to owner-c, got %q ok=%v", owner, ok)
	}
	franchiseA, ok := dataset.Identity.Get("owner-a")
	if !ok || franchiseA.CanonicalName != "Alpha" {
		t.Fatalf("unexpected franchise: %+v ok=%v", franchiseA, ok)
	}

	season := dataset.Seasons[0]
	games := 0
	for _, item := range season.Stream.Events {
		if item.Type == event.TypeGamePlayed {
			games++
		}
	}
	// Week 2's zero-combined placeholder must not materialize.
	if games != 5 {
		t.Fatalf("expected 5 played games, got %d", games)
	}

	if _, ok := season.Brackets.Championship["owner-a"]; !ok {
		t.Fatal("expected owner-a in championship set")
	}
	if _, ok := season.Brackets.Consolation["owner-d"]; !ok {
		t.Fatal("expected owner-d in consolation set")
	}
}

func TestNormalizeLeague_SkipsIncompleteTransactions(t *testing.T) {
	t.Parallel()

	service := newNormalizer(newLeagueFixture())
	dataset, err := service.NormalizeLeague(context.Background(), "lg-2024")
	if err != nil {
		t.Fatalf("normalize league: %v", err)
	}

	for _, item := range dataset.Seasons[0].Stream.Events {
		if item.Player == "p8" {
			t.Fatal("failed transaction must not produce events")
		}
	}
}

func TestNormalizeLeague_SameInstantLossSortsLast(t *testing.T) {
	t.Parallel()

	gateway := newLeagueFixture()
	// Gain and loss of p9 at the exact same instant.
	gateway.transactions["lg-2024"][2] = []ExternalTransaction{
		{Type: "free_agent", Status: "complete", CreatedAt: fixtureBase.Add(48 * time.Hour), Week: 2, Adds: map[string]int64{"p9": 1}, Drops: map[string]int64{"p9": 1}},
	}

	service := newNormalizer(gateway)
	dataset, err := service.NormalizeLeague(context.Background(), "lg-2024")
	if err != nil {
		t.Fatalf("normalize league: %v", err)
	}

	var order []event.Type
	for _, item := range dataset.Seasons[0].Stream.Events {
		if item.Player == "p9" && item.Week == 2 {
			order = append(order, item.Type)
		}
	}
	if len(order) != 2 || order[0] != event.TypeAcquisition || order[1] != event.TypeRelease {
		t.Fatalf("expected the release to apply after the same-instant acquisition, got %v", order)
	}
}

func TestNormalizeLeague_FailedWeekBecomesGap(t *testing.T) {
	t.Parallel()

	gateway := newLeagueFixture()
	gateway.failWeeks = map[string]map[int]bool{"lg-2024": {2: true}}

	service := newNormalizer(gateway)
	dataset, err := service.NormalizeLeague(context.Background(), "lg-2024")
	if err != nil {
		t.Fatalf("normalize league: %v", err)
	}

	found := false
	for _, gap := range dataset.Gaps {
		if gap.Week == 2 && gap.Resource == "matchups" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a matchups gap for week 2, got %+v", dataset.Gaps)
	}
	// The other weeks still contribute games.
	games := 0
	for _, item := range dataset.Seasons[0].Stream.Events {
		if item.Type == event.TypeGamePlayed {
			games++
		}
	}
	if games != 4 {
		t.Fatalf("expected 4 games without week 2, got %d", games)
	}
}

func TestNormalizeLeague_RequiresLeagueID(t *testing.T) {
	t.Parallel()

	service := newNormalizer(newLeagueFixture())
	if _, err := service.NormalizeLeague(context.Background(), "  "); err == nil {
		t.Fatal("expected invalid input error")
	}
}
