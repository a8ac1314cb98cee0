package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/league-history/internal/domain/league"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

func newAwards(gateway *stubGateway) *AwardsService {
	normalizer := newNormalizer(gateway)
	return NewAwardsService(normalizer, NewScoringService(normalizer, gateway, logging.NewNop()), gateway, logging.NewNop())
}

func TestResolveAwards_MVPAndMetadataRookie(t *testing.T) {
	t.Parallel()

	service := newAwards(newLeagueFixture())
	result, err := service.ResolveAwards(context.Background(), "lg-2024", 2024)
	if err != nil {
		t.Fatalf("resolve awards: %v", err)
	}

	// p1 (QB) leads the season with 250.5 points.
	if len(result.MVP) != 1 || result.MVP[0].PlayerID != "p1" {
		t.Fatalf("unexpected MVP: %+v", result.MVP)
	}
	// p2 carries rookie_year metadata for 2024; p9's says 2023.
	if len(result.RookieOfTheYear) != 1 || result.RookieOfTheYear[0].PlayerID != "p2" {
		t.Fatalf("unexpected rookie of the year: %+v", result.RookieOfTheYear)
	}
	if result.RookiesInferred {
		t.Fatal("metadata-backed rookies must not be flagged as inferred")
	}
}

func TestResolveAwards_EpsilonCoWinners(t *testing.T) {
	t.Parallel()

	gateway := newLeagueFixture()
	// Lift p2 to exactly p1's season total.
	gateway.matchups["lg-2024"][3][1].PlayersPoints = map[string]float64{"p2": 250.5 - 90.25}

	service := newAwards(gateway)
	result, err := service.ResolveAwards(context.Background(), "lg-2024", 2024)
	if err != nil {
		t.Fatalf("resolve awards: %v", err)
	}

	if len(result.MVP) != 2 {
		t.Fatalf("expected MVP co-winners, got %+v", result.MVP)
	}
	if result.MVP[0].PlayerID != "p1" || result.MVP[1].PlayerID != "p2" {
		t.Fatalf("unexpected co-winners: %+v", result.MVP)
	}
}

func TestResolveAwards_LeaderAtFloorGetsNoAward(t *testing.T) {
	t.Parallel()

	gateway := newLeagueFixture()
	// Everyone scores nothing except p1, whose total lands exactly on the
	// 0.01 floor. The floor must be strictly exceeded.
	for _, sides := range gateway.matchups["lg-2024"] {
		for i := range sides {
			sides[i].PlayersPoints = nil
		}
	}
	gateway.matchups["lg-2024"][1][0].PlayersPoints = map[string]float64{"p1": 0.01}

	service := newAwards(gateway)
	result, err := service.ResolveAwards(context.Background(), "lg-2024", 2024)
	if err != nil {
		t.Fatalf("resolve awards: %v", err)
	}
	if len(result.MVP) != 0 {
		t.Fatalf("a leader at exactly the floor must win nothing, got %+v", result.MVP)
	}
}

func TestResolveAwards_NonSkillPositionsExcluded(t *testing.T) {
	t.Parallel()

	gateway := newLeagueFixture()
	gateway.players["p1"] = ExternalPlayerMeta{Position: "DEF"}

	service := newAwards(gateway)
	result, err := service.ResolveAwards(context.Background(), "lg-2024", 2024)
	if err != nil {
		t.Fatalf("resolve awards: %v", err)
	}

	for _, winner := range result.MVP {
		if winner.PlayerID == "p1" {
			t.Fatal("defense units are not award-eligible")
		}
	}
}

func TestResolveAwards_RookieInferenceNeedsTwoPriorSeasons(t *testing.T) {
	t.Parallel()

	t.Run("history too shallow", func(t *testing.T) {
		t.Parallel()

		gateway := newLeagueFixture()
		// p1 has no rookie metadata and the league has no prior seasons:
		// rookie status must not be guessed.
		gateway.players["p1"] = ExternalPlayerMeta{Position: "QB"}
		gateway.players["p2"] = ExternalPlayerMeta{Position: "RB"}

		service := newAwards(gateway)
		result, err := service.ResolveAwards(context.Background(), "lg-2024", 2024)
		if err != nil {
			t.Fatalf("resolve awards: %v", err)
		}
		if len(result.RookieOfTheYear) != 0 {
			t.Fatalf("expected no rookie award without provable history, got %+v", result.RookieOfTheYear)
		}
	})

	t.Run("provable inactivity", func(t *testing.T) {
		t.Parallel()

		gateway := newLeagueFixture()
		gateway.players["p1"] = ExternalPlayerMeta{Position: "QB"}
		gateway.players["p2"] = ExternalPlayerMeta{Position: "RB"}
		gateway.seasons = append([]league.Season{
			{LeagueID: "lg-2022", Year: 2022, PlayoffStartWeek: 3, RegularWeeks: 2},
			{LeagueID: "lg-2023", Year: 2023, PlayoffStartWeek: 3, RegularWeeks: 2},
		}, gateway.seasons...)
		for _, id := range []string{"lg-2022", "lg-2023"} {
			gateway.settings[id] = ExternalLeagueSettings{Season: 2022, PlayoffStartWeek: 3, RegularWeeks: 2}
			// Everyone but p2 was already rostered in both prior seasons.
			gateway.rosters[id] = []ExternalRoster{
				{RosterID: 1, OwnerID: "owner-a", TeamName: "Alpha", Players: []string{"p1", "p3", "p4", "p9"}, Starters: []string{"p1"}},
			}
		}

		service := newAwards(gateway)
		result, err := service.ResolveAwards(context.Background(), "lg-2024", 2024)
		if err != nil {
			t.Fatalf("resolve awards: %v", err)
		}
		if len(result.RookieOfTheYear) != 1 || result.RookieOfTheYear[0].PlayerID != "p2" {
			t.Fatalf("expected p2 inferred as rookie, got %+v", result.RookieOfTheYear)
		}
		if !result.RookiesInferred {
			t.Fatal("inference fallback must be flagged")
		}
	})
}
