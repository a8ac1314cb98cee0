package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/domain/scoring"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

const (
	// awardEpsilon bounds float drift when comparing season totals; totals
	// within it are co-winners.
	awardEpsilon = 1e-6
	// awardPointsFloor keeps zero-ish seasons from winning by default.
	awardPointsFloor = 0.01
)

// AwardWinner is one (co-)winner of a season award.
type AwardWinner struct {
	PlayerID string  `json:"playerId"`
	Position string  `json:"position"`
	Points   float64 `json:"points"`
}

// AwardsResult carries the MVP and Rookie of the Year resolutions for one
// season. Either list is empty when no eligible player clears the floor.
type AwardsResult struct {
	Season          int           `json:"season"`
	MVP             []AwardWinner `json:"mvp"`
	RookieOfTheYear []AwardWinner `json:"rookieOfTheYear"`
	RookiesInferred bool          `json:"rookiesInferred,omitempty"`
	Gaps            []event.Gap   `json:"gaps,omitempty"`
}

type AwardsService struct {
	normalizer *NormalizerService
	scoring    *ScoringService
	gateway    ProviderGateway
	logger     *logging.Logger
}

func NewAwardsService(normalizer *NormalizerService, scoringService *ScoringService, gateway ProviderGateway, logger *logging.Logger) *AwardsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AwardsService{
		normalizer: normalizer,
		scoring:    scoringService,
		gateway:    gateway,
		logger:     logger,
	}
}

// ResolveAwards names the season MVP and Rookie of the Year over the
// skill positions. Totals within epsilon of the leader are co-winners;
// nobody wins below the points floor. Rookie status comes from provider
// metadata, falling back to two-prior-seasons inactivity when the history
// is deep enough to prove it; otherwise the player is simply not
// considered a rookie.
func (s *AwardsService) ResolveAwards(ctx context.Context, leagueID string, seasonYear int) (AwardsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AwardsService.ResolveAwards")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return AwardsResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if seasonYear <= 0 {
		return AwardsResult{}, fmt.Errorf("%w: season year must be greater than zero", ErrInvalidInput)
	}

	totals, err := s.scoring.ComputeSeasonTotals(ctx, leagueID, seasonYear)
	if err != nil {
		return AwardsResult{}, err
	}

	directory, err := s.gateway.GetPlayerDirectory(ctx)
	if err != nil {
		return AwardsResult{}, fmt.Errorf("fetch player directory: %w", err)
	}

	dataset, err := s.normalizer.NormalizeLeague(ctx, leagueID)
	if err != nil {
		return AwardsResult{}, err
	}

	result := AwardsResult{Season: seasonYear, Gaps: totals.Gaps}

	candidates := make([]AwardWinner, 0, len(totals.Totals))
	for _, total := range totals.Totals {
		meta := directory[total.PlayerID]
		if !scoring.IsSkillPosition(meta.Position) {
			continue
		}
		candidates = append(candidates, AwardWinner{
			PlayerID: total.PlayerID,
			Position: meta.Position,
			Points:   scoring.DisplayPoints(total.Points),
		})
	}

	result.MVP = pickWinners(candidates)

	priorActivity, priorDepthOK := priorSeasonActivity(dataset, seasonYear)
	rookies := make([]AwardWinner, 0, len(candidates))
	for _, candidate := range candidates {
		meta := directory[candidate.PlayerID]
		switch {
		case meta.RookieYear > 0:
			if meta.RookieYear == seasonYear {
				rookies = append(rookies, candidate)
			}
		case priorDepthOK:
			if _, active := priorActivity[candidate.PlayerID]; !active {
				rookies = append(rookies, candidate)
				result.RookiesInferred = true
			}
		}
	}
	result.RookieOfTheYear = pickWinners(rookies)

	return result, nil
}

// pickWinners returns everyone within epsilon of the leading total,
// subject to the floor. Candidates must already be sorted by points
// descending, which ComputeSeasonTotals guarantees.
func pickWinners(candidates []AwardWinner) []AwardWinner {
	if len(candidates) == 0 {
		return nil
	}
	leader := candidates[0].Points
	if leader <= awardPointsFloor {
		return nil
	}
	winners := make([]AwardWinner, 0, 1)
	for _, candidate := range candidates {
		if math.Abs(leader-candidate.Points) > awardEpsilon {
			break
		}
		winners = append(winners, candidate)
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].PlayerID < winners[j].PlayerID })
	return winners
}

// priorSeasonActivity collects every player seen on a roster or in a
// lineup during the two seasons before the award season. The bool result
// reports whether both prior seasons are actually present; inference is
// off otherwise so rookie status is never guessed.
func priorSeasonActivity(dataset LeagueDataset, seasonYear int) (map[string]struct{}, bool) {
	wanted := map[int]bool{seasonYear - 1: false, seasonYear - 2: false}
	activity := make(map[string]struct{})

	for _, season := range dataset.Seasons {
		if _, ok := wanted[season.Season.Year]; !ok {
			continue
		}
		wanted[season.Season.Year] = true
		for _, roster := range season.Rosters {
			for _, player := range roster.Players {
				activity[player] = struct{}{}
			}
		}
		for _, sides := range season.WeeklyMatchups {
			for _, side := range sides {
				for _, player := range side.Players {
					activity[player] = struct{}{}
				}
			}
		}
	}

	for _, present := range wanted {
		if !present {
			return nil, false
		}
	}
	return activity, true
}
