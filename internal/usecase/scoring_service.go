package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/domain/scoring"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

// SeasonTotalsResult is the per-player custom scoring aggregate for one
// season, with the strategy that produced it and the weeks it could not
// cover.
type SeasonTotalsResult struct {
	Season int                         `json:"season"`
	Source scoring.Source              `json:"source"`
	Totals []scoring.PlayerSeasonTotal `json:"totals"`
	Gaps   []event.Gap                 `json:"gaps,omitempty"`
}

type ScoringService struct {
	normalizer *NormalizerService
	gateway    ProviderGateway
	logger     *logging.Logger
}

func NewScoringService(normalizer *NormalizerService, gateway ProviderGateway, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{normalizer: normalizer, gateway: gateway, logger: logger}
}

// ComputeSeasonTotals accumulates per-player points for one season.
// Provider-computed weekly values are preferred for exact upstream
// parity; weeks without them fall back to raw stats multiplied by the
// league's scoring rules. Each weekly addition is rounded to four
// decimals so the total is order-invariant.
func (s *ScoringService) ComputeSeasonTotals(ctx context.Context, leagueID string, seasonYear int) (SeasonTotalsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ComputeSeasonTotals")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return SeasonTotalsResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if seasonYear <= 0 {
		return SeasonTotalsResult{}, fmt.Errorf("%w: season year must be greater than zero", ErrInvalidInput)
	}

	dataset, err := s.normalizer.NormalizeLeague(ctx, leagueID)
	if err != nil {
		return SeasonTotalsResult{}, err
	}
	season, ok := dataset.SeasonOf(seasonYear)
	if !ok {
		return SeasonTotalsResult{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonYear)
	}

	return s.accumulateSeason(ctx, season)
}

type playerAccumulator struct {
	points float64
	weeks  int
}

func (s *ScoringService) accumulateSeason(ctx context.Context, season SeasonDataset) (SeasonTotalsResult, error) {
	result := SeasonTotalsResult{
		Season: season.Season.Year,
		Source: scoring.SourceProvider,
	}

	totals := make(map[string]*playerAccumulator)
	addWeekly := func(player string, weekly float64) {
		if player == "" || player == "0" {
			return
		}
		acc, ok := totals[player]
		if !ok {
			acc = &playerAccumulator{}
			totals[player] = acc
		}
		acc.points = scoring.Accumulate(acc.points, weekly)
		acc.weeks++
	}

	derivedUsed := false
	totalWeeks := season.Season.TotalWeeks()
	for week := 1; week <= totalWeeks; week++ {
		sides := season.WeeklyMatchups[week]
		if !weekResolved(sides) {
			continue
		}

		hasProviderPoints := false
		for _, side := range sides {
			if len(side.PlayersPoints) > 0 {
				hasProviderPoints = true
				break
			}
		}

		if hasProviderPoints {
			for _, side := range sides {
				players := make([]string, 0, len(side.PlayersPoints))
				for player := range side.PlayersPoints {
					players = append(players, player)
				}
				sort.Strings(players)
				for _, player := range players {
					addWeekly(player, side.PlayersPoints[player])
				}
			}
			continue
		}

		weekGaps := s.accumulateDerivedWeek(ctx, season, week, sides, addWeekly)
		if len(weekGaps) > 0 {
			result.Gaps = append(result.Gaps, weekGaps...)
			continue
		}
		derivedUsed = true
	}

	if derivedUsed {
		result.Source = scoring.SourceDerived
	}

	result.Totals = make([]scoring.PlayerSeasonTotal, 0, len(totals))
	for player, acc := range totals {
		result.Totals = append(result.Totals, scoring.PlayerSeasonTotal{
			PlayerID: player,
			Points:   acc.points,
			Weeks:    acc.weeks,
		})
	}
	sort.Slice(result.Totals, func(i, j int) bool {
		if result.Totals[i].Points != result.Totals[j].Points {
			return result.Totals[i].Points > result.Totals[j].Points
		}
		return result.Totals[i].PlayerID < result.Totals[j].PlayerID
	})
	return result, nil
}

// accumulateDerivedWeek covers one week from raw stats and the league's
// multipliers. Only players actually rostered that week score.
func (s *ScoringService) accumulateDerivedWeek(ctx context.Context, season SeasonDataset, week int, sides []ExternalMatchup, addWeekly func(string, float64)) []event.Gap {
	multipliers := season.Settings.ScoringRules
	if len(multipliers) == 0 {
		return []event.Gap{{
			Season:   season.Season.Year,
			Week:     week,
			Resource: "scoring",
			Reason:   "no scoring rules configured",
		}}
	}

	stats, err := s.gateway.GetWeeklyStats(ctx, season.Season.Year, week)
	if err != nil {
		return []event.Gap{{
			Season:   season.Season.Year,
			Week:     week,
			Resource: "stats",
			Reason:   err.Error(),
		}}
	}

	for _, side := range sides {
		players := append([]string(nil), side.Players...)
		sort.Strings(players)
		for _, player := range players {
			playerStats, ok := stats[player]
			if !ok {
				continue
			}
			addWeekly(player, scoring.DerivedWeekPoints(playerStats, multipliers))
		}
	}
	return nil
}
