package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/league-history/internal/domain/calibration"
	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/domain/game"
	"github.com/riskibarqy/league-history/internal/domain/recordbook"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

// FranchiseWinRate annotates one franchise with its actual and
// calibrated expected win rates over decided games.
type FranchiseWinRate struct {
	OwnerID         string  `json:"ownerId"`
	Games           int     `json:"games"`
	Wins            int     `json:"wins"`
	ActualWinRate   float64 `json:"actualWinRate"`
	ExpectedWinRate float64 `json:"expectedWinRate"`
}

// RecordBookResult is the league-wide record book plus the degradation
// and calibration annotations around it.
type RecordBookResult struct {
	Book           *recordbook.Book   `json:"book"`
	CategoryTotals map[string]int     `json:"categoryTotals"`
	AmbiguousGames []game.Record      `json:"ambiguousGames,omitempty"`
	WinRates       []FranchiseWinRate `json:"winRates"`
	Gaps           []event.Gap        `json:"gaps,omitempty"`
}

type RecordBookService struct {
	normalizer *NormalizerService
	logger     *logging.Logger
	maxWorkers int
}

func NewRecordBookService(normalizer *NormalizerService, logger *logging.Logger, maxWorkers int) *RecordBookService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &RecordBookService{normalizer: normalizer, logger: logger, maxWorkers: maxWorkers}
}

type seasonRecords struct {
	year    int
	records []game.Record
}

// ComputeRecordBook classifies every played game and folds the whole
// history through the record book in one chronological scan. Seasons are
// classified concurrently; the fold itself stays sequential so streaks
// and extremes remain deterministic.
func (s *RecordBookService) ComputeRecordBook(ctx context.Context, leagueID string) (RecordBookResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecordBookService.ComputeRecordBook")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return RecordBookResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	dataset, err := s.normalizer.NormalizeLeague(ctx, leagueID)
	if err != nil {
		return RecordBookResult{}, err
	}

	workers := pool.NewWithResults[seasonRecords]().WithMaxGoroutines(s.maxWorkers)
	for _, season := range dataset.Seasons {
		season := season
		workers.Go(func() seasonRecords {
			return seasonRecords{
				year:    season.Season.Year,
				records: classifySeason(season),
			}
		})
	}
	perSeason := workers.Wait()
	sort.Slice(perSeason, func(i, j int) bool { return perSeason[i].year < perSeason[j].year })

	result := RecordBookResult{
		Book:           recordbook.NewBook(),
		CategoryTotals: make(map[string]int),
		Gaps:           dataset.Gaps,
	}

	trackers := make(map[string]*recordbook.StreakTracker)
	trackerFor := func(ownerID string) *recordbook.StreakTracker {
		tracker, ok := trackers[ownerID]
		if !ok {
			tracker = recordbook.NewStreakTracker(ownerID)
			trackers[ownerID] = tracker
		}
		return tracker
	}

	var samples []calibration.Sample
	stats := make(map[string]*FranchiseWinRate)
	statFor := func(ownerID string) *FranchiseWinRate {
		stat, ok := stats[ownerID]
		if !ok {
			stat = &FranchiseWinRate{OwnerID: ownerID}
			stats[ownerID] = stat
		}
		return stat
	}

	for _, season := range perSeason {
		weekScores := make(map[int]map[string]float64)
		for _, rec := range season.records {
			result.Book.ObserveScores(rec)

			if rec.Category == game.CategoryAmbiguous {
				result.AmbiguousGames = append(result.AmbiguousGames, rec)
				s.logger.Warn("ambiguous playoff-week pairing excluded from category aggregates",
					"season", rec.Season,
					"week", rec.Week,
					"home", rec.HomeOwnerID,
					"away", rec.AwayOwnerID,
				)
			} else {
				result.CategoryTotals[string(rec.Category)]++
			}

			result.Book.ObserveMargin(rec)
			result.Book.ObserveCombined(rec)

			scores, ok := weekScores[rec.Week]
			if !ok {
				scores = make(map[string]float64)
				weekScores[rec.Week] = scores
			}
			scores[rec.HomeOwnerID] = rec.HomePoints
			scores[rec.AwayOwnerID] = rec.AwayPoints

			margin := rec.HomePoints - rec.AwayPoints
			switch {
			case margin > 0:
				trackerFor(rec.HomeOwnerID).Observe(recordbook.OutcomeWin, rec.Season, rec.Week)
				trackerFor(rec.AwayOwnerID).Observe(recordbook.OutcomeLoss, rec.Season, rec.Week)
			case margin < 0:
				trackerFor(rec.HomeOwnerID).Observe(recordbook.OutcomeLoss, rec.Season, rec.Week)
				trackerFor(rec.AwayOwnerID).Observe(recordbook.OutcomeWin, rec.Season, rec.Week)
			default:
				trackerFor(rec.HomeOwnerID).Observe(recordbook.OutcomeTie, rec.Season, rec.Week)
				trackerFor(rec.AwayOwnerID).Observe(recordbook.OutcomeTie, rec.Season, rec.Week)
			}

			if margin != 0 {
				samples = append(samples,
					calibration.Sample{Margin: margin, Won: margin > 0},
					calibration.Sample{Margin: -margin, Won: margin < 0},
				)
				home, away := statFor(rec.HomeOwnerID), statFor(rec.AwayOwnerID)
				home.Games++
				away.Games++
				if margin > 0 {
					home.Wins++
				} else {
					away.Wins++
				}
			}
		}

		weeks := make([]int, 0, len(weekScores))
		for week := range weekScores {
			weeks = append(weeks, week)
		}
		sort.Ints(weeks)
		for _, week := range weeks {
			result.Book.CreditWeeklyHighs(weekScores[week])
		}
	}

	result.collectStreaks(trackers)
	result.WinRates = annotateWinRates(stats, samples, perSeason)
	return result, nil
}

func (r *RecordBookResult) collectStreaks(trackers map[string]*recordbook.StreakTracker) {
	owners := make([]string, 0, len(trackers))
	for ownerID := range trackers {
		owners = append(owners, ownerID)
	}
	sort.Strings(owners)

	var bestWin, bestLoss int
	for _, ownerID := range owners {
		if entry, ok := trackers[ownerID].BestWin(); ok && entry.Length > bestWin {
			bestWin = entry.Length
		}
		if entry, ok := trackers[ownerID].BestLoss(); ok && entry.Length > bestLoss {
			bestLoss = entry.Length
		}
	}
	for _, ownerID := range owners {
		if entry, ok := trackers[ownerID].BestWin(); ok && entry.Length == bestWin {
			r.Book.LongestWinStreaks = append(r.Book.LongestWinStreaks, entry)
		}
		if entry, ok := trackers[ownerID].BestLoss(); ok && entry.Length == bestLoss {
			r.Book.LongestLossStreaks = append(r.Book.LongestLossStreaks, entry)
		}
	}
}

// annotateWinRates fits the logistic margin model over the full decided
// history and averages the calibrated probability over each franchise's
// own margins.
func annotateWinRates(stats map[string]*FranchiseWinRate, samples []calibration.Sample, perSeason []seasonRecords) []FranchiseWinRate {
	model := calibration.Train(samples)
	expectedSums := make(map[string]float64, len(stats))
	for _, season := range perSeason {
		for _, rec := range season.records {
			margin := rec.HomePoints - rec.AwayPoints
			if margin == 0 {
				continue
			}
			expectedSums[rec.HomeOwnerID] += model.Apply(margin, calibration.Context{})
			expectedSums[rec.AwayOwnerID] += model.Apply(-margin, calibration.Context{})
		}
	}

	out := make([]FranchiseWinRate, 0, len(stats))
	for _, stat := range stats {
		if stat.Games > 0 {
			stat.ActualWinRate = float64(stat.Wins) / float64(stat.Games)
			stat.ExpectedWinRate = expectedSums[stat.OwnerID] / float64(stat.Games)
		}
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OwnerID < out[j].OwnerID })
	return out
}

// classifySeason turns one season's played-game events into classified
// records. Identical inputs always yield the identical slice.
func classifySeason(season SeasonDataset) []game.Record {
	records := make([]game.Record, 0, len(season.Stream.Events))
	playoffStart := season.Season.PlayoffStartWeek
	if season.Settings.PlayoffStartWeek > 0 {
		playoffStart = season.Settings.PlayoffStartWeek
	}

	for _, item := range season.Stream.Events {
		if item.Type != event.TypeGamePlayed {
			continue
		}
		category, inferred := game.Classify(item.Week, playoffStart, item.HomeOwnerID, item.AwayOwnerID, season.Brackets)
		records = append(records, game.Record{
			Season:           item.Season,
			Week:             item.Week,
			HomeOwnerID:      item.HomeOwnerID,
			HomePoints:       item.HomePoints,
			AwayOwnerID:      item.AwayOwnerID,
			AwayPoints:       item.AwayPoints,
			Category:         category,
			CategoryInferred: inferred,
		})
	}
	return records
}
