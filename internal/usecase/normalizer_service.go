package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/domain/franchise"
	"github.com/riskibarqy/league-history/internal/domain/game"
	"github.com/riskibarqy/league-history/internal/domain/league"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

const (
	defaultNormalizerWorkers = 8
	maxNormalizerWorkers     = 32
)

// SeasonDataset is everything the aggregators need about one season,
// fully normalized: stable owner ids everywhere, canonical event stream,
// raw weekly sides kept for scoring and eligibility.
type SeasonDataset struct {
	Season   league.Season
	Settings league.Settings
	Rosters  []ExternalRoster
	Stream   event.SeasonStream
	// WeeklyMatchups keeps the raw per-side rows by week; the event
	// stream only carries the paired game view.
	WeeklyMatchups map[int][]ExternalMatchup
	// Transactions keeps the completed roster moves by week for the
	// eligibility reconstruction.
	Transactions map[int][]ExternalTransaction
	Brackets     game.BracketSets
}

// LeagueDataset is the normalized cross-season view of one league chain.
type LeagueDataset struct {
	Identity *franchise.IdentityTable
	Seasons  []SeasonDataset
	Gaps     []event.Gap
}

// SeasonOf returns the dataset for a season year.
func (d LeagueDataset) SeasonOf(year int) (SeasonDataset, bool) {
	for _, season := range d.Seasons {
		if season.Season.Year == year {
			return season, true
		}
	}
	return SeasonDataset{}, false
}

type NormalizerService struct {
	gateway    ProviderGateway
	logger     *logging.Logger
	maxWorkers int
}

func NewNormalizerService(gateway ProviderGateway, logger *logging.Logger, maxWorkers int) *NormalizerService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultNormalizerWorkers
	}
	if maxWorkers > maxNormalizerWorkers {
		maxWorkers = maxNormalizerWorkers
	}
	return &NormalizerService{
		gateway:    gateway,
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

// NormalizeLeague walks the league's season chain and builds the full
// normalized dataset. Individual weeks that fail to fetch become gaps;
// only a failure to list the seasons themselves is fatal.
func (s *NormalizerService) NormalizeLeague(ctx context.Context, leagueID string) (LeagueDataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NormalizerService.NormalizeLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return LeagueDataset{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if s.gateway == nil {
		return LeagueDataset{}, fmt.Errorf("%w: provider gateway is not configured", ErrDependencyUnavailable)
	}

	seasons, err := s.gateway.GetLeagueSeasons(ctx, leagueID)
	if err != nil {
		return LeagueDataset{}, fmt.Errorf("list league seasons: %w", err)
	}
	if len(seasons) == 0 {
		return LeagueDataset{}, fmt.Errorf("%w: league=%s has no seasons", ErrNotFound, leagueID)
	}

	dataset := LeagueDataset{
		Identity: franchise.NewIdentityTable(),
		Seasons:  make([]SeasonDataset, 0, len(seasons)),
	}

	for _, season := range seasons {
		seasonData, gaps := s.normalizeSeason(ctx, season, dataset.Identity)
		dataset.Seasons = append(dataset.Seasons, seasonData)
		dataset.Gaps = append(dataset.Gaps, gaps...)
	}

	s.logger.InfoContext(ctx, "league normalized",
		"league_id", leagueID,
		"seasons", len(dataset.Seasons),
		"gaps", len(dataset.Gaps),
	)
	return dataset, nil
}

func (s *NormalizerService) normalizeSeason(ctx context.Context, season league.Season, identity *franchise.IdentityTable) (SeasonDataset, []event.Gap) {
	var gaps []event.Gap

	data := SeasonDataset{
		Season:         season,
		WeeklyMatchups: make(map[int][]ExternalMatchup),
		Transactions:   make(map[int][]ExternalTransaction),
	}

	settings, err := s.gateway.GetLeagueSettings(ctx, season.LeagueID)
	if err != nil {
		gaps = append(gaps, event.Gap{Season: season.Year, Resource: "settings", Reason: err.Error()})
	} else {
		data.Settings = league.Settings{
			Season:           settings.Season,
			PlayoffStartWeek: settings.PlayoffStartWeek,
			ScoringRules:     settings.ScoringRules,
		}
	}

	rosters, err := s.gateway.GetSeasonRosters(ctx, season.LeagueID)
	if err != nil {
		gaps = append(gaps, event.Gap{Season: season.Year, Resource: "rosters", Reason: err.Error()})
		data.Stream = event.SeasonStream{Season: season.Year}
		return data, gaps
	}
	data.Rosters = rosters
	for _, roster := range rosters {
		if roster.OwnerID == "" {
			// Orphaned roster slot; nothing downstream can attribute it.
			gaps = append(gaps, event.Gap{
				Season:   season.Year,
				Resource: "rosters",
				Reason:   fmt.Sprintf("roster %d has no owner", roster.RosterID),
			})
			continue
		}
		if err := identity.Register(roster.OwnerID, roster.TeamName, season.Year, roster.RosterID); err != nil {
			gaps = append(gaps, event.Gap{Season: season.Year, Resource: "rosters", Reason: err.Error()})
		}
	}

	weekGaps := s.fetchSeasonWeeks(ctx, season, &data)
	gaps = append(gaps, weekGaps...)

	bracketGaps := s.fetchBrackets(ctx, season, identity, &data)
	gaps = append(gaps, bracketGaps...)

	stream := buildSeasonStream(season, identity, data.WeeklyMatchups, data.Transactions, &gaps)
	data.Stream = stream
	return data, gaps
}

// fetchSeasonWeeks fans the per-week matchup and transaction fetches out
// on a worker pool and merges results deterministically once every fetch
// has resolved. A failed week contributes a gap, never an abort.
func (s *NormalizerService) fetchSeasonWeeks(ctx context.Context, season league.Season, data *SeasonDataset) []event.Gap {
	totalWeeks := season.TotalWeeks()

	type weekResult struct {
		week         int
		matchups     []ExternalMatchup
		transactions []ExternalTransaction
		gaps         []event.Gap
	}

	results := make(chan weekResult, totalWeeks)

	workerCount := s.maxWorkers
	if workerCount > totalWeeks {
		workerCount = totalWeeks
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return []event.Gap{{Season: season.Year, Resource: "matchups", Reason: fmt.Sprintf("create worker pool: %v", err)}}
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for week := 1; week <= totalWeeks; week++ {
		week := week
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := weekResult{week: week}
			matchups, err := s.gateway.GetWeeklyResults(ctx, season.LeagueID, week)
			if err != nil {
				row.gaps = append(row.gaps, event.Gap{
					Season:   season.Year,
					Week:     week,
					Resource: "matchups",
					Reason:   err.Error(),
				})
			} else {
				row.matchups = matchups
			}

			transactions, err := s.gateway.GetTransactions(ctx, season.LeagueID, week)
			if err != nil {
				row.gaps = append(row.gaps, event.Gap{
					Season:   season.Year,
					Week:     week,
					Resource: "transactions",
					Reason:   err.Error(),
				})
			} else {
				row.transactions = transactions
			}

			results <- row
		}); err != nil {
			workers.Done()
			results <- weekResult{week: week, gaps: []event.Gap{{
				Season:   season.Year,
				Week:     week,
				Resource: "matchups",
				Reason:   fmt.Sprintf("submit week fetch: %v", err),
			}}}
		}
	}

	workers.Wait()
	close(results)

	var gaps []event.Gap
	for row := range results {
		if len(row.matchups) > 0 {
			data.WeeklyMatchups[row.week] = row.matchups
		}
		if len(row.transactions) > 0 {
			data.Transactions[row.week] = row.transactions
		}
		gaps = append(gaps, row.gaps...)
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Week != gaps[j].Week {
			return gaps[i].Week < gaps[j].Week
		}
		return gaps[i].Resource < gaps[j].Resource
	})
	return gaps
}

func (s *NormalizerService) fetchBrackets(ctx context.Context, season league.Season, identity *franchise.IdentityTable, data *SeasonDataset) []event.Gap {
	brackets, err := s.gateway.GetBrackets(ctx, season.LeagueID)
	if err != nil {
		return []event.Gap{{Season: season.Year, Resource: "brackets", Reason: err.Error()}}
	}

	var gaps []event.Gap
	resolve := func(matches []ExternalBracketMatch, resource string) map[string]struct{} {
		set := make(map[string]struct{}, len(matches)*2)
		for _, match := range matches {
			for _, rosterID := range []int64{match.Team1, match.Team2} {
				if rosterID == 0 {
					continue
				}
				ownerID, ok := identity.ResolveOwner(season.Year, rosterID)
				if !ok {
					gaps = append(gaps, event.Gap{
						Season:   season.Year,
						Resource: resource,
						Reason:   fmt.Sprintf("roster %d not in identity table", rosterID),
					})
					continue
				}
				set[ownerID] = struct{}{}
			}
		}
		return set
	}

	data.Brackets.Championship = resolve(brackets.Championship, "brackets")
	if brackets.ConsolationExposed {
		data.Brackets.Consolation = resolve(brackets.Consolation, "brackets")
	}
	return gaps
}

// buildSeasonStream merges the completed transactions and paired matchup
// rows into one chronological event stream keyed by stable owner ids.
func buildSeasonStream(season league.Season, identity *franchise.IdentityTable, matchupsByWeek map[int][]ExternalMatchup, transactionsByWeek map[int][]ExternalTransaction, gaps *[]event.Gap) event.SeasonStream {
	stream := event.SeasonStream{Season: season.Year}

	weeks := make([]int, 0, len(transactionsByWeek))
	for week := range transactionsByWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	for _, week := range weeks {
		for _, transaction := range transactionsByWeek[week] {
			if !transaction.IsComplete() {
				continue
			}
			appendRosterEvents(&stream, season, identity, week, transaction, gaps)
		}
	}

	weeks = weeks[:0]
	for week := range matchupsByWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	for _, week := range weeks {
		appendGameEvents(&stream, season, identity, week, matchupsByWeek[week], gaps)
	}

	stream.Sort()
	return stream
}

func appendRosterEvents(stream *event.SeasonStream, season league.Season, identity *franchise.IdentityTable, week int, transaction ExternalTransaction, gaps *[]event.Gap) {
	resolveOwner := func(rosterID int64) (string, bool) {
		ownerID, ok := identity.ResolveOwner(season.Year, rosterID)
		if !ok {
			*gaps = append(*gaps, event.Gap{
				Season:   season.Year,
				Week:     week,
				Resource: "transactions",
				Reason:   fmt.Sprintf("roster %d not in identity table", rosterID),
			})
		}
		return ownerID, ok
	}

	for player, rosterID := range transaction.Drops {
		ownerID, ok := resolveOwner(rosterID)
		if !ok {
			continue
		}
		stream.Events = append(stream.Events, event.Event{
			Type:    event.TypeRelease,
			Season:  season.Year,
			Week:    week,
			Player:  player,
			OwnerID: ownerID,
			At:      transaction.CreatedAt,
		})
	}
	for player, rosterID := range transaction.Adds {
		ownerID, ok := resolveOwner(rosterID)
		if !ok {
			continue
		}
		stream.Events = append(stream.Events, event.Event{
			Type:    event.TypeAcquisition,
			Season:  season.Year,
			Week:    week,
			Player:  player,
			OwnerID: ownerID,
			At:      transaction.CreatedAt,
		})
	}
}

// appendGameEvents pairs per-side matchup rows by pairing id. A pairing
// whose combined score is exactly zero is an unplayed placeholder and is
// never materialized.
func appendGameEvents(stream *event.SeasonStream, season league.Season, identity *franchise.IdentityTable, week int, sides []ExternalMatchup, gaps *[]event.Gap) {
	byPairing := make(map[int64][]ExternalMatchup, len(sides)/2)
	for _, side := range sides {
		if side.PairingID == 0 {
			// Bye weeks and median games carry no pairing id.
			continue
		}
		byPairing[side.PairingID] = append(byPairing[side.PairingID], side)
	}

	pairingIDs := make([]int64, 0, len(byPairing))
	for pairingID := range byPairing {
		pairingIDs = append(pairingIDs, pairingID)
	}
	sort.Slice(pairingIDs, func(i, j int) bool { return pairingIDs[i] < pairingIDs[j] })

	for _, pairingID := range pairingIDs {
		pair := byPairing[pairingID]
		if len(pair) != 2 {
			*gaps = append(*gaps, event.Gap{
				Season:   season.Year,
				Week:     week,
				Resource: "matchups",
				Reason:   fmt.Sprintf("pairing %d has %d sides", pairingID, len(pair)),
			})
			continue
		}
		if pair[0].Points+pair[1].Points == 0 {
			continue
		}
		sort.Slice(pair, func(i, j int) bool { return pair[i].RosterID < pair[j].RosterID })

		homeOwner, okHome := identity.ResolveOwner(season.Year, pair[0].RosterID)
		awayOwner, okAway := identity.ResolveOwner(season.Year, pair[1].RosterID)
		if !okHome || !okAway {
			*gaps = append(*gaps, event.Gap{
				Season:   season.Year,
				Week:     week,
				Resource: "matchups",
				Reason:   fmt.Sprintf("pairing %d references unknown roster", pairingID),
			})
			continue
		}

		stream.Events = append(stream.Events, event.Event{
			Type:        event.TypeGamePlayed,
			Season:      season.Year,
			Week:        week,
			HomeOwnerID: homeOwner,
			HomePoints:  pair[0].Points,
			AwayOwnerID: awayOwner,
			AwayPoints:  pair[1].Points,
		})
	}
}
