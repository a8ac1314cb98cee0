package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/league-history/internal/domain/eligibility"
	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

const defaultPendingWindow = 7 * 24 * time.Hour

// PlayerEligibility is one (player, franchise) eligibility snapshot.
type PlayerEligibility struct {
	Player string             `json:"player"`
	Status eligibility.Status `json:"status"`
}

// EligibilityReport is the per-franchise view of practice-squad
// eligibility after replaying every season.
type EligibilityReport struct {
	OwnerID string              `json:"ownerId"`
	Players []PlayerEligibility `json:"players"`
	Gaps    []event.Gap         `json:"gaps,omitempty"`
}

// QuotaViolation names one franchise breaking a taxi-squad limit.
type QuotaViolation struct {
	OwnerID string `json:"ownerId"`
	Reason  string `json:"reason"`
}

// QuotaReport is the league-wide taxi quota check for the latest season.
type QuotaReport struct {
	Season     int               `json:"season"`
	Rules      eligibility.Rules `json:"rules"`
	Violations []QuotaViolation  `json:"violations"`
}

type EligibilityConfig struct {
	Rules eligibility.Rules
	// PendingWindow bounds how long an unresolved starter slot may stay
	// flagged as PendingActivation.
	PendingWindow time.Duration
	Now           func() time.Time
}

type EligibilityService struct {
	normalizer    *NormalizerService
	gateway       ProviderGateway
	logger        *logging.Logger
	rules         eligibility.Rules
	pendingWindow time.Duration
	now           func() time.Time
}

func NewEligibilityService(normalizer *NormalizerService, gateway ProviderGateway, logger *logging.Logger, cfg EligibilityConfig) *EligibilityService {
	if logger == nil {
		logger = logging.Default()
	}
	rules := cfg.Rules
	if rules.MaxSlots == 0 && rules.MaxQuarterbacks == 0 {
		rules = eligibility.DefaultRules()
	}
	window := cfg.PendingWindow
	if window <= 0 {
		window = defaultPendingWindow
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &EligibilityService{
		normalizer:    normalizer,
		gateway:       gateway,
		logger:        logger,
		rules:         rules,
		pendingWindow: window,
		now:           now,
	}
}

// ComputeEligibility replays every season's roster events and weekly
// dispositions through the eligibility state machine. An empty owner id
// returns every franchise. Weeks with missing or degraded disposition
// data contribute nothing and are reported as gaps.
func (s *EligibilityService) ComputeEligibility(ctx context.Context, leagueID, ownerID string) ([]EligibilityReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.ComputeEligibility")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	ownerID = strings.TrimSpace(ownerID)

	dataset, err := s.normalizer.NormalizeLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if ownerID != "" {
		if _, ok := dataset.Identity.Get(ownerID); !ok {
			return nil, fmt.Errorf("%w: owner=%s", ErrNotFound, ownerID)
		}
	}

	statuses, gaps := s.replayEligibility(dataset)

	byOwner := make(map[string][]PlayerEligibility)
	for key, status := range statuses {
		if ownerID != "" && key.owner != ownerID {
			continue
		}
		byOwner[key.owner] = append(byOwner[key.owner], PlayerEligibility{Player: key.player, Status: status})
	}

	reports := make([]EligibilityReport, 0, len(byOwner))
	for owner, players := range byOwner {
		sort.Slice(players, func(i, j int) bool { return players[i].Player < players[j].Player })
		reports = append(reports, EligibilityReport{OwnerID: owner, Players: players, Gaps: gaps})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].OwnerID < reports[j].OwnerID })
	return reports, nil
}

// CheckTaxiQuotas validates every franchise's current taxi slots for the
// latest season against the configured maxima.
func (s *EligibilityService) CheckTaxiQuotas(ctx context.Context, leagueID string) (QuotaReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.CheckTaxiQuotas")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return QuotaReport{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	dataset, err := s.normalizer.NormalizeLeague(ctx, leagueID)
	if err != nil {
		return QuotaReport{}, err
	}
	if len(dataset.Seasons) == 0 {
		return QuotaReport{}, fmt.Errorf("%w: league=%s has no seasons", ErrNotFound, leagueID)
	}
	latest := dataset.Seasons[len(dataset.Seasons)-1]

	positions := make(map[string]string)
	directory, err := s.gateway.GetPlayerDirectory(ctx)
	if err != nil {
		// Quota still checks slot counts; the QB limit just cannot fire.
		s.logger.WarnContext(ctx, "player directory unavailable, checking slots only", "error", err)
	} else {
		for id, meta := range directory {
			positions[id] = meta.Position
		}
	}

	report := QuotaReport{Season: latest.Season.Year, Rules: s.rules}
	for _, roster := range latest.Rosters {
		if roster.OwnerID == "" || len(roster.Taxi) == 0 {
			continue
		}
		if err := eligibility.CheckQuota(roster.Taxi, positions, s.rules); err != nil {
			report.Violations = append(report.Violations, QuotaViolation{
				OwnerID: roster.OwnerID,
				Reason:  err.Error(),
			})
		}
	}
	sort.Slice(report.Violations, func(i, j int) bool { return report.Violations[i].OwnerID < report.Violations[j].OwnerID })
	return report, nil
}

// replayEligibility walks seasons oldest-first. Within a season, each
// week applies that week's roster events before that week's game
// dispositions.
func (s *EligibilityService) replayEligibility(dataset LeagueDataset) (map[holdingKey]eligibility.Status, []event.Gap) {
	statuses := make(map[holdingKey]eligibility.Status)
	var gaps []event.Gap

	// The pending window is anchored on the newest event timestamp the
	// provider reported; matchup rows carry no wall-clock time of their
	// own.
	lastActivity := latestEventTime(dataset)
	pendingOpen := s.now().Sub(lastActivity) <= s.pendingWindow

	for seasonIdx, season := range dataset.Seasons {
		eventsByWeek := make(map[int][]event.Event)
		for _, item := range season.Stream.Events {
			if item.Type == event.TypeAcquisition || item.Type == event.TypeRelease {
				eventsByWeek[item.Week] = append(eventsByWeek[item.Week], item)
			}
		}

		reserveByOwner := make(map[string]map[string]struct{}, len(season.Rosters))
		for _, roster := range season.Rosters {
			if roster.OwnerID == "" || len(roster.Reserve) == 0 {
				continue
			}
			set := make(map[string]struct{}, len(roster.Reserve))
			for _, player := range roster.Reserve {
				set[player] = struct{}{}
			}
			reserveByOwner[roster.OwnerID] = set
		}

		lastSeason := seasonIdx == len(dataset.Seasons)-1
		totalWeeks := season.Season.TotalWeeks()
		for week := 1; week <= totalWeeks; week++ {
			for _, item := range eventsByWeek[week] {
				key := holdingKey{owner: item.OwnerID, player: item.Player}
				switch item.Type {
				case event.TypeAcquisition:
					statuses[key] = statuses[key].OnAcquisition()
				case event.TypeRelease:
					// A pair that never saw an acquisition stays absent;
					// drop-only history must not materialize a status.
					if status, tracked := statuses[key]; tracked {
						statuses[key] = status.OnRelease()
					}
				}
			}

			sides, ok := season.WeeklyMatchups[week]
			if !ok {
				continue
			}
			resolved := weekResolved(sides)
			for _, side := range sides {
				owner, known := dataset.Identity.ResolveOwner(season.Season.Year, side.RosterID)
				if !known {
					continue
				}
				fielded, degraded := fieldedPlayers(side, reserveByOwner[owner])
				if degraded {
					gaps = append(gaps, event.Gap{
						Season:   season.Season.Year,
						Week:     week,
						Resource: "disposition",
						Reason:   fmt.Sprintf("roster %d has no starter snapshot", side.RosterID),
					})
					continue
				}
				at := eligibility.WeekRef{Season: season.Season.Year, Week: week}
				for player := range fielded {
					key := holdingKey{owner: owner, player: player}
					status, tracked := statuses[key]
					if !tracked {
						continue
					}
					if resolved {
						statuses[key] = status.OnFielded(at)
					} else if lastSeason && pendingOpen {
						statuses[key] = status.OnPendingStart()
					}
				}
			}
		}
	}
	return statuses, gaps
}

// fieldedPlayers resolves which players consumed an active-roster spot
// for one matchup side. The starter list is the authoritative source;
// reserve slots count because they still occupy an active spot. A side
// with no starter snapshot is degraded.
func fieldedPlayers(side ExternalMatchup, reserve map[string]struct{}) (map[string]struct{}, bool) {
	if len(side.Starters) == 0 {
		return nil, true
	}
	out := make(map[string]struct{}, len(side.Starters)+len(reserve))
	for _, player := range side.Starters {
		if player == "" || player == "0" {
			continue
		}
		out[player] = struct{}{}
	}
	for _, player := range side.Players {
		if _, onReserve := reserve[player]; onReserve {
			out[player] = struct{}{}
		}
	}
	return out, false
}

// weekResolved reports whether any side of the week has scored; an
// all-zero week is a future or in-progress scoring period.
func weekResolved(sides []ExternalMatchup) bool {
	for _, side := range sides {
		if side.Points != 0 {
			return true
		}
	}
	return false
}

func latestEventTime(dataset LeagueDataset) time.Time {
	var latest time.Time
	for _, season := range dataset.Seasons {
		for _, item := range season.Stream.Events {
			if item.At.After(latest) {
				latest = item.At
			}
		}
	}
	return latest
}
