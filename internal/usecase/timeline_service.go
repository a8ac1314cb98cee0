package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/league-history/internal/domain/event"
	"github.com/riskibarqy/league-history/internal/domain/timeline"
	"github.com/riskibarqy/league-history/internal/platform/logging"
)

// TimelineInterval is one continuous stretch of ownership of a player by
// a franchise. ReleasedAt is nil while the holding is still live.
type TimelineInterval struct {
	Player     string     `json:"player"`
	OwnerID    string     `json:"ownerId"`
	Season     int        `json:"season"`
	Week       int        `json:"week"`
	AcquiredAt time.Time  `json:"acquiredAt"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
}

// RosterTimeline is the reconstructed ownership history for one franchise.
type RosterTimeline struct {
	OwnerID   string             `json:"ownerId"`
	Intervals []TimelineInterval `json:"intervals"`
	Gaps      []event.Gap        `json:"gaps,omitempty"`
}

type TimelineService struct {
	normalizer *NormalizerService
	logger     *logging.Logger
}

func NewTimelineService(normalizer *NormalizerService, logger *logging.Logger) *TimelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TimelineService{normalizer: normalizer, logger: logger}
}

// ReconstructRosterTimeline replays the league's event streams through the
// holding state machine and returns the ownership intervals for one
// franchise. An empty owner id returns every franchise's timeline.
func (s *TimelineService) ReconstructRosterTimeline(ctx context.Context, leagueID, ownerID string) ([]RosterTimeline, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.ReconstructRosterTimeline")
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

	timelines := replayTimelines(dataset, ownerID)
	sort.Slice(timelines, func(i, j int) bool { return timelines[i].OwnerID < timelines[j].OwnerID })
	return timelines, nil
}

type holdingKey struct {
	owner  string
	player string
}

func replayTimelines(dataset LeagueDataset, ownerFilter string) []RosterTimeline {
	holdings := make(map[holdingKey]timeline.Holding)
	intervalsByOwner := make(map[string][]TimelineInterval)

	closeInterval := func(key holdingKey, holding timeline.Holding, at time.Time) {
		released := at
		intervalsByOwner[key.owner] = append(intervalsByOwner[key.owner], TimelineInterval{
			Player:     key.player,
			OwnerID:    key.owner,
			Season:     holding.Season,
			Week:       holding.Week,
			AcquiredAt: holding.AcquiredAt,
			ReleasedAt: &released,
		})
	}

	for _, season := range dataset.Seasons {
		for _, item := range season.Stream.Events {
			if item.Type != event.TypeAcquisition && item.Type != event.TypeRelease {
				continue
			}
			if ownerFilter != "" && item.OwnerID != ownerFilter {
				continue
			}
			key := holdingKey{owner: item.OwnerID, player: item.Player}
			holding := holdings[key]

			switch item.Type {
			case event.TypeAcquisition:
				if holding.State() == timeline.StateOwned {
					// Re-acquisition without an observed release; the
					// newer acquisition supersedes the open interval.
					next, reset := holding.ApplyGain(item.At, item.Season, item.Week)
					if reset {
						closeInterval(key, holding, item.At)
						holdings[key] = next
					}
					continue
				}
				next, _ := holding.ApplyGain(item.At, item.Season, item.Week)
				holdings[key] = next
			case event.TypeRelease:
				next, purged := holding.ApplyLoss(item.At)
				if purged {
					closeInterval(key, holding, item.At)
					holdings[key] = next
				}
			}
		}
	}

	// Still-open holdings become open-ended intervals.
	openKeys := make([]holdingKey, 0, len(holdings))
	for key, holding := range holdings {
		if holding.State() == timeline.StateOwned {
			openKeys = append(openKeys, key)
		}
	}
	sort.Slice(openKeys, func(i, j int) bool {
		if openKeys[i].owner != openKeys[j].owner {
			return openKeys[i].owner < openKeys[j].owner
		}
		return openKeys[i].player < openKeys[j].player
	})
	for _, key := range openKeys {
		holding := holdings[key]
		intervalsByOwner[key.owner] = append(intervalsByOwner[key.owner], TimelineInterval{
			Player:     key.player,
			OwnerID:    key.owner,
			Season:     holding.Season,
			Week:       holding.Week,
			AcquiredAt: holding.AcquiredAt,
		})
	}

	timelines := make([]RosterTimeline, 0, len(intervalsByOwner))
	for owner, intervals := range intervalsByOwner {
		sort.SliceStable(intervals, func(i, j int) bool {
			if !intervals[i].AcquiredAt.Equal(intervals[j].AcquiredAt) {
				return intervals[i].AcquiredAt.Before(intervals[j].AcquiredAt)
			}
			return intervals[i].Player < intervals[j].Player
		})
		timelines = append(timelines, RosterTimeline{
			OwnerID:   owner,
			Intervals: intervals,
			Gaps:      dataset.Gaps,
		})
	}
	return timelines
}
