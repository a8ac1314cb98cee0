package recordbook

// Outcome is one franchise's result in one played game.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
	OutcomeTie  Outcome = "T"
)

// StreakTracker walks one franchise's chronological outcome timeline.
// Consecutive same-outcome entries extend the active streak and reset the
// opposite counter; a tie resets both counters. A new run must strictly
// exceed the recorded maximum to replace it, so the first run found wins
// on exact ties.
type StreakTracker struct {
	ownerID string

	winRun  StreakEntry
	lossRun StreakEntry

	bestWin  StreakEntry
	bestLoss StreakEntry
}

func NewStreakTracker(ownerID string) *StreakTracker {
	return &StreakTracker{ownerID: ownerID}
}

func (t *StreakTracker) Observe(outcome Outcome, season, week int) {
	switch outcome {
	case OutcomeWin:
		t.winRun = extendRun(t.winRun, t.ownerID, season, week)
		t.lossRun = StreakEntry{}
	case OutcomeLoss:
		t.lossRun = extendRun(t.lossRun, t.ownerID, season, week)
		t.winRun = StreakEntry{}
	default:
		t.winRun = StreakEntry{}
		t.lossRun = StreakEntry{}
	}

	if t.winRun.Length > t.bestWin.Length {
		t.bestWin = t.winRun
	}
	if t.lossRun.Length > t.bestLoss.Length {
		t.bestLoss = t.lossRun
	}
}

// BestWin returns the longest win streak seen so far.
func (t *StreakTracker) BestWin() (StreakEntry, bool) {
	return t.bestWin, t.bestWin.Length > 0
}

// BestLoss returns the longest loss streak seen so far.
func (t *StreakTracker) BestLoss() (StreakEntry, bool) {
	return t.bestLoss, t.bestLoss.Length > 0
}

func extendRun(run StreakEntry, ownerID string, season, week int) StreakEntry {
	if run.Length == 0 {
		return StreakEntry{
			OwnerID:     ownerID,
			Length:      1,
			StartSeason: season,
			StartWeek:   week,
			EndSeason:   season,
			EndWeek:     week,
		}
	}
	run.Length++
	run.EndSeason = season
	run.EndWeek = week
	return run
}
