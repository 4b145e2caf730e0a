package stats

import "github.com/raidflow/raidflow/internal/model"

// activityGap caps the time credited between two consecutive actions of
// one actor, in seconds. Longer silences count as idle.
const activityGap = 5.0

// Activity tables per-actor active time: amount is active milliseconds
// (gap-capped sum over the actor's own actions), count is actions taken.
type Activity struct {
	table *Table
	last  map[string]float64
}

// NewActivity creates the activity accumulator.
func NewActivity() *Activity { return &Activity{} }

func (a *Activity) Name() string { return "activity" }

func (a *Activity) KeyDimensions() []Dimension { return []Dimension{DimActor} }

func (a *Activity) ValueFields() []ValueField {
	return []ValueField{ValCount, ValAmount}
}

func (a *Activity) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
	a.last = make(map[string]float64)
}

func (a *Activity) Process(ev *model.Event) {
	if ev.Actor == "" {
		return
	}
	row := a.table.Row(ev.Actor)
	row.Count++

	if prev, ok := a.last[ev.Actor]; ok {
		gap := ev.Timestamp - prev
		if gap > activityGap {
			gap = activityGap
		}
		if gap > 0 {
			row.Amount += millis(gap)
		}
	}
	a.last[ev.Actor] = ev.Timestamp
}

func (a *Activity) Finish() *Table { return a.table }
