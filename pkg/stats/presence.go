package stats

import "github.com/raidflow/raidflow/internal/model"

// Presence tables the interval each actor was observed inside the window:
// min/max are the first and last sighting in milliseconds, counting both
// acting and being acted upon.
type Presence struct {
	table *Table
}

// NewPresence creates the presence accumulator.
func NewPresence() *Presence { return &Presence{} }

func (a *Presence) Name() string { return "presence" }

func (a *Presence) KeyDimensions() []Dimension { return []Dimension{DimActor} }

func (a *Presence) ValueFields() []ValueField {
	return []ValueField{ValCount, ValMin, ValMax}
}

func (a *Presence) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *Presence) Process(ev *model.Event) {
	ts := millis(ev.Timestamp)
	if ev.Actor != "" {
		a.table.Row(ev.Actor).Merge(ts)
	}
	if ev.Target != "" && ev.Target != ev.Actor {
		a.table.Row(ev.Target).Merge(ts)
	}
}

func (a *Presence) Finish() *Table { return a.table }
