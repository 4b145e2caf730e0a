package stats

import "github.com/raidflow/raidflow/internal/model"

// Deaths counts deaths per actor; min/max carry the first and last death
// time in milliseconds.
type Deaths struct {
	table *Table
}

// NewDeaths creates the deaths accumulator.
func NewDeaths() *Deaths { return &Deaths{} }

func (a *Deaths) Name() string { return "deaths" }

func (a *Deaths) KeyDimensions() []Dimension { return []Dimension{DimActor} }

func (a *Deaths) ValueFields() []ValueField {
	return []ValueField{ValCount, ValMin, ValMax}
}

func (a *Deaths) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *Deaths) Process(ev *model.Event) {
	if ev.Action != model.ActionDeath {
		return
	}
	a.table.Row(ev.Actor).Merge(millis(ev.Timestamp))
}

func (a *Deaths) Finish() *Table { return a.table }
