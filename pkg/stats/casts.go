package stats

import "github.com/raidflow/raidflow/internal/model"

// CastUsage counts completed casts per actor and spell.
type CastUsage struct {
	table *Table
}

// NewCastUsage creates the cast-usage accumulator.
func NewCastUsage() *CastUsage { return &CastUsage{} }

func (a *CastUsage) Name() string { return "cast_usage" }

func (a *CastUsage) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimSpell}
}

func (a *CastUsage) ValueFields() []ValueField { return []ValueField{ValCount} }

func (a *CastUsage) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *CastUsage) Process(ev *model.Event) {
	if ev.Action != model.ActionCastSuccess {
		return
	}
	a.table.Row(ev.Actor, ev.SpellName).Count++
}

func (a *CastUsage) Finish() *Table { return a.table }
