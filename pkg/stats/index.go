package stats

import "github.com/raidflow/raidflow/internal/model"

// SpellIndex cross-references which abilities each actor used inside the
// window, regardless of outcome kind. Type carries the ability's action
// kind for downstream grouping.
type SpellIndex struct {
	table *Table
}

// NewSpellIndex creates the cross-reference accumulator.
func NewSpellIndex() *SpellIndex { return &SpellIndex{} }

func (a *SpellIndex) Name() string { return "spell_index" }

func (a *SpellIndex) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimSpell, DimAbilityType}
}

func (a *SpellIndex) ValueFields() []ValueField { return []ValueField{ValCount} }

func (a *SpellIndex) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *SpellIndex) Process(ev *model.Event) {
	if ev.SpellName == "" || ev.Actor == "" {
		return
	}
	a.table.Row(ev.Actor, ev.SpellName, ev.Action.String()).Count++
}

func (a *SpellIndex) Finish() *Table { return a.table }
