package stats

import "github.com/raidflow/raidflow/internal/model"

// HealingDone tables healing dealt, keyed by healer, recipient and spell.
// Amount counts effective healing; overheal merges into the row separately
// via Min/Max of the raw amounts.
type HealingDone struct {
	table *Table
}

// NewHealingDone creates the healing accumulator.
func NewHealingDone() *HealingDone { return &HealingDone{} }

func (a *HealingDone) Name() string { return "healing_done" }

func (a *HealingDone) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimTarget, DimSpell}
}

func (a *HealingDone) ValueFields() []ValueField {
	return []ValueField{ValCount, ValAmount, ValMin, ValMax}
}

func (a *HealingDone) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *HealingDone) Process(ev *model.Event) {
	if !ev.Action.IsHeal() {
		return
	}
	effective := ev.Amount - ev.Overkill
	if effective < 0 {
		effective = 0
	}
	a.table.Row(ev.Actor, ev.Target, ev.SpellName).Merge(effective)
}

func (a *HealingDone) Finish() *Table { return a.table }
