package stats

import "github.com/raidflow/raidflow/internal/model"

// ExtraAttacks tables extra-attack procs per actor and proccing ability.
// Count is proc occurrences; amount is attacks granted.
type ExtraAttacks struct {
	table *Table
}

// NewExtraAttacks creates the extra-attacks accumulator.
func NewExtraAttacks() *ExtraAttacks { return &ExtraAttacks{} }

func (a *ExtraAttacks) Name() string { return "extra_attacks" }

func (a *ExtraAttacks) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimSpell}
}

func (a *ExtraAttacks) ValueFields() []ValueField {
	return []ValueField{ValCount, ValAmount}
}

func (a *ExtraAttacks) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *ExtraAttacks) Process(ev *model.Event) {
	if ev.Action != model.ActionExtraAttacks {
		return
	}
	row := a.table.Row(ev.Actor, ev.SpellName)
	row.Count++
	row.Amount += ev.Amount
}

func (a *ExtraAttacks) Finish() *Table { return a.table }
