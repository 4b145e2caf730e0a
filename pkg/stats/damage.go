package stats

import "github.com/raidflow/raidflow/internal/model"

// spellKey labels swings and spells uniformly in spell-keyed tables.
func spellKey(ev *model.Event) string {
	if ev.Action == model.ActionSwingDamage {
		return "(melee)"
	}
	return ev.SpellName
}

// DamageDone tables damage dealt, keyed by dealer, victim and ability.
type DamageDone struct {
	table *Table
}

// NewDamageDone creates the damage-done accumulator.
func NewDamageDone() *DamageDone { return &DamageDone{} }

func (a *DamageDone) Name() string { return "damage_done" }

func (a *DamageDone) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimTarget, DimSpell}
}

func (a *DamageDone) ValueFields() []ValueField {
	return []ValueField{ValCount, ValAmount, ValMin, ValMax, ValType}
}

func (a *DamageDone) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *DamageDone) Process(ev *model.Event) {
	if !ev.Action.IsDamage() {
		return
	}
	row := a.table.Row(ev.Actor, ev.Target, spellKey(ev))
	row.Merge(ev.Amount)
	row.Type = ev.School
}

func (a *DamageDone) Finish() *Table { return a.table }

// DamageTaken tables the same damage events from the victim's side, keyed
// recipient-first so the table answers "how much did actor X take".
type DamageTaken struct {
	table *Table
}

// NewDamageTaken creates the damage-taken accumulator.
func NewDamageTaken() *DamageTaken { return &DamageTaken{} }

func (a *DamageTaken) Name() string { return "damage_taken" }

func (a *DamageTaken) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimSpell, DimTarget}
}

func (a *DamageTaken) ValueFields() []ValueField {
	return []ValueField{ValCount, ValAmount, ValMin, ValMax, ValType}
}

func (a *DamageTaken) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *DamageTaken) Process(ev *model.Event) {
	if !ev.Action.IsDamage() || ev.Target == "" {
		return
	}
	row := a.table.Row(ev.Target, spellKey(ev), ev.Actor)
	row.Merge(ev.Amount)
	row.Type = ev.School
}

func (a *DamageTaken) Finish() *Table { return a.table }
