package stats

import "github.com/raidflow/raidflow/internal/model"

// Interrupts counts interrupts per interrupter, victim and kick ability.
// Type records the most recently interrupted spell for the key.
type Interrupts struct {
	table *Table
}

// NewInterrupts creates the interrupts accumulator.
func NewInterrupts() *Interrupts { return &Interrupts{} }

func (a *Interrupts) Name() string { return "interrupts" }

func (a *Interrupts) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimTarget, DimSpell}
}

func (a *Interrupts) ValueFields() []ValueField {
	return []ValueField{ValCount, ValType}
}

func (a *Interrupts) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *Interrupts) Process(ev *model.Event) {
	if ev.Action != model.ActionInterrupt {
		return
	}
	row := a.table.Row(ev.Actor, ev.Target, ev.SpellName)
	row.Count++
	row.Type = ev.ExtraSpellName
}

func (a *Interrupts) Finish() *Table { return a.table }
