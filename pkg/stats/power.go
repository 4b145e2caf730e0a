package stats

import "github.com/raidflow/raidflow/internal/model"

// PowerGains tables resource gains keyed recipient-first: the key is
// (recipient, spell, granter) even though the event names the granter as
// actor, so the table answers "how much power did actor X gain". Type is
// the observed power pool, last write wins within a key.
type PowerGains struct {
	table *Table
}

// NewPowerGains creates the power-gains accumulator.
func NewPowerGains() *PowerGains { return &PowerGains{} }

func (a *PowerGains) Name() string { return "power_gains" }

func (a *PowerGains) KeyDimensions() []Dimension {
	return []Dimension{DimActor, DimSpell, DimTarget}
}

func (a *PowerGains) ValueFields() []ValueField {
	return []ValueField{ValCount, ValAmount, ValType}
}

func (a *PowerGains) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
}

func (a *PowerGains) Process(ev *model.Event) {
	if ev.Action != model.ActionEnergize {
		return
	}
	row := a.table.Row(ev.Target, ev.SpellName, ev.Actor)
	row.Count++
	row.Amount += ev.Amount
	row.Type = ev.Power.String()
}

func (a *PowerGains) Finish() *Table { return a.table }
