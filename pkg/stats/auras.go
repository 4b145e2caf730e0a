package stats

import "github.com/raidflow/raidflow/internal/model"

type openAura struct {
	target string
	spell  string
	start  float64
}

// AuraUptime tables buff/debuff uptime per bearer and aura. Count is the
// number of applications; amount is total uptime in milliseconds, with
// intervals still open at the end of the window closed at the window's
// last observed timestamp.
type AuraUptime struct {
	table    *Table
	open     map[string]openAura
	lastSeen float64
}

// NewAuraUptime creates the aura-uptime accumulator.
func NewAuraUptime() *AuraUptime { return &AuraUptime{} }

func (a *AuraUptime) Name() string { return "aura_uptime" }

func (a *AuraUptime) KeyDimensions() []Dimension {
	return []Dimension{DimTarget, DimSpell}
}

func (a *AuraUptime) ValueFields() []ValueField {
	return []ValueField{ValCount, ValAmount}
}

func (a *AuraUptime) Start() {
	a.table = NewTable(a.Name(), a.KeyDimensions(), a.ValueFields())
	a.open = make(map[string]openAura)
	a.lastSeen = 0
}

func (a *AuraUptime) Process(ev *model.Event) {
	a.lastSeen = ev.Timestamp

	key := joinKey([]string{ev.Target, ev.SpellName})
	switch ev.Action {
	case model.ActionAuraApplied:
		row := a.table.Row(ev.Target, ev.SpellName)
		row.Count++
		if _, ok := a.open[key]; !ok {
			a.open[key] = openAura{target: ev.Target, spell: ev.SpellName, start: ev.Timestamp}
		}
	case model.ActionAuraRemoved:
		if aura, ok := a.open[key]; ok {
			delete(a.open, key)
			a.table.Row(ev.Target, ev.SpellName).Amount += millis(ev.Timestamp - aura.start)
		}
	}
}

func (a *AuraUptime) Finish() *Table {
	// Close intervals the window never saw removed.
	for key, aura := range a.open {
		if a.lastSeen > aura.start {
			a.table.Row(aura.target, aura.spell).Amount += millis(a.lastSeen - aura.start)
		}
		delete(a.open, key)
	}
	return a.table
}
