package stats

import (
	"testing"

	"github.com/raidflow/raidflow/internal/model"
)

func energize(ts float64, granter, recipient, spell string, power model.PowerType, amount int64) *model.Event {
	return &model.Event{
		Timestamp: ts,
		Action:    model.ActionEnergize,
		Actor:     granter,
		Target:    recipient,
		SpellName: spell,
		Power:     power,
		Amount:    amount,
	}
}

func TestPowerGainsRecipientCentric(t *testing.T) {
	a := NewPowerGains()
	a.Start()

	// Thalor grants Kaelen mana twice through the same spell: one table
	// entry keyed by the recipient, count 2, summed amount.
	a.Process(energize(1, "Thalor", "Kaelen", "Blessing of Wisdom", model.PowerMana, 33))
	a.Process(energize(11, "Thalor", "Kaelen", "Blessing of Wisdom", model.PowerMana, 33))

	table := a.Finish()
	if table.Len() != 1 {
		t.Fatalf("len = %d, want 1 merged entry", table.Len())
	}

	row, ok := table.Lookup("Kaelen", "Blessing of Wisdom", "Thalor")
	if !ok {
		t.Fatal("row not keyed recipient-first")
	}
	if row.Count != 2 || row.Amount != 66 {
		t.Errorf("count/amount = %d/%d, want 2/66", row.Count, row.Amount)
	}
	if row.Type != "mana" {
		t.Errorf("type = %q, want mana", row.Type)
	}
}

func TestAccumulatorCycleIdempotence(t *testing.T) {
	// Two separate start/finish cycles over the same window must yield
	// identical tables.
	window := []*model.Event{
		energize(1, "Thalor", "Kaelen", "Blessing of Wisdom", model.PowerMana, 33),
		{Timestamp: 2, Action: model.ActionSpellDamage, Actor: "Kaelen", Target: "Gorefiend",
			SpellName: "Fireball", School: "fire", Amount: 400},
		{Timestamp: 3, Action: model.ActionSpellDamage, Actor: "Kaelen", Target: "Gorefiend",
			SpellName: "Fireball", School: "fire", Amount: 350},
	}

	run := func(a Accumulator) *Table {
		a.Start()
		for _, ev := range window {
			a.Process(ev)
		}
		return a.Finish()
	}

	a := NewDamageDone()
	first := run(a)
	second := run(a)

	if first.Len() != second.Len() {
		t.Fatalf("cycle lengths differ: %d vs %d", first.Len(), second.Len())
	}
	r1, _ := first.Lookup("Kaelen", "Gorefiend", "Fireball")
	r2, _ := second.Lookup("Kaelen", "Gorefiend", "Fireball")
	if r1 == nil || r2 == nil {
		t.Fatal("missing row after a cycle")
	}
	if r1.Count != r2.Count || r1.Amount != r2.Amount || r1.Min != r2.Min || r1.Max != r2.Max {
		t.Errorf("cycles diverge: %+v vs %+v", r1, r2)
	}
	if r2.Count != 2 || r2.Amount != 750 || r2.Min != 350 || r2.Max != 400 {
		t.Errorf("row = %+v", r2)
	}
}

func TestOutOfInterestEventsIgnored(t *testing.T) {
	heal := &model.Event{Action: model.ActionHeal, Actor: "Thalor", Target: "Bront",
		SpellName: "Heal", Amount: 500}

	for _, a := range []Accumulator{NewDamageDone(), NewPowerGains(), NewDeaths(), NewInterrupts()} {
		a.Start()
		a.Process(heal)
		if got := a.Finish().Len(); got != 0 {
			t.Errorf("%s folded a heal: %d rows", a.Name(), got)
		}
	}
}

func TestHealingEffectiveAmount(t *testing.T) {
	a := NewHealingDone()
	a.Start()

	a.Process(&model.Event{Action: model.ActionHeal, Actor: "Thalor", Target: "Bront",
		SpellName: "Holy Light", Amount: 1000, Overkill: 300})

	row, ok := a.Finish().Lookup("Thalor", "Bront", "Holy Light")
	if !ok {
		t.Fatal("row missing")
	}
	if row.Amount != 700 {
		t.Errorf("effective healing = %d, want 700", row.Amount)
	}
}

func TestAuraUptime(t *testing.T) {
	a := NewAuraUptime()
	a.Start()

	apply := &model.Event{Timestamp: 10, Action: model.ActionAuraApplied,
		Actor: "Liria", Target: "Kaelen", SpellName: "Mark of the Wild"}
	remove := &model.Event{Timestamp: 40, Action: model.ActionAuraRemoved,
		Actor: "Liria", Target: "Kaelen", SpellName: "Mark of the Wild"}
	a.Process(apply)
	a.Process(remove)

	row, ok := a.Finish().Lookup("Kaelen", "Mark of the Wild")
	if !ok {
		t.Fatal("row missing")
	}
	if row.Count != 1 || row.Amount != 30000 {
		t.Errorf("count/uptime = %d/%dms, want 1/30000ms", row.Count, row.Amount)
	}
}

func TestAuraOpenAtWindowEnd(t *testing.T) {
	a := NewAuraUptime()
	a.Start()

	a.Process(&model.Event{Timestamp: 10, Action: model.ActionAuraApplied,
		Actor: "Liria", Target: "Kaelen", SpellName: "Mark of the Wild"})
	// Window keeps running without a removal.
	a.Process(&model.Event{Timestamp: 55, Action: model.ActionSwingDamage,
		Actor: "Kaelen", Target: "Gorefiend", School: "physical", Amount: 10})

	row, ok := a.Finish().Lookup("Kaelen", "Mark of the Wild")
	if !ok {
		t.Fatal("row missing")
	}
	if row.Amount != 45000 {
		t.Errorf("uptime = %dms, want clamp to window end 45000ms", row.Amount)
	}
}

func TestActivityGapCap(t *testing.T) {
	a := NewActivity()
	a.Start()

	swing := func(ts float64) *model.Event {
		return &model.Event{Timestamp: ts, Action: model.ActionSwingDamage,
			Actor: "Bront", Target: "Gorefiend", School: "physical", Amount: 50}
	}
	a.Process(swing(0))
	a.Process(swing(2))  // 2s credited
	a.Process(swing(60)) // long silence, capped at 5s

	row, ok := a.Finish().Lookup("Bront")
	if !ok {
		t.Fatal("row missing")
	}
	if row.Count != 3 {
		t.Errorf("count = %d, want 3", row.Count)
	}
	if row.Amount != 7000 {
		t.Errorf("active = %dms, want 7000ms", row.Amount)
	}
}

func TestDeathsTimestamps(t *testing.T) {
	a := NewDeaths()
	a.Start()

	a.Process(&model.Event{Timestamp: 12.5, Action: model.ActionDeath, Actor: "Kaelen"})
	a.Process(&model.Event{Timestamp: 80, Action: model.ActionDeath, Actor: "Kaelen"})

	row, ok := a.Finish().Lookup("Kaelen")
	if !ok {
		t.Fatal("row missing")
	}
	if row.Count != 2 || row.Min != 12500 || row.Max != 80000 {
		t.Errorf("row = %+v", row)
	}
}

func TestRegistryShapes(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Registry() {
		if a.Name() == "" {
			t.Fatal("unnamed accumulator")
		}
		if seen[a.Name()] {
			t.Fatalf("duplicate accumulator %q", a.Name())
		}
		seen[a.Name()] = true

		if len(a.KeyDimensions()) == 0 || len(a.ValueFields()) == 0 {
			t.Errorf("%s declares an empty shape", a.Name())
		}

		a.Start()
		table := a.Finish()
		if table == nil || table.Len() != 0 {
			t.Errorf("%s does not start empty", a.Name())
		}
		if table.Name() != a.Name() {
			t.Errorf("table name %q != accumulator %q", table.Name(), a.Name())
		}
	}
	if len(seen) != 12 {
		t.Errorf("registry has %d kinds, want 12", len(seen))
	}
}

func TestTableRowsDeterministicOrder(t *testing.T) {
	table := NewTable("t", []Dimension{DimActor}, []ValueField{ValCount})
	for _, id := range []string{"c", "a", "b"} {
		table.Row(id).Count++
	}

	rows := table.Rows()
	if rows[0].Key[0] != "a" || rows[1].Key[0] != "b" || rows[2].Key[0] != "c" {
		t.Errorf("rows not key-ordered: %v %v %v", rows[0].Key, rows[1].Key, rows[2].Key)
	}
}
