// Package stats aggregates one encounter's event window into statistic
// tables.
//
// Each accumulator owns exactly one table shape and a start/process/finish
// lifecycle: Start resets state, Process folds one event (a no-op for
// actions outside the accumulator's interest set), Finish exposes the
// finalized table. One instance's state is valid for exactly one encounter
// window; the orchestrator resets it before each replay, so state never
// leaks between encounters. Accumulators are mutually independent and may
// run in parallel over the same window.
package stats

import "github.com/raidflow/raidflow/internal/model"

// Accumulator is one statistic-table builder.
type Accumulator interface {
	// Name identifies the table (e.g. "damage_done").
	Name() string

	// KeyDimensions declares the table's key tuple.
	KeyDimensions() []Dimension

	// ValueFields declares the table's value tuple.
	ValueFields() []ValueField

	// Start resets all state for a new encounter window.
	Start()

	// Process folds one event into the table.
	Process(ev *model.Event)

	// Finish finalizes and returns the read-only table.
	Finish() *Table
}

// Registry returns a fresh instance of every accumulator kind. The set is
// fixed at compile time; there is no runtime registration.
func Registry() []Accumulator {
	return []Accumulator{
		NewActivity(),
		NewDamageDone(),
		NewDamageTaken(),
		NewDeaths(),
		NewHealingDone(),
		NewAuraUptime(),
		NewCastUsage(),
		NewExtraAttacks(),
		NewInterrupts(),
		NewPowerGains(),
		NewPresence(),
		NewSpellIndex(),
	}
}

// millis converts an event timestamp to integral milliseconds so it can be
// carried in a table's min/max fields.
func millis(ts float64) int64 { return int64(ts * 1000) }
