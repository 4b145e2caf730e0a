package stats

import (
	"sort"
	"strings"
)

// Dimension names a key column of a statistic table.
type Dimension string

const (
	DimActor       Dimension = "actor"
	DimTarget      Dimension = "target"
	DimSpell       Dimension = "spell"
	DimAbilityType Dimension = "ability_type"
)

// ValueField names a value column of a statistic table.
type ValueField string

const (
	ValCount  ValueField = "count"
	ValAmount ValueField = "amount"
	ValMin    ValueField = "min"
	ValMax    ValueField = "max"
	ValType   ValueField = "type"
)

// Row is one entry of a table: a key tuple plus merged value fields. Which
// value fields are meaningful is declared by the owning accumulator.
type Row struct {
	Key []string

	Count  int64
	Amount int64
	Min    int64
	Max    int64
	Type   string
}

// Merge folds one observation into the row.
func (r *Row) Merge(amount int64) {
	r.Count++
	r.Amount += amount
	if r.Count == 1 || amount < r.Min {
		r.Min = amount
	}
	if amount > r.Max {
		r.Max = amount
	}
}

// Table is a sparse multi-dimensional statistic table. Entries are created
// on first write for a key tuple and merged on subsequent writes.
type Table struct {
	name string
	dims []Dimension
	vals []ValueField
	rows map[string]*Row
}

// NewTable creates an empty table with the given shape.
func NewTable(name string, dims []Dimension, vals []ValueField) *Table {
	return &Table{
		name: name,
		dims: dims,
		vals: vals,
		rows: make(map[string]*Row),
	}
}

// Name returns the owning accumulator's name.
func (t *Table) Name() string { return t.name }

// KeyDimensions returns the declared key tuple.
func (t *Table) KeyDimensions() []Dimension { return t.dims }

// ValueFields returns the declared value tuple.
func (t *Table) ValueFields() []ValueField { return t.vals }

// Row returns the entry for the key tuple, creating it on first write.
func (t *Table) Row(key ...string) *Row {
	joined := joinKey(key)
	r, ok := t.rows[joined]
	if !ok {
		r = &Row{Key: key}
		t.rows[joined] = r
	}
	return r
}

// Lookup returns the entry for the key tuple without creating it.
func (t *Table) Lookup(key ...string) (*Row, bool) {
	r, ok := t.rows[joinKey(key)]
	return r, ok
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns all entries ordered by key, for deterministic rendering.
func (t *Table) Rows() []*Row {
	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Row, len(keys))
	for i, k := range keys {
		out[i] = t.rows[k]
	}
	return out
}

// joinKey flattens a key tuple. The unit separator cannot occur in decoded
// identifiers, so the join is unambiguous.
func joinKey(key []string) string { return strings.Join(key, "\x1f") }
