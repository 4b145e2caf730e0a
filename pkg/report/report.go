// Package report renders finished encounter statistics to disk. Consumers
// here plug into the pipeline orchestrator and receive one call per
// qualifying encounter.
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/raidflow/raidflow/internal/model"
	"github.com/raidflow/raidflow/pkg/stats"
)

// encounterDirName derives a filesystem-safe name from the encounter key.
// "Gorefiend the Render@10.000" becomes "Gorefiend_the_Render@10.000".
func encounterDirName(enc *model.Encounter) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '@':
			return r
		default:
			return '_'
		}
	}, enc.Key())
}

// columnHeader returns the CSV/XLSX header for one table: key dimensions
// followed by value fields, in declared order.
func columnHeader(t *stats.Table) []string {
	header := make([]string, 0, len(t.KeyDimensions())+len(t.ValueFields()))
	for _, d := range t.KeyDimensions() {
		header = append(header, string(d))
	}
	for _, v := range t.ValueFields() {
		header = append(header, string(v))
	}
	return header
}

// rowRecord flattens one row into the same column order as columnHeader.
func rowRecord(t *stats.Table, row *stats.Row) []string {
	record := make([]string, 0, len(row.Key)+len(t.ValueFields()))
	record = append(record, row.Key...)
	for _, v := range t.ValueFields() {
		switch v {
		case stats.ValCount:
			record = append(record, strconv.FormatInt(row.Count, 10))
		case stats.ValAmount:
			record = append(record, strconv.FormatInt(row.Amount, 10))
		case stats.ValMin:
			record = append(record, strconv.FormatInt(row.Min, 10))
		case stats.ValMax:
			record = append(record, strconv.FormatInt(row.Max, 10))
		case stats.ValType:
			record = append(record, row.Type)
		}
	}
	return record
}

// encounterMeta is the YAML shape of the per-encounter metadata file.
type encounterMeta struct {
	Boss         string   `yaml:"boss"`
	Outcome      string   `yaml:"outcome"`
	StartTime    float64  `yaml:"start_time"`
	EndTime      float64  `yaml:"end_time"`
	Duration     float64  `yaml:"duration_seconds"`
	Participants []string `yaml:"participants"`
}

func newEncounterMeta(enc *model.Encounter) encounterMeta {
	participants := make([]string, 0, len(enc.Participants))
	for id := range enc.Participants {
		participants = append(participants, id)
	}
	sort.Strings(participants)

	return encounterMeta{
		Boss:         enc.BossName,
		Outcome:      enc.Outcome.String(),
		StartTime:    enc.StartTime,
		EndTime:      enc.EndTime,
		Duration:     enc.Duration(),
		Participants: participants,
	}
}

// sortedActors returns the actor table in id order.
func sortedActors(actors model.ActorTable) []*model.Actor {
	out := make([]*model.Actor, 0, len(actors))
	for _, a := range actors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
