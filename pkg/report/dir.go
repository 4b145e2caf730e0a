package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/raidflow/raidflow/internal/model"
	"github.com/raidflow/raidflow/pkg/stats"
)

// DirConsumer writes one directory per encounter under Root:
//
//	<root>/<boss>@<start>/
//	    damage_done.csv
//	    healing_done.csv
//	    ...
//	    actors.csv
//	    encounter.yaml
//
// The directory is staged under a hidden temp name and renamed into place
// only once every file has been written, so a crash or write error never
// leaves a partial report behind.
type DirConsumer struct {
	Root string
}

// Name implements the pipeline consumer interface.
func (c *DirConsumer) Name() string { return "dir:" + c.Root }

// Consume writes the full report directory for one encounter.
func (c *DirConsumer) Consume(ctx context.Context, enc *model.Encounter, actors model.ActorTable, tables []*stats.Table) error {
	if err := os.MkdirAll(c.Root, 0755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	staging := filepath.Join(c.Root, ".staging-"+uuid.New().String()[:8])
	if err := os.Mkdir(staging, 0755); err != nil {
		return fmt.Errorf("failed to create staging dir: %w", err)
	}

	if err := c.write(ctx, staging, enc, actors, tables); err != nil {
		os.RemoveAll(staging)
		return err
	}

	final := filepath.Join(c.Root, encounterDirName(enc))
	if err := os.RemoveAll(final); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("failed to replace %s: %w", final, err)
	}
	if err := os.Rename(staging, final); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("failed to publish %s: %w", final, err)
	}
	return nil
}

func (c *DirConsumer) write(ctx context.Context, dir string, enc *model.Encounter, actors model.ActorTable, tables []*stats.Table) error {
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeTableCSV(filepath.Join(dir, table.Name()+".csv"), table); err != nil {
			return err
		}
	}
	if err := writeActorsCSV(filepath.Join(dir, "actors.csv"), actors); err != nil {
		return err
	}
	return writeEncounterYAML(filepath.Join(dir, "encounter.yaml"), enc)
}

func writeTableCSV(path string, table *stats.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(columnHeader(table)); err != nil {
		return err
	}
	for _, row := range table.Rows() {
		if err := cw.Write(rowRecord(table, row)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeActorsCSV(path string, actors model.ActorTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"actor", "class", "owner"}); err != nil {
		return err
	}
	for _, a := range sortedActors(actors) {
		if err := cw.Write([]string{a.ID, string(a.Class), a.OwnerID}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeEncounterYAML(path string, enc *model.Encounter) error {
	data, err := yaml.Marshal(newEncounterMeta(enc))
	if err != nil {
		return fmt.Errorf("failed to marshal encounter meta: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
