// Package pipeline drives the decode -> classify -> segment -> aggregate
// stages over one combat log.
//
// The stream is decoded exactly once per pass and delivered to the
// classifier and segmenter in strict order; both are stateful and order
// sensitive. Each qualifying encounter's window is then replayed through
// every registered accumulator. Accumulators are mutually independent, so
// the replay fans them out in parallel and collects all tables before the
// window advances.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/raidflow/raidflow/internal/model"
	"github.com/raidflow/raidflow/pkg/classify"
	"github.com/raidflow/raidflow/pkg/decode"
	"github.com/raidflow/raidflow/pkg/segment"
	"github.com/raidflow/raidflow/pkg/stats"
)

// Consumer receives one qualifying encounter's output: the actor table
// restricted to its participants and the full set of finalized statistic
// tables. Consumers own persistence; a consumer error is fatal for the
// run and the consumer must have rolled back its partial output before
// returning it.
type Consumer interface {
	Name() string
	Consume(ctx context.Context, enc *model.Encounter, actors model.ActorTable, tables []*stats.Table) error
}

// Config holds one run's options.
type Config struct {
	// Layout selects the decoder's textual format.
	Layout decode.Layout

	// LoggerName replaces the first-person pronoun in V1 logs. Empty
	// leaves the pronoun as the actor id.
	LoggerName string

	// MinEncounterLength drops encounters shorter than this many
	// seconds; 0 disables the filter.
	MinEncounterLength float64

	// IncludeAttempts retains wipes; when false only kills are kept.
	IncludeAttempts bool

	// WipeTimeout is the segmenter's inactivity timeout in seconds;
	// 0 selects the segmenter default.
	WipeTimeout float64

	// Bosses extends the segmenter's boss registry.
	Bosses []string

	// Hints forces actor ids to classes, overriding inference.
	Hints map[string]model.ClassTag

	// Rescan trades CPU for memory: instead of retaining the decoded
	// stream, the source is re-scanned once per encounter. Decoding is
	// deterministic, so both modes produce identical windows.
	Rescan bool

	// OnProgress, when set, is called once per scanned line.
	OnProgress func(lines int64)
}

// Result is one completed run.
type Result struct {
	Actors     model.ActorTable
	Encounters []*model.Encounter // qualifying, ordered by start index

	// Tables maps Encounter.Key() to that encounter's statistic tables
	// in registry order.
	Tables map[string][]*stats.Table

	Skips SkipStats
}

// Orchestrator runs the pipeline.
type Orchestrator struct {
	cfg Config
	dec *decode.Decoder
}

// New creates an orchestrator. All stage state lives per Run call, so one
// orchestrator may serve sequential runs.
func New(cfg Config) *Orchestrator {
	if cfg.Layout == 0 {
		cfg.Layout = decode.LayoutV2
	}
	return &Orchestrator{
		cfg: cfg,
		dec: decode.New(cfg.Layout, cfg.LoggerName),
	}
}

// Run executes one full pass over the source and hands every qualifying
// encounter to each consumer. The only fatal errors are source I/O,
// consumer failures and cancellation; decode problems degrade to skips.
func (o *Orchestrator) Run(ctx context.Context, src Source, consumers ...Consumer) (*Result, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	tracer := otel.Tracer("raidflow/pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()

	res := &Result{Tables: make(map[string][]*stats.Table)}

	classifier := classify.New(o.cfg.Hints)
	segmenter := segment.New(segment.Config{
		WipeTimeout: o.cfg.WipeTimeout,
		Bosses:      o.cfg.Bosses,
	})

	// Pass 1: decode once, fan out to both stateful consumers in stream
	// order. The decoded stream is retained unless rescan mode is on.
	var events []*model.Event
	scanCtx, scanSpan := tracer.Start(ctx, "pipeline.scan")
	err := src.Scan(scanCtx, func(line string) error {
		res.Skips.Lines++
		if o.cfg.OnProgress != nil {
			o.cfg.OnProgress(res.Skips.Lines)
		}

		ev, err := o.dec.Decode(line)
		if err != nil {
			res.Skips.record(err)
			return nil
		}
		res.Skips.Decoded++

		classifier.Process(ev)
		segmenter.Process(ev)
		if !o.cfg.Rescan {
			events = append(events, ev)
		}
		return nil
	})
	scanSpan.End()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", src.Name(), err)
	}

	res.Actors = classifier.Finish()
	res.Encounters = o.filter(segmenter.Finish())
	span.SetAttributes(
		attribute.Int64("raidflow.lines", res.Skips.Lines),
		attribute.Int("raidflow.encounters", len(res.Encounters)),
	)

	registry := stats.Registry()
	for _, enc := range res.Encounters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var window []*model.Event
		if o.cfg.Rescan {
			window, err = o.rescanWindow(ctx, src, enc)
			if err != nil {
				return nil, err
			}
		} else {
			window = events[enc.StartIndex : enc.EndIndex+1]
		}

		encCtx, encSpan := tracer.Start(ctx, "pipeline.aggregate")
		encSpan.SetAttributes(attribute.String("raidflow.encounter", enc.Key()))
		tables, err := replay(encCtx, registry, window)
		encSpan.End()
		if err != nil {
			return nil, err
		}
		res.Tables[enc.Key()] = tables

		participants := res.Actors.Restrict(enc.Participants)
		for _, consumer := range consumers {
			if err := consumer.Consume(ctx, enc, participants, tables); err != nil {
				return nil, fmt.Errorf("consumer %s: encounter %s: %w",
					consumer.Name(), enc.Key(), err)
			}
		}
	}
	return res, nil
}

// replay feeds one window through every accumulator in parallel. Each
// accumulator iterates the shared immutable window independently; tables
// come back in registry order.
func replay(ctx context.Context, registry []stats.Accumulator, window []*model.Event) ([]*stats.Table, error) {
	tables := make([]*stats.Table, len(registry))

	g, ctx := errgroup.WithContext(ctx)
	for i, acc := range registry {
		i, acc := i, acc
		g.Go(func() error {
			acc.Start()
			for _, ev := range window {
				if err := ctx.Err(); err != nil {
					return err
				}
				acc.Process(ev)
			}
			tables[i] = acc.Finish()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// rescanWindow re-decodes the source and collects the events whose stream
// positions fall inside the encounter. Re-decoding a line always yields
// an event equal to the first decode, so the window matches pass 1.
func (o *Orchestrator) rescanWindow(ctx context.Context, src Source, enc *model.Encounter) ([]*model.Event, error) {
	window := make([]*model.Event, 0, enc.EndIndex-enc.StartIndex+1)
	index := -1

	err := src.Scan(ctx, func(line string) error {
		ev, err := o.dec.Decode(line)
		if err != nil {
			return nil
		}
		index++
		if index < enc.StartIndex {
			return nil
		}
		if index > enc.EndIndex {
			return errStopScan
		}
		window = append(window, ev)
		return nil
	})
	if err != nil && err != errStopScan {
		return nil, fmt.Errorf("rescan %s: %w", src.Name(), err)
	}
	return window, nil
}

// errStopScan terminates a rescan early once the window is collected.
var errStopScan = fmt.Errorf("pipeline: stop scan")

// filter applies the minimum-length and attempts policies and orders the
// survivors by stream position.
func (o *Orchestrator) filter(table model.EncounterTable) []*model.Encounter {
	out := make([]*model.Encounter, 0, len(table))
	for _, enc := range table {
		if enc.Duration() < o.cfg.MinEncounterLength {
			continue
		}
		if enc.Outcome != model.OutcomeKill && !o.cfg.IncludeAttempts {
			continue
		}
		out = append(out, enc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartIndex < out[j].StartIndex })
	return out
}
