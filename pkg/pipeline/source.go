package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/raidflow/raidflow/pkg/util"
)

// Source yields raw log lines in order. Every implementation here is
// replayable: Scan may be called any number of times and must yield the
// same lines in the same order each time, which is what lets the
// orchestrator re-scan per encounter instead of holding the decoded
// stream in memory.
type Source interface {
	// Name identifies the source for error messages.
	Name() string

	// Scan calls fn once per line in order. It stops early if fn or the
	// context reports an error.
	Scan(ctx context.Context, fn func(line string) error) error
}

// FileSource reads lines from a local file, transparently decompressing
// gzip input.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s *FileSource) Name() string { return s.Path }

// Scan implements Source. Each call reopens the file, so scans are
// independent and identical.
func (s *FileSource) Scan(ctx context.Context, fn func(line string) error) error {
	r, cleanup, err := util.OpenFile(s.Path)
	if err != nil {
		return fmt.Errorf("open source %q: %w", s.Path, err)
	}
	defer cleanup()
	return scanLines(ctx, r, fn)
}

// MemorySource serves an in-memory line sequence; used by tests and for
// piped input captured up front.
type MemorySource struct {
	Lines []string
}

// Name implements Source.
func (s *MemorySource) Name() string { return "memory" }

// Scan implements Source.
func (s *MemorySource) Scan(ctx context.Context, fn func(line string) error) error {
	for _, line := range s.Lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return nil
}

func scanLines(ctx context.Context, r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
