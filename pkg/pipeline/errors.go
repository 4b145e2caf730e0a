package pipeline

import (
	"errors"

	"github.com/raidflow/raidflow/pkg/decode"
)

// ErrNoSource is returned when Run is called without a source.
var ErrNoSource = errors.New("pipeline: no source configured")

// SkipStats counts decode outcomes over one pass. Decode failures are
// never fatal; they are tallied here so callers can report a skip ratio.
type SkipStats struct {
	Lines   int64 // raw lines scanned
	Decoded int64 // lines that produced an event

	Blank         int64
	Comments      int64
	UnknownAction int64
	Malformed     int64 // bad shape, timestamp or numeric field
}

// Skipped returns the number of lines that produced no event.
func (s *SkipStats) Skipped() int64 { return s.Lines - s.Decoded }

// RecognizedRatio returns the fraction of non-blank, non-comment lines
// that decoded.
func (s *SkipStats) RecognizedRatio() float64 {
	considered := s.Lines - s.Blank - s.Comments
	if considered == 0 {
		return 1
	}
	return float64(s.Decoded) / float64(considered)
}

// record tallies one decode error by its sentinel.
func (s *SkipStats) record(err error) {
	switch {
	case errors.Is(err, decode.ErrEmptyLine):
		s.Blank++
	case errors.Is(err, decode.ErrComment):
		s.Comments++
	case errors.Is(err, decode.ErrUnknownAction):
		s.UnknownAction++
	default:
		s.Malformed++
	}
}
