package pipeline

import (
	"context"
	"fmt"

	"github.com/raidflow/raidflow/pkg/decode"
)

// CheckReport summarizes decoder coverage over one source: how many lines
// decoded at all, and how many decoded events the canonical renderer can
// reproduce.
type CheckReport struct {
	Skips     SkipStats
	Printable int64
}

// PrintableRatio returns the fraction of decoded events Render supports.
func (r *CheckReport) PrintableRatio() float64 {
	if r.Skips.Decoded == 0 {
		return 1
	}
	return float64(r.Printable) / float64(r.Skips.Decoded)
}

// Check measures recognized and printable coverage of the decoder over a
// source without running the rest of the pipeline.
func Check(ctx context.Context, dec *decode.Decoder, src Source) (*CheckReport, error) {
	report := &CheckReport{}

	err := src.Scan(ctx, func(line string) error {
		report.Skips.Lines++
		ev, err := dec.Decode(line)
		if err != nil {
			report.Skips.record(err)
			return nil
		}
		report.Skips.Decoded++
		if _, err := decode.Render(ev); err == nil {
			report.Printable++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", src.Name(), err)
	}
	return report, nil
}
