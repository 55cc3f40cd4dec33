package tracer

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

// DumpChangeHistogram prints a histogram of per-address lifetime change
// counts. A quick read, at shutdown, on how hot the observed regions were:
// a long tail of low counts with a few massive outliers usually means the
// outliers are frame counters and timers.
func (t *Tracer) DumpChangeHistogram(w io.Writer) error {
	counts := t.freq.LifetimeCounts()
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "no changes observed")
		return err
	}

	values := make([]float64, 0, len(counts))
	for _, n := range counts {
		values = append(values, float64(n))
	}

	fmt.Fprintf(w, "change counts across %d addresses:\n", len(values))
	hist := histogram.Hist(10, values)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
