package tracer

// Differ remembers the last observed value of every scanned word and reports
// changes against it. The first observation of an address only seeds the
// snapshot: a region's first full scan establishes the baseline and must not
// flood the log with bogus changes.
type Differ struct {
	snapshot map[uint32]uint32
}

func NewDiffer() *Differ {
	return &Differ{
		snapshot: make(map[uint32]uint32),
	}
}

// Observe records value as the latest observation at addr. changed is true
// when a prior value existed and differs; prev is that prior value. The
// stored value is always overwritten so the next frame compares against this
// frame, never against stale data.
func (d *Differ) Observe(addr, value uint32) (prev uint32, changed bool) {
	prev, seen := d.snapshot[addr]
	d.snapshot[addr] = value
	if !seen {
		return value, false
	}
	return prev, prev != value
}

// Seen reports how many distinct addresses have been observed.
func (d *Differ) Seen() int {
	return len(d.snapshot)
}
