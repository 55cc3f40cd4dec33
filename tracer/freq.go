package tracer

// FreqWindow is the sliding-window width, in frames, for the per-address
// change frequency. A windowed count distinguishes addresses that are hot
// right now (timers, counters firing every frame) from addresses that change
// rarely, and caps per-address memory at O(window) where a lifetime record
// would grow without bound.
const FreqWindow = 100

type FreqEstimator struct {
	window uint64

	// frames per address, non-decreasing, pruned to the window on access
	frames map[uint32][]uint64

	// all-time change counts, kept for diagnostics only; never persisted
	// in event records
	lifetime map[uint32]uint64
}

func NewFreqEstimator() *FreqEstimator {
	return &FreqEstimator{
		window:   FreqWindow,
		frames:   make(map[uint32][]uint64),
		lifetime: make(map[uint32]uint64),
	}
}

// Observe records a change at addr on the given frame and returns the number
// of changes within the last window frames, this one included. f.e. an
// address changed on every one of frames 1..150 reports 100 at frame 150
// (frames 51..150).
func (f *FreqEstimator) Observe(addr uint32, frame uint64) uint32 {
	list := append(f.frames[addr], frame)

	cut := 0
	if frame > f.window {
		oldest := frame - f.window
		for cut < len(list) && list[cut] <= oldest {
			cut++
		}
	}
	list = list[cut:]
	f.frames[addr] = list

	f.lifetime[addr]++

	return uint32(len(list))
}

// LifetimeCounts returns the all-time per-address change counts.
func (f *FreqEstimator) LifetimeCounts() map[uint32]uint64 {
	return f.lifetime
}
