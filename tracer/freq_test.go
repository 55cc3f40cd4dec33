package tracer

import "testing"

func TestFreqEstimator_WindowedCount(t *testing.T) {
	f := NewFreqEstimator()

	// an address that changes on every one of frames 1..150 reports the
	// window size at frame 150, not the lifetime count:
	var last uint32
	for frame := uint64(1); frame <= 150; frame++ {
		last = f.Observe(0x03000010, frame)
	}

	if actual, expected := last, uint32(FreqWindow); actual != expected {
		t.Errorf("freq at frame 150 = %v, expected = %v", actual, expected)
	}
	if actual, expected := f.LifetimeCounts()[0x03000010], uint64(150); actual != expected {
		t.Errorf("lifetime = %v, expected = %v", actual, expected)
	}
}

func TestFreqEstimator_Observe(t *testing.T) {
	tests := []struct {
		name   string
		frames []uint64
		freq   uint32
	}{
		{name: "first change", frames: []uint64{42}, freq: 1},
		{name: "all within window", frames: []uint64{1, 10, 50}, freq: 3},
		{name: "old change pruned", frames: []uint64{1, 102}, freq: 1},
		{name: "boundary frame kept", frames: []uint64{3, 102}, freq: 2},
		{name: "boundary frame dropped", frames: []uint64{2, 102}, freq: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := NewFreqEstimator()
			var last uint32
			for _, frame := range tt.frames {
				last = f.Observe(0x02000000, frame)
			}
			if actual, expected := last, tt.freq; actual != expected {
				t.Errorf("freq = %v, expected = %v", actual, expected)
			}
		})
	}
}

func TestFreqEstimator_IndependentAddresses(t *testing.T) {
	f := NewFreqEstimator()
	f.Observe(0x02000000, 1)
	f.Observe(0x02000000, 2)

	if actual, expected := f.Observe(0x02000004, 3), uint32(1); actual != expected {
		t.Errorf("freq for second address = %v, expected = %v", actual, expected)
	}
}
