package tracer

import "testing"

func TestDiffer_FirstObservationSeeds(t *testing.T) {
	d := NewDiffer()

	// first read at any address never reports a change, whatever the value:
	if _, changed := d.Observe(0x03000010, 0xDEADBEEF); changed {
		t.Error("first observation reported a change")
	}
	if actual, expected := d.Seen(), 1; actual != expected {
		t.Errorf("seen = %v, expected = %v", actual, expected)
	}
}

func TestDiffer_Observe(t *testing.T) {
	tests := []struct {
		name    string
		writes  []uint32
		changes int
	}{
		{name: "steady value", writes: []uint32{5, 5, 5, 5}, changes: 0},
		{name: "single change", writes: []uint32{0, 0, 7, 7}, changes: 1},
		{name: "change every frame", writes: []uint32{1, 2, 3, 4}, changes: 3},
		{name: "return to old value", writes: []uint32{1, 2, 1}, changes: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiffer()
			changes := 0
			for _, v := range tt.writes {
				if _, changed := d.Observe(0x02000000, v); changed {
					changes++
				}
			}
			if actual, expected := changes, tt.changes; actual != expected {
				t.Errorf("changes = %v, expected = %v", actual, expected)
			}
		})
	}
}

func TestDiffer_ComparesAgainstLatest(t *testing.T) {
	d := NewDiffer()
	d.Observe(0x02000000, 1)
	d.Observe(0x02000000, 2)

	// the stored value must be this frame's value even when unchanged, so a
	// later revert is detected against the latest observation:
	prev, changed := d.Observe(0x02000000, 2)
	if changed {
		t.Error("unchanged value reported a change")
	}
	prev, changed = d.Observe(0x02000000, 1)
	if !changed {
		t.Fatal("revert not reported as change")
	}
	if actual, expected := prev, uint32(2); actual != expected {
		t.Errorf("prev = %v, expected = %v", actual, expected)
	}
}
