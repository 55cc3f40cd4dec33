package tracer

import (
	"testing"

	"github.com/dtand/rommer-gba/gba"
)

func TestCursor_ChunkCoverage(t *testing.T) {
	for _, region := range gba.Regions() {
		region := region
		t.Run(region.Name, func(t *testing.T) {
			cur := Cursor{Region: region}

			visited := make(map[uint32]int)
			cycles := cur.ChunksPerCycle()

			wraps := 0
			for i := uint32(0); i < cycles; i++ {
				start, end, _ := cur.ChunkBounds()

				if start%4 != 0 {
					t.Errorf("chunk start %d is not word aligned", start)
				}
				if end > region.Size-1 {
					t.Errorf("chunk end %d exceeds region end %d", end, region.Size-1)
				}

				for off := start; off+3 <= end; off += 4 {
					visited[off]++
				}

				if cur.Advance() {
					wraps++
				}
			}

			if actual, expected := wraps, 1; actual != expected {
				t.Errorf("wraps = %v, expected = %v", actual, expected)
			}
			if actual, expected := cur.Offset, uint32(0); actual != expected {
				t.Errorf("offset after cycle = %v, expected = %v", actual, expected)
			}

			// every word-aligned offset visited exactly once:
			for off := uint32(0); off+3 < region.Size; off += 4 {
				if n := visited[off]; n != 1 {
					t.Fatalf("offset %d visited %d times, expected 1", off, n)
				}
			}
			if actual, expected := len(visited), int(region.Size/4); actual != expected {
				t.Errorf("visited %v offsets, expected %v", actual, expected)
			}
		})
	}
}

func TestCursor_FinalChunkClamped(t *testing.T) {
	cur := Cursor{Region: gba.Region{Name: "iwram", Base: gba.IWRAMBase, Size: gba.IWRAMSize}}

	var lastEnd uint32
	for {
		_, end, _ := cur.ChunkBounds()
		lastEnd = end
		if cur.Advance() {
			break
		}
	}

	if actual, expected := lastEnd, gba.IWRAMSize-1; actual != expected {
		t.Errorf("final chunk end = %v, expected = %v", actual, expected)
	}
}

func TestCursor_LockStepCycles(t *testing.T) {
	// the frame-set synchronizer requires every region to wrap on the same
	// frame, which holds only if all regions take the same number of chunks
	// per cycle:
	regions := gba.Regions()
	first := Cursor{Region: regions[0]}
	for _, region := range regions[1:] {
		cur := Cursor{Region: region}
		if actual, expected := cur.ChunksPerCycle(), first.ChunksPerCycle(); actual != expected {
			t.Errorf("%s: chunks per cycle = %v, %s has %v", region.Name, actual, regions[0].Name, expected)
		}
	}
}
