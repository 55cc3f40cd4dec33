package tracer

import "github.com/dtand/rommer-gba/gba"

// chunkDivisor splits each region into this many equal chunks. One chunk per
// region is scanned per frame, which bounds the per-frame work well inside
// the host's frame budget.
const chunkDivisor = 5

// Cursor is the scanning position within one region. It advances one chunk
// per frame and wraps to zero after covering the whole region, which marks
// one full-region scan.
type Cursor struct {
	Region gba.Region
	Offset uint32
}

// ChunkSize is the nominal span of one chunk. The divisor result is rounded
// down to a word multiple so chunk boundaries never split a 32-bit word.
func (c *Cursor) ChunkSize() uint32 {
	return (c.Region.Size / chunkDivisor) &^ 3
}

// ChunkBounds returns the inclusive [start, end] span of the chunk about to
// be scanned and its chunk index. The final chunk is clamped to the region
// end to absorb any remainder bytes.
func (c *Cursor) ChunkBounds() (start, end, chunk uint32) {
	size := c.ChunkSize()
	start = c.Offset
	end = start + size - 1
	if end > c.Region.Size-1 {
		end = c.Region.Size - 1
	}
	chunk = start / size
	return
}

// Advance moves the cursor past the current chunk. wrapped is true when the
// advance completed a full pass over the region.
func (c *Cursor) Advance() (wrapped bool) {
	_, end, _ := c.ChunkBounds()
	c.Offset = end + 1
	if c.Offset >= c.Region.Size {
		c.Offset = 0
		wrapped = true
	}
	return
}

// ChunksPerCycle is the number of frames one full pass over the region
// takes. Every Region in the catalog yields the same value, which is what
// keeps the regions' wrap events simultaneous.
func (c *Cursor) ChunksPerCycle() uint32 {
	size := c.ChunkSize()
	return (c.Region.Size + size - 1) / size
}
