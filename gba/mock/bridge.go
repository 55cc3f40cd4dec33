package mock

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/dtand/rommer-gba/gba"
)

// Bridge is an in-process fake machine: flat RAM behind each catalog region,
// scriptable input and PC, synthetic screenshots. It backs the engine tests
// and serves as a no-hardware dev target.
type Bridge struct {
	rams []*RAM

	keys gba.KeySet
	pc   uint32

	// count of screenshots taken, used to vary the synthetic image
	shots int

	closed bool
}

func NewBridge() *Bridge {
	regions := gba.Regions()
	rams := make([]*RAM, len(regions))
	for i, r := range regions {
		rams[i] = NewRAM(make([]byte, r.Size), r.Base)
	}
	return &Bridge{rams: rams}
}

// Poke writes a byte into the fake machine's memory by bus address.
func (b *Bridge) Poke(busAddr uint32, value byte) {
	if ram := b.ramAt(busAddr); ram != nil {
		ram.Write(busAddr, value)
	}
}

// PokeWord writes a 32-bit little-endian word by bus address.
func (b *Bridge) PokeWord(busAddr uint32, value uint32) {
	b.Poke(busAddr, byte(value))
	b.Poke(busAddr+1, byte(value>>8))
	b.Poke(busAddr+2, byte(value>>16))
	b.Poke(busAddr+3, byte(value>>24))
}

// SetKeys scripts the currently held buttons.
func (b *Bridge) SetKeys(keys gba.KeySet) { b.keys = keys }

// SetPC scripts the reported program counter.
func (b *Bridge) SetPC(pc uint32) { b.pc = pc }

func (b *Bridge) ReadBlock(busAddr uint32, size uint32) ([]byte, error) {
	if b.closed {
		return nil, fmt.Errorf("mock: bridge is closed")
	}

	if size == 0 {
		return []byte{}, nil
	}

	// the whole span must fall inside one region:
	ram := b.ramAt(busAddr)
	if ram == nil || !ram.Contains(busAddr+size-1) {
		return nil, fmt.Errorf("mock: no memory mapped at $%08x (%d bytes)", busAddr, size)
	}

	block := make([]byte, size)
	for i := uint32(0); i < size; i++ {
		block[i] = ram.Read(busAddr + i)
	}
	return block, nil
}

func (b *Bridge) PressedKeys() (gba.KeySet, error) {
	if b.closed {
		return 0, fmt.Errorf("mock: bridge is closed")
	}
	return b.keys, nil
}

func (b *Bridge) PC() (uint32, error) {
	if b.closed {
		return 0, fmt.Errorf("mock: bridge is closed")
	}
	return b.pc, nil
}

// CaptureScreenshot writes a small synthetic frame. The fill color varies
// per capture so successive snapshots are distinguishable by eye.
func (b *Bridge) CaptureScreenshot(path string) error {
	if b.closed {
		return fmt.Errorf("mock: bridge is closed")
	}

	b.shots++

	img := image.NewRGBA(image.Rect(0, 0, 240, 160))
	fill := color.RGBA{
		R: uint8(b.shots * 37),
		G: uint8(b.shots * 73),
		B: uint8(b.shots * 151),
		A: 0xFF,
	}
	for y := 0; y < 160; y++ {
		for x := 0; x < 240; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = png.Encode(f, img)
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	return err
}

func (b *Bridge) Close() error {
	b.closed = true
	return nil
}

func (b *Bridge) ramAt(busAddr uint32) *RAM {
	for _, ram := range b.rams {
		if ram.Contains(busAddr) {
			return ram
		}
	}
	return nil
}
