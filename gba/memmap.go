package gba

// Fixed memory regions of the machine observed by the tracer.
// 02000000-0203FFFF = EWRAM (on-board work RAM, 256 KiB)
// 03000000-03007FFF = IWRAM (on-chip work RAM, 32 KiB)
const (
	EWRAMBase uint32 = 0x02000000
	EWRAMSize uint32 = 0x40000

	IWRAMBase uint32 = 0x03000000
	IWRAMSize uint32 = 0x8000
)

// Region describes one observable memory region. Immutable.
type Region struct {
	Name string
	Base uint32
	Size uint32
}

// Contains reports whether the absolute bus address falls inside the region.
func (r Region) Contains(busAddr uint32) bool {
	return busAddr >= r.Base && busAddr < r.Base+r.Size
}

// Regions returns the catalog of regions the tracer observes, in the order
// they are scanned each frame.
func Regions() []Region {
	return []Region{
		{Name: "iwram", Base: IWRAMBase, Size: IWRAMSize},
		{Name: "ewram", Base: EWRAMBase, Size: EWRAMSize},
	}
}
