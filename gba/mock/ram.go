package mock

// RAM is a flat byte array mapped at a fixed bus offset.
type RAM struct {
	data   []byte
	offset uint32
}

func NewRAM(data []byte, offset uint32) *RAM {
	return &RAM{data, offset}
}

func (m *RAM) Contains(address uint32) bool {
	return address >= m.offset && address-m.offset < uint32(len(m.data))
}

func (m *RAM) Read(address uint32) byte {
	return m.data[address-m.offset]
}

func (m *RAM) Write(address uint32, value byte) {
	m.data[address-m.offset] = value
}

func (m *RAM) Size() uint32 {
	return uint32(len(m.data))
}

func (m *RAM) Clear() {
	for i := range m.data {
		m.data[i] = 0
	}
}
