package gba

import "strings"

// Key is one of the ten GBA buttons. Bit positions follow the hardware
// KEYINPUT register layout.
type Key uint16

const (
	KeyA Key = 1 << iota
	KeyB
	KeySelect
	KeyStart
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyR
	KeyL
)

// keyOrder is the deterministic formatting order for combos (KEYINPUT bit
// order, low bit first).
var keyOrder = []Key{
	KeyA, KeyB, KeySelect, KeyStart,
	KeyRight, KeyLeft, KeyUp, KeyDown,
	KeyR, KeyL,
}

var keyNames = map[Key]string{
	KeyA:      "A",
	KeyB:      "B",
	KeySelect: "Select",
	KeyStart:  "Start",
	KeyRight:  "Right",
	KeyLeft:   "Left",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyR:      "R",
	KeyL:      "L",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyByName maps a button name back to its Key. Lookup is case-insensitive.
// ok is false for names outside the allow-list.
func KeyByName(name string) (k Key, ok bool) {
	for key, n := range keyNames {
		if strings.EqualFold(n, name) {
			return key, true
		}
	}
	return 0, false
}

// KeySet is a bitmask of held buttons.
type KeySet uint16

func (s KeySet) Has(k Key) bool { return s&KeySet(k) != 0 }

func (s *KeySet) Add(k Key) { *s |= KeySet(k) }

func (s KeySet) IsEmpty() bool { return s == 0 }

// Combo formats the held buttons in KEYINPUT bit order joined with "+",
// e.g. "A+Up". The empty set formats as the empty string.
func (s KeySet) Combo() string {
	if s == 0 {
		return ""
	}

	var sb strings.Builder
	for _, k := range keyOrder {
		if !s.Has(k) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(keyNames[k])
	}
	return sb.String()
}
