package tracer

import "strings"

const (
	// capacity of the input history ring
	historyCap = 20

	// number of history entries included in an event's last-keys summary
	summaryLen = 5
)

// NoInput is the sentinel recorded when no relevant buttons are held or no
// input history exists yet.
const NoInput = "None"

// KeyHistory keeps the most recent non-empty button combos so every change
// event carries a short window of what the player was doing.
type KeyHistory struct {
	entries []string
}

// Push records a combo. Frames with no buttons held are not recorded; the
// history is a trail of actual inputs, not a per-frame sample.
func (h *KeyHistory) Push(combo string) {
	if combo == "" || combo == NoInput {
		return
	}
	h.entries = append(h.entries, combo)
	if len(h.entries) > historyCap {
		h.entries = h.entries[len(h.entries)-historyCap:]
	}
}

// Len reports the number of combos currently held.
func (h *KeyHistory) Len() int {
	return len(h.entries)
}

// Summary joins the most recent combos, newest first, with " | ". At most
// summaryLen entries are included. An empty history yields NoInput.
func (h *KeyHistory) Summary() string {
	if len(h.entries) == 0 {
		return NoInput
	}

	n := summaryLen
	if n > len(h.entries) {
		n = len(h.entries)
	}

	parts := make([]string, 0, n)
	for i := len(h.entries) - 1; i >= len(h.entries)-n; i-- {
		parts = append(parts, h.entries[i])
	}
	return strings.Join(parts, " | ")
}
