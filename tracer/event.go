package tracer

import (
	"fmt"
	"strconv"
	"strings"
)

// ChangeEvent is one detected difference between two consecutive
// observations of the same word. Events are created transiently, formatted
// into the log buffer, and never retained.
type ChangeEvent struct {
	TimestampMS uint64
	Region      string
	Frame       uint64
	Address     uint32
	PrevVal     uint32
	CurrVal     uint32
	Freq        uint32
	PC          uint32
	LastKeys    string
	CurrentKeys string
	FrameSetID  uint64
	ChunkID     uint32
}

// Record formats the event as one CSV row. Column order is fixed; the
// downstream ingestion tooling indexes columns by position.
func (e *ChangeEvent) Record() string {
	return strings.Join([]string{
		strconv.FormatUint(e.TimestampMS, 10),
		csvField(e.Region),
		strconv.FormatUint(e.Frame, 10),
		fmt.Sprintf("%08X", e.Address),
		fmt.Sprintf("%08X", e.PrevVal),
		fmt.Sprintf("%08X", e.CurrVal),
		strconv.FormatUint(uint64(e.Freq), 10),
		fmt.Sprintf("%08X", e.PC),
		csvField(e.LastKeys),
		csvField(e.CurrentKeys),
		strconv.FormatUint(e.FrameSetID, 10),
		strconv.FormatUint(uint64(e.ChunkID), 10),
	}, ",")
}

// csvField escapes a free-text field. Empty values are written as the
// literal None sentinel; values containing a comma or quote are wrapped in
// double quotes with internal quotes doubled.
func csvField(s string) string {
	if s == "" {
		return NoInput
	}
	if !strings.ContainsAny(s, ",\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
