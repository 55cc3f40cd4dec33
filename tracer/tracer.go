// Package tracer is the memory-change tracing engine. Once per rendered
// frame the host (or the harness pumping a bridge) calls OnFrame; the engine
// reads the current input state, scans one chunk of each observed region,
// diffs every word against its last observation, and buffers a CSV record
// per change. When both regions complete a full scan cycle in the same frame
// the engine captures one screenshot and advances the frame-set id.
//
// The engine owns all of its mutable state and never shares it; the host
// only supplies read access to the machine through a gba.Bridge and receives
// file-system side effects.
package tracer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/dtand/rommer-gba/eventlog"
	"github.com/dtand/rommer-gba/gba"
	"github.com/dtand/rommer-gba/util"
)

// Faults counts contained failures. Nothing in here ever aborts a session;
// the counters exist so tests and operators can see what went wrong without
// parsing console output.
type Faults struct {
	FramePanics   uint64
	ReadErrors    uint64
	InputErrors   uint64
	CaptureErrors uint64
}

type Config struct {
	EventLogPath string
	SnapshotDir  string
}

type Tracer struct {
	bridge gba.Bridge
	events *eventlog.Log

	snapshotDir string

	cursors []Cursor
	differ  *Differ
	freq    *FreqEstimator
	keys    KeyHistory
	sync    FrameSync

	Faults Faults
}

// New prepares a tracing session: rotates any event log left by a previous
// session, clears stale snapshots, and positions a cursor at the start of
// each region in the catalog.
func New(bridge gba.Bridge, cfg Config) (*Tracer, error) {
	if err := eventlog.Rotate(cfg.EventLogPath); err != nil {
		return nil, err
	}
	if err := eventlog.ClearSnapshots(cfg.SnapshotDir); err != nil {
		return nil, err
	}

	regions := gba.Regions()
	cursors := make([]Cursor, len(regions))
	for i, r := range regions {
		cursors[i] = Cursor{Region: r}
	}

	return &Tracer{
		bridge:      bridge,
		events:      eventlog.NewLog(cfg.EventLogPath),
		snapshotDir: cfg.SnapshotDir,
		cursors:     cursors,
		differ:      NewDiffer(),
		freq:        NewFreqEstimator(),
	}, nil
}

// FrameSetID is the id the next completed scan cycle will be assigned.
func (t *Tracer) FrameSetID() uint64 { return t.sync.ID }

// Events exposes the event log, mainly so the harness can report buffer
// state at shutdown.
func (t *Tracer) Events() *eventlog.Log { return t.events }

// OnFrame is the host's end-of-frame hook. Any internal failure is contained
// here: a panic is reported with its stack, a best-effort flush preserves
// buffered events, and the next frame proceeds normally. A single bad frame
// never ends the session.
//
// On a panic the cursors are rolled back to their frame-entry offsets so the
// regions stay in lock-step; the abandoned frame's span is simply rescanned
// on the next hook call. The word snapshot has already absorbed any values
// read before the fault, so the rescan emits no duplicate events.
func (t *Tracer) OnFrame(frame uint64) {
	saved := make([]uint32, len(t.cursors))
	for i := range t.cursors {
		saved[i] = t.cursors[i].Offset
	}

	defer func() {
		if r := recover(); r != nil {
			t.Faults.FramePanics++
			util.LogPanic(r)
			for i := range t.cursors {
				t.cursors[i].Offset = saved[i]
			}
			if err := t.events.Flush(); err != nil {
				log.Printf("tracer: flush after panic: %v\n", err)
			}
		}
	}()

	combo := t.readCombo()
	t.keys.Push(combo)

	lastKeys := t.keys.Summary()
	currentKeys := combo
	if currentKeys == "" {
		currentKeys = NoInput
	}

	pc := t.readPC()

	wraps := make([]bool, len(t.cursors))
	for i := range t.cursors {
		wraps[i] = t.scanChunk(&t.cursors[i], frame, pc, lastKeys, currentKeys)
	}

	if id, ok := t.sync.Complete(wraps); ok {
		t.captureSnapshot(id)
	}
}

// Flush forces buffered events out. Exposed for periodic safety hooks.
func (t *Tracer) Flush() error {
	return t.events.Flush()
}

// OnShutdown must be called once when the session ends; it forces a final
// flush so no buffered events are lost.
func (t *Tracer) OnShutdown() {
	if err := t.events.Flush(); err != nil {
		log.Printf("tracer: final flush: %v\n", err)
	}
}

// scanChunk reads the cursor's current chunk in one block, diffs every word
// in it, and advances the cursor. The cursor advances even when the read
// fails: the regions must stay in lock-step for frame-set simultaneity.
func (t *Tracer) scanChunk(cur *Cursor, frame uint64, pc uint32, lastKeys, currentKeys string) (wrapped bool) {
	start, end, chunk := cur.ChunkBounds()

	block, err := t.bridge.ReadBlock(cur.Region.Base+start, end-start+1)
	if err != nil || uint32(len(block)) < end-start+1 {
		if err == nil {
			err = fmt.Errorf("short read: %d of %d bytes", len(block), end-start+1)
		}
		t.Faults.ReadErrors++
		log.Printf("tracer: %s: read chunk %d: %v\n", cur.Region.Name, chunk, err)
		return cur.Advance()
	}

	now := uint64(time.Now().UnixMilli())

	for off := start; off+3 <= end; off += 4 {
		addr := cur.Region.Base + off
		value := binary.LittleEndian.Uint32(block[off-start:])

		prev, changed := t.differ.Observe(addr, value)
		if !changed {
			continue
		}

		ev := ChangeEvent{
			TimestampMS: now,
			Region:      cur.Region.Name,
			Frame:       frame,
			Address:     addr,
			PrevVal:     prev,
			CurrVal:     value,
			Freq:        t.freq.Observe(addr, frame),
			PC:          pc,
			LastKeys:    lastKeys,
			CurrentKeys: currentKeys,
			FrameSetID:  t.sync.ID,
			ChunkID:     chunk,
		}
		t.events.Append(ev.Record())
	}

	return cur.Advance()
}

func (t *Tracer) readCombo() string {
	keys, err := t.bridge.PressedKeys()
	if err != nil {
		if !errors.Is(err, gba.ErrNotSupported) {
			t.Faults.InputErrors++
			log.Printf("tracer: read keys: %v\n", err)
		}
		return ""
	}
	return keys.Combo()
}

func (t *Tracer) readPC() uint32 {
	pc, err := t.bridge.PC()
	if err != nil {
		// best effort; zero when the host cannot provide it
		return 0
	}
	return pc
}

// captureSnapshot writes the screenshot for a completed frame set. Failures
// are counted and reported but the set id has already been consumed: the log
// and image sequence stay aligned, with a gap where capture failed.
func (t *Tracer) captureSnapshot(id uint64) {
	path := filepath.Join(t.snapshotDir, fmt.Sprintf("%d.png", id))
	if err := t.bridge.CaptureScreenshot(path); err != nil {
		t.Faults.CaptureErrors++
		if !errors.Is(err, gba.ErrNotSupported) {
			log.Printf("tracer: screenshot '%s': %v\n", path, err)
		}
	}
}
