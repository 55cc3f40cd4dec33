// Package eventlog persists change-event records. Records accumulate in an
// in-memory buffer and are appended to the log file in batches so the frame
// loop only pays for file I/O once per flush. A failed flush keeps the
// buffer for a later retry; data is only dropped if the process dies between
// flushes.
package eventlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FlushThreshold is the number of buffered records that triggers an
// automatic flush on the next Append.
const FlushThreshold = 200

type Log struct {
	path string

	lines []string

	// count of flushes that could not reach the file; the buffer is kept
	// and retried on the next trigger.
	WriteFailures uint64
}

func NewLog(path string) *Log {
	return &Log{
		path:  path,
		lines: make([]string, 0, FlushThreshold),
	}
}

func (l *Log) Path() string { return l.path }

// Len reports the number of buffered, not-yet-flushed records.
func (l *Log) Len() int { return len(l.lines) }

// Append buffers one record and flushes if the buffer has reached the
// threshold. Flush errors are reported but never propagated to the frame
// loop; the record itself is always retained until a flush succeeds.
func (l *Log) Append(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) >= FlushThreshold {
		if err := l.Flush(); err != nil {
			log.Printf("eventlog: flush: %v\n", err)
		}
	}
}

// Flush appends all buffered records to the log file and clears the buffer.
// On failure the buffer is left intact.
func (l *Log) Flush() error {
	if len(l.lines) == 0 {
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		l.WriteFailures++
		return fmt.Errorf("eventlog: open '%s': %w", l.path, err)
	}

	var sb strings.Builder
	for _, line := range l.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	_, err = f.WriteString(sb.String())
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		l.WriteFailures++
		return fmt.Errorf("eventlog: write '%s': %w", l.path, err)
	}

	l.lines = l.lines[:0]
	return nil
}

// Close forces a final flush.
func (l *Log) Close() error {
	return l.Flush()
}

// Rotate moves an event log left over from a previous session out of the
// way by renaming it with a timestamp suffix. A fresh session must never
// append to or overwrite old data.
func (l *Log) Rotate() error {
	return Rotate(l.path)
}

func Rotate(path string) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("eventlog: stat '%s': %w", path, err)
	}

	rotated := fmt.Sprintf("%s.%s", path, timestamp())
	if err = os.Rename(path, rotated); err != nil {
		return fmt.Errorf("eventlog: rotate '%s': %w", path, err)
	}

	log.Printf("eventlog: rotated previous log to '%s'\n", rotated)
	return nil
}

// ClearSnapshots removes stale screenshot files from a previous session so
// frame-set ids never resolve to images from an older run. The directory is
// created if missing.
func ClearSnapshots(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("eventlog: mkdir '%s': %w", dir, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return err
	}

	for _, m := range matches {
		if err = os.Remove(m); err != nil {
			return fmt.Errorf("eventlog: remove '%s': %w", m, err)
		}
	}

	if len(matches) > 0 {
		log.Printf("eventlog: cleared %d stale snapshots from '%s'\n", len(matches), dir)
	}
	return nil
}

func timestamp() string {
	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.ReplaceAll(ts, ":", "-")
	ts = strings.ReplaceAll(ts, ".", "-")
	return ts
}
