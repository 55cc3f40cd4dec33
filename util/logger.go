package util

import (
	"io"
	"log"
	"os"
	"runtime/debug"
)

// DiagnosticLogger tees the process log to a file and stderr and can be
// flushed explicitly before the process dies.
type DiagnosticLogger struct {
	f  *os.File
	mw io.Writer
}

var std *DiagnosticLogger

func NewDiagnosticLogger(f *os.File) *DiagnosticLogger {
	std = &DiagnosticLogger{
		f:  f,
		mw: io.MultiWriter(f, os.Stderr),
	}
	return std
}

func (l *DiagnosticLogger) Write(p []byte) (n int, err error) {
	return l.mw.Write(p)
}

func (l *DiagnosticLogger) Flush() error {
	return l.f.Sync()
}

func FlushLogger() error {
	if std == nil {
		return nil
	}
	return std.Flush()
}

// LogPanic reports a recovered panic with its stack and forces the
// diagnostic log out to disk so the report survives a crash.
func LogPanic(err any) {
	log.Printf("recovered panic: %v\n%s\n", err, string(debug.Stack()))
	_ = FlushLogger()
}
