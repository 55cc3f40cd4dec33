package gba

import "errors"

// ErrNotSupported is returned by bridges for capabilities the underlying
// host cannot provide. Callers substitute documented defaults rather than
// treating it as fatal.
var ErrNotSupported = errors.New("gba: capability not supported by this bridge")

// Bridge is the capability surface of a connected host machine. All calls
// are synchronous and bounded: implementations over a network or serial
// transport must apply their own deadlines and surface timeouts as errors.
//
// Memory is addressed by absolute bus address. Reads are raw bytes; word
// interpretation (32-bit little-endian) is the caller's concern.
type Bridge interface {
	// ReadBlock reads size bytes starting at the absolute bus address.
	ReadBlock(busAddr uint32, size uint32) ([]byte, error)

	// PressedKeys reports the currently held buttons.
	PressedKeys() (KeySet, error)

	// PC reports the current program counter, best effort.
	PC() (uint32, error)

	// CaptureScreenshot writes the current video frame to the given path.
	CaptureScreenshot(path string) error

	Close() error
}
