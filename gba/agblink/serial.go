package agblink

import (
	"fmt"

	"go.bug.st/serial"

	"github.com/dtand/rommer-gba/gba"
)

const (
	opRead = 0x01

	// adapter firmware caps one transfer at 4 KiB; longer reads are split
	maxTransfer = 0x1000
)

type Bridge struct {
	f serial.Port
}

func sendSerial(f serial.Port, buf []byte) error {
	sent := 0
	for sent < len(buf) {
		n, e := f.Write(buf[sent:])
		if e != nil {
			return e
		}
		sent += n
	}
	return nil
}

func recvSerial(f serial.Port, rsp []byte, expected int) error {
	o := 0
	for o < expected {
		n, err := f.Read(rsp[o:expected])
		if err != nil {
			return err
		}
		if n <= 0 {
			return fmt.Errorf("recvSerial: Read returned %d", n)
		}
		o += n
	}
	return nil
}

// sendRead issues one framed read command:
//
//	'A' 'G' 'B' 'L' op addr[4,BE] len[2,BE]
//
// and the adapter answers with exactly len data bytes.
func (b *Bridge) sendRead(busAddr uint32, size uint16, dst []byte) error {
	sb := make([]byte, 11)
	sb[0] = 'A'
	sb[1] = 'G'
	sb[2] = 'B'
	sb[3] = 'L'
	sb[4] = opRead
	sb[5] = byte(busAddr >> 24)
	sb[6] = byte(busAddr >> 16)
	sb[7] = byte(busAddr >> 8)
	sb[8] = byte(busAddr)
	sb[9] = byte(size >> 8)
	sb[10] = byte(size)

	if err := sendSerial(b.f, sb); err != nil {
		return fmt.Errorf("agblink: send read at $%08x: %w", busAddr, err)
	}
	if err := recvSerial(b.f, dst, int(size)); err != nil {
		return fmt.Errorf("agblink: recv read at $%08x: %w", busAddr, err)
	}
	return nil
}

func (b *Bridge) ReadBlock(busAddr uint32, size uint32) ([]byte, error) {
	block := make([]byte, size)

	o := uint32(0)
	for o < size {
		n := size - o
		if n > maxTransfer {
			n = maxTransfer
		}
		if err := b.sendRead(busAddr+o, uint16(n), block[o:o+n]); err != nil {
			return nil, err
		}
		o += n
	}

	return block, nil
}

func (b *Bridge) PressedKeys() (gba.KeySet, error) {
	return 0, gba.ErrNotSupported
}

func (b *Bridge) PC() (uint32, error) {
	return 0, gba.ErrNotSupported
}

func (b *Bridge) CaptureScreenshot(path string) error {
	return gba.ErrNotSupported
}

func (b *Bridge) Close() error {
	return b.f.Close()
}
