package retroarch

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dtand/rommer-gba/gba"
	"github.com/dtand/rommer-gba/udpclient"
)

type Bridge struct {
	udp *udpclient.UDPClient

	version string
}

func (b *Bridge) detect() (err error) {
	var rsp []byte
	rsp, err = b.udp.RoundTrip([]byte("VERSION"))
	if err != nil {
		return fmt.Errorf("retroarch: version probe: %w", err)
	}

	b.version = strings.TrimSpace(string(rsp))
	log.Printf("retroarch: detected version %s\n", b.version)
	return
}

func (b *Bridge) ReadBlock(busAddr uint32, size uint32) ([]byte, error) {
	req := fmt.Sprintf("READ_CORE_MEMORY %08x %d", busAddr, size)

	rsp, err := b.udp.RoundTrip([]byte(req))
	if err != nil {
		return nil, err
	}

	return parseReadResponse(string(rsp), busAddr, size)
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
	b.udp.Disconnect()
	return nil
}

// parseReadResponse decodes "READ_CORE_MEMORY <addr> <hex byte>..." replies.
// RetroArch reports failures as a "-1" payload with an optional message.
func parseReadResponse(rsp string, busAddr uint32, size uint32) ([]byte, error) {
	fields := strings.Fields(strings.TrimSpace(rsp))
	if len(fields) < 2 || fields[0] != "READ_CORE_MEMORY" {
		return nil, fmt.Errorf("retroarch: unexpected reply %q", rsp)
	}

	addr, err := strconv.ParseUint(fields[1], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("retroarch: bad address in reply %q", rsp)
	}
	if uint32(addr) != busAddr {
		return nil, fmt.Errorf("retroarch: reply for $%08x, requested $%08x", addr, busAddr)
	}

	payload := fields[2:]
	if len(payload) > 0 && payload[0] == "-1" {
		return nil, fmt.Errorf("retroarch: read failed at $%08x: %s", busAddr, strings.Join(payload[1:], " "))
	}
	if uint32(len(payload)) != size {
		return nil, fmt.Errorf("retroarch: short read at $%08x: %d of %d bytes", busAddr, len(payload), size)
	}

	block := make([]byte, size)
	for i, h := range payload {
		v, err := strconv.ParseUint(h, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("retroarch: bad byte %q in reply", h)
		}
		block[i] = byte(v)
	}
	return block, nil
}
