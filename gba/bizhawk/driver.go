package bizhawk

import (
	"fmt"
	"log"

	"github.com/dtand/rommer-gba/gba"
)

const driverName = "bizhawk"

// default port of the companion Lua bridge script
const defaultAddr = "ws://localhost:43884/"

type Driver struct{}

func (d *Driver) DisplayName() string {
	return "BizHawk"
}

func (d *Driver) DisplayDescription() string {
	return "Connect to a BizHawk emulator running the bridge Lua script"
}

func (d *Driver) Open(addr string) (gba.Bridge, error) {
	if addr == "" {
		addr = defaultAddr
	}

	b := &Bridge{}
	if err := newWSClient(&b.ws, addr, "rommer"); err != nil {
		return nil, err
	}

	return b, nil
}

type Bridge struct {
	ws wsClient
}

func (b *Bridge) ReadBlock(busAddr uint32, size uint32) ([]byte, error) {
	rsp, err := b.ws.roundTrip(bridgeCommand{Cmd: "read", Addr: busAddr, Size: size})
	if err != nil {
		return nil, err
	}
	if uint32(len(rsp.Data)) != size {
		return nil, fmt.Errorf("bizhawk: short read at $%08x: %d of %d bytes", busAddr, len(rsp.Data), size)
	}
	return rsp.Data, nil
}

func (b *Bridge) PressedKeys() (keys gba.KeySet, err error) {
	rsp, err := b.ws.roundTrip(bridgeCommand{Cmd: "input"})
	if err != nil {
		return 0, err
	}

	for _, name := range rsp.Keys {
		k, ok := gba.KeyByName(name)
		if !ok {
			// the script reports every pad input; ignore names outside
			// the allow-list
			continue
		}
		keys.Add(k)
	}
	return keys, nil
}

func (b *Bridge) PC() (uint32, error) {
	rsp, err := b.ws.roundTrip(bridgeCommand{Cmd: "pc"})
	if err != nil {
		return 0, err
	}
	return rsp.PC, nil
}

func (b *Bridge) CaptureScreenshot(path string) error {
	_, err := b.ws.roundTrip(bridgeCommand{Cmd: "screenshot", Path: path})
	return err
}

func (b *Bridge) Close() error {
	log.Printf("bizhawk: closing bridge\n")
	return b.ws.Close()
}

func init() {
	gba.Register(driverName, &Driver{})
}
