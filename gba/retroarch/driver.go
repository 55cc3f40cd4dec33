// Package retroarch connects to a RetroArch instance over its network
// command interface (network_cmd_enable, default UDP port 55355) and serves
// memory reads with READ_CORE_MEMORY. Input, PC and screenshots are not
// exposed by the command interface, so those capabilities degrade to their
// documented defaults.
package retroarch

import (
	"fmt"
	"net"

	"github.com/dtand/rommer-gba/gba"
	"github.com/dtand/rommer-gba/udpclient"
)

const driverName = "retroarch"

// default network_cmd_port for RetroArch
const defaultAddr = "localhost:55355"

type Driver struct{}

func (d *Driver) DisplayName() string {
	return "RetroArch"
}

func (d *Driver) DisplayDescription() string {
	return "Connect to a RetroArch emulator's network command interface"
}

func (d *Driver) Open(addr string) (gba.Bridge, error) {
	if addr == "" {
		addr = defaultAddr
	}

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("retroarch: resolve '%s': %w", addr, err)
	}

	b := &Bridge{}
	b.udp = udpclient.NewUDPClient(fmt.Sprintf("retroarch[%s]", addr))
	if err = b.udp.Connect(udpAddr); err != nil {
		return nil, err
	}

	// probe the instance so a dead endpoint fails at open, not mid-session:
	if err = b.detect(); err != nil {
		b.udp.Disconnect()
		return nil, err
	}

	return b, nil
}

func init() {
	gba.Register(driverName, &Driver{})
}
