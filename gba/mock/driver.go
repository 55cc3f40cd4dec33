package mock

import "github.com/dtand/rommer-gba/gba"

const driverName = "mock"

type Driver struct{}

func (d *Driver) DisplayName() string {
	return "Mock Machine"
}

func (d *Driver) DisplayDescription() string {
	return "Trace an in-process fake machine (no emulator required)"
}

func (d *Driver) Open(addr string) (gba.Bridge, error) {
	return NewBridge(), nil
}

func init() {
	gba.Register(driverName, &Driver{})
}
