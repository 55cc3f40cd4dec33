package gba

import (
	"fmt"
	"sort"
	"sync"
)

// Driver opens Bridge connections to a particular kind of host: a local mock
// machine, an emulator listening on the network, or a hardware adapter on a
// serial port. The addr string is driver-specific and may be empty to accept
// the driver's default.
type Driver interface {
	Open(addr string) (Bridge, error)

	DisplayName() string
	DisplayDescription() string
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a bridge driver available by the provided name.
// If Register is called twice with the same name or if driver is nil,
// it panics.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("gba: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("gba: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

func unregisterAllDrivers() {
	driversMu.Lock()
	defer driversMu.Unlock()
	// For tests.
	drivers = make(map[string]Driver)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Open opens a Bridge via the named driver.
func Open(driverName, addr string) (Bridge, error) {
	driversMu.RLock()
	driveri, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("gba: unknown driver %q (forgotten import?)", driverName)
	}

	return driveri.Open(addr)
}
