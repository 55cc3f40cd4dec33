// Package agblink connects to a link-port USB adapter whose firmware
// exposes work-RAM reads over a serial protocol. The adapter only shadows
// memory; input, PC and screenshots are not available on this bridge.
package agblink

import (
	"errors"
	"fmt"
	"log"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/dtand/rommer-gba/gba"
)

const driverName = "agblink"

var (
	ErrNoAdapterFound = errors.New("agblink: no adapter found among serial ports")

	baudRates = []int{
		921600, // first rate that works on Windows
		460800,
		230400, // first rate that works on MacOS
		115200,
		57600,
	}
)

type Driver struct{}

func (d *Driver) DisplayName() string {
	return "AGB Link Adapter"
}

func (d *Driver) DisplayDescription() string {
	return "Connect to a link-port USB memory adapter on a serial port"
}

// DetectDevice scans USB serial ports for the adapter's serial number
// prefix.
func DetectDevice() (portName string, err error) {
	var ports []*enumerator.PortDetails

	ports, err = enumerator.GetDetailedPortsList()
	if err != nil {
		return
	}

	for _, port := range ports {
		if !port.IsUSB {
			continue
		}

		if len(port.SerialNumber) >= 4 && port.SerialNumber[:4] == "AGBL" {
			portName = port.Name
			return
		}
	}

	err = ErrNoAdapterFound
	return
}

func (d *Driver) Open(addr string) (gba.Bridge, error) {
	portName := addr
	if portName == "" {
		var err error
		portName, err = DetectDevice()
		if err != nil {
			return nil, err
		}
	}

	var f serial.Port
	var err error
	for _, baud := range baudRates {
		f, err = serial.Open(portName, &serial.Mode{BaudRate: baud})
		if err == nil {
			log.Printf("agblink: opened '%s' at %d baud\n", portName, baud)
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("agblink: open '%s': %w", portName, err)
	}

	if err = f.SetDTR(true); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("agblink: set DTR on '%s': %w", portName, err)
	}

	return &Bridge{f: f}, nil
}

func init() {
	gba.Register(driverName, &Driver{})
}
