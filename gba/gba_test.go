package gba

import (
	"strings"
	"testing"
)

type nopDriver struct{}

func (d *nopDriver) Open(addr string) (Bridge, error) { return nil, nil }
func (d *nopDriver) DisplayName() string              { return "nop" }
func (d *nopDriver) DisplayDescription() string       { return "does nothing" }

func TestRegisterAndOpen(t *testing.T) {
	defer unregisterAllDrivers()
	unregisterAllDrivers()

	Register("nop", &nopDriver{})
	Register("also-nop", &nopDriver{})

	if actual, expected := strings.Join(Drivers(), ","), "also-nop,nop"; actual != expected {
		t.Errorf("drivers = %q, expected = %q", actual, expected)
	}

	if _, err := Open("nop", ""); err != nil {
		t.Errorf("open registered driver: %v", err)
	}

	if _, err := Open("missing", ""); err == nil {
		t.Error("open of unknown driver succeeded")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer unregisterAllDrivers()
	unregisterAllDrivers()

	Register("dup", &nopDriver{})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("dup", &nopDriver{})
}

func TestRegions(t *testing.T) {
	regions := Regions()
	if actual, expected := len(regions), 2; actual != expected {
		t.Fatalf("regions = %v, expected = %v", actual, expected)
	}

	iwram, ewram := regions[0], regions[1]
	if iwram.Name != "iwram" || iwram.Base != IWRAMBase || iwram.Size != IWRAMSize {
		t.Errorf("iwram = %+v", iwram)
	}
	if ewram.Name != "ewram" || ewram.Base != EWRAMBase || ewram.Size != EWRAMSize {
		t.Errorf("ewram = %+v", ewram)
	}

	if !iwram.Contains(0x03000010) {
		t.Error("iwram does not contain $03000010")
	}
	if iwram.Contains(0x03008000) {
		t.Error("iwram contains address past its end")
	}
}
