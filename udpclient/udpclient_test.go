package udpclient

import (
	"errors"
	"net"
	"testing"
	"time"
)

// echoServer answers every datagram with its payload until the listener
// closes.
func echoServer(t *testing.T) *net.UDPAddr {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	go func() {
		b := make([]byte, 65536)
		for {
			n, raddr, err := conn.ReadFromUDP(b)
			if err != nil {
				return
			}
			_, _ = conn.WriteToUDP(b[:n], raddr)
		}
	}()

	return conn.LocalAddr().(*net.UDPAddr)
}

func TestUDPClient_RoundTrip(t *testing.T) {
	addr := echoServer(t)

	c := NewUDPClient("test")
	if err := c.Connect(addr); err != nil {
		t.Fatal(err)
	}
	defer c.Disconnect()

	rsp, err := c.RoundTrip([]byte("VERSION"))
	if err != nil {
		t.Fatal(err)
	}
	if actual, expected := string(rsp), "VERSION"; actual != expected {
		t.Errorf("response = %q, expected = %q", actual, expected)
	}
}

func TestUDPClient_Timeout(t *testing.T) {
	// a bound socket with no reader never answers:
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	c := NewUDPClient("test")
	c.SetTimeout(50 * time.Millisecond)
	if err = c.Connect(conn.LocalAddr().(*net.UDPAddr)); err != nil {
		t.Fatal(err)
	}
	defer c.Disconnect()

	_, err = c.RoundTrip([]byte("hello"))
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, expected timeout", err)
	}
}

func TestUDPClient_DisconnectedStateObservedByPump(t *testing.T) {
	addr := echoServer(t)

	c := NewUDPClient("test")
	if err := c.Connect(addr); err != nil {
		t.Fatal(err)
	}
	if !c.IsConnected() {
		t.Fatal("not connected after Connect")
	}

	// Disconnect races the pump goroutine's reads; the connected flag is the
	// shared state and must settle without a second disconnect firing:
	c.Disconnect()
	c.Disconnect()

	if c.IsConnected() {
		t.Error("still connected after Disconnect")
	}
	if _, err := c.RoundTrip([]byte("x")); err == nil {
		t.Error("round trip on disconnected client succeeded")
	}
}
