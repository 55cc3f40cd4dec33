package udpclient

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync/atomic"
	"time"
)

var ErrTimeout = errors.New("udpclient: request timed out")

// UDPClient is a connected UDP socket with a background read pump. Requests
// are datagram-in, datagram-out; RoundTrip pairs one sent datagram with the
// next received one under a deadline, which is how the emulator
// network-command protocols behave.
type UDPClient struct {
	name string

	c *net.UDPConn

	// written by Connect/Disconnect, read by the pump goroutine
	isConnected atomic.Bool

	read chan []byte

	timeout time.Duration
}

func NewUDPClient(name string) *UDPClient {
	return &UDPClient{
		name:    name,
		read:    make(chan []byte, 64),
		timeout: time.Second,
	}
}

func (c *UDPClient) SetTimeout(d time.Duration) { c.timeout = d }

func (c *UDPClient) IsConnected() bool { return c.isConnected.Load() }

func (c *UDPClient) Connect(addr *net.UDPAddr) (err error) {
	if c.isConnected.Load() {
		return fmt.Errorf("%s: already connected", c.name)
	}

	c.c, err = net.DialUDP("udp", nil, addr)
	if err != nil {
		return
	}

	c.isConnected.Store(true)
	log.Printf("%s: connected to '%s'\n", c.name, addr)

	go c.readLoop(c.c)

	return
}

func (c *UDPClient) Disconnect() {
	if !c.isConnected.CompareAndSwap(true, false) {
		return
	}

	err := c.c.SetReadDeadline(time.Now())
	if err != nil {
		log.Printf("%s: setreaddeadline: %v\n", c.name, err)
	}

	err = c.c.Close()
	if err != nil {
		log.Printf("%s: close: %v\n", c.name, err)
	}

	log.Printf("%s: disconnected\n", c.name)

	c.c = nil
}

// RoundTrip sends one datagram and waits for the next datagram to arrive,
// up to the client timeout. Stale datagrams buffered from earlier timed-out
// requests are drained before sending.
func (c *UDPClient) RoundTrip(req []byte) (rsp []byte, err error) {
	if !c.isConnected.Load() {
		return nil, fmt.Errorf("%s: not connected", c.name)
	}

	// drain any stale responses:
	for more := true; more; {
		select {
		case <-c.read:
		default:
			more = false
		}
	}

	_, err = c.c.Write(req)
	if err != nil {
		return nil, err
	}

	select {
	case rsp = <-c.read:
		if rsp == nil {
			return nil, fmt.Errorf("%s: connection closed", c.name)
		}
		return rsp, nil
	case <-time.After(c.timeout):
		return nil, fmt.Errorf("%s: %w", c.name, ErrTimeout)
	}
}

// must run in a goroutine; holds its own conn reference so a concurrent
// Disconnect cannot pull the socket out from under it
func (c *UDPClient) readLoop(conn *net.UDPConn) {
	defer func() {
		c.Disconnect()
	}()

	// we only need a single receive buffer:
	b := make([]byte, 65536)

	for c.isConnected.Load() {
		// wait for a packet from UDP socket:
		var n, _, err = conn.ReadFromUDP(b)
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Print(err)
			}
			// signal a disconnect took place:
			select {
			case c.read <- nil:
			default:
			}
			return
		}

		// copy the envelope:
		envelope := make([]byte, n)
		copy(envelope, b[:n])

		select {
		case c.read <- envelope:
		default:
			log.Printf("%s: dropped datagram; no reader\n", c.name)
		}
	}
}
