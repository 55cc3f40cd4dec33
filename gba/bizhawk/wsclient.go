// Package bizhawk connects to a BizHawk emulator through the companion Lua
// bridge script, which listens on a websocket and answers JSON commands for
// memory reads, input state, the program counter and screenshot capture.
// This is the only bridge that provides every engine capability.
package bizhawk

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

type wsClient struct {
	urlstr  string
	appName string

	ws      net.Conn
	r       *wsutil.Reader
	w       *wsutil.Writer
	encoder *json.Encoder
	decoder *json.Decoder
}

type bridgeCommand struct {
	Cmd  string `json:"cmd"`
	Addr uint32 `json:"addr,omitempty"`
	Size uint32 `json:"size,omitempty"`
	Path string `json:"path,omitempty"`
}

type bridgeResult struct {
	Data []byte   `json:"data,omitempty"`
	Keys []string `json:"keys,omitempty"`
	PC   uint32   `json:"pc,omitempty"`
	Err  string   `json:"error,omitempty"`
}

func newWSClient(w *wsClient, urlstr string, name string) (err error) {
	w.urlstr = urlstr
	w.appName = name
	return w.Dial()
}

func (w *wsClient) Dial() (err error) {
	log.Printf("bizhawk: [%s] dial %s\n", w.appName, w.urlstr)
	w.ws, _, _, err = ws.Dial(context.Background(), w.urlstr)
	if err != nil {
		err = fmt.Errorf("bizhawk: [%s] dial: %w", w.appName, err)
		return
	}

	w.r = wsutil.NewClientSideReader(w.ws)
	w.w = wsutil.NewWriter(w.ws, ws.StateClientSide, ws.OpText)
	w.encoder = json.NewEncoder(w.w)
	w.decoder = json.NewDecoder(w.r)

	return
}

func (w *wsClient) Close() error {
	if w.ws == nil {
		return nil
	}
	err := w.ws.Close()
	w.ws = nil
	return err
}

// roundTrip sends one command and decodes its reply. The bridge script
// answers strictly in order and the caller is frame-synchronous, so there is
// never more than one command in flight.
func (w *wsClient) roundTrip(cmd bridgeCommand) (rsp bridgeResult, err error) {
	if w.ws == nil {
		err = fmt.Errorf("bizhawk: [%s] not connected", w.appName)
		return
	}

	if err = w.encoder.Encode(&cmd); err != nil {
		err = fmt.Errorf("bizhawk: [%s] send %s: %w", w.appName, cmd.Cmd, err)
		return
	}
	if err = w.w.Flush(); err != nil {
		err = fmt.Errorf("bizhawk: [%s] flush %s: %w", w.appName, cmd.Cmd, err)
		return
	}

	hdr, err := w.r.NextFrame()
	if err != nil {
		err = fmt.Errorf("bizhawk: [%s] recv %s: %w", w.appName, cmd.Cmd, err)
		return
	}
	if hdr.OpCode == ws.OpClose {
		err = fmt.Errorf("bizhawk: [%s] connection closed by emulator", w.appName)
		return
	}

	if err = w.decoder.Decode(&rsp); err != nil {
		err = fmt.Errorf("bizhawk: [%s] decode %s reply: %w", w.appName, cmd.Cmd, err)
		return
	}

	if rsp.Err != "" {
		err = fmt.Errorf("bizhawk: [%s] %s: %s", w.appName, cmd.Cmd, rsp.Err)
	}
	return
}
