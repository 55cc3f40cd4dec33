package retroarch

import (
	"bytes"
	"testing"
)

func TestParseReadResponse(t *testing.T) {
	tests := []struct {
		name    string
		rsp     string
		addr    uint32
		size    uint32
		data    []byte
		wantErr bool
	}{
		{
			name: "valid read",
			rsp:  "READ_CORE_MEMORY 03000010 05 00 00 00",
			addr: 0x03000010, size: 4,
			data: []byte{0x05, 0x00, 0x00, 0x00},
		},
		{
			name: "trailing newline",
			rsp:  "READ_CORE_MEMORY 02000000 ff 7f\n",
			addr: 0x02000000, size: 2,
			data: []byte{0xFF, 0x7F},
		},
		{
			name: "core reports failure",
			rsp:  "READ_CORE_MEMORY 03000010 -1 no data for descriptor",
			addr: 0x03000010, size: 4,
			wantErr: true,
		},
		{
			name: "address mismatch",
			rsp:  "READ_CORE_MEMORY 03000020 05 00 00 00",
			addr: 0x03000010, size: 4,
			wantErr: true,
		},
		{
			name: "short payload",
			rsp:  "READ_CORE_MEMORY 03000010 05 00",
			addr: 0x03000010, size: 4,
			wantErr: true,
		},
		{
			name: "wrong command echoed",
			rsp:  "GET_STATUS PLAYING gba",
			addr: 0x03000010, size: 4,
			wantErr: true,
		},
		{
			name: "garbage byte",
			rsp:  "READ_CORE_MEMORY 03000010 05 zz 00 00",
			addr: 0x03000010, size: 4,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			data, err := parseReadResponse(tt.rsp, tt.addr, tt.size)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, tt.data) {
				t.Errorf("data = %x, expected = %x", data, tt.data)
			}
		})
	}
}
