// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"
	"strconv"
)

// Session setup messages larger than this are not buffered.  A Kerberos AP-REQ with a
// large PAC still fits comfortably.
const maxMessageSize = 1 << 17

// streamTable splits each TCP direction into messages using the 4 byte NetBIOS session
// header (RFC 1002 § 4.3.1), which direct TCP transport on port 445 keeps as well.
// Segments are assumed to arrive in order; a stream that loses framing is resynchronized
// on the next segment that starts a message.  The body of an oversized message is skipped
// without buffering.
type streamTable struct {
	buffers map[string][]byte
	skip    map[string]int
}

func newStreamTable() *streamTable {
	return &streamTable{
		buffers: make(map[string][]byte),
		skip:    make(map[string]int),
	}
}

func (s *streamTable) push(flow string, payload []byte) [][]byte {
	if n := s.skip[flow]; n > 0 {
		if len(payload) <= n {
			s.skip[flow] = n - len(payload)
			if s.skip[flow] == 0 {
				delete(s.skip, flow)
			}
			return nil
		}
		delete(s.skip, flow)
		payload = payload[n:]
	}

	buf := append(s.buffers[flow], payload...)

	var msgs [][]byte
	for len(buf) >= 4 {
		// session message type, anything else (keepalives) carries no SMB
		if buf[0] != 0x00 && buf[0] != 0x85 {
			log.Debugf("%s: lost NetBIOS framing, dropping %d bytes", flow, len(buf))
			buf = nil
			break
		}
		size := int(buf[1])<<16 | int(buf[2])<<8 | int(buf[3])
		if size > maxMessageSize {
			log.Debugf("%s: %d byte message exceeds buffer limit, skipping it", flow, size)
			if rest := len(buf) - 4; rest < size {
				s.skip[flow] = size - rest
				buf = nil
				break
			}
			buf = buf[4+size:]
			continue
		}
		if len(buf) < 4+size {
			break
		}
		if buf[0] == 0x00 && size > 0 {
			msgs = append(msgs, slices.Clone(buf[:4+size]))
		}
		buf = buf[4+size:]
	}

	if len(buf) == 0 {
		delete(s.buffers, flow)
	} else {
		s.buffers[flow] = buf
	}
	return msgs
}

// portList is a repeatable -port flag
type portList []uint16

func (p *portList) String() string {
	return fmt.Sprint([]uint16(*p))
}

func (p *portList) Set(v string) error {
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return fmt.Errorf("bad port %q: %w", v, err)
	}
	*p = append(*p, uint16(n))
	return nil
}

func (p portList) has(port uint16) bool {
	return slices.Contains(p, port)
}
