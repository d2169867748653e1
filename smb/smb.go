// SPDX-License-Identifier: Apache-2.0

// Package smb locates the security blob in SMB1 SESSION_SETUP_ANDX [MS-SMB 2.2.4.6] and
// SMB2 SESSION_SETUP [MS-SMB2 2.2.5, 2.2.6] messages.  It decodes only the fields needed
// to find the blob; it does not track sessions.
package smb

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jfjallid/golog"
)

var log = golog.Get("github.com/golang-auth/go-secblob/smb")

var ErrNotSMB = errors.New("smb: not an SMB message")
var ErrNotSessionSetup = errors.New("smb: not a session setup message")
var ErrBadSecurityBuffer = errors.New("smb: security buffer outside of message")
var ErrTruncated = errors.New("smb: message truncated")

var (
	protocolSMB1 = []byte{0xff, 'S', 'M', 'B'}
	protocolSMB2 = []byte{0xfe, 'S', 'M', 'B'}
)

const netbiosHeaderSize = 4

// Dialect is the SMB protocol family of a message.
type Dialect int

const (
	SMB1 Dialect = iota + 1
	SMB2
)

func (d Dialect) String() string {
	switch d {
	case SMB1:
		return "SMB1"
	case SMB2:
		return "SMB2"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// Direction tells requests from responses.
type Direction int

const (
	Request Direction = iota + 1
	Response
)

func (d Direction) String() string {
	switch d {
	case Request:
		return "request"
	case Response:
		return "response"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// SessionSetup is the part of a session setup message needed to follow authentication.
// SessionID is the SMB2 SessionId or the SMB1 UID.
type SessionSetup struct {
	Dialect      Dialect
	Direction    Direction
	Status       uint32
	SessionID    uint64
	SecurityBlob []byte
}

// ParseSessionSetup decodes an SMB1 or SMB2 session setup message.  msg may start with a
// 4-byte NetBIOS session service header.  SecurityBlob is a sub-slice of msg.
func ParseSessionSetup(msg []byte) (*SessionSetup, error) {
	msg = stripNetBIOS(msg)
	if len(msg) < 4 {
		return nil, ErrNotSMB
	}

	switch {
	case bytes.Equal(msg[:4], protocolSMB2):
		return parseSMB2(msg)
	case bytes.Equal(msg[:4], protocolSMB1):
		return parseSMB1(msg)
	}

	return nil, ErrNotSMB
}

// SecurityBlob returns the security blob of a session setup request.
func SecurityBlob(msg []byte) ([]byte, error) {
	ss, err := ParseSessionSetup(msg)
	if err != nil {
		return nil, err
	}
	if ss.Direction != Request {
		return nil, fmt.Errorf("%w: %s %s", ErrNotSessionSetup, ss.Dialect, ss.Direction)
	}

	return ss.SecurityBlob, nil
}

// stripNetBIOS removes a NetBIOS session message header (RFC 1002 § 4.3.1) when one
// precedes an SMB protocol identifier.
func stripNetBIOS(msg []byte) []byte {
	if len(msg) < netbiosHeaderSize+4 || msg[0] != 0x00 {
		return msg
	}
	body := msg[netbiosHeaderSize:]
	if bytes.Equal(body[:4], protocolSMB1) || bytes.Equal(body[:4], protocolSMB2) {
		return body
	}
	return msg
}

// securityBuffer returns length bytes at offset, measured from the start of the SMB header.
func securityBuffer(msg []byte, offset, length int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	if offset < 0 || offset+length > len(msg) {
		return nil, fmt.Errorf("%w: offset %d length %d in %d bytes", ErrBadSecurityBuffer, offset, length, len(msg))
	}

	return msg[offset : offset+length], nil
}
