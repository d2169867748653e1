// SPDX-License-Identifier: Apache-2.0

// Package ntlm decodes the NTLMSSP messages exchanged during NTLM authentication
// [MS-NLMP].  It is a passive decoder: it recovers the fields carried on the wire and
// performs no cryptographic checks.
package ntlm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Signature starts every NTLMSSP message.
var Signature = []byte("NTLMSSP\x00")

// MessageType identifies the three messages of the NTLM handshake.
type MessageType uint32

const (
	TypeNegotiate    MessageType = 1
	TypeChallenge    MessageType = 2
	TypeAuthenticate MessageType = 3
)

func (t MessageType) String() string {
	switch t {
	case TypeNegotiate:
		return "NTLMSSP_NEGOTIATE"
	case TypeChallenge:
		return "NTLMSSP_CHALLENGE"
	case TypeAuthenticate:
		return "NTLMSSP_AUTH"
	}

	return fmt.Sprintf("NTLMSSP_UNKNOWN(%d)", uint32(t))
}

// NegotiateFlag is a bit of the NegotiateFlags field.
type NegotiateFlag uint32

const (
	NegotiateUnicode                NegotiateFlag = 0x00000001
	NegotiateOEM                    NegotiateFlag = 0x00000002
	RequestTarget                   NegotiateFlag = 0x00000004
	NegotiateSign                   NegotiateFlag = 0x00000010
	NegotiateSeal                   NegotiateFlag = 0x00000020
	NegotiateLMKey                  NegotiateFlag = 0x00000080
	NegotiateNTLM                   NegotiateFlag = 0x00000200
	NegotiateOEMDomainSupplied      NegotiateFlag = 0x00001000
	NegotiateOEMWorkstationSupplied NegotiateFlag = 0x00002000
	NegotiateAlwaysSign             NegotiateFlag = 0x00008000
	NegotiateExtendedSessionSec     NegotiateFlag = 0x00080000
	NegotiateTargetInfo             NegotiateFlag = 0x00800000
	NegotiateVersion                NegotiateFlag = 0x02000000
	Negotiate128                    NegotiateFlag = 0x20000000
	NegotiateKeyExch                NegotiateFlag = 0x40000000
	Negotiate56                     NegotiateFlag = 0x80000000
)

// Has reports whether every bit of f2 is set in f.
func (f NegotiateFlag) Has(f2 NegotiateFlag) bool {
	return f&f2 == f2
}

const (
	headerSize  = 12 // signature + message type
	versionSize = 8
)

var ErrNoSignature = errors.New("ntlm: NTLMSSP signature not found")
var ErrTruncated = errors.New("ntlm: message truncated")
var ErrBadOffset = errors.New("ntlm: payload field outside of message")
var ErrUnexpectedType = errors.New("ntlm: unexpected message type")

// Message is a decoded NTLMSSP message.  Exactly one of the typed fields is set,
// matching Type.
type Message struct {
	Type         MessageType
	Negotiate    *Negotiate
	Challenge    *Challenge
	Authenticate *Authenticate
}

// Parse locates the first NTLMSSP signature in b and decodes the message that starts
// there.  Bytes before the signature are ignored.  Messages of an unknown type decode
// successfully with only Type set.
func Parse(b []byte) (*Message, error) {
	idx := bytes.Index(b, Signature)
	if idx < 0 {
		return nil, ErrNoSignature
	}
	b = b[idx:]
	if len(b) < headerSize {
		return nil, ErrTruncated
	}

	m := &Message{Type: MessageType(binary.LittleEndian.Uint32(b[8:12]))}

	var err error
	switch m.Type {
	case TypeNegotiate:
		m.Negotiate, err = parseNegotiate(b)
	case TypeChallenge:
		m.Challenge, err = parseChallenge(b)
	case TypeAuthenticate:
		m.Authenticate, err = parseAuthenticate(b)
	}
	if err != nil {
		return nil, fmt.Errorf("ntlm: decoding %s: %w", m.Type, err)
	}

	return m, nil
}

// ParseAuthenticate decodes b and fails with ErrUnexpectedType unless it holds an
// AUTHENTICATE message.
func ParseAuthenticate(b []byte) (*Authenticate, error) {
	m, err := Parse(b)
	if err != nil {
		return nil, err
	}
	if m.Type != TypeAuthenticate {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedType, m.Type)
	}

	return m.Authenticate, nil
}

// Version is the optional VERSION structure of an NTLMSSP message.
type Version struct {
	Major    uint8
	Minor    uint8
	Build    uint16
	Revision uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d build %d rev %d", v.Major, v.Minor, v.Build, v.Revision)
}

func parseVersion(b []byte) *Version {
	return &Version{
		Major:    b[0],
		Minor:    b[1],
		Build:    binary.LittleEndian.Uint16(b[2:4]),
		Revision: b[7],
	}
}

func (v *Version) marshal() []byte {
	b := make([]byte, versionSize)
	b[0] = v.Major
	b[1] = v.Minor
	binary.LittleEndian.PutUint16(b[2:4], v.Build)
	b[7] = v.Revision
	return b
}

// payload field descriptor: length, maximum length, offset from the signature
type field struct {
	len    uint16
	maxLen uint16
	offset uint32
}

func readField(b []byte, at int) field {
	return field{
		len:    binary.LittleEndian.Uint16(b[at : at+2]),
		maxLen: binary.LittleEndian.Uint16(b[at+2 : at+4]),
		offset: binary.LittleEndian.Uint32(b[at+4 : at+8]),
	}
}

// bytes returns the payload the field points at.  Empty fields are valid whatever
// their offset.
func (f field) bytes(msg []byte) ([]byte, error) {
	if f.len == 0 {
		return nil, nil
	}
	start := uint64(f.offset)
	end := start + uint64(f.len)
	if start < headerSize || end > uint64(len(msg)) {
		return nil, fmt.Errorf("%w: offset %d length %d in %d bytes", ErrBadOffset, f.offset, f.len, len(msg))
	}

	return msg[start:end], nil
}

// lenient variant for fields that carry no identity data
func (f field) bytesOrNil(msg []byte) []byte {
	b, err := f.bytes(msg)
	if err != nil {
		return nil
	}
	return b
}

// payloadWriter lays out payload fields after a fixed header, in the order they are added.
type payloadWriter struct {
	header  []byte
	payload []byte
}

func newPayloadWriter(msgType MessageType, headerLen int) *payloadWriter {
	w := &payloadWriter{header: make([]byte, headerLen)}
	copy(w.header, Signature)
	binary.LittleEndian.PutUint32(w.header[8:12], uint32(msgType))
	return w
}

func (w *payloadWriter) putField(at int, data []byte) {
	offset := len(w.header) + len(w.payload)
	binary.LittleEndian.PutUint16(w.header[at:at+2], uint16(len(data)))
	binary.LittleEndian.PutUint16(w.header[at+2:at+4], uint16(len(data)))
	binary.LittleEndian.PutUint32(w.header[at+4:at+8], uint32(offset))
	w.payload = append(w.payload, data...)
}

func (w *payloadWriter) bytes() []byte {
	return append(w.header, w.payload...)
}
