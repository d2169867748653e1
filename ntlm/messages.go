// SPDX-License-Identifier: Apache-2.0

package ntlm

import "encoding/binary"

// Negotiate is the NEGOTIATE (type 1) message sent by the client.
type Negotiate struct {
	Flags       NegotiateFlag
	DomainName  []byte
	Workstation []byte
	Version     *Version
}

// Challenge is the CHALLENGE (type 2) message sent by the server.
type Challenge struct {
	Flags           NegotiateFlag
	TargetName      []byte
	ServerChallenge [8]byte
	TargetInfo      []byte
	Version         *Version
}

// Authenticate is the AUTHENTICATE (type 3) message sent by the client.  DomainName,
// UserName and Workstation are the raw wire bytes, UTF-16LE when NegotiateUnicode is set.
type Authenticate struct {
	Flags                     NegotiateFlag
	LmChallengeResponse       []byte
	NtChallengeResponse       []byte
	DomainName                []byte
	UserName                  []byte
	Workstation               []byte
	EncryptedRandomSessionKey []byte
	Version                   *Version
}

const (
	negotiateMinSize    = 16
	negotiateHeaderSize = 32
	challengeMinSize    = 32
	challengeHeaderSize = 48
	authenticateMinSize = 64
)

func parseNegotiate(b []byte) (*Negotiate, error) {
	if len(b) < negotiateMinSize {
		return nil, ErrTruncated
	}

	m := &Negotiate{Flags: NegotiateFlag(binary.LittleEndian.Uint32(b[12:16]))}

	// very old clients send the flags only
	if len(b) >= negotiateHeaderSize {
		m.DomainName = readField(b, 16).bytesOrNil(b)
		m.Workstation = readField(b, 24).bytesOrNil(b)
	}
	if m.Flags.Has(NegotiateVersion) && len(b) >= negotiateHeaderSize+versionSize {
		m.Version = parseVersion(b[negotiateHeaderSize:])
	}

	return m, nil
}

func parseChallenge(b []byte) (*Challenge, error) {
	if len(b) < challengeMinSize {
		return nil, ErrTruncated
	}

	m := &Challenge{
		TargetName: readField(b, 12).bytesOrNil(b),
		Flags:      NegotiateFlag(binary.LittleEndian.Uint32(b[20:24])),
	}
	copy(m.ServerChallenge[:], b[24:32])

	if len(b) >= challengeHeaderSize {
		m.TargetInfo = readField(b, 40).bytesOrNil(b)
	}
	if m.Flags.Has(NegotiateVersion) && len(b) >= challengeHeaderSize+versionSize {
		m.Version = parseVersion(b[challengeHeaderSize:])
	}

	return m, nil
}

func parseAuthenticate(b []byte) (*Authenticate, error) {
	if len(b) < authenticateMinSize {
		return nil, ErrTruncated
	}

	m := &Authenticate{
		LmChallengeResponse:       readField(b, 12).bytesOrNil(b),
		NtChallengeResponse:       readField(b, 20).bytesOrNil(b),
		EncryptedRandomSessionKey: readField(b, 52).bytesOrNil(b),
		Flags:                     NegotiateFlag(binary.LittleEndian.Uint32(b[60:64])),
	}

	var err error
	if m.DomainName, err = readField(b, 28).bytes(b); err != nil {
		return nil, err
	}
	if m.UserName, err = readField(b, 36).bytes(b); err != nil {
		return nil, err
	}
	if m.Workstation, err = readField(b, 44).bytes(b); err != nil {
		return nil, err
	}

	if m.Flags.Has(NegotiateVersion) {
		if len(b) < authenticateMinSize+versionSize {
			return nil, ErrTruncated
		}
		m.Version = parseVersion(b[authenticateMinSize:])
	}

	return m, nil
}

// Marshal encodes the NEGOTIATE message.  The version record is written, and the
// NegotiateVersion flag set, when Version is not nil.
func (m *Negotiate) Marshal() []byte {
	flags := m.Flags
	headerLen := negotiateHeaderSize
	if m.Version != nil {
		flags |= NegotiateVersion
		headerLen += versionSize
	}

	w := newPayloadWriter(TypeNegotiate, headerLen)
	binary.LittleEndian.PutUint32(w.header[12:16], uint32(flags))
	w.putField(16, m.DomainName)
	w.putField(24, m.Workstation)
	if m.Version != nil {
		copy(w.header[negotiateHeaderSize:], m.Version.marshal())
	}

	return w.bytes()
}

// Marshal encodes the CHALLENGE message.
func (m *Challenge) Marshal() []byte {
	flags := m.Flags
	headerLen := challengeHeaderSize
	if m.Version != nil {
		flags |= NegotiateVersion
		headerLen += versionSize
	}

	w := newPayloadWriter(TypeChallenge, headerLen)
	w.putField(12, m.TargetName)
	binary.LittleEndian.PutUint32(w.header[20:24], uint32(flags))
	copy(w.header[24:32], m.ServerChallenge[:])
	w.putField(40, m.TargetInfo)
	if m.Version != nil {
		copy(w.header[challengeHeaderSize:], m.Version.marshal())
	}

	return w.bytes()
}

// Marshal encodes the AUTHENTICATE message.  The version record is written, and the
// NegotiateVersion flag set, when Version is not nil.
func (m *Authenticate) Marshal() []byte {
	flags := m.Flags
	headerLen := authenticateMinSize
	if m.Version != nil {
		flags |= NegotiateVersion
		headerLen += versionSize
	}

	w := newPayloadWriter(TypeAuthenticate, headerLen)
	w.putField(28, m.DomainName)
	w.putField(36, m.UserName)
	w.putField(44, m.Workstation)
	w.putField(12, m.LmChallengeResponse)
	w.putField(20, m.NtChallengeResponse)
	w.putField(52, m.EncryptedRandomSessionKey)
	binary.LittleEndian.PutUint32(w.header[60:64], uint32(flags))
	if m.Version != nil {
		copy(w.header[authenticateMinSize:], m.Version.marshal())
	}

	return w.bytes()
}
