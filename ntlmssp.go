// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"github.com/golang-auth/go-secblob/ntlm"
)

// NtlmsspData holds the identity fields of an NTLMSSP AUTHENTICATE message.  Host, User
// and Domain are the raw wire bytes with every zero byte removed, which turns the usual
// UTF-16LE encoding of ASCII names into plain bytes.  It is not a UTF-16 decode: non
// ASCII names come out as arbitrary zero-free bytes.
type NtlmsspData struct {
	Host    []byte
	User    []byte
	Domain  []byte
	Version *ntlm.Version
}

// extractNtlmssp decodes the first NTLMSSP message in b.  It returns nil, nil for message
// types that carry no identity, and an error only when b holds no decodable message.
func (p *Parser) extractNtlmssp(b []byte) (*NtlmsspData, error) {
	m, err := ntlm.Parse(b)
	if err != nil {
		return nil, stageError(StageNTLMSSP, ErrNtlmsspMessage, err)
	}
	p.debugf("NTLMSSP type %d/%s", uint32(m.Type), m.Type)

	if m.Type != ntlm.TypeAuthenticate {
		return nil, nil
	}

	a := m.Authenticate
	return &NtlmsspData{
		Host:    stripNul(a.Workstation),
		User:    stripNul(a.UserName),
		Domain:  stripNul(a.DomainName),
		Version: a.Version,
	}, nil
}

// stripNul returns a copy of b without zero bytes.  The result is never nil.
func stripNul(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != 0x00 {
			out = append(out, c)
		}
	}
	return out
}
