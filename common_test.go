// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"encoding/binary"
	"testing"

	"github.com/jcmturner/gokrb5/v8/iana/msgtype"
	"github.com/jcmturner/gokrb5/v8/messages"
	"github.com/jcmturner/gokrb5/v8/types"

	"github.com/golang-auth/go-secblob/krb5"
	"github.com/golang-auth/go-secblob/ntlm"
)

// derWrap encodes a DER value with the given identifier octet.
func derWrap(tag byte, data ...[]byte) []byte {
	var body []byte
	for _, d := range data {
		body = append(body, d...)
	}

	out := []byte{tag}
	switch n := len(body); {
	case n < 0x80:
		out = append(out, byte(n))
	case n < 0x100:
		out = append(out, 0x81, byte(n))
	default:
		out = append(out, 0x82, byte(n>>8), byte(n))
	}

	return append(out, body...)
}

func derOid(o Oid) []byte {
	return derWrap(0x06, o)
}

func oidSeq(oids ...Oid) []byte {
	var enc [][]byte
	for _, o := range oids {
		enc = append(enc, derOid(o))
	}
	return derWrap(0x30, enc...)
}

func mechTypeList(oids ...Oid) []byte {
	return derWrap(0xa0, oidSeq(oids...))
}

func mechToken(token []byte) []byte {
	return derWrap(0xa2, derWrap(0x04, token))
}

// spnegoBlob builds a GSS-API SPNEGO initial context token around negTokenInit elements.
func spnegoBlob(elems ...[]byte) []byte {
	negTokenInit := derWrap(0xa0, derWrap(0x30, elems...))
	return derWrap(0x60, derOid(SpnegoOid), negTokenInit)
}

func utf16le(s string) []byte {
	b := make([]byte, 0, len(s)*2)
	for _, r := range s {
		b = append(b, byte(r), 0)
	}
	return b
}

func sampleAuthenticate() []byte {
	a := &ntlm.Authenticate{
		Flags:               ntlm.NegotiateUnicode | ntlm.NegotiateNTLM,
		NtChallengeResponse: []byte("0123456789abcdef0123456789abcdef"),
		DomainName:          utf16le("WORK\x00"),
		UserName:            utf16le("bob\x00"),
		Workstation:         utf16le("HOST\x00"),
		Version:             &ntlm.Version{Major: 10, Minor: 0, Build: 17763, Revision: 15},
	}
	return a.Marshal()
}

func sampleNegotiate() []byte {
	n := &ntlm.Negotiate{Flags: ntlm.NegotiateUnicode | ntlm.NegotiateNTLM | ntlm.RequestTarget}
	return n.Marshal()
}

func sampleAPReq() messages.APReq {
	pn, realm := types.ParseSPNString("cifs/fs1.example.com@EXAMPLE.COM")
	apreq := messages.APReq{
		PVNO:      5,
		MsgType:   msgtype.KRB_AP_REQ,
		APOptions: types.NewKrbFlags(),
		Ticket: messages.Ticket{
			TktVNO: 5,
			Realm:  realm,
			SName:  pn,
			EncPart: types.EncryptedData{
				EType:  18,
				KVNO:   3,
				Cipher: []byte("ticket ciphertext"),
			},
		},
		EncryptedAuthenticator: types.EncryptedData{
			EType:  18,
			Cipher: []byte("authenticator ciphertext"),
		},
	}
	binary.BigEndian.PutUint32(apreq.APOptions.Bytes, 0x20000000) // mutual-required

	return apreq
}

func sampleKrbToken(t *testing.T) []byte {
	t.Helper()

	b, err := krb5.NewAPReqToken(sampleAPReq()).Marshal()
	if err != nil {
		t.Fatalf("marshal AP-REQ token: %v", err)
	}
	return b
}
