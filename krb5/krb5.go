// SPDX-License-Identifier: Apache-2.0

// Package krb5 decodes the Kerberos 5 GSS-API initial context tokens (RFC 4121 § 4.1)
// that carry an AP-REQ inside a SPNEGO mechToken.  Only the cleartext ticket header is
// extracted; nothing is decrypted.
package krb5

import (
	"fmt"

	"github.com/jcmturner/gofork/encoding/asn1"
	"github.com/jcmturner/gokrb5/v8/types"
)

// OID returns the Kerberos 5 mechanism OID (RFC 1964).
func OID() asn1.ObjectIdentifier {
	return asn1.ObjectIdentifier{1, 2, 840, 113554, 1, 2, 2}
}

// MSOID returns the incorrect Kerberos 5 OID used by Windows 2000 and still sent by
// Windows clients alongside the real one.
func MSOID() asn1.ObjectIdentifier {
	return asn1.ObjectIdentifier{1, 2, 840, 48018, 1, 2, 2}
}

// Ticket is the cleartext part of the service ticket presented in an AP-REQ.
type Ticket struct {
	Realm string
	SName types.PrincipalName
	EType int32
	KVNO  int
}

// ServiceName returns the service principal without the realm, eg. cifs/fs1.example.com
func (t Ticket) ServiceName() string {
	return t.SName.PrincipalNameString()
}

func (t Ticket) String() string {
	return fmt.Sprintf("%s@%s", t.ServiceName(), t.Realm)
}

// ParseTicketToken decodes a GSS-API Kerberos initial context token holding an AP-REQ
// and returns the ticket it carries.
func ParseTicketToken(b []byte) (*Ticket, error) {
	var tok Token
	if err := tok.Unmarshal(b); err != nil {
		return nil, err
	}
	if tok.APReq == nil {
		return nil, fmt.Errorf("%w: %x is not an AP-REQ", ErrBadTokenID, tok.TokID)
	}

	tkt := tok.APReq.Ticket
	return &Ticket{
		Realm: tkt.Realm,
		SName: tkt.SName,
		EType: tkt.EncPart.EType,
		KVNO:  tkt.EncPart.KVNO,
	}, nil
}
