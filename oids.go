// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"fmt"

	"github.com/jcmturner/gofork/encoding/asn1"
)

// Oid represents an Object Identifier as carried in security blobs. Elements of the byte slice
// represent the DER encoding of the object identifier, excluding the ASN.1 header (tag value
// 0x06 and length), the same form used by the GSSAPI C bindings.
//
// OID sets are represented as slices of Oid types ([]Oid).
type Oid []byte

// SpnegoOidString is the dotted-decimal form of the SPNEGO pseudo-mechanism OID (RFC 4178).
const SpnegoOidString = "1.3.6.1.5.5.2"

// SpnegoOid is the DER body of the SPNEGO pseudo-mechanism OID.
var SpnegoOid = Oid{0x2b, 0x06, 0x01, 0x05, 0x05, 0x02}

// String returns the dotted-decimal form of the object identifier, or an empty
// string if the encoding is not a valid OID.
func (o Oid) String() string {
	id, err := o.ObjectIdentifier()
	if err != nil {
		return ""
	}
	return id.String()
}

// ObjectIdentifier decodes the OID body into its arcs.
func (o Oid) ObjectIdentifier() (asn1.ObjectIdentifier, error) {
	full, err := asn1.Marshal(asn1.RawValue{Class: asn1.ClassUniversal, Tag: asn1.TagOID, Bytes: o})
	if err != nil {
		return nil, err
	}

	var id asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(full, &id); err != nil {
		return nil, fmt.Errorf("secblob: bad OID encoding %x: %w", []byte(o), err)
	}
	return id, nil
}

// OidFromObjectIdentifier returns the DER body of id.
func OidFromObjectIdentifier(id asn1.ObjectIdentifier) (Oid, error) {
	full, err := asn1.Marshal(id)
	if err != nil {
		return nil, err
	}

	var raw asn1.RawValue
	if _, err := asn1.Unmarshal(full, &raw); err != nil {
		return nil, err
	}
	return Oid(raw.Bytes), nil
}
