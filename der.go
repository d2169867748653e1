// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"errors"

	"github.com/jcmturner/gofork/encoding/asn1"
)

var errTrailingData = errors.New("trailing data after last element")

// nextValue decodes the first DER value in b and returns it with the bytes that follow.
func nextValue(b []byte) (asn1.RawValue, []byte, error) {
	var raw asn1.RawValue
	rest, err := asn1.Unmarshal(b, &raw)
	return raw, rest, err
}

// children decodes every DER value in b, which is the content of a constructed value.
// Each iteration consumes at least the tag and length octets, so the loop is bounded by
// len(b).
func children(b []byte) ([]asn1.RawValue, error) {
	var vals []asn1.RawValue
	for len(b) > 0 {
		raw, rest, err := nextValue(b)
		if err != nil {
			return nil, err
		}
		if len(rest) >= len(b) {
			return nil, errTrailingData
		}
		vals = append(vals, raw)
		b = rest
	}

	return vals, nil
}

func isUniversal(raw asn1.RawValue, tag int) bool {
	return raw.Class == asn1.ClassUniversal && raw.Tag == tag
}

// decodeOid returns the object identifier held in raw, which must be a universal OID value.
func decodeOid(raw asn1.RawValue) (asn1.ObjectIdentifier, error) {
	var oid asn1.ObjectIdentifier
	_, err := asn1.Unmarshal(raw.FullBytes, &oid)
	return oid, err
}
