// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"fmt"

	"github.com/jcmturner/gofork/encoding/asn1"
)

// locateSpnego strips the GSS-API initial context token header from blob (RFC 2743 § 3.1)
// and checks that the mechanism is SPNEGO.  It returns the inner token that follows the
// mechanism OID.
func locateSpnego(blob []byte) ([]byte, error) {
	outer, _, err := nextValue(blob)
	if err != nil {
		return nil, stageError(StageLocate, ErrMalformedTag, err)
	}
	if !outer.IsCompound {
		return nil, stageError(StageLocate, ErrMalformedTag, nil)
	}

	var oid asn1.ObjectIdentifier
	token, err := asn1.Unmarshal(outer.Bytes, &oid)
	if err != nil {
		return nil, stageError(StageLocate, ErrMissingOid, err)
	}
	if oid.String() != SpnegoOidString {
		return nil, stageError(StageLocate, ErrNotSpnego, fmt.Errorf("mechanism %s", oid))
	}

	return token, nil
}

// unwrapNegToken removes the context-specific tag around a negTokenInit or negTokenResp
// and returns its content.
func unwrapNegToken(token []byte) ([]byte, error) {
	wrapper, _, err := nextValue(token)
	if err != nil {
		return nil, stageError(StageUnwrap, ErrMalformedWrapper, err)
	}
	if !wrapper.IsCompound {
		return nil, stageError(StageUnwrap, ErrMalformedWrapper, nil)
	}

	return wrapper.Bytes, nil
}
