// SPDX-License-Identifier: Apache-2.0

package secblob

import "slices"

//go:generate  go run ./build-tools/gen-mech-oids -o mechs_gen.go

// Mech identifies a security mechanism that may be offered in a SPNEGO mechanism list.
// Only the mechanisms in the generated table are recognized; every other OID maps to
// MECH_UNKNOWN.
type Mech int

// Recognized mechanisms.  If the order here changes also change gen-mech-oids.go!
const (
	// Kerberos 5 as shipped (with an incorrect OID) by Windows 2000
	MECH_MS_KRB5 Mech = iota
	// Official Kerberos Mechanism (IETF, RFC 1964)
	MECH_KRB5
	MECH_KRB5_NAME
	MECH_KRB5_PRINCIPAL
	MECH_KRB5_USER_TO_USER
	// Microsoft NTLM Security Support Provider
	MECH_NTLMSSP
	// SPNEGO Extended Negotiation
	MECH_NEGOEX
	_MECH_LAST

	// MECH_UNKNOWN is returned for OIDs that are not in the table.
	MECH_UNKNOWN Mech = -1
)

// Oid returns the object identifier corresponding to the mechanism, or nil for MECH_UNKNOWN.
func (mech Mech) Oid() Oid {
	if mech == MECH_UNKNOWN {
		return nil
	}
	if mech < 0 || mech >= _MECH_LAST {
		panic(ErrBadMech)
	}

	return mechs[mech].oid
}

// OidString returns the dotted-decimal object identifier associated with the mechanism.
func (mech Mech) OidString() string {
	if mech == MECH_UNKNOWN {
		return ""
	}
	if mech < 0 || mech >= _MECH_LAST {
		panic(ErrBadMech)
	}

	return mechs[mech].oidString
}

// String returns the printable name of the mechanism.
func (mech Mech) String() string {
	if mech == MECH_UNKNOWN {
		return "MECH_UNKNOWN"
	}
	if mech < 0 || mech >= _MECH_LAST {
		panic(ErrBadMech)
	}

	return mechs[mech].mech
}

// Description returns the human readable mechanism name used in trace output.
func (mech Mech) Description() string {
	if mech == MECH_UNKNOWN {
		return "unrecognized mechanism"
	}
	if mech < 0 || mech >= _MECH_LAST {
		panic(ErrBadMech)
	}

	return mechs[mech].desc
}

// MechFromOid returns the mechanism identified by the DER body of an OID.
//
// Returns:
//   - Mech: the corresponding mechanism, or MECH_UNKNOWN
//   - error: ErrBadMech if the OID is not recognized
func MechFromOid(oid Oid) (Mech, error) {
	for i, mech := range mechs {
		if slices.Equal(mech.oid, oid) {
			return Mech(i), nil
		}
	}

	return MECH_UNKNOWN, ErrBadMech
}

// MechFromOidString returns the mechanism identified by a dotted-decimal OID.  The comparison
// is an exact string match.
func MechFromOidString(oid string) (Mech, error) {
	mech, ok := mechsByString[oid]
	if !ok {
		return MECH_UNKNOWN, ErrBadMech
	}

	return mech, nil
}

var mechsByString = func() map[string]Mech {
	m := make(map[string]Mech, len(mechs))
	for i, mech := range mechs {
		m[mech.oidString] = Mech(i)
	}
	return m
}()
