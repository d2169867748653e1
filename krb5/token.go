// SPDX-License-Identifier: Apache-2.0

package krb5

/*
 * Derived from github.com/jcmturner/gokrb5/v8/spnego/krb5Token.go
 *
 * The modified version accepts the Microsoft Kerberos OID, returns
 * sentinel errors and drops verification.
 */

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jcmturner/gofork/encoding/asn1"
	"github.com/jcmturner/gokrb5/v8/asn1tools"
	"github.com/jcmturner/gokrb5/v8/messages"
)

// GSSAPI KRB5 MechToken IDs.
const (
	TOK_ID_KRB_AP_REQ = "0100"
	TOK_ID_KRB_AP_REP = "0200"
	TOK_ID_KRB_ERROR  = "0300"
)

var ErrBadTokenOID = errors.New("krb5: token is not a Kerberos 5 token")
var ErrBadTokenID = errors.New("krb5: unexpected token ID")
var ErrTokenTooShort = errors.New("krb5: token too short")

// Token is a Kerberos 5 GSS-API context token.  One of APReq, APRep and KRBError is
// set, matching TokID.
type Token struct {
	OID      asn1.ObjectIdentifier
	TokID    []byte
	APReq    *messages.APReq
	APRep    *APRep
	KRBError *messages.KRBError
}

// NewAPReqToken returns a token carrying req under the Kerberos 5 OID.
func NewAPReqToken(req messages.APReq) *Token {
	tokID, _ := hex.DecodeString(TOK_ID_KRB_AP_REQ)
	return &Token{OID: OID(), TokID: tokID, APReq: &req}
}

// Marshal a Token into a slice of bytes.
func (m *Token) Marshal() (outTok []byte, err error) {
	// Create the header
	b, _ := asn1.Marshal(m.OID)
	b = append(b, m.TokID...)
	var tb []byte
	switch hex.EncodeToString(m.TokID) {
	case TOK_ID_KRB_AP_REQ:
		tb, err = m.APReq.Marshal()
		if err != nil {
			err = fmt.Errorf("krb5: error marshalling AP-REQ for MechToken: %w", err)
		}
	case TOK_ID_KRB_AP_REP:
		tb, err = m.APRep.Marshal()
		if err != nil {
			err = fmt.Errorf("krb5: error marshalling AP-REP for MechToken: %w", err)
		}
	case TOK_ID_KRB_ERROR:
		tb, err = m.KRBError.Marshal()
		if err != nil {
			err = fmt.Errorf("krb5: error marshalling KRB-ERROR for MechToken: %w", err)
		}
	default:
		err = fmt.Errorf("%w: %x", ErrBadTokenID, m.TokID)
	}
	if err != nil {
		return
	}
	b = append(b, tb...)

	outTok = asn1tools.AddASNAppTag(b, 0)
	return
}

// Unmarshal a Token.
func (m *Token) Unmarshal(b []byte) error {
	m.APReq = nil
	m.APRep = nil
	m.KRBError = nil

	var oid asn1.ObjectIdentifier
	r, err := asn1.UnmarshalWithParams(b, &oid, fmt.Sprintf("application,explicit,tag:%v", 0))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadTokenOID, err)
	}
	if !oid.Equal(OID()) && !oid.Equal(MSOID()) {
		return fmt.Errorf("%w: OID is %s", ErrBadTokenOID, oid.String())
	}
	m.OID = oid
	if len(r) < 2 {
		return ErrTokenTooShort
	}
	m.TokID = r[0:2]
	switch hex.EncodeToString(m.TokID) {
	case TOK_ID_KRB_AP_REQ:
		var a messages.APReq
		err = a.Unmarshal(r[2:])
		if err != nil {
			return fmt.Errorf("krb5: error unmarshalling AP_REQ: %w", err)
		}
		m.APReq = &a
	case TOK_ID_KRB_AP_REP:
		var a APRep
		err = a.Unmarshal(r[2:])
		if err != nil {
			return fmt.Errorf("krb5: error unmarshalling AP_REP: %w", err)
		}
		m.APRep = &a
	case TOK_ID_KRB_ERROR:
		var a messages.KRBError
		err = a.Unmarshal(r[2:])
		if err != nil {
			return fmt.Errorf("krb5: error unmarshalling KRBError: %w", err)
		}
		m.KRBError = &a
	default:
		return fmt.Errorf("%w: %x", ErrBadTokenID, m.TokID)
	}
	return nil
}
