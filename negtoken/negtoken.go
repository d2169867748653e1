// SPDX-License-Identifier: Apache-2.0

// Package negtoken encodes and decodes SPNEGO negotiation tokens (RFC 4178 § 4.2).  Decoding
// is BER-lenient because Windows does not always emit DER.
package negtoken

import (
	"encoding/asn1"
	"errors"
	"fmt"

	"github.com/geoffgarside/ber"

	secblob "github.com/golang-auth/go-secblob"
)

var ErrNoNegTokenInit = errors.New("negtoken: token holds no negTokenInit")

// SpnegoOid identifies the SPNEGO pseudo-mechanism.
var SpnegoOid = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 2}

// NegState is the negotiation state reported by the acceptor.
type NegState asn1.Enumerated

const (
	AcceptCompleted  NegState = 0
	AcceptIncomplete NegState = 1
	Reject           NegState = 2
	RequestMIC       NegState = 3
)

func (s NegState) String() string {
	switch s {
	case AcceptCompleted:
		return "accept-completed"
	case AcceptIncomplete:
		return "accept-incomplete"
	case Reject:
		return "reject"
	case RequestMIC:
		return "request-mic"
	}
	return fmt.Sprintf("NegState(%d)", int(s))
}

// initialContextToken ::= [APPLICATION 0] IMPLICIT SEQUENCE {
//   thisMech          MechType
//   innerContextToken negotiateToken
// }
//
// The slices stand in for the CHOICE: a one element slice tagged [0] or [1] encodes the
// same bytes as the explicitly tagged structure.
type initialContextToken struct {
	ThisMech asn1.ObjectIdentifier `asn1:"optional"`
	Init     []NegTokenInit        `asn1:"optional,tag:0"`
	Resp     []NegTokenResp        `asn1:"optional,tag:1"`
}

// NegTokenInit is sent by the initiator.
type NegTokenInit struct {
	MechTypes   []asn1.ObjectIdentifier `asn1:"explicit,optional,tag:0"`
	ReqFlags    asn1.BitString          `asn1:"explicit,optional,tag:1"`
	MechToken   []byte                  `asn1:"explicit,optional,tag:2"`
	MechListMIC []byte                  `asn1:"explicit,optional,tag:3"`
}

// NegTokenResp is sent by the acceptor, and by the initiator after the first round trip.
type NegTokenResp struct {
	NegState      asn1.Enumerated       `asn1:"optional,explicit,tag:0"`
	SupportedMech asn1.ObjectIdentifier `asn1:"optional,explicit,tag:1"`
	ResponseToken []byte                `asn1:"optional,explicit,tag:2"`
	MechListMIC   []byte                `asn1:"optional,explicit,tag:3"`
}

// State returns the negotiation state.
func (r *NegTokenResp) State() NegState {
	return NegState(r.NegState)
}

// Mech classifies the mechanism selected by the acceptor.  It returns MECH_UNKNOWN when
// the field is absent or holds an unrecognized mechanism.
func (r *NegTokenResp) Mech() secblob.Mech {
	if len(r.SupportedMech) == 0 {
		return secblob.MECH_UNKNOWN
	}
	mech, _ := secblob.MechFromOidString(r.SupportedMech.String())
	return mech
}

// Mechs returns the offered mechanisms that are recognized, in order of preference.
func (t *NegTokenInit) Mechs() []secblob.Mech {
	var mechs []secblob.Mech
	for _, oid := range t.MechTypes {
		if mech, err := secblob.MechFromOidString(oid.String()); err == nil {
			mechs = append(mechs, mech)
		}
	}
	return mechs
}

// EncodeNegTokenInit returns a GSS-API initial context token holding a SPNEGO negTokenInit
// that offers types and carries token for the first of them.
func EncodeNegTokenInit(types []asn1.ObjectIdentifier, token []byte) ([]byte, error) {
	bs, err := asn1.Marshal(
		initialContextToken{
			ThisMech: SpnegoOid,
			Init: []NegTokenInit{
				{
					MechTypes: types,
					MechToken: token,
				},
			},
		})
	if err != nil {
		return nil, err
	}

	bs[0] = 0x60 // [APPLICATION 0] IMPLICIT

	return bs, nil
}

// DecodeNegTokenInit decodes a GSS-API initial context token holding a negTokenInit.
func DecodeNegTokenInit(bs []byte) (*NegTokenInit, error) {
	var init initialContextToken

	_, err := ber.UnmarshalWithParams(bs, &init, "application,tag:0")
	if err != nil {
		return nil, err
	}
	if !init.ThisMech.Equal(SpnegoOid) || len(init.Init) == 0 {
		return nil, ErrNoNegTokenInit
	}

	return &init.Init[0], nil
}

// EncodeNegTokenResp returns a [1] tagged negTokenResp.  Empty arguments are omitted.
func EncodeNegTokenResp(state NegState, typ asn1.ObjectIdentifier, token, mechListMIC []byte) ([]byte, error) {
	bs, err := asn1.Marshal(
		initialContextToken{
			Resp: []NegTokenResp{
				{
					NegState:      asn1.Enumerated(state),
					SupportedMech: typ,
					ResponseToken: token,
					MechListMIC:   mechListMIC,
				},
			},
		})
	if err != nil {
		return nil, err
	}

	// drop the SEQUENCE header
	skip := 1
	if bs[skip] < 128 {
		skip += 1
	} else {
		skip += int(bs[skip]) - 128 + 1
	}

	return bs[skip:], nil
}

// DecodeNegTokenResp decodes a [1] tagged negTokenResp.
func DecodeNegTokenResp(bs []byte) (*NegTokenResp, error) {
	var resp NegTokenResp

	_, err := ber.UnmarshalWithParams(bs, &resp, "explicit,tag:1")
	if err != nil {
		return nil, err
	}

	return &resp, nil
}
