// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/jcmturner/gokrb5/v8/iana/errorcode"

	secblob "github.com/golang-auth/go-secblob"
	"github.com/golang-auth/go-secblob/krb5"
	"github.com/golang-auth/go-secblob/negtoken"
	"github.com/golang-auth/go-secblob/ntlm"
	"github.com/golang-auth/go-secblob/smb"
)

// record is one JSON line of output
type record struct {
	Time      time.Time `json:"time"`
	Flow      string    `json:"flow"`
	Dialect   string    `json:"dialect"`
	Direction string    `json:"direction"`
	SessionID uint64    `json:"session_id"`
	Status    string    `json:"status"`

	Offered     []string           `json:"offered_mechs,omitempty"`
	Ntlmssp     *ntlmRecord        `json:"ntlmssp,omitempty"`
	Krb5        *krb5Record        `json:"krb5,omitempty"`
	Negotiation *negotiationRecord `json:"negotiation,omitempty"`
}

type ntlmRecord struct {
	Host    string `json:"host"`
	User    string `json:"user"`
	Domain  string `json:"domain"`
	Version string `json:"version,omitempty"`
}

type krb5Record struct {
	Realm string `json:"realm"`
	SName string `json:"sname"`
	EType int32  `json:"etype"`
	KVNO  int    `json:"kvno"`
}

type negotiationRecord struct {
	State string `json:"state"`
	Mech  string `json:"mech,omitempty"`
	Token string `json:"token,omitempty"`
}

// newRecord describes a session setup message.  It returns nil when a request carries no
// credential and a response carries no decodable negotiation token, so that empty
// exchanges are not printed.
func newRecord(parser *secblob.Parser, ts time.Time, flow string, ss *smb.SessionSetup) *record {
	rec := &record{
		Time:      ts,
		Flow:      flow,
		Dialect:   ss.Dialect.String(),
		Direction: ss.Direction.String(),
		SessionID: ss.SessionID,
		Status:    fmt.Sprintf("0x%08x", ss.Status),
	}

	if len(ss.SecurityBlob) == 0 {
		return nil
	}

	switch ss.Direction {
	case smb.Request:
		req := parser.Parse(ss.SecurityBlob)
		if req == nil || (req.Krb == nil && req.Ntlmssp == nil) {
			return nil
		}
		rec.Offered = offeredMechs(ss.SecurityBlob)
		if req.Ntlmssp != nil {
			rec.Ntlmssp = newNtlmRecord(req.Ntlmssp)
		}
		if req.Krb != nil {
			rec.Krb5 = &krb5Record{
				Realm: req.Krb.Realm,
				SName: req.Krb.ServiceName(),
				EType: req.Krb.EType,
				KVNO:  req.Krb.KVNO,
			}
		}
	case smb.Response:
		rec.Negotiation = newNegotiationRecord(ss.SecurityBlob)
		if rec.Negotiation == nil {
			return nil
		}
	}

	return rec
}

// offeredMechs lists the recognized mechanisms of a negTokenInit, nil for a bare NTLMSSP
// message or a later negTokenResp leg
func offeredMechs(blob []byte) []string {
	init, err := negtoken.DecodeNegTokenInit(blob)
	if err != nil {
		return nil
	}

	var names []string
	for _, mech := range init.Mechs() {
		names = append(names, mech.String())
	}
	return names
}

func newNtlmRecord(nd *secblob.NtlmsspData) *ntlmRecord {
	r := &ntlmRecord{
		Host:   string(nd.Host),
		User:   string(nd.User),
		Domain: string(nd.Domain),
	}
	if nd.Version != nil {
		r.Version = nd.Version.String()
	}
	return r
}

func newNegotiationRecord(blob []byte) *negotiationRecord {
	resp, err := negtoken.DecodeNegTokenResp(blob)
	if err != nil {
		log.Debugf("response blob is not a negTokenResp: %s", err)
		return nil
	}

	r := &negotiationRecord{
		State: resp.State().String(),
		Token: describeResponseToken(resp.ResponseToken),
	}
	if mech := resp.Mech(); mech != secblob.MECH_UNKNOWN {
		r.Mech = mech.String()
	}
	return r
}

// describeResponseToken names the mechanism message the acceptor sent back
func describeResponseToken(tok []byte) string {
	if len(tok) == 0 {
		return ""
	}

	if m, err := ntlm.Parse(tok); err == nil {
		return m.Type.String()
	}

	var kt krb5.Token
	if err := kt.Unmarshal(tok); err != nil {
		log.Debugf("unrecognized response token: %s", err)
		return "unknown"
	}
	switch {
	case kt.APRep != nil:
		return "KRB_AP_REP"
	case kt.KRBError != nil:
		return "KRB_ERROR " + errorcode.Lookup(kt.KRBError.ErrorCode)
	}
	return "unknown"
}
