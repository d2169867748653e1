// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"github.com/jcmturner/gofork/encoding/asn1"

	"github.com/golang-auth/go-secblob/krb5"
)

// negotiation holds the state of one negotiation token walk.
type negotiation struct {
	sawKerberos bool
	sawNtlmssp  bool
	ticket      *krb5.Ticket
	ntlmssp     *NtlmsspData
}

// negotiate walks the elements of a negTokenInit SEQUENCE.  Mechanism lists set the
// Kerberos and NTLMSSP flags, and OCTET STRINGs are handed to the credential dispatcher
// in the order they appear.  Malformed elements are skipped; only a malformed outer
// SEQUENCE is an error.
func (p *Parser) negotiate(b []byte) (*SpnegoRequest, error) {
	seq, _, err := nextValue(b)
	if err != nil {
		return nil, stageError(StageNegotiate, ErrMalformedSequence, err)
	}
	if !isUniversal(seq, asn1.TagSequence) || !seq.IsCompound {
		return nil, stageError(StageNegotiate, ErrMalformedSequence, nil)
	}
	elems, err := children(seq.Bytes)
	if err != nil {
		return nil, stageError(StageNegotiate, ErrMalformedSequence, err)
	}

	st := &negotiation{}
	for i, e := range elems {
		if !e.IsCompound {
			p.debugf("element %d: class %d tag %d is not a nested value, skipping", i, e.Class, e.Tag)
			continue
		}
		inner, _, err := nextValue(e.Bytes)
		if err != nil {
			p.debugf("element %d: %s, skipping", i, err)
			continue
		}

		switch {
		case isUniversal(inner, asn1.TagSequence) && inner.IsCompound:
			p.mechTypes(st, inner)
		case isUniversal(inner, asn1.TagOctetString) && !inner.IsCompound:
			p.dispatch(st, inner.Bytes)
		default:
			p.debugf("element %d: ignoring class %d tag %d", i, inner.Class, inner.Tag)
		}
	}

	return &SpnegoRequest{Krb: st.ticket, Ntlmssp: st.ntlmssp}, nil
}

// mechTypes classifies each OID of a MechTypeList.
func (p *Parser) mechTypes(st *negotiation, list asn1.RawValue) {
	oids, err := children(list.Bytes)
	if err != nil {
		p.debugf("mechanism list: %s, skipping", err)
		return
	}

	for _, o := range oids {
		if !isUniversal(o, asn1.TagOID) {
			p.debugf("expected OID, got class %d tag %d", o.Class, o.Tag)
			continue
		}
		oid, err := decodeOid(o)
		if err != nil {
			p.debugf("bad OID %x: %s", o.Bytes, err)
			continue
		}

		mech, err := MechFromOidString(oid.String())
		if err != nil {
			p.debugf("unexpected OID %s", oid)
			continue
		}
		p.debugf("mechanism %s (%s)", mech.Description(), oid)

		switch mech {
		case MECH_KRB5:
			st.sawKerberos = true
		case MECH_NTLMSSP:
			st.sawNtlmssp = true
		}
	}
}

// dispatch decodes a mechToken according to the mechanisms offered so far.  Kerberos
// takes priority: when a Kerberos mechanism was offered the payload is only handed to
// the NTLMSSP extractor if the Parser allows it.  A ticket or NTLMSSP record that is
// already held is never replaced.
func (p *Parser) dispatch(st *negotiation, payload []byte) {
	if st.sawKerberos && st.ticket == nil {
		tkt, err := krb5.ParseTicketToken(payload)
		if err == nil {
			p.debugf("kerberos ticket for %s", tkt)
			st.ticket = tkt
			return
		}
		p.debugf("%s", stageError(StageKerberos, ErrKerberosToken, err))
		if !p.ntlmAfterKerberosFailure {
			return
		}
	}

	if !st.sawNtlmssp || st.ticket != nil || st.ntlmssp != nil {
		return
	}

	p.debugf("parsing expected NTLMSSP")
	nd, err := p.extractNtlmssp(payload)
	if err != nil {
		p.debugf("%s", err)
		return
	}
	st.ntlmssp = nd
}
