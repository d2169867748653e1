// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golang-auth/go-secblob/test"
)

func TestLocateSpnego(t *testing.T) {
	assert := test.NewAssert(t)

	negTokenInit := derWrap(0xa0, derWrap(0x30, mechTypeList(MECH_KRB5.Oid())))
	blob := derWrap(0x60, derOid(SpnegoOid), negTokenInit)

	token, err := locateSpnego(blob)
	assert.NoErrorFatal(err)
	assert.Equal(negTokenInit, token)

	// trailing bytes after the GSS-API token are not part of it
	token, err = locateSpnego(append(blob, 0xde, 0xad))
	assert.NoErrorFatal(err)
	assert.Equal(negTokenInit, token)
}

func TestLocateSpnegoErrors(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want error
	}{
		{"empty", nil, ErrMalformedTag},
		{"one byte", []byte{0x60}, ErrMalformedTag},
		{"length overruns", []byte{0x60, 0x10, 0x06, 0x06}, ErrMalformedTag},
		{"primitive outer", derWrap(0x04, derOid(SpnegoOid)), ErrMalformedTag},
		{"no OID", derWrap(0x60, derWrap(0x30)), ErrMissingOid},
		{"empty content", derWrap(0x60), ErrMissingOid},
		{"kerberos OID", derWrap(0x60, derOid(MECH_KRB5.Oid()), []byte{0x01, 0x00}), ErrNotSpnego},
		{"bare NTLMSSP", sampleNegotiate(), ErrMalformedTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := locateSpnego(tt.blob)
			assert.ErrorIs(t, err, tt.want)

			var se *StageError
			if assert.ErrorAs(t, err, &se) {
				assert.Equal(t, StageLocate, se.Stage)
			}
		})
	}
}

func TestUnwrapNegToken(t *testing.T) {
	assert := test.NewAssert(t)

	seq := derWrap(0x30, mechTypeList(MECH_NTLMSSP.Oid()))

	// negTokenInit
	inner, err := unwrapNegToken(derWrap(0xa0, seq))
	assert.NoErrorFatal(err)
	assert.Equal(seq, inner)

	// negTokenResp
	inner, err = unwrapNegToken(derWrap(0xa1, seq))
	assert.NoErrorFatal(err)
	assert.Equal(seq, inner)

	_, err = unwrapNegToken(nil)
	assert.ErrorIs(err, ErrMalformedWrapper)

	_, err = unwrapNegToken(derWrap(0x04, []byte("NTLMSSP\x00")))
	assert.ErrorIs(err, ErrMalformedWrapper)

	_, err = unwrapNegToken([]byte{0xa0, 0x82, 0x01})
	assert.ErrorIs(err, ErrMalformedWrapper)
}
