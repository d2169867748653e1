// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golang-auth/go-secblob/test"
)

func TestParseShortInput(t *testing.T) {
	assert := assert.New(t)

	for _, b := range [][]byte{nil, {}, {0x60}, {0x60, 0x00}, {0x30, 0x82}, []byte("NTLMSSP")} {
		assert.Nil(ParseSecBlob(b), "%x", b)
	}
}

func TestParseKerberos(t *testing.T) {
	assert := test.NewAssert(t)

	blob := spnegoBlob(
		mechTypeList(MECH_KRB5.Oid()),
		mechToken(sampleKrbToken(t)),
	)

	req := ParseSecBlob(blob)
	if !assert.NotNil(req) {
		return
	}
	assert.Nil(req.Ntlmssp)
	if assert.NotNil(req.Krb) {
		assert.Equal("EXAMPLE.COM", req.Krb.Realm)
		assert.Equal("cifs/fs1.example.com", req.Krb.ServiceName())
		assert.Equal(int32(18), req.Krb.EType)
		assert.Equal(3, req.Krb.KVNO)
	}
}

func TestParseWindowsKerberos(t *testing.T) {
	assert := test.NewAssert(t)

	// the mechanism list a domain joined Windows client sends
	blob := spnegoBlob(
		mechTypeList(MECH_MS_KRB5.Oid(), MECH_KRB5.Oid(), MECH_NEGOEX.Oid(), MECH_NTLMSSP.Oid()),
		mechToken(sampleKrbToken(t)),
	)

	req := ParseSecBlob(blob)
	if !assert.NotNil(req) {
		return
	}
	assert.NotNil(req.Krb)
	assert.Nil(req.Ntlmssp)
}

func TestParseNtlmssp(t *testing.T) {
	assert := test.NewAssert(t)

	blob := spnegoBlob(
		mechTypeList(MECH_NTLMSSP.Oid()),
		mechToken(sampleAuthenticate()),
	)

	req := ParseSecBlob(blob)
	if !assert.NotNil(req) {
		return
	}
	assert.Nil(req.Krb)
	if !assert.NotNil(req.Ntlmssp) {
		return
	}

	nd := req.Ntlmssp
	assert.Equal([]byte("HOST"), nd.Host)
	assert.Equal([]byte("bob"), nd.User)
	assert.Equal([]byte("WORK"), nd.Domain)
	for _, f := range [][]byte{nd.Host, nd.User, nd.Domain} {
		assert.NotContains(string(f), "\x00")
	}
	if assert.NotNil(nd.Version) {
		assert.Equal(uint8(10), nd.Version.Major)
		assert.Equal(uint16(17763), nd.Version.Build)
		assert.Equal(uint8(15), nd.Version.Revision)
	}
}

// A Kerberos mechanism in the list keeps its mechToken away from the NTLMSSP decoder,
// even when the Kerberos decode fails.
func TestParseKerberosPriority(t *testing.T) {
	assert := test.NewAssert(t)

	blob := spnegoBlob(
		mechTypeList(MECH_KRB5.Oid(), MECH_NTLMSSP.Oid()),
		mechToken(sampleAuthenticate()),
	)

	req := ParseSecBlob(blob)
	if assert.NotNil(req) {
		assert.Nil(req.Krb)
		assert.Nil(req.Ntlmssp)
	}

	req = NewParser(WithNTLMFallbackOnKerberosFailure()).Parse(blob)
	if assert.NotNil(req) {
		assert.Nil(req.Krb)
		assert.NotNil(req.Ntlmssp)
	}
}

func TestParseSpnegoWithoutCredential(t *testing.T) {
	assert := test.NewAssert(t)

	tests := []struct {
		name string
		blob []byte
	}{
		{"mechanism list only", spnegoBlob(mechTypeList(MECH_KRB5.Oid(), MECH_NTLMSSP.Oid()))},
		{"empty negTokenInit", spnegoBlob()},
		{"ntlmssp negotiate", spnegoBlob(mechTypeList(MECH_NTLMSSP.Oid()), mechToken(sampleNegotiate()))},
		{"unknown mechanisms", spnegoBlob(mechTypeList(Oid{0x2a, 0x03}), mechToken(sampleAuthenticate()))},
	}

	for _, tt := range tests {
		req := ParseSecBlob(tt.blob)
		if assert.NotNil(req, tt.name) {
			assert.Nil(req.Krb, tt.name)
			assert.Nil(req.Ntlmssp, tt.name)
		}
	}
}

func TestParseBareNtlmssp(t *testing.T) {
	assert := test.NewAssert(t)

	req := ParseSecBlob(sampleAuthenticate())
	if assert.NotNil(req) {
		assert.Nil(req.Krb)
		if assert.NotNil(req.Ntlmssp) {
			assert.Equal([]byte("bob"), req.Ntlmssp.User)
		}
	}

	assert.Nil(ParseSecBlob(sampleNegotiate()))
}

func TestParseFallback(t *testing.T) {
	auth := sampleAuthenticate()

	tests := []struct {
		name string
		blob []byte
		want bool
	}{
		// not SPNEGO: a raw Kerberos token
		{"kerberos token", nil, false},
		{"bad wrapper", derWrap(0x60, derOid(SpnegoOid), derWrap(0x04, auth)), true},
		{"bad sequence", derWrap(0x60, derOid(SpnegoOid), derWrap(0xa0, derWrap(0x04, auth))), true},
		{"other mechanism", derWrap(0x60, derOid(MECH_NTLMSSP.Oid()), auth), true},
		{"garbage prefix", append([]byte{0xff, 0xff, 0x00}, auth...), true},
		{"garbage", bytes.Repeat([]byte{0xa5}, 100), false},
	}
	tests[0].blob = sampleKrbToken(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseSecBlob(tt.blob)
			if !tt.want {
				assert.Nil(t, req)
				return
			}
			if assert.NotNil(t, req) {
				assert.Nil(t, req.Krb)
				if assert.NotNil(t, req.Ntlmssp) {
					assert.Equal(t, []byte("WORK"), req.Ntlmssp.Domain)
				}
			}
		})
	}
}

func TestParseNulStripping(t *testing.T) {
	assert := test.NewAssert(t)

	blob := spnegoBlob(
		mechTypeList(MECH_NTLMSSP.Oid()),
		mechToken(sampleAuthenticate()),
	)

	req := ParseSecBlob(blob)
	assert.NotNil(req)
	assert.Equal([]byte("HOST"), req.Ntlmssp.Host)
	assert.Equal([]byte("bob"), req.Ntlmssp.User)
	assert.Equal([]byte("WORK"), req.Ntlmssp.Domain)

	assert.Equal([]byte{}, stripNul(nil))
	assert.Equal([]byte{}, stripNul([]byte{0, 0}))
	assert.Equal([]byte{0xe9}, stripNul([]byte{0xe9, 0x00}))
}

func TestParseIdempotent(t *testing.T) {
	assert := test.NewAssert(t)

	blobs := [][]byte{
		spnegoBlob(mechTypeList(MECH_KRB5.Oid()), mechToken(sampleKrbToken(t))),
		spnegoBlob(mechTypeList(MECH_NTLMSSP.Oid()), mechToken(sampleAuthenticate())),
		sampleAuthenticate(),
		spnegoBlob(),
		{0x01},
	}

	p := NewParser()
	for _, b := range blobs {
		in := bytes.Clone(b)
		assert.Equal(p.Parse(b), p.Parse(b))
		assert.Equal(in, b, "input must not be modified")
	}
}

// every prefix of a valid blob must be handled without panicking
func TestParseTruncated(t *testing.T) {
	blobs := [][]byte{
		spnegoBlob(mechTypeList(MECH_KRB5.Oid(), MECH_NTLMSSP.Oid()), mechToken(sampleKrbToken(t))),
		spnegoBlob(mechTypeList(MECH_NTLMSSP.Oid()), mechToken(sampleAuthenticate())),
	}

	for _, b := range blobs {
		for i := 0; i <= len(b); i++ {
			assert.NotPanics(t, func() { ParseSecBlob(b[:i]) })
		}
	}
}

func TestParseConcurrent(t *testing.T) {
	krbBlob := spnegoBlob(mechTypeList(MECH_KRB5.Oid()), mechToken(sampleKrbToken(t)))
	ntlmBlob := spnegoBlob(mechTypeList(MECH_NTLMSSP.Oid()), mechToken(sampleAuthenticate()))

	wantKrb := ParseSecBlob(krbBlob)
	wantNtlm := ParseSecBlob(ntlmBlob)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, wantKrb, ParseSecBlob(krbBlob))
				assert.Equal(t, wantNtlm, ParseSecBlob(ntlmBlob))
			}
		}()
	}
	wg.Wait()
}
