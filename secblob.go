// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"github.com/jfjallid/golog"

	"github.com/golang-auth/go-secblob/krb5"
)

var log = golog.Get("github.com/golang-auth/go-secblob")

// SpnegoRequest is the authentication material recovered from a security blob.  Either
// field, or both, may be nil; a field is only set when the matching credential was
// actually decoded.
type SpnegoRequest struct {
	Krb     *krb5.Ticket
	Ntlmssp *NtlmsspData
}

// Parser extracts authentication material from security blobs.  A Parser holds no
// per-call state and may be used from any number of goroutines.
type Parser struct {
	ntlmAfterKerberosFailure bool
	logFunc                  func(format string, args ...interface{})
}

// ParserOption is a function that configures a Parser
type ParserOption func(p *Parser)

// WithNTLMFallbackOnKerberosFailure lets a mechToken that fails to decode as a Kerberos
// ticket be tried as an NTLMSSP message when NTLMSSP was also offered.  By default a
// mechToken is never handed to NTLMSSP once a Kerberos mechanism has been offered.
func WithNTLMFallbackOnKerberosFailure() ParserOption {
	return func(p *Parser) {
		p.ntlmAfterKerberosFailure = true
	}
}

// WithLogFunc sets a function that receives a trace of every parsing decision, in
// addition to the package debug logger.
func WithLogFunc(logFunc func(format string, args ...interface{})) ParserOption {
	return func(p *Parser) {
		p.logFunc = logFunc
	}
}

// NewParser returns a Parser configured with options.
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{}
	for _, o := range options {
		o(p)
	}

	return p
}

var defaultParser = NewParser()

// ParseSecBlob extracts authentication material from blob using the default Parser.
// See Parser.Parse.
func ParseSecBlob(blob []byte) *SpnegoRequest {
	return defaultParser.Parse(blob)
}

// Parse extracts authentication material from the security blob of an SMB session setup
// request (or any other carrier of GSS-API tokens).
//
// A SPNEGO negTokenInit is walked for a Kerberos ticket or an NTLMSSP AUTHENTICATE
// message, and a non-nil result is returned even if it holds neither.  When blob is not a
// SPNEGO token, or its negotiation token cannot be decoded, the whole blob is searched for
// a bare NTLMSSP message instead.  Parse returns nil when neither path recovers anything.
// It never panics, whatever the input.
func (p *Parser) Parse(blob []byte) *SpnegoRequest {
	req, err := p.parseSpnego(blob)
	if err == nil {
		return req
	}
	p.debugf("%s, trying NTLMSSP", err)

	nd, err := p.extractNtlmssp(blob)
	if err != nil {
		p.debugf("%s", err)
		return nil
	}
	if nd == nil {
		return nil
	}

	return &SpnegoRequest{Ntlmssp: nd}
}

func (p *Parser) parseSpnego(blob []byte) (*SpnegoRequest, error) {
	token, err := locateSpnego(blob)
	if err != nil {
		return nil, err
	}
	inner, err := unwrapNegToken(token)
	if err != nil {
		return nil, err
	}

	return p.negotiate(inner)
}

func (p *Parser) debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
	if p.logFunc != nil {
		p.logFunc(format, args...)
	}
}
