// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"

	"github.com/jfjallid/golog"

	secblob "github.com/golang-auth/go-secblob"
	"github.com/golang-auth/go-secblob/negtoken"
	"github.com/golang-auth/go-secblob/ntlm"
)

var log = golog.Get("github.com/golang-auth/go-secblob/http")

// ObserveFunc is called for each request whose Authorization header carried a credential.
type ObserveFunc func(r *http.Request, req *secblob.SpnegoRequest)

// ChallengeFunc is called for each decodable Negotiate or NTLM challenge in the response.
type ChallengeFunc func(r *http.Request, c *Challenge)

// Challenge is a server token found in a WWW-Authenticate response header.
type Challenge struct {
	// Scheme is "negotiate" or "ntlm"
	Scheme string

	// NegTokenResp is set for a SPNEGO response token
	NegTokenResp *negtoken.NegTokenResp

	// Ntlm is set when the challenge carries an NTLMSSP CHALLENGE message, either bare
	// or as the SPNEGO response token
	Ntlm *ntlm.Challenge
}

// Observer is a http.Handler that extracts the credential from the Authorization header,
// passes it to the next handler in the request context and reports server challenges.
type Observer struct {
	parser        *secblob.Parser
	next          http.Handler
	observeFunc   ObserveFunc
	challengeFunc ChallengeFunc
}

// ObserverOption is a function that can be used to configure the Observer
type ObserverOption func(o *Observer)

// WithParser sets the security blob parser.  The default is secblob.NewParser().
func WithParser(parser *secblob.Parser) ObserverOption {
	return func(o *Observer) {
		o.parser = parser
	}
}

// WithObserveFunc registers a function called with every extracted credential
func WithObserveFunc(fn ObserveFunc) ObserverOption {
	return func(o *Observer) {
		o.observeFunc = fn
	}
}

// WithChallengeFunc registers a function called with the challenges of every response
func WithChallengeFunc(fn ChallengeFunc) ObserverOption {
	return func(o *Observer) {
		o.challengeFunc = fn
	}
}

// NewObserver creates a new Observer in front of next
func NewObserver(next http.Handler, options ...ObserverOption) *Observer {
	o := &Observer{
		next: next,
	}
	for _, option := range options {
		option(o)
	}
	if o.parser == nil {
		o.parser = secblob.NewParser()
	}
	return o
}

// ServeHTTP extracts the credential, if any, and always calls the next handler.
func (o *Observer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	authzType, authzToken := parseAuthzHeader(&r.Header)
	if isObservedScheme(authzType) && len(authzToken) > 0 {
		if req := o.observe(authzType, authzToken); req != nil {
			r = r.WithContext(stashSecBlob(r.Context(), authzType, req))
			if o.observeFunc != nil {
				o.observeFunc(r, req)
			}
		}
	}

	if o.challengeFunc == nil {
		o.next.ServeHTTP(w, r)
		return
	}

	rec := &challengeRecorder{ResponseWriter: w, observer: o, request: r}
	o.next.ServeHTTP(rec, r)
	// net/http sends the headers of a handler that never wrote
	rec.report()
}

func (o *Observer) observe(scheme, token string) *secblob.SpnegoRequest {
	blob, err := decodeToken(token)
	if err != nil {
		log.Debugf("%s token from client is not base64: %s", scheme, err)
		return nil
	}

	req := o.parser.Parse(blob)
	if req == nil {
		log.Debugf("no credential in %d byte %s token", len(blob), scheme)
	}
	return req
}

func (o *Observer) observeChallenges(r *http.Request, headers *http.Header) {
	for _, ac := range findTokenChallenges(headers) {
		blob, err := decodeToken(ac.Token)
		if err != nil {
			log.Debugf("%s token from server is not base64: %s", ac.Scheme, err)
			continue
		}
		if c := decodeChallenge(ac.Scheme, blob); c != nil {
			o.challengeFunc(r, c)
		}
	}
}

// decodeChallenge decodes a server token.  Negotiate usually carries a negTokenResp, but
// some servers answer a bare NTLM negotiation with a bare CHALLENGE under either scheme.
func decodeChallenge(scheme string, blob []byte) *Challenge {
	c := &Challenge{Scheme: scheme}

	ntlmToken := blob
	if scheme == schemeNegotiate {
		resp, err := negtoken.DecodeNegTokenResp(blob)
		if err == nil {
			c.NegTokenResp = resp
			ntlmToken = resp.ResponseToken
		} else {
			log.Debugf("negotiate challenge is not a negTokenResp: %s", err)
		}
	}

	if len(ntlmToken) > 0 {
		if m, err := ntlm.Parse(ntlmToken); err == nil && m.Type == ntlm.TypeChallenge {
			c.Ntlm = m.Challenge
		}
	}

	if c.NegTokenResp == nil && c.Ntlm == nil {
		return nil
	}
	return c
}

// challengeRecorder reports challenges once, when the wrapped handler commits its headers
// or returns
type challengeRecorder struct {
	http.ResponseWriter
	observer *Observer
	request  *http.Request
	reported bool
}

func (c *challengeRecorder) report() {
	if c.reported {
		return
	}
	c.reported = true
	headers := c.Header()
	c.observer.observeChallenges(c.request, &headers)
}

func (c *challengeRecorder) WriteHeader(code int) {
	c.report()
	c.ResponseWriter.WriteHeader(code)
}

func (c *challengeRecorder) Write(b []byte) (int, error) {
	c.report()
	return c.ResponseWriter.Write(b)
}

func (c *challengeRecorder) Flush() {
	c.report()
	if f, ok := c.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer
func (c *challengeRecorder) Unwrap() http.ResponseWriter {
	return c.ResponseWriter
}
