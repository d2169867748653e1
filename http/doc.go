// SPDX-License-Identifier: Apache-2.0

/*
Package http observes the SPNEGO and NTLM tokens carried in HTTP authentication headers.

Browsers and other HTTP clients use the Negotiate scheme (RFC 4559) to send the same
SPNEGO blobs that SMB clients carry in SESSION_SETUP requests, and the older NTLM scheme
to send bare NTLMSSP messages.  [Observer] wraps an [http.Handler], decodes the token in
the Authorization header and makes the extracted credential available to the wrapped
handler.  The observer never authenticates and never rejects a request: it records what
the client claims to be.

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if req, ok := secblobhttp.GetSecBlob(r); ok && req.Ntlmssp != nil {
			log.Printf("NTLM user %s\\%s", req.Ntlmssp.Domain, req.Ntlmssp.User)
		}
	})

	handler := secblobhttp.NewObserver(mux,
		secblobhttp.WithChallengeFunc(func(r *http.Request, c *secblobhttp.Challenge) {
			log.Printf("server answered with %s", c.Scheme)
		}),
	)
	http.ListenAndServe(":8080", handler)

Challenges in WWW-Authenticate response headers written by the wrapped handler (or by a
proxy in front of it) are decoded as SPNEGO negTokenResp tokens and reported through
[WithChallengeFunc].
*/
package http
