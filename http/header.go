// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const (
	schemeNegotiate = "negotiate"
	schemeNTLM      = "ntlm"
)

func parseAuthzHeader(headers *http.Header) (string, string) {
	header := strings.TrimSpace(headers.Get("Authorization"))
	if header == "" {
		return "", ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return strings.ToLower(parts[0]), strings.TrimSpace(parts[1])
}

func isObservedScheme(scheme string) bool {
	return scheme == schemeNegotiate || scheme == schemeNTLM
}

// authChallenge is one Negotiate or NTLM challenge carrying a token.
type authChallenge struct {
	// Scheme is lower-cased
	Scheme string
	Token  string
}

// findTokenChallenges returns the Negotiate and NTLM challenges in the WWW-Authenticate
// headers that carry a token, in header order.  Token68 values never contain a comma so
// splitting on commas is enough to separate them from other schemes' parameter lists.
func findTokenChallenges(headers *http.Header) []authChallenge {
	var challenges []authChallenge

	for _, value := range headers.Values("WWW-Authenticate") {
		for _, part := range strings.Split(value, ",") {
			fields := strings.Fields(part)
			if len(fields) != 2 {
				continue
			}
			scheme := strings.ToLower(fields[0])
			if !isObservedScheme(scheme) {
				continue
			}
			challenges = append(challenges, authChallenge{Scheme: scheme, Token: fields[1]})
		}
	}

	return challenges
}

func decodeToken(token string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(token)
}
