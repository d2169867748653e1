// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"

	secblob "github.com/golang-auth/go-secblob"
)

type contextKey struct {
	name string
}

func (k *contextKey) String() string { return "secblob/http context value " + k.name }

var secBlobContextKey = &contextKey{"secblob"}
var schemeContextKey = &contextKey{"scheme"}

// Record the extracted credential and the scheme that carried it in the request context
func stashSecBlob(ctx context.Context, scheme string, req *secblob.SpnegoRequest) context.Context {
	ctx = context.WithValue(ctx, schemeContextKey, scheme)
	ctx = context.WithValue(ctx, secBlobContextKey, req)
	return ctx
}

// GetSecBlob returns the credential extracted from the Authorization header, if any.
// This can be used by the 'next' http handler called by [Observer.ServeHTTP]
func GetSecBlob(r *http.Request) (*secblob.SpnegoRequest, bool) {
	req, ok := r.Context().Value(secBlobContextKey).(*secblob.SpnegoRequest)
	if !ok || req == nil {
		return nil, false
	}
	return req, true
}

// GetScheme returns the lower-cased authentication scheme ("negotiate" or "ntlm") of the
// header the credential was extracted from, or "" if none was.
func GetScheme(r *http.Request) string {
	scheme, ok := r.Context().Value(schemeContextKey).(string)
	if !ok {
		return ""
	}
	return scheme
}
