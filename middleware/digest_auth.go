// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package middleware provides HTTP server middleware for authentication.
package middleware

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"

	"github.com/courierproject/courier/internal/authparam"
	"github.com/dchest/uniuri"
)

const AuthorizationHeader = "Authorization"

// DigestAuth authenticates requests with HTTP Digest Authentication
// (RFC 2617, MD5). It issues challenges with fresh server nonces and
// verifies credentials by recomputing the digest.
//
// Only the MD5 algorithm and the qop=auth variant are supported, matching
// the client side of this module.
type DigestAuth struct {
	// Realm is the protection space identifier sent in challenges.
	Realm string

	// Qop advertises qop="auth" in challenges. When set, responses must use
	// the auth variant of the response hash.
	Qop bool

	// Opaque, if non-empty, is sent in challenges and must be echoed back.
	Opaque string

	mu     sync.Mutex
	nonces map[string]struct{}
}

// Challenge returns a WWW-Authenticate header value with a fresh nonce.
func (da *DigestAuth) Challenge() string {
	nonce := uniuri.New()

	da.mu.Lock()
	if da.nonces == nil {
		da.nonces = make(map[string]struct{})
	}
	da.nonces[nonce] = struct{}{}
	da.mu.Unlock()

	var b strings.Builder
	b.WriteString(`Digest realm="` + da.Realm + `", nonce="` + nonce + `"`)
	if da.Opaque != "" {
		b.WriteString(`, opaque="` + da.Opaque + `"`)
	}
	if da.Qop {
		b.WriteString(`, qop="auth"`)
	}
	return b.String()
}

// AuthenticatedRequest parses the request's Authorization header and returns
// true if it carries a valid digest response for the expected username and
// password. The nonce must be one this instance issued; it is consumed on
// successful authentication.
func (da *DigestAuth) AuthenticatedRequest(r *http.Request, expectedUser, expectedPass string) bool {
	auth := r.Header.Get(AuthorizationHeader)

	const prefix = "Digest "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return false
	}
	params := authparam.Parse(auth[len(prefix):])

	username, _ := params.Get("username")
	realm, _ := params.Get("realm")
	nonce, _ := params.Get("nonce")
	uri, _ := params.Get("uri")
	response, _ := params.Get("response")

	if username != expectedUser || realm != da.Realm || uri != r.URL.RequestURI() {
		return false
	}
	if da.Opaque != "" {
		if opaque, _ := params.Get("opaque"); opaque != da.Opaque {
			return false
		}
	}
	if !da.validNonce(nonce) {
		return false
	}

	ha1 := md5Hex(expectedUser + ":" + da.Realm + ":" + expectedPass)
	ha2 := md5Hex(r.Method + ":" + uri)

	var expected string
	if da.Qop {
		if qop, _ := params.Get("qop"); qop != "auth" {
			return false
		}
		nc, _ := params.Get("nc")
		cnonce, _ := params.Get("cnonce")
		expected = md5Hex(ha1 + ":" + nonce + ":" + nc + ":" + cnonce + ":auth:" + ha2)
	} else {
		expected = md5Hex(ha1 + ":" + nonce + ":" + ha2)
	}

	if subtle.ConstantTimeCompare([]byte(response), []byte(expected)) != 1 {
		return false
	}

	da.consumeNonce(nonce)
	return true
}

// Wrap wraps the provided http.Handler with digest authentication.
// Unauthenticated requests get a 401 with a fresh challenge and the handler
// is not called.
func (da *DigestAuth) Wrap(h http.Handler, expectedUser, expectedPass string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !da.AuthenticatedRequest(r, expectedUser, expectedPass) {
			w.Header().Set("WWW-Authenticate", da.Challenge())
			w.Header().Set("Connection", "close")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// Do not expose the authentication header to the wrapped handler.
		r.Header.Del(AuthorizationHeader)
		h.ServeHTTP(w, r)
	})
}

func (da *DigestAuth) validNonce(nonce string) bool {
	da.mu.Lock()
	defer da.mu.Unlock()
	_, ok := da.nonces[nonce]
	return ok
}

func (da *DigestAuth) consumeNonce(nonce string) {
	da.mu.Lock()
	defer da.mu.Unlock()
	delete(da.nonces, nonce)
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
