// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
)

// BasicAuth authenticates requests with HTTP Basic Authentication (RFC 2617).
type BasicAuth struct {
	// Realm is the protection space identifier sent in challenges.
	Realm string
}

// AuthenticatedRequest parses the request's Authorization header and returns
// true if the provided credentials match the expected username and password.
// Uses constant-time comparison in order to mitigate timing attacks.
func (ba *BasicAuth) AuthenticatedRequest(r *http.Request, expectedUser, expectedPass string) bool {
	user, pass, ok := parseBasicAuth(r.Header.Get(AuthorizationHeader))
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(user), []byte(expectedUser)) == 1 &&
		subtle.ConstantTimeCompare([]byte(pass), []byte(expectedPass)) == 1
}

// Challenge returns a WWW-Authenticate header value.
func (ba *BasicAuth) Challenge() string {
	return `Basic realm="` + ba.Realm + `"`
}

// Wrap wraps the provided http.Handler with basic authentication.
// Unauthenticated requests get a 401 with a challenge and the handler is not
// called.
func (ba *BasicAuth) Wrap(h http.Handler, expectedUser, expectedPass string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ba.AuthenticatedRequest(r, expectedUser, expectedPass) {
			w.Header().Set("WWW-Authenticate", ba.Challenge())
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// Do not expose the authentication header to the wrapped handler.
		r.Header.Del(AuthorizationHeader)
		h.ServeHTTP(w, r)
	})
}

// parseBasicAuth parses an HTTP Basic Authentication string.
// "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==" returns ("Aladdin", "open sesame", true).
func parseBasicAuth(auth string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", "", false
	}
	c, err := base64.StdEncoding.DecodeString(auth[len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(c), ":")
	if !ok {
		return "", "", false
	}
	return username, password, true
}
