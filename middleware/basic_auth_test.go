// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBasicAuthAuthenticatedRequest(t *testing.T) {
	ba := &BasicAuth{Realm: "courier"}

	tests := []struct {
		name string
		auth func(r *http.Request)
		ok   bool
	}{
		{
			name: "valid credentials",
			auth: func(r *http.Request) { r.SetBasicAuth("u", "p") },
			ok:   true,
		},
		{
			name: "lowercase scheme",
			auth: func(r *http.Request) {
				r.Header.Set(AuthorizationHeader, "basic dTpw") // u:p
			},
			ok: true,
		},
		{
			name: "wrong password",
			auth: func(r *http.Request) { r.SetBasicAuth("u", "x") },
			ok:   false,
		},
		{
			name: "wrong user",
			auth: func(r *http.Request) { r.SetBasicAuth("x", "p") },
			ok:   false,
		},
		{
			name: "no header",
			auth: func(*http.Request) {},
			ok:   false,
		},
		{
			name: "not basic",
			auth: func(r *http.Request) {
				r.Header.Set(AuthorizationHeader, "Bearer dTpw")
			},
			ok: false,
		},
		{
			name: "invalid base64",
			auth: func(r *http.Request) {
				r.Header.Set(AuthorizationHeader, "Basic !!!")
			},
			ok: false,
		},
		{
			name: "no colon",
			auth: func(r *http.Request) {
				r.Header.Set(AuthorizationHeader, "Basic dXNlcg==") // user
			},
			ok: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			tc.auth(r)
			if got := ba.AuthenticatedRequest(r, "u", "p"); got != tc.ok {
				t.Errorf("AuthenticatedRequest() = %t, want %t", got, tc.ok)
			}
		})
	}
}

func TestBasicAuthWrap(t *testing.T) {
	ba := &BasicAuth{Realm: "courier"}
	h := ba.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AuthorizationHeader) != "" {
			t.Error("Authorization header exposed to the wrapped handler")
		}
		w.WriteHeader(http.StatusOK)
	}), "u", "p")

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		challenge := w.Header().Get("WWW-Authenticate")
		if !strings.HasPrefix(challenge, `Basic realm="courier"`) {
			t.Errorf("challenge = %q", challenge)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		r.SetBasicAuth("u", "p")

		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
