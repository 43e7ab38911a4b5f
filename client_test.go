// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courierproject/courier/httpbin"
	"github.com/courierproject/courier/log"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(DefaultClientConfig(), log.NopLogger)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestClientIssue(t *testing.T) {
	srv := httptest.NewServer(httpbin.Handler())
	defer srv.Close()

	c := newTestClient(t)

	t.Run("status", func(t *testing.T) {
		req := mustRequest(t, http.MethodGet, srv.URL+"/status/204")
		res, body, err := c.Issue(req)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != http.StatusNoContent {
			t.Errorf("StatusCode = %d, want 204", res.StatusCode)
		}
		if len(body) != 0 {
			t.Errorf("unexpected body %q", body)
		}
	})

	t.Run("head", func(t *testing.T) {
		req := mustRequest(t, http.MethodGet, srv.URL+"/status/200")
		res, err := c.IssueHead(req)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != http.StatusOK {
			t.Errorf("StatusCode = %d, want 200", res.StatusCode)
		}
		if res.Jar == nil {
			t.Error("response has no cookie store")
		}
	})

	t.Run("custom header", func(t *testing.T) {
		var got string
		echo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("X-Probe")
		}))
		defer echo.Close()

		req := mustRequest(t, http.MethodGet, echo.URL)
		req.Header.Add("X-Probe", "42")
		if _, _, err := c.Issue(req); err != nil {
			t.Fatal(err)
		}
		if got != "42" {
			t.Errorf("X-Probe = %q, want 42", got)
		}
	})
}

func TestClientDigestAuthFlow(t *testing.T) {
	srv := httptest.NewServer(httpbin.Handler())
	defer srv.Close()

	c := newTestClient(t)

	for _, qop := range []string{"auth", "none"} {
		t.Run("qop "+qop, func(t *testing.T) {
			req := mustRequest(t, http.MethodGet, srv.URL+"/digest-auth/"+qop+"/joe/secret")

			// Without credentials the endpoint challenges.
			res, _, err := c.Issue(req)
			if err != nil {
				t.Fatal(err)
			}
			if res.StatusCode != http.StatusUnauthorized {
				t.Fatalf("StatusCode = %d, want 401", res.StatusCode)
			}

			authed, err := ApplyDigestAuth("joe", "secret", req, c)
			if err != nil {
				t.Fatal(err)
			}
			res, _, err = c.Issue(authed)
			if err != nil {
				t.Fatal(err)
			}
			if res.StatusCode != http.StatusOK {
				t.Errorf("StatusCode = %d, want 200", res.StatusCode)
			}
		})
	}

	t.Run("wrong password", func(t *testing.T) {
		req := mustRequest(t, http.MethodGet, srv.URL+"/digest-auth/auth/joe/secret")

		authed, err := ApplyDigestAuth("joe", "hunter2", req, c)
		if err != nil {
			t.Fatal(err)
		}
		res, _, err := c.Issue(authed)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != http.StatusUnauthorized {
			t.Errorf("StatusCode = %d, want 401", res.StatusCode)
		}
	})
}

func TestClientRedirects(t *testing.T) {
	hops := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hops < 3 {
			hops++
			http.Redirect(w, r, "/hop", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Run("followed", func(t *testing.T) {
		hops = 0
		c := newTestClient(t)
		res, _, err := c.Issue(mustRequest(t, http.MethodGet, srv.URL))
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != http.StatusOK {
			t.Errorf("StatusCode = %d, want 200", res.StatusCode)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		hops = 0
		cfg := DefaultClientConfig()
		cfg.FollowRedirects = false
		c, err := NewClient(cfg, log.NopLogger)
		if err != nil {
			t.Fatal(err)
		}
		res, _, err := c.Issue(mustRequest(t, http.MethodGet, srv.URL))
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != http.StatusFound {
			t.Errorf("StatusCode = %d, want 302", res.StatusCode)
		}
	})
}
