// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package httpbin implements elements of the httpbin.org API used as a
// counterparty by tests and examples.
package httpbin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/courierproject/courier/middleware"
)

// Handler returns an http.Handler that implements elements of the
// httpbin.org API. The implemented endpoints are:
// `/basic-auth/{user}/{passwd}`, `/digest-auth/{qop}/{user}/{passwd}`,
// `/status/{code}`.
func Handler() http.Handler {
	m := http.NewServeMux()
	m.HandleFunc("/basic-auth/", basicAuthHandler)
	m.HandleFunc("/digest-auth/", newDigestAuthHandler())
	m.HandleFunc("/status/", statusHandler)
	return m
}

// basicAuthHandler implements the /basic-auth/{user}/{passwd} endpoint.
// See https://httpbin.org/#/Auth/get_basic_auth__user___passwd_
func basicAuthHandler(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path[len("/basic-auth/"):]

	user, pass, ok := strings.Cut(p, "/")
	if !ok {
		msg := fmt.Sprintf("invalid path %q, expected <user>/<password>", p)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ba := &middleware.BasicAuth{Realm: "courier"}
	ba.Wrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), user, pass).ServeHTTP(w, r)
}

// newDigestAuthHandler implements the /digest-auth/{qop}/{user}/{passwd}
// endpoint. The qop segment is either "auth" or "none".
// Nonce state is shared across requests so that a challenge elicited by one
// request authenticates the next.
func newDigestAuthHandler() http.HandlerFunc {
	qopAuth := &middleware.DigestAuth{Realm: "courier", Qop: true}
	noQop := &middleware.DigestAuth{Realm: "courier"}

	return func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path[len("/digest-auth/"):]

		parts := strings.SplitN(p, "/", 3)
		if len(parts) != 3 {
			msg := fmt.Sprintf("invalid path %q, expected <qop>/<user>/<password>", p)
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		qop, user, pass := parts[0], parts[1], parts[2]

		var da *middleware.DigestAuth
		switch qop {
		case "auth":
			da = qopAuth
		case "none":
			da = noQop
		default:
			http.Error(w, fmt.Sprintf("unsupported qop %q", qop), http.StatusBadRequest)
			return
		}

		da.Wrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}), user, pass).ServeHTTP(w, r)
	}
}

// statusHandler implements the /status/{code} endpoint.
// See https://httpbin.org/#/Status_codes
func statusHandler(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path[len("/status/"):]

	c, err := strconv.Atoi(p)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid status code %q", p), http.StatusBadRequest)
		return
	}
	w.WriteHeader(c)
}
