// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/courierproject/courier/header"
)

// Request is an HTTP request value.
//
// Request is immutable by convention: functions in this package never modify
// a Request they are given, they return a new value with replaced fields.
// The header list preserves insertion order and duplicates; name matching is
// case-insensitive.
type Request struct {
	Method string
	URL    *url.URL
	Header *header.List
	Body   []byte

	// Jar is the cookie store associated with the request.
	// If nil, the issuer creates a fresh one for the exchange.
	Jar http.CookieJar
}

// NewRequest returns a request for the given method and URL.
func NewRequest(method, rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in URL %q", rawURL)
	}

	return &Request{
		Method: method,
		URL:    u,
		Header: &header.List{},
	}, nil
}

// Path returns the request-target as sent on the wire, e.g. "/dir/index.html".
func (r *Request) Path() string {
	return r.URL.RequestURI()
}

// WithHeaderList returns a copy of the request with the given header list.
func (r *Request) WithHeaderList(l *header.List) *Request {
	c := *r
	c.Header = l
	return &c
}

// WithJar returns a copy of the request with the given cookie store.
func (r *Request) WithJar(jar http.CookieJar) *Request {
	c := *r
	c.Jar = jar
	return &c
}

// WithBody returns a copy of the request with the given body.
func (r *Request) WithBody(body []byte) *Request {
	c := *r
	c.Body = body
	return &c
}

// Response is the read-only result of issuing a request.
type Response struct {
	StatusCode int
	Header     *header.List

	// Jar is the cookie store that observed the response's cookies.
	Jar http.CookieJar
}
