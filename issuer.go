// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"sync/atomic"

	"github.com/courierproject/courier/log"
)

// Issuer executes a request end to end. Implementations handle transport,
// TLS and redirects per their own policy.
type Issuer interface {
	// IssueHead issues the request and returns the response with the body
	// discarded. Status, headers and cookies are still available.
	IssueHead(req *Request) (*Response, error)

	// Issue issues the request and returns the response and the full body.
	Issue(req *Request) (*Response, []byte, error)
}

var defaultIssuer atomic.Pointer[issuerHolder]

// Indirection allows storing arbitrary Issuer implementations in the pointer.
type issuerHolder struct {
	issuer Issuer
}

// DefaultIssuer returns the process-wide issuer, constructing one with the
// default client configuration on first use.
//
// The default issuer is a convenience for callers that do not care about
// transport configuration. Tests and callers needing determinism should
// inject their own Issuer instead.
func DefaultIssuer() Issuer {
	if h := defaultIssuer.Load(); h != nil {
		return h.issuer
	}

	c, err := NewClient(DefaultClientConfig(), log.NopLogger)
	if err != nil {
		// The default configuration carries no proxy and no cert files,
		// transport construction cannot fail.
		panic(err)
	}
	if defaultIssuer.CompareAndSwap(nil, &issuerHolder{issuer: c}) {
		return c
	}
	return defaultIssuer.Load().issuer
}

// SetDefaultIssuer replaces the process-wide issuer.
func SetDefaultIssuer(i Issuer) {
	defaultIssuer.Store(&issuerHolder{issuer: i})
}
