// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import "fmt"

// DigestFailureReason is the closed set of reasons why a digest negotiation
// could not complete. Callers are expected to switch on it.
type DigestFailureReason int

const (
	// UnexpectedStatusCode means the probe response status was not 401.
	UnexpectedStatusCode DigestFailureReason = 1 + iota
	// MissingWWWAuthenticateHeader means the 401 response carried no
	// WWW-Authenticate header.
	MissingWWWAuthenticateHeader
	// WWWAuthenticateIsNotDigest means the WWW-Authenticate header did not
	// start with the "Digest " prefix.
	WWWAuthenticateIsNotDigest
	// MissingRealm means the challenge had no realm directive.
	MissingRealm
	// MissingNonce means the challenge had no nonce directive.
	MissingNonce
)

func (r DigestFailureReason) String() string {
	switch r {
	case UnexpectedStatusCode:
		return "unexpected status code"
	case MissingWWWAuthenticateHeader:
		return "missing WWW-Authenticate header"
	case WWWAuthenticateIsNotDigest:
		return "WWW-Authenticate header is not a Digest challenge"
	case MissingRealm:
		return "missing realm in challenge"
	case MissingNonce:
		return "missing nonce in challenge"
	default:
		return fmt.Sprintf("unknown digest failure reason %d", int(r))
	}
}

// DigestError reports why ApplyDigestAuth could not produce an authenticated
// request. It carries the originating request and probe response for
// diagnostics. Transport errors are never wrapped in a DigestError.
type DigestError struct {
	Reason   DigestFailureReason
	Request  *Request
	Response *Response
}

func (e *DigestError) Error() string {
	return fmt.Sprintf("digest auth: %s (%s %s, status %d)",
		e.Reason, e.Request.Method, e.Request.Path(), e.Response.StatusCode)
}
