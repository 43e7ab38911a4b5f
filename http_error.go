// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"syscall"
)

// classifyTransportError maps a transport-level error to a label used in
// logs and reports whether an idempotent request may be retried.
//
// Retryable classes are TLS end-of-stream and record errors, connection
// resets and aborted connections. Certificate verification failures and
// timeouts are not retryable.
func classifyTransportError(err error) (label string, retryable bool) {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return "tls_certificate", false
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return "tls_record_header", true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return "eof", true
	}

	if errors.Is(err, syscall.ECONNRESET) {
		return "conn_reset", true
	}
	if errors.Is(err, syscall.ECONNABORTED) {
		return "conn_aborted", true
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "net_timeout", false
		}
		return "net_" + netErr.Op, true
	}

	return "unexpected_error", false
}
