// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package courier is an HTTP client engine that issues requests over plain,
// TLS, HTTP(S) proxied and SOCKS5 proxied connections, and negotiates
// HTTP Digest Authentication (RFC 2617, MD5 with optional qop=auth)
// on behalf of the caller.
package courier
