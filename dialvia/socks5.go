// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dialvia

import (
	"context"
	"net"
	"net/url"

	"golang.org/x/net/proxy"
)

// SOCKS5ProxyDialer opens connections through a SOCKS5 proxy.
type SOCKS5ProxyDialer struct {
	dial     ContextDialerFunc
	proxyURL *url.URL
}

func SOCKS5Proxy(dial ContextDialerFunc, proxyURL *url.URL) *SOCKS5ProxyDialer {
	if dial == nil {
		panic("dial is required")
	}
	if proxyURL == nil {
		panic("proxy URL is required")
	}
	if proxyURL.Scheme != "socks5" {
		panic("proxy URL scheme must be socks5")
	}

	return &SOCKS5ProxyDialer{
		dial:     dial,
		proxyURL: proxyURL,
	}
}

func (d *SOCKS5ProxyDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	var auth *proxy.Auth
	if u := d.proxyURL.User; u != nil {
		auth = &proxy.Auth{User: u.Username()}
		auth.Password, _ = u.Password()
	}

	proxyPort := d.proxyURL.Port()
	if proxyPort == "" {
		proxyPort = "1080"
	}
	proxyAddr := net.JoinHostPort(d.proxyURL.Hostname(), proxyPort)

	sd, err := proxy.SOCKS5("tcp", proxyAddr, auth, d.dial)
	if err != nil {
		return nil, err
	}

	// The proxy.SOCKS5 dialer supports contexts, the type assertion never fails.
	if cd, ok := sd.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, network, addr)
	}
	return sd.Dial(network, addr)
}
