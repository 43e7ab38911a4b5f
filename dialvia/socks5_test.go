// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dialvia

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"
	"time"
)

func TestSOCKS5ProxyDialer(t *testing.T) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		d := SOCKS5Proxy((&net.Dialer{Timeout: 5 * time.Second}).DialContext, &url.URL{Scheme: "socks5", Host: l.Addr().String()})

		donec := make(chan struct{})
		go func() {
			_, err := d.DialContext(ctx, "tcp", "foobar.com:80")
			if !errors.Is(err, context.Canceled) {
				t.Errorf("got %v, want %v", err, context.Canceled)
			}
			close(donec)
		}()

		cancel()
		select {
		case <-time.After(10 * time.Second):
			t.Fatal("timeout")
		case <-donec:
		}
	})

	t.Run("default port", func(t *testing.T) {
		d := SOCKS5Proxy((&net.Dialer{}).DialContext, &url.URL{Scheme: "socks5", Host: "proxy.local"})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		// The host does not resolve, the point is that dialing targets port 1080.
		_, err := d.DialContext(ctx, "tcp", "foobar.com:80")
		if err == nil {
			t.Fatal("err is nil")
		}
		t.Log(err)
	})
}
