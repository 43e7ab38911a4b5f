// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"
)

type TLSClientConfig struct {
	// HandshakeTimeout specifies the maximum amount of time to wait for a
	// TLS handshake. Zero means no timeout.
	HandshakeTimeout time.Duration

	// Insecure controls whether the client verifies the server's
	// certificate chain and host name.
	Insecure bool

	// CACertFiles is a list of PEM files to add to the root CA pool.
	// If empty, the system pool is used as is.
	CACertFiles []string
}

func DefaultTLSClientConfig() *TLSClientConfig {
	return &TLSClientConfig{
		HandshakeTimeout: 10 * time.Second,
	}
}

func (c *TLSClientConfig) ConfigureTLSConfig(tlsCfg *tls.Config) error {
	tlsCfg.InsecureSkipVerify = c.Insecure

	if len(c.CACertFiles) > 0 {
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}
		for _, f := range c.CACertFiles {
			pem, err := os.ReadFile(f)
			if err != nil {
				return fmt.Errorf("read CA cert file: %w", err)
			}
			if !pool.AppendCertsFromPEM(pem) {
				return fmt.Errorf("no certificates found in %s", f)
			}
		}
		tlsCfg.RootCAs = pool
	}

	return nil
}
