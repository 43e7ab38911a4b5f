// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"context"
	"net"
	"sync"

	"github.com/courierproject/courier/dialvia"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type dialerMetrics struct {
	dials  *prometheus.CounterVec
	active *prometheus.GaugeVec
}

func newDialerMetrics(r prometheus.Registerer, namespace string) *dialerMetrics {
	f := promauto.With(r)

	return &dialerMetrics{
		dials: f.NewCounterVec(prometheus.CounterOpts{
			Name:      "dials_total",
			Namespace: namespace,
			Help:      "Number of dialed connections by host and result",
		}, []string{"host", "result"}),
		active: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:      "active_connections",
			Namespace: namespace,
			Help:      "Number of active connections by host",
		}, []string{"host"}),
	}
}

// instrument wraps dial with per-host connection counters.
func (m *dialerMetrics) instrument(dial dialvia.ContextDialerFunc) dialvia.ContextDialerFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host := addr2Host(addr)

		conn, err := dial(ctx, network, addr)
		if err != nil {
			m.dials.WithLabelValues(host, "error").Inc()
			return nil, err
		}

		m.dials.WithLabelValues(host, "ok").Inc()
		m.active.WithLabelValues(host).Inc()
		return &metricsConn{Conn: conn, onClose: func() {
			m.active.WithLabelValues(host).Dec()
		}}, nil
	}
}

type metricsConn struct {
	net.Conn
	closeOnce sync.Once
	onClose   func()
}

// Close may be called concurrently; the callback runs once.
func (c *metricsConn) Close() error {
	c.closeOnce.Do(c.onClose)
	return c.Conn.Close()
}

func addr2Host(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "unknown"
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsUnspecified()) {
		return "localhost"
	}
	return host
}
