// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fetch implements the fetch command.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/courierproject/courier"
	"github.com/courierproject/courier/bind"
	"github.com/courierproject/courier/header"
	"github.com/courierproject/courier/log"
	"github.com/courierproject/courier/log/stdlog"
	"github.com/courierproject/courier/runctx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/goleak"
)

type command struct {
	clientConfig *courier.ClientConfig
	logConfig    *log.Config

	method      string
	headers     []header.Header
	digestCreds *url.Userinfo
	headersOnly bool

	goleak bool
}

func (c *command) runE(cmd *cobra.Command, args []string) (cmdErr error) {
	logger := stdlog.New(c.logConfig)

	defer func() {
		if cmdErr != nil {
			logger.Errorf("fatal error exiting: %s", cmdErr)
			cmd.SilenceErrors = true
		}
	}()

	if c.goleak {
		defer func() {
			if err := goleak.Find(); err != nil {
				logger.Errorf("goleak: %s", err)
			}
		}()
	}

	promReg := prometheus.NewRegistry()
	c.clientConfig.PromRegistry = promReg
	c.clientConfig.PromNamespace = "courier"

	client, err := courier.NewClient(c.clientConfig, logger.Named("client"))
	if err != nil {
		return err
	}

	req, err := courier.NewRequest(c.method, args[0])
	if err != nil {
		return err
	}
	header.Headers(c.headers).ApplyTo(req.Header)

	g := runctx.NewGroup(func(_ context.Context) error {
		return c.fetch(cmd, client, req, logger)
	})
	return g.Run()
}

func (c *command) fetch(cmd *cobra.Command, client *courier.Client, req *courier.Request, logger *stdlog.Logger) error {
	if c.digestCreds != nil {
		pass, _ := c.digestCreds.Password()
		logger.Debugf("negotiating digest auth for user %q", c.digestCreds.Username())

		var err error
		req, err = courier.ApplyDigestAuth(c.digestCreds.Username(), pass, req, client)
		if err != nil {
			return fmt.Errorf("digest auth: %w", err)
		}
	}

	res, body, err := client.Issue(req)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if c.headersOnly {
		fmt.Fprintf(w, "%d %s\n", res.StatusCode, http.StatusText(res.StatusCode))
		for _, f := range res.Header.Fields() {
			fmt.Fprintf(w, "%s: %s\n", f.Name, f.Value)
		}
		return nil
	}

	logger.Debugf("%s %s status %d", req.Method, req.Path(), res.StatusCode)
	if _, err := w.Write(body); err != nil {
		return err
	}

	if res.StatusCode >= http.StatusBadRequest {
		cmd.SilenceUsage = true
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return nil
}

func Command() *cobra.Command {
	c := command{
		clientConfig: courier.DefaultClientConfig(),
		logConfig:    log.DefaultConfig(),
		method:       http.MethodGet,
	}

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a URL with optional digest auth, proxy and TLS settings",
		Long: "Fetch a URL. " +
			"With --digest, a probe request is issued first to obtain the server's Digest Authentication challenge, " +
			"then the request is resubmitted with the computed Authorization header. " +
			"Connections can be tunneled through an HTTP(S) proxy with --proxy or a SOCKS5 proxy with --socks5-proxy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runE(cmd, args)
		},
	}

	fs := cmd.Flags()
	bind.ClientConfig(fs, c.clientConfig)
	bind.DigestCredentials(fs, &c.digestCreds)
	bind.RequestHeaders(fs, &c.headers)
	bind.LogConfig(fs, c.logConfig)

	fs.StringVarP(&c.method, "request", "X", c.method, "<method>HTTP method to use. ")
	fs.BoolVarP(&c.headersOnly, "head", "I", c.headersOnly, "Print response status and headers instead of the body. ")

	fs.BoolVar(&c.goleak, "goleak", false, "Check for goroutine leaks on exit. ")
	if err := fs.MarkHidden("goleak"); err != nil {
		panic(err)
	}

	return cmd
}
