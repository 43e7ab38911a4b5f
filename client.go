// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/courierproject/courier/header"
	"github.com/courierproject/courier/log"
	"golang.org/x/net/publicsuffix"
)

type ClientConfig struct {
	HTTPTransportConfig

	// FollowRedirects controls whether the client follows 3xx responses.
	FollowRedirects bool

	// MaxRedirects caps the length of a redirect chain.
	MaxRedirects int

	// RetryAttempts is the number of extra attempts made for idempotent
	// requests that failed with a retryable transport error.
	RetryAttempts int
}

func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		HTTPTransportConfig: *DefaultHTTPTransportConfig(),
		FollowRedirects:     true,
		MaxRedirects:        10,
		RetryAttempts:       1,
	}
}

// Client issues Requests over an *http.Transport built from its
// configuration. It implements Issuer.
//
// Client is safe for concurrent use; each issued request gets its own cookie
// jar unless the request carries one.
type Client struct {
	rt  http.RoundTripper
	cfg ClientConfig
	log log.Logger
}

func NewClient(cfg *ClientConfig, logger log.Logger) (*Client, error) {
	rt, err := NewHTTPTransport(&cfg.HTTPTransportConfig)
	if err != nil {
		return nil, err
	}

	return &Client{
		rt:  rt,
		cfg: *cfg,
		log: logger,
	}, nil
}

// IssueHead issues the request and discards the response body.
func (c *Client) IssueHead(req *Request) (*Response, error) {
	resp, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if _, err := io.Copy(io.Discard, body); err != nil {
		c.log.Debugf("discard response body: %s", err)
	}
	return resp, nil
}

// Issue issues the request and returns the response and the full body.
func (c *Client) Issue(req *Request) (*Response, []byte, error) {
	resp, body, err := c.do(req)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp, b, nil
}

func (c *Client) do(req *Request) (*Response, io.ReadCloser, error) {
	jar := req.Jar
	if jar == nil {
		var err error
		jar, err = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, nil, err
		}
	}

	hc := &http.Client{
		Transport:     c.rt,
		Jar:           jar,
		CheckRedirect: c.checkRedirect,
	}

	attempts := 1
	if c.cfg.RetryAttempts > 0 && isIdempotent(req.Method) {
		attempts += c.cfg.RetryAttempts
	}

	var (
		res *http.Response
		err error
	)
	for i := 0; i < attempts; i++ {
		var hr *http.Request
		hr, err = c.buildHTTPRequest(req)
		if err != nil {
			return nil, nil, err
		}

		res, err = hc.Do(hr)
		if err == nil {
			break
		}

		label, retryable := classifyTransportError(err)
		if !retryable || i == attempts-1 {
			return nil, nil, err
		}
		c.log.Debugf("retrying %s %s after %s error: %s", req.Method, req.Path(), label, err)
	}
	if err != nil {
		return nil, nil, err
	}

	return &Response{
		StatusCode: res.StatusCode,
		Header:     header.FromHTTPHeader(res.Header),
		Jar:        jar,
	}, res.Body, nil
}

func (c *Client) buildHTTPRequest(req *Request) (*http.Request, error) {
	hr, err := http.NewRequest(req.Method, req.URL.String(), nil)
	if err != nil {
		return nil, err
	}
	if len(req.Body) > 0 {
		hr.Body = io.NopCloser(bytes.NewReader(req.Body))
		hr.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(req.Body)), nil
		}
		hr.ContentLength = int64(len(req.Body))
	}
	req.Header.ApplyTo(hr.Header)
	return hr, nil
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if !c.cfg.FollowRedirects {
		return http.ErrUseLastResponse
	}
	if len(via) >= c.cfg.MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", c.cfg.MaxRedirects)
	}
	return nil
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}
