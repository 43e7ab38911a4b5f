// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bind binds courier configuration structs to command line flags.
package bind

import (
	"net/url"

	"github.com/courierproject/courier"
	"github.com/courierproject/courier/header"
	"github.com/courierproject/courier/log"
	"github.com/mmatczuk/anyflag"
	"github.com/spf13/pflag"
)

func ConfigFile(fs *pflag.FlagSet, configFile *string) {
	fs.StringVarP(configFile,
		"config-file", "c", *configFile, "<path>"+
			"Configuration file to load options from. "+
			"The supported formats are: JSON, YAML, TOML, HCL, and Java properties. "+
			"The following precedence order of configuration sources is used: command flags, environment variables, config file, default values. ")
}

func DigestCredentials(fs *pflag.FlagSet, ui **url.Userinfo) {
	fs.VarP(anyflag.NewValueWithRedact[*url.Userinfo](*ui, ui, courier.ParseUserInfo, RedactUserinfo),
		"digest", "u", "<username:password>"+
			"Credentials for HTTP Digest Authentication. "+
			"A probe request is issued first to obtain the challenge, then the request is resubmitted with the Authorization header attached. ")
}

func RequestHeaders(fs *pflag.FlagSet, headers *[]header.Header) {
	fs.VarP(anyflag.NewSliceValue[header.Header](*headers, headers, header.ParseHeader),
		"header", "H", "<header>"+
			"Add or remove HTTP request headers. "+
			"Use the format \"name: value\" to add a header, "+
			"\"name;\" to set the header to empty value, "+
			"\"-name\" to remove the header, "+
			"\"-name*\" to remove headers by prefix. "+
			"The flag can be specified multiple times. ")
}

func HTTPTransportConfig(fs *pflag.FlagSet, cfg *courier.HTTPTransportConfig) {
	fs.VarP(anyflag.NewValueWithRedact[*url.URL](cfg.UpstreamProxy, &cfg.UpstreamProxy, courier.ParseProxyURL, RedactURL),
		"proxy", "x", "<[protocol://]host:port>"+
			"Upstream HTTP(S) proxy to tunnel connections through. "+
			"The supported protocols are: http, https. "+
			"Mutually exclusive with --socks5-proxy. ")

	fs.Var(anyflag.NewValueWithRedact[*url.URL](cfg.SOCKS5Proxy, &cfg.SOCKS5Proxy, courier.ParseProxyURL, RedactURL),
		"socks5-proxy", "<host:port>"+
			"SOCKS5 proxy to open connections through, e.g. socks5://127.0.0.1:1080. "+
			"Mutually exclusive with --proxy. ")

	fs.BoolVarP(&cfg.Insecure,
		"insecure", "k", cfg.Insecure,
		"Do not verify the server's TLS certificate chain and host name. ")

	fs.StringSliceVar(&cfg.CACertFiles,
		"cacert-file", cfg.CACertFiles, "<path>"+
			"Add your own CA certificates to verify against. "+
			"The system root certificates are used in addition to any certificates in this list. "+
			"Can be specified multiple times. ")

	fs.DurationVar(&cfg.DialTimeout,
		"dial-timeout", cfg.DialTimeout,
		"Maximum amount of time a dial will wait for connect to complete. ")

	fs.DurationVar(&cfg.ResponseHeaderTimeout,
		"response-header-timeout", cfg.ResponseHeaderTimeout,
		"Maximum amount of time to wait for a server's response headers. Zero means no timeout. ")
}

func ClientConfig(fs *pflag.FlagSet, cfg *courier.ClientConfig) {
	HTTPTransportConfig(fs, &cfg.HTTPTransportConfig)

	fs.BoolVar(&cfg.FollowRedirects,
		"follow-redirects", cfg.FollowRedirects,
		"Follow 3xx redirect responses. ")

	fs.IntVar(&cfg.RetryAttempts,
		"retry", cfg.RetryAttempts,
		"Number of extra attempts for idempotent requests that failed with a retryable transport error. ")
}

func LogConfig(fs *pflag.FlagSet, cfg *log.Config) {
	fs.Var(anyflag.NewValue[log.Level](cfg.Level, &cfg.Level, log.ParseLevel),
		"log-level", "<error|info|debug>"+
			"Log level. ")
}

func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Redacted()
}

func RedactUserinfo(ui *url.Userinfo) string {
	if ui == nil {
		return ""
	}
	if _, has := ui.Password(); has {
		return url.UserPassword(ui.Username(), "xxxxx").String()
	}
	return ui.String()
}
