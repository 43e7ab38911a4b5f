// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import (
	"net/http"
	"testing"

	"github.com/courierproject/courier/header"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		rawURL string
		ok     bool
	}{
		{"http://example.com/", true},
		{"https://example.com:8443/a/b?c=d", true},
		{"ftp://example.com/", false},
		{"example.com/", false},
		{"http://", false},
		{"://", false},
	}
	for _, tc := range tests {
		t.Run(tc.rawURL, func(t *testing.T) {
			_, err := NewRequest(http.MethodGet, tc.rawURL)
			if (err == nil) != tc.ok {
				t.Errorf("NewRequest(%q) = %v, want ok=%t", tc.rawURL, err, tc.ok)
			}
		})
	}
}

func TestRequestPath(t *testing.T) {
	tests := []struct {
		rawURL string
		path   string
	}{
		{"http://example.com", "/"},
		{"http://example.com/dir/index.html", "/dir/index.html"},
		{"http://example.com/a?b=c", "/a?b=c"},
	}
	for _, tc := range tests {
		req := mustRequest(t, http.MethodGet, tc.rawURL)
		if got := req.Path(); got != tc.path {
			t.Errorf("Path(%q) = %q, want %q", tc.rawURL, got, tc.path)
		}
	}
}

func TestRequestWith(t *testing.T) {
	req := mustRequest(t, http.MethodGet, "http://example.com/")
	req.Header.Add("Accept", "*/*")

	h := req.Header.Clone()
	h.Add("X-Extra", "1")
	mod := req.WithHeaderList(h).WithBody([]byte("payload"))

	if mod == req {
		t.Fatal("With methods must return a copy")
	}
	if req.Header.Len() != 1 {
		t.Error("original header list modified")
	}
	if req.Body != nil {
		t.Error("original body modified")
	}
	if mod.Header.Len() != 2 || string(mod.Body) != "payload" {
		t.Error("copy does not carry the replaced fields")
	}
	if mod.Method != req.Method || mod.URL != req.URL {
		t.Error("copy does not share unchanged fields")
	}
}

func TestRequestHeaderAccess(t *testing.T) {
	req := mustRequest(t, http.MethodGet, "http://example.com/")
	req.Header.Add("Accept", "text/html")
	req.Header.Add("accept", "text/plain")

	if v, ok := req.Header.Get("ACCEPT"); !ok || v != "text/html" {
		t.Errorf("Get = %q, %t; want first value, case-insensitive", v, ok)
	}
	want := []header.Field{
		{Name: "Accept", Value: "text/html"},
		{Name: "accept", Value: "text/plain"},
	}
	got := req.Header.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
