// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authparam

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Params
	}{
		{
			name:  "quoted values",
			input: `realm="test", nonce="abc123"`,
			expected: Params{
				{Key: "realm", Value: "test"},
				{Key: "nonce", Value: "abc123"},
			},
		},
		{
			name:  "comma inside quoted value",
			input: `realm="a,b", nonce="n"`,
			expected: Params{
				{Key: "realm", Value: "a,b"},
				{Key: "nonce", Value: "n"},
			},
		},
		{
			name:  "unquoted value",
			input: `algorithm=MD5, realm="r"`,
			expected: Params{
				{Key: "algorithm", Value: "MD5"},
				{Key: "realm", Value: "r"},
			},
		},
		{
			name:  "key without value",
			input: `stale, realm="r"`,
			expected: Params{
				{Key: "stale"},
				{Key: "realm", Value: "r"},
			},
		},
		{
			name:  "spaces around keys and unquoted values",
			input: `  realm = "r" ,  algorithm =  MD5  `,
			expected: Params{
				{Key: "realm", Value: "r"},
				{Key: "algorithm", Value: "MD5"},
			},
		},
		{
			name:  "garbage after closing quote is skipped to next comma",
			input: `realm="r" junk, nonce="n"`,
			expected: Params{
				{Key: "realm", Value: "r"},
				{Key: "nonce", Value: "n"},
			},
		},
		{
			name:  "unterminated quote runs to end of string",
			input: `realm="r, nonce=n`,
			expected: Params{
				{Key: "realm", Value: "r, nonce=n"},
			},
		},
		{
			name:  "duplicate keys are kept in order",
			input: `realm="first", realm="second"`,
			expected: Params{
				{Key: "realm", Value: "first"},
				{Key: "realm", Value: "second"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "commas only",
			input:    ",,,",
			expected: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParamsGetFirstMatch(t *testing.T) {
	ps := Parse(`realm="first", realm="second"`)

	v, ok := ps.Get("realm")
	if !ok || v != "first" {
		t.Errorf(`Get("realm") = %q, %v, want "first"`, v, ok)
	}
	if _, ok := ps.Get("nonce"); ok {
		t.Error(`Get("nonce") = true, want false`)
	}
	if !ps.Has("realm") {
		t.Error(`Has("realm") = false, want true`)
	}
}
