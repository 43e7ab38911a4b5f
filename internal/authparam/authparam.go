// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authparam parses the comma-separated key/value lists used by the
// HTTP Digest challenge and credentials grammar.
//
// The grammar is deliberately minimal, matching what servers emit in
// practice: quoted values are taken verbatim up to the next double quote
// with no escape handling, unquoted values run to the next comma, and a key
// with no "=" yields an empty value.
package authparam

import "strings"

// Param is a single key/value pair.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of key/value pairs.
// Duplicate keys are kept; lookups return the first match.
type Params []Param

// Get returns the value of the first param with the given key.
func (ps Params) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether a param with the given key is present.
func (ps Params) Has(key string) bool {
	_, ok := ps.Get(key)
	return ok
}

// Parse parses a comma-separated list of "key", "key=value" or
// "key=\"value\"" items into ordered params.
//
// Spaces around keys and unquoted values are trimmed. A quoted value is read
// verbatim up to the next double quote, then everything up to and including
// the next comma is skipped. Parse never fails; malformed trailing input
// yields the params parsed so far.
func Parse(s string) Params {
	var ps Params

	for i := 0; i < len(s); {
		j := i
		for j < len(s) && s[j] != '=' && s[j] != ',' {
			j++
		}
		key := strings.TrimSpace(s[i:j])

		if j == len(s) || s[j] == ',' {
			if key != "" {
				ps = append(ps, Param{Key: key})
			}
			i = j + 1
			continue
		}

		// Past "=", with optional leading spaces.
		j++
		for j < len(s) && s[j] == ' ' {
			j++
		}

		var value string
		if j < len(s) && s[j] == '"' {
			j++
			k := j
			for k < len(s) && s[k] != '"' {
				k++
			}
			value = s[j:k]
			if k < len(s) {
				k++ // closing quote
			}
			for k < len(s) && s[k] != ',' {
				k++
			}
			j = k
		} else {
			k := j
			for k < len(s) && s[k] != ',' {
				k++
			}
			value = strings.TrimSpace(s[j:k])
			j = k
		}

		ps = append(ps, Param{Key: key, Value: value})
		i = j + 1
	}

	return ps
}
