// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package header

import (
	"errors"
	"regexp"
	"strings"
)

type Action int

const (
	Remove Action = iota
	RemoveByPrefix
	Empty
	Add
)

// Header is a single header modification parsed from a command line flag.
type Header struct {
	Name   string
	Action Action
	Value  string
}

var (
	headerNameRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	headerLineRegex = regexp.MustCompile(`^([A-Za-z0-9-]+):\s*(.*)\r?\n?$`)
)

// ParseHeader supports the following syntax:
// - "<name>: <value>" to add a header,
// - "<name>;" to set a header to empty,
// - "-<name>" to remove a header,
// - "-<name>*" to remove a header by prefix.
func ParseHeader(val string) (Header, error) {
	var h Header

	if strings.HasPrefix(val, "-") {
		if strings.HasSuffix(val, "*") {
			h.Name = val[1 : len(val)-1]
			h.Action = RemoveByPrefix
		} else {
			h.Name = val[1:]
			h.Action = Remove
		}
	} else if strings.HasSuffix(val, ";") {
		h.Name = val[0 : len(val)-1]
		h.Action = Empty
	} else {
		m := headerLineRegex.FindStringSubmatch(val)
		if m == nil {
			return Header{}, errors.New("invalid header value")
		}
		h.Name = m[1]
		h.Value = m[2]
		h.Action = Add
	}

	if !headerNameRegex.MatchString(h.Name) {
		return Header{}, errors.New("invalid header name")
	}

	return h, nil
}

// ApplyTo applies the modification to a header list.
func (h *Header) ApplyTo(l *List) {
	switch h.Action {
	case Remove:
		l.Del(h.Name)
	case RemoveByPrefix:
		removeFieldsByPrefix(l, h.Name)
	case Empty:
		l.Set(h.Name, "")
	case Add:
		l.Add(h.Name, h.Value)
	}
}

func removeFieldsByPrefix(l *List, prefix string) {
	var names []string
	for _, f := range l.Fields() {
		if len(f.Name) >= len(prefix) && strings.EqualFold(f.Name[:len(prefix)], prefix) {
			names = append(names, f.Name)
		}
	}
	for _, n := range names {
		l.Del(n)
	}
}

func (h *Header) String() string {
	switch h.Action {
	case Remove:
		return "-" + h.Name
	case RemoveByPrefix:
		return "-" + h.Name + "*"
	case Empty:
		return h.Name + ";"
	case Add:
		return h.Name + ":" + h.Value
	default:
		return ""
	}
}

type Headers []Header

// ApplyTo applies all modifications to a header list in order.
func (s Headers) ApplyTo(l *List) {
	for i := range s {
		s[i].ApplyTo(l)
	}
}
