// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package header

import (
	"net/http"
	"sort"
	"strings"
)

// Field is a single header name/value pair.
type Field struct {
	Name  string
	Value string
}

// List is an ordered list of header fields.
// Unlike http.Header it preserves insertion order across names and allows
// duplicate names. Name matching is case-insensitive.
// The zero value is an empty list ready for use.
type List struct {
	fields []Field
}

// NewList returns a list with the given fields in order.
func NewList(fields ...Field) *List {
	return &List{fields: fields}
}

// FromHTTPHeader converts an http.Header to a List.
// Fields are ordered by canonical name, values keep their order within a name.
func FromHTTPHeader(h http.Header) *List {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	l := &List{}
	for _, name := range names {
		for _, v := range h[name] {
			l.Add(name, v)
		}
	}
	return l
}

// Add appends a field to the list.
func (l *List) Add(name, value string) {
	l.fields = append(l.fields, Field{Name: name, Value: value})
}

// Prepend inserts a field at the front of the list.
func (l *List) Prepend(name, value string) {
	l.fields = append([]Field{{Name: name, Value: value}}, l.fields...)
}

// Get returns the value of the first field with the given name.
func (l *List) Get(name string) (string, bool) {
	for _, f := range l.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns all values for the given name in insertion order.
func (l *List) Values(name string) []string {
	var vs []string
	for _, f := range l.fields {
		if strings.EqualFold(f.Name, name) {
			vs = append(vs, f.Value)
		}
	}
	return vs
}

// Del removes all fields with the given name and reports how many were removed.
func (l *List) Del(name string) int {
	n := 0
	kept := l.fields[:0]
	for _, f := range l.fields {
		if strings.EqualFold(f.Name, name) {
			n++
			continue
		}
		kept = append(kept, f)
	}
	l.fields = kept
	return n
}

// Set replaces all fields with the given name with a single field.
// The new field is appended at the end of the list.
func (l *List) Set(name, value string) {
	l.Del(name)
	l.Add(name, value)
}

// Len returns the number of fields in the list.
func (l *List) Len() int {
	return len(l.fields)
}

// Fields returns the underlying fields in order.
// The returned slice must not be modified.
func (l *List) Fields() []Field {
	return l.fields
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	if l == nil {
		return &List{}
	}
	c := &List{fields: make([]Field, len(l.fields))}
	copy(c.fields, l.fields)
	return c
}

// ApplyTo adds all fields to an http.Header in order.
func (l *List) ApplyTo(h http.Header) {
	for _, f := range l.fields {
		h.Add(f.Name, f.Value)
	}
}
