// SPDX-License-Identifier: MPL-2.0

// Package plist writes Apple-style XML property lists.
//
// The encoder covers the subset of the plist format the hardware report
// needs: strings, booleans, arrays, and dictionaries. Output is byte-stable
// (tab indentation, self-closing boolean tags) so reports can be diffed and
// consumed by existing plist tooling.
package plist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n" +
		`<plist version="1.0">` + "\n"
	footer = "</plist>\n"
)

// escaper rewrites the five XML-reserved characters to their named
// entities. Applied to every emitted key and value, and nothing else.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape returns s with XML-reserved characters replaced by named entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Value is a node in a plist document.
type Value interface {
	encode(w *bufio.Writer, depth int) error
}

type (
	// String is a plist <string> value.
	String string

	// Bool is a plist boolean, emitted as a self-closing <true /> or
	// <false /> tag.
	Bool bool

	// Array is a plist <array> of values.
	Array []Value

	// Dict is a plist <dict> that preserves insertion order. Callers that
	// need deterministic output insert keys in sorted order.
	Dict struct {
		keys   []string
		values map[string]Value
	}
)

// NewDict returns an empty ordered dictionary.
func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

// Set adds or replaces the value for key. First insertion fixes the key's
// position in the emitted document.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Len returns the number of keys in the dictionary.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Encode writes the full plist document (header, root value, footer) to w.
func Encode(w io.Writer, root Value) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(header); err != nil {
		return err
	}
	if err := root.encode(bw, 0); err != nil {
		return err
	}
	if _, err := bw.WriteString(footer); err != nil {
		return err
	}
	return bw.Flush()
}

func writeIndented(w *bufio.Writer, depth int, line string) error {
	for range depth {
		if err := w.WriteByte('\t'); err != nil {
			return err
		}
	}
	_, err := w.WriteString(line + "\n")
	return err
}

func (s String) encode(w *bufio.Writer, depth int) error {
	return writeIndented(w, depth, "<string>"+Escape(string(s))+"</string>")
}

func (b Bool) encode(w *bufio.Writer, depth int) error {
	if b {
		return writeIndented(w, depth, "<true />")
	}
	return writeIndented(w, depth, "<false />")
}

func (a Array) encode(w *bufio.Writer, depth int) error {
	if err := writeIndented(w, depth, "<array>"); err != nil {
		return err
	}
	for _, v := range a {
		if err := v.encode(w, depth+1); err != nil {
			return err
		}
	}
	return writeIndented(w, depth, "</array>")
}

func (d *Dict) encode(w *bufio.Writer, depth int) error {
	if err := writeIndented(w, depth, "<dict>"); err != nil {
		return err
	}
	for _, key := range d.keys {
		if err := writeIndented(w, depth+1, fmt.Sprintf("<key>%s</key>", Escape(key))); err != nil {
			return err
		}
		if err := d.values[key].encode(w, depth+1); err != nil {
			return err
		}
	}
	return writeIndented(w, depth, "</dict>")
}
