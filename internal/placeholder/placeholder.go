// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package placeholder treats prompt text as a template of [NAME] tokens,
// where NAME matches [A-Z0-9_]+. Substitution is literal find-and-replace;
// there is no nesting and substituted values are never rescanned.
package placeholder

import (
	"regexp"
	"slices"
)

var tokenRe = regexp.MustCompile(`\[([A-Z0-9_]+)\]`)

// Extract returns the distinct placeholder names in text, in order of first
// occurrence.
func Extract(text string) []string {
	matches := tokenRe.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Reconcile returns a copy of current with every name in names present,
// missing ones defaulting to "". Entries for names that are no longer
// detected are kept. The input map is not modified.
func Reconcile(current map[string]string, names []string) map[string]string {
	out := make(map[string]string, len(current)+len(names))
	for k, v := range current {
		out[k] = v
	}
	for _, n := range names {
		if _, ok := out[n]; !ok {
			out[n] = ""
		}
	}
	return out
}

// Render replaces every [NAME] token whose value is present and non-empty.
// Tokens without a value stay as written. Render(text, nil) == text.
func Render(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}
	return tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		if v := values[tok[1:len(tok)-1]]; v != "" {
			return v
		}
		return tok
	})
}

// Active returns the values for the names currently detected in text, in
// detection order. It is what a live editing view shows: stale entries in
// values are ignored, not deleted.
func Active(text string, values map[string]string) []Variable {
	names := Extract(text)
	vars := make([]Variable, len(names))
	for i, n := range names {
		vars[i] = Variable{Name: n, Value: values[n]}
	}
	return vars
}

// Variable is one detected placeholder and its current value.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Stale returns the names in values that no longer appear in text, sorted.
func Stale(text string, values map[string]string) []string {
	detected := make(map[string]bool)
	for _, n := range Extract(text) {
		detected[n] = true
	}
	var stale []string
	for k := range values {
		if !detected[k] {
			stale = append(stale, k)
		}
	}
	slices.Sort(stale)
	return stale
}
