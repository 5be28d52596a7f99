// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives filesystem and URL friendly names from prompt names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that isn't a letter, digit, whitespace or hyphen.
	// Letters include Hangul so Korean prompt names keep their meaning.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	// whitespace collapses runs of any whitespace into a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from the given string.
// Example: "스터디 메이트: Go Edition!" → "스터디-메이트-go-edition"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = disallowed.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Filename returns "<slug>.json" for a prompt name, using "prompt" when the
// name has no usable characters.
func Filename(name string) string {
	s := Generate(name)
	if s == "" {
		s = "prompt"
	}
	return s + ".json"
}
