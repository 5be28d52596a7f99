// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotObject is returned when a model reply decodes to something other
// than a JSON object.
var ErrNotObject = errors.New("suggestion payload is not a JSON object")

// fenceRe matches a reply wrapped in a Markdown code fence, optionally
// tagged as json.
var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?\\s*```$")

// StripFence removes a surrounding ``` or ```json fence from a model reply.
// Unfenced text is returned trimmed.
func StripFence(reply string) string {
	s := strings.TrimSpace(reply)
	if m := fenceRe.FindStringSubmatch(s); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return s
}

// Parse decodes a model reply into an untyped payload for Apply.
func Parse(reply string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(StripFence(reply)), &v); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// Rationales extracts the per-field explanations a wizard reply carries under
// "rationales". Non-string entries are dropped.
func Rationales(payload map[string]any) map[string]string {
	raw, ok := payload["rationales"].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
