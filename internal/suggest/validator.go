// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package suggest turns an untrusted AI suggestion payload into a safe update
// of an idea. Every field is validated independently against its closed set
// and degrades to the previous value on any mismatch; Apply never fails.
package suggest

import (
	"strings"

	"promptwizard/internal/models"
	"promptwizard/internal/options"
)

// Mode selects which wizard produced the payload. The only difference is
// whether the project name may be overwritten.
type Mode int

const (
	// ModeKeywords invents the whole idea, name included, from keywords.
	ModeKeywords Mode = iota
	// ModeProjectName infers the other fields from a fixed project name.
	ModeProjectName
)

func (m Mode) String() string {
	switch m {
	case ModeKeywords:
		return "keywords"
	case ModeProjectName:
		return "project_name"
	default:
		return "unknown"
	}
}

// Apply returns current updated with the valid parts of payload. current is
// never modified. A nil payload yields an unchanged copy.
//
// Enum fields follow three rules: a member id is accepted, an explicit null
// clears the field, and anything else (absent key, wrong type, unknown id)
// keeps the previous value. Tech stack fields differ in one point: an
// absent key clears them too.
func Apply(payload map[string]any, current models.IdeaData, mode Mode) models.IdeaData {
	next := current.Clone()
	if payload == nil {
		return next
	}

	if mode == ModeKeywords {
		if s, ok := payload["projectName"].(string); ok && strings.TrimSpace(s) != "" {
			next.ProjectName = strings.TrimSpace(s)
		}
	}

	next.ProjectType = enumField(payload, "projectType", current.ProjectType, func(v options.ProjectType) bool {
		return options.Has(options.ProjectTypes, v)
	})
	next.Category = categoryField(payload, next.ProjectType, current.Category)
	next.SelectedStandardFeatures = featuresField(payload, current.SelectedStandardFeatures)

	next.Summary = textField(payload, "summary", current.Summary)
	next.CustomFeatures = textField(payload, "customFeatures", current.CustomFeatures)
	next.TargetAudience = textField(payload, "targetAudience", current.TargetAudience)

	// The tech stack is always resolved: a missing or non-object techStack
	// reads as an empty one, which clears every sub-field.
	ts, _ := payload["techStack"].(map[string]any)
	next.TechStack.Language = techField(ts, "language", current.TechStack.Language, func(v options.Language) bool {
		return options.Has(options.Languages, v)
	})
	next.TechStack.Framework = techField(ts, "framework", current.TechStack.Framework, func(v options.Framework) bool {
		return options.Has(options.Frameworks, v)
	})
	next.TechStack.Platform = techField(ts, "platform", current.TechStack.Platform, func(v options.Platform) bool {
		return options.Has(options.Platforms, v)
	})

	if b, ok := payload["useGoogleSearchGrounding"].(bool); ok {
		next.UseGoogleSearchGrounding = b
	}

	next.PromptTone = enumField(payload, "promptTone", current.PromptTone, func(v options.Tone) bool {
		return options.HasDescribed(options.Tones, v)
	})
	next.PromptStyle = enumField(payload, "promptStyle", current.PromptStyle, func(v options.Style) bool {
		return options.HasDescribed(options.Styles, v)
	})

	return next
}

// enumField resolves a single closed-set field.
func enumField[T ~string](payload map[string]any, key string, prev T, valid func(T) bool) T {
	raw, present := payload[key]
	if !present {
		return prev
	}
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok && valid(T(s)) {
		return T(s)
	}
	return prev
}

// techField resolves a tech stack field: absent or null clears it, a member
// id is accepted and any other value keeps prev.
func techField[T ~string](ts map[string]any, key string, prev T, valid func(T) bool) T {
	raw, present := ts[key]
	if !present || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok && valid(T(s)) {
		return T(s)
	}
	return prev
}

// categoryField resolves the category against the set implied by the already
// resolved project type. An unknown category string falls back to the first
// member of that set rather than being dropped.
func categoryField(payload map[string]any, pt options.ProjectType, prev options.Category) options.Category {
	set := options.CategoriesFor(pt)

	raw, present := payload["category"]
	switch {
	case present && raw == nil:
		return ""
	case present:
		if s, ok := raw.(string); ok && s != "" {
			if options.Has(set, options.Category(s)) {
				return options.Category(s)
			}
			if len(set) > 0 {
				return set[0].ID
			}
			return ""
		}
	}

	// No usable suggestion: keep the previous category only while it is still
	// consistent with the resolved project type.
	if prev != "" && !options.Has(set, prev) {
		return ""
	}
	return prev
}

// featuresField keeps valid, distinct feature keys from an array suggestion.
// A non-array suggestion leaves the previous list untouched.
func featuresField(payload map[string]any, prev []options.FeatureKey) []options.FeatureKey {
	arr, ok := payload["selectedStandardFeatures"].([]any)
	if !ok {
		if prev == nil {
			return nil
		}
		return append([]options.FeatureKey(nil), prev...)
	}

	out := make([]options.FeatureKey, 0, len(arr))
	seen := make(map[options.FeatureKey]bool, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			continue
		}
		key := options.FeatureKey(s)
		if _, known := options.FindFeature(key); !known || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func textField(payload map[string]any, key, prev string) string {
	if s, ok := payload[key].(string); ok && s != "" {
		return s
	}
	return prev
}
