// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"

	"promptwizard/internal/options"
)

// TechStack holds three independently optional technology preferences.
// An empty value means "no preference".
type TechStack struct {
	Language  options.Language  `json:"language,omitempty" yaml:"language,omitempty"`
	Framework options.Framework `json:"framework,omitempty" yaml:"framework,omitempty"`
	Platform  options.Platform  `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// IsEmpty reports whether no technology preference is set.
func (t TechStack) IsEmpty() bool {
	return t.Language == "" && t.Framework == "" && t.Platform == ""
}

// ProjectImage is a reference image attached to an idea. The payload is
// carried opaquely; prompt generation only uses the name and MIME type.
type ProjectImage struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Base64Data string `json:"base64Data" yaml:"base64Data"`
}

// IdeaData is the structured description of a project from which the
// prompt text is generated. Enum fields are either empty (unset) or a
// member of their registry.
type IdeaData struct {
	ProjectName              string               `json:"projectName" yaml:"projectName"`
	ProjectType              options.ProjectType  `json:"projectType,omitempty" yaml:"projectType,omitempty"`
	Category                 options.Category     `json:"category,omitempty" yaml:"category,omitempty"`
	Summary                  string               `json:"summary" yaml:"summary"`
	SelectedStandardFeatures []options.FeatureKey `json:"selectedStandardFeatures" yaml:"selectedStandardFeatures"`
	CustomFeatures           string               `json:"customFeatures" yaml:"customFeatures"`
	TargetAudience           string               `json:"targetAudience" yaml:"targetAudience"`
	TechStack                TechStack            `json:"techStack" yaml:"techStack"`
	UseGoogleSearchGrounding bool                 `json:"useGoogleSearchGrounding" yaml:"useGoogleSearchGrounding"`
	ProjectImage             *ProjectImage        `json:"projectImage,omitempty" yaml:"projectImage,omitempty"`
	PromptTone               options.Tone         `json:"promptTone,omitempty" yaml:"promptTone,omitempty"`
	PromptStyle              options.Style        `json:"promptStyle,omitempty" yaml:"promptStyle,omitempty"`
}

// MarshalJSON writes a nil feature list as [] so every encoded idea
// carries the array.
func (d IdeaData) MarshalJSON() ([]byte, error) {
	type plain IdeaData
	out := plain(d)
	if out.SelectedStandardFeatures == nil {
		out.SelectedStandardFeatures = []options.FeatureKey{}
	}
	return json.Marshal(out)
}

// Clone returns a deep copy so callers can derive a new idea without
// aliasing the feature slice or image of the original.
func (d IdeaData) Clone() IdeaData {
	out := d
	if d.SelectedStandardFeatures != nil {
		out.SelectedStandardFeatures = append([]options.FeatureKey(nil), d.SelectedStandardFeatures...)
	}
	if d.ProjectImage != nil {
		img := *d.ProjectImage
		out.ProjectImage = &img
	}
	return out
}

// Validate checks that every enum field is unset or a member of its closed
// set, that the category belongs to the project type's set, and that no
// standard feature is listed twice.
func (d IdeaData) Validate() error {
	if d.ProjectType != "" && !options.Has(options.ProjectTypes, d.ProjectType) {
		return fmt.Errorf("unknown project type %q", d.ProjectType)
	}
	if d.Category != "" && !options.Has(options.CategoriesFor(d.ProjectType), d.Category) {
		return fmt.Errorf("category %q is not valid for project type %q", d.Category, d.ProjectType)
	}

	seen := make(map[options.FeatureKey]bool, len(d.SelectedStandardFeatures))
	for _, f := range d.SelectedStandardFeatures {
		if _, ok := options.FindFeature(f); !ok {
			return fmt.Errorf("unknown standard feature %q", f)
		}
		if seen[f] {
			return fmt.Errorf("standard feature %q listed twice", f)
		}
		seen[f] = true
	}

	if d.TechStack.Language != "" && !options.Has(options.Languages, d.TechStack.Language) {
		return fmt.Errorf("unknown language %q", d.TechStack.Language)
	}
	if d.TechStack.Framework != "" && !options.Has(options.Frameworks, d.TechStack.Framework) {
		return fmt.Errorf("unknown framework %q", d.TechStack.Framework)
	}
	if d.TechStack.Platform != "" && !options.Has(options.Platforms, d.TechStack.Platform) {
		return fmt.Errorf("unknown platform %q", d.TechStack.Platform)
	}
	if d.PromptTone != "" && !options.HasDescribed(options.Tones, d.PromptTone) {
		return fmt.Errorf("unknown prompt tone %q", d.PromptTone)
	}
	if d.PromptStyle != "" && !options.HasDescribed(options.Styles, d.PromptStyle) {
		return fmt.Errorf("unknown prompt style %q", d.PromptStyle)
	}
	return nil
}
