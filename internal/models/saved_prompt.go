// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the textual form of SavedPrompt.CreatedAt: ISO 8601
// in UTC with millisecond precision, sortable and parseable.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// UntitledPromptName is used when a prompt is saved without a name and the
// idea has no project name either.
const UntitledPromptName = "제목 없는 프롬프트"

// SavedPrompt is a persisted, named snapshot of generated prompt text plus
// the idea it was generated from. The JSON shape is the import/export format.
type SavedPrompt struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	PromptText             string            `json:"promptText"`
	IdeaDetails            IdeaData          `json:"ideaDetails"`
	CreatedAt              string            `json:"createdAt"`
	Tags                   []string          `json:"tags"`
	IsFavorite             bool              `json:"isFavorite"`
	TemplateVariableValues map[string]string `json:"templateVariableValues"`
}

// MarshalJSON always emits tags as an array and variable values as an
// object, empty when unset.
func (p SavedPrompt) MarshalJSON() ([]byte, error) {
	type plain SavedPrompt
	out := plain(p)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.TemplateVariableValues == nil {
		out.TemplateVariableValues = map[string]string{}
	}
	return json.Marshal(out)
}

// Timestamp formats t in the persisted CreatedAt layout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CreatedTime parses CreatedAt. Records imported from elsewhere may carry
// any RFC 3339 variant; unparseable values yield the zero time.
func (p SavedPrompt) CreatedTime() time.Time {
	if t, err := time.Parse(time.RFC3339Nano, p.CreatedAt); err == nil {
		return t
	}
	return time.Time{}
}

// DefaultPromptName picks the display name for a newly generated prompt.
func DefaultPromptName(idea IdeaData) string {
	if idea.ProjectName != "" {
		return idea.ProjectName
	}
	return UntitledPromptName
}
