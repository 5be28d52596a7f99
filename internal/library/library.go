// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package library holds the record-collection logic of the prompt library:
// search, sorting, tag parsing, duplication and the import/export format.
// It works on plain slices; persistence lives in the store package.
package library

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"promptwizard/internal/models"
	"promptwizard/internal/options"
)

// SortOption names a library ordering.
type SortOption string

const (
	SortCreatedDesc    SortOption = "createdAt_desc"
	SortCreatedAsc     SortOption = "createdAt_asc"
	SortNameAsc        SortOption = "name_asc"
	SortNameDesc       SortOption = "name_desc"
	SortProjectTypeAsc SortOption = "projectType_asc"
)

// DefaultSort is used when no or an unknown ordering is requested.
const DefaultSort = SortCreatedDesc

const copySuffix = " (사본)"

// SortOptions lists the orderings with their display labels.
var SortOptions = []options.Option[SortOption]{
	{ID: SortCreatedDesc, Label: "최신순 (기본값)"},
	{ID: SortCreatedAsc, Label: "오래된순"},
	{ID: SortNameAsc, Label: "이름 (오름차순)"},
	{ID: SortNameDesc, Label: "이름 (내림차순)"},
	{ID: SortProjectTypeAsc, Label: "프로젝트 유형 (오름차순)"},
}

// ParseSort maps a query value to a SortOption, defaulting to newest first.
func ParseSort(s string) SortOption {
	if options.Has(SortOptions, SortOption(s)) {
		return SortOption(s)
	}
	return DefaultSort
}

// Query filters and orders a library listing. The zero value lists every
// record newest first.
type Query struct {
	Term          string
	Tag           string
	FavoritesOnly bool
	Sort          SortOption
}

// Search returns the records matching q in the requested order. The input
// slice is not modified.
func Search(prompts []models.SavedPrompt, q Query) []models.SavedPrompt {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	tag := strings.ToLower(strings.TrimSpace(q.Tag))

	out := make([]models.SavedPrompt, 0, len(prompts))
	for _, p := range prompts {
		if q.FavoritesOnly && !p.IsFavorite {
			continue
		}
		if tag != "" && !hasTag(p, tag) {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		out = append(out, p)
	}
	Sort(out, q.Sort)
	return out
}

// matches is a case-insensitive substring match on name, text and tags.
func matches(p models.SavedPrompt, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.PromptText), term) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func hasTag(p models.SavedPrompt, tag string) bool {
	for _, t := range p.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// Sort orders prompts in place. The sort is stable, so records that compare
// equal keep their stored order. Unknown options sort newest first.
func Sort(prompts []models.SavedPrompt, by SortOption) {
	var less func(a, b models.SavedPrompt) int
	switch by {
	case SortCreatedAsc:
		less = func(a, b models.SavedPrompt) int { return a.CreatedTime().Compare(b.CreatedTime()) }
	case SortNameAsc:
		less = func(a, b models.SavedPrompt) int { return compareNames(a.Name, b.Name) }
	case SortNameDesc:
		less = func(a, b models.SavedPrompt) int { return compareNames(b.Name, a.Name) }
	case SortProjectTypeAsc:
		less = func(a, b models.SavedPrompt) int {
			return cmp.Compare(
				options.ProjectTypeLabel(a.IdeaDetails.ProjectType),
				options.ProjectTypeLabel(b.IdeaDetails.ProjectType),
			)
		}
	default:
		less = func(a, b models.SavedPrompt) int { return b.CreatedTime().Compare(a.CreatedTime()) }
	}
	slices.SortStableFunc(prompts, less)
}

// compareNames orders case-insensitively, breaking ties on the raw bytes.
func compareNames(a, b string) int {
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// ParseTags splits comma-separated tag input. Tags are trimmed, empties are
// dropped and duplicates collapse to their first occurrence.
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// NormalizeTags applies ParseTags semantics to an already split list.
func NormalizeTags(tags []string) []string {
	return ParseTags(strings.Join(tags, ","))
}

// Duplicate copies p under a new id with a " (사본)" suffix and a fresh
// creation time. Nested values are deep-copied.
func Duplicate(p models.SavedPrompt, id string, now time.Time) models.SavedPrompt {
	dup := p
	dup.ID = id
	dup.Name = p.Name + copySuffix
	dup.CreatedAt = models.Timestamp(now)
	dup.IdeaDetails = p.IdeaDetails.Clone()
	if p.Tags != nil {
		dup.Tags = append([]string(nil), p.Tags...)
	}
	if p.TemplateVariableValues != nil {
		dup.TemplateVariableValues = make(map[string]string, len(p.TemplateVariableValues))
		for k, v := range p.TemplateVariableValues {
			dup.TemplateVariableValues[k] = v
		}
	}
	return dup
}

// Tags returns every distinct tag across prompts, sorted.
func Tags(prompts []models.SavedPrompt) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range prompts {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	slices.Sort(out)
	return out
}
