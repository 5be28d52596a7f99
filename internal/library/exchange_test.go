// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package library

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"promptwizard/internal/models"
	"promptwizard/internal/options"
)

func TestExportFormat(t *testing.T) {
	data, err := Export([]models.SavedPrompt{{
		ID:          "1",
		Name:        "Tasker",
		PromptText:  "text",
		CreatedAt:   "2026-01-01T00:00:00.000Z",
		IdeaDetails: models.IdeaData{ProjectType: options.ProjectTypeApp},
	}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "[\n  {\n    \"id\": \"1\",") {
		t.Errorf("unexpected layout:\n%s", s)
	}
	if !strings.Contains(s, `"projectType": "Application"`) {
		t.Error("idea details missing")
	}

	empty, err := Export(nil)
	if err != nil || string(empty) != "[]" {
		t.Errorf("empty export: got %q, %v", empty, err)
	}
}

func TestExportDecodeRoundTrip(t *testing.T) {
	in := []models.SavedPrompt{
		{
			ID: "a", Name: "별빛 정원", PromptText: "for [AUDIENCE]",
			CreatedAt:              "2026-02-01T10:00:00.000Z",
			IdeaDetails:            models.IdeaData{ProjectType: options.ProjectTypeGame, Category: options.CategoryRPG},
			Tags:                   []string{"rpg"},
			IsFavorite:             true,
			TemplateVariableValues: map[string]string{"AUDIENCE": "kids"},
		},
	}
	data, err := Export(in)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	dec, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.Skipped() != 0 || len(dec.Records) != 1 {
		t.Fatalf("records=%d skipped=%d", len(dec.Records), dec.Skipped())
	}
	got := dec.Records[0]
	if got.Name != "별빛 정원" || got.IdeaDetails.Category != options.CategoryRPG || got.TemplateVariableValues["AUDIENCE"] != "kids" {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestDecodeSkipsInvalidRecords(t *testing.T) {
	doc := `[
		{"id": "ok", "name": "n", "promptText": "p", "createdAt": "2026-01-01T00:00:00Z", "ideaDetails": {}},
		{"id": 5, "name": "n", "promptText": "p", "createdAt": "c", "ideaDetails": {}},
		{"id": "x", "name": "n", "promptText": "p", "createdAt": "c"},
		{"id": "y", "name": "n", "promptText": "p", "createdAt": "c", "ideaDetails": null},
		{"id": "z", "name": "n", "promptText": "p", "createdAt": "c", "ideaDetails": {}, "tags": "a,b"},
		"just a string",
		null,
		{"id": "ok2", "name": "n2", "promptText": "p", "createdAt": "c", "ideaDetails": {"projectType": null}, "tags": [" t ", "t"]}
	]`

	dec, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var got []string
	for _, r := range dec.Records {
		got = append(got, r.ID)
	}
	if !slices.Equal(got, []string{"ok", "ok2"}) {
		t.Errorf("records: got %v", got)
	}
	if dec.Skipped() != 6 {
		t.Errorf("skipped: got %d, want 6", dec.Skipped())
	}
	var idx []int
	for _, r := range dec.Rejected {
		idx = append(idx, r.Index)
		if r.Reason == "" {
			t.Errorf("rejection %d has no reason", r.Index)
		}
	}
	if !slices.Equal(idx, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("rejected indexes: got %v", idx)
	}
	if !slices.Equal(dec.Records[1].Tags, []string{"t"}) {
		t.Errorf("tags not normalised: %v", dec.Records[1].Tags)
	}
}

func TestExportEmitsEmptyCollections(t *testing.T) {
	data, err := Export([]models.SavedPrompt{{ID: "1", Name: "n", PromptText: "p", CreatedAt: "c"}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`"selectedStandardFeatures": []`,
		`"tags": []`,
		`"isFavorite": false`,
		`"templateVariableValues": {}`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("export missing %s:\n%s", want, s)
		}
	}
	if strings.Contains(s, "null") {
		t.Errorf("export contains null:\n%s", s)
	}

	dec, err := Decode(data)
	if err != nil || len(dec.Records) != 1 || dec.Skipped() != 0 {
		t.Fatalf("re-import: records=%d skipped=%d err=%v rejected=%v", len(dec.Records), dec.Skipped(), err, dec.Rejected)
	}
}

func TestDecodeAcceptsNullCollections(t *testing.T) {
	doc := `[{"id": "a", "name": "n", "promptText": "p", "createdAt": "c",
		"ideaDetails": {"selectedStandardFeatures": null}, "tags": null, "templateVariableValues": null}]`

	dec, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dec.Records) != 1 {
		t.Fatalf("records=%d rejected=%v", len(dec.Records), dec.Rejected)
	}
	if got := dec.Records[0]; got.Tags != nil || got.TemplateVariableValues != nil || got.IdeaDetails.SelectedStandardFeatures != nil {
		t.Errorf("null collections should decode as unset: %+v", got)
	}
}

func TestDecodeRejectsUnknownOptions(t *testing.T) {
	tests := []struct {
		name string
		idea string
	}{
		{"project type", `{"projectType": "Bogus"}`},
		{"category of another type", `{"projectType": "Game", "category": "Productivity"}`},
		{"framework", `{"techStack": {"framework": "Rails"}}`},
		{"feature", `{"selectedStandardFeatures": ["teleport"]}`},
		{"duplicate feature", `{"selectedStandardFeatures": ["login", "login"]}`},
		{"tone", `{"promptTone": "grumpy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `[{"id": "a", "name": "n", "promptText": "p", "createdAt": "c", "ideaDetails": ` + tt.idea + `}]`
			dec, err := Decode([]byte(doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(dec.Records) != 0 || dec.Skipped() != 1 {
				t.Fatalf("records=%d skipped=%d", len(dec.Records), dec.Skipped())
			}
			if !strings.HasPrefix(dec.Rejected[0].Reason, "ideaDetails: ") {
				t.Errorf("reason: %q", dec.Rejected[0].Reason)
			}
		})
	}
}

func TestDecodeRejectsNonArray(t *testing.T) {
	for _, doc := range []string{`{"id": "1"}`, `null`, `"x"`, `not json`, ``} {
		if _, err := Decode([]byte(doc)); !errors.Is(err, ErrNotArray) {
			t.Errorf("Decode(%q): got %v, want ErrNotArray", doc, err)
		}
	}
	dec, err := Decode([]byte(`[]`))
	if err != nil || len(dec.Records) != 0 || dec.Skipped() != 0 {
		t.Errorf("empty array: %+v, %v", dec, err)
	}
}

func TestMerge(t *testing.T) {
	existing := []models.SavedPrompt{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}
	incoming := []models.SavedPrompt{{ID: "2", Name: "TWO"}, {ID: "3", Name: "three"}, {ID: "3", Name: "THREE"}}

	got := Merge(existing, incoming)
	var names []string
	for _, p := range got {
		names = append(names, p.ID+":"+p.Name)
	}
	if !slices.Equal(names, []string{"1:one", "2:TWO", "3:THREE"}) {
		t.Errorf("got %v", names)
	}
	if existing[1].Name != "two" {
		t.Error("existing slice was modified")
	}
}
