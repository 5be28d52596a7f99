// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package placeholder

import (
	"maps"
	"slices"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "plain text", []string{}},
		{"single", "for [AUDIENCE] users", []string{"AUDIENCE"}},
		{"first occurrence order", "[B] then [A] then [B] and [C_1]", []string{"B", "A", "C_1"}},
		{"lowercase ignored", "[name] and [Name]", []string{}},
		{"unmatched bracket", "[OPEN and CLOSE]", []string{}},
		{"empty brackets", "[]", []string{}},
		{"nested", "[[INNER]]", []string{"INNER"}},
		{"digits", "[V2] [2024]", []string{"V2", "2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	current := map[string]string{"OLD": "kept", "A": "set"}
	got := Reconcile(current, []string{"A", "B"})

	want := map[string]string{"OLD": "kept", "A": "set", "B": ""}
	if !maps.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, ok := current["B"]; ok {
		t.Error("input map was modified")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	inputs := []map[string]string{
		nil,
		{},
		{"X": "1"},
		{"A": "", "Z": "zed"},
	}
	names := []string{"A", "B", "X"}

	for _, m := range inputs {
		once := Reconcile(m, names)
		twice := Reconcile(once, names)
		if !maps.Equal(once, twice) {
			t.Errorf("reconcile not idempotent for %v: %v vs %v", m, once, twice)
		}
	}
}

func TestRenderEmptyValuesIsIdentity(t *testing.T) {
	texts := []string{
		"",
		"no tokens here",
		"[A] and [B] and [A]",
		"[lower] [MIXED_case] [OK_1]",
	}
	for _, text := range texts {
		if got := Render(text, map[string]string{}); got != text {
			t.Errorf("Render(%q, {}) = %q", text, got)
		}
		if got := Render(text, nil); got != text {
			t.Errorf("Render(%q, nil) = %q", text, got)
		}
	}
}

func TestRenderRoundTrip(t *testing.T) {
	text := "Build [APP] for [AUDIENCE]. [APP] must ship by [DATE]."
	values := map[string]string{"APP": "Tasker", "AUDIENCE": "students", "DATE": ""}

	got := Render(text, values)
	want := "Build Tasker for students. Tasker must ship by [DATE]."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	for name, v := range values {
		if v != "" && strings.Contains(got, "["+name+"]") {
			t.Errorf("token [%s] left unreplaced", name)
		}
	}
}

func TestRenderValueNotRescanned(t *testing.T) {
	got := Render("[A] [B]", map[string]string{"A": "[B]", "B": "bee"})
	if got != "[B] bee" {
		t.Errorf("got %q, want %q", got, "[B] bee")
	}
}

func TestPlaceholderLifecycle(t *testing.T) {
	summary := "for [AUDIENCE] users"

	names := Extract(summary)
	if !slices.Equal(names, []string{"AUDIENCE"}) {
		t.Fatalf("extract: got %v", names)
	}

	values := Reconcile(map[string]string{}, names)
	if !maps.Equal(values, map[string]string{"AUDIENCE": ""}) {
		t.Fatalf("reconcile: got %v", values)
	}

	values["AUDIENCE"] = "students"
	if got := Render(summary, values); got != "for students users" {
		t.Errorf("render: got %q", got)
	}

	values["AUDIENCE"] = ""
	if got := Render(summary, values); got != summary {
		t.Errorf("render after clear: got %q", got)
	}
}

func TestActiveAndStale(t *testing.T) {
	text := "[B] [A]"
	values := map[string]string{"A": "a", "GONE": "x", "ALSO_GONE": ""}

	active := Active(text, values)
	want := []Variable{{Name: "B"}, {Name: "A", Value: "a"}}
	if !slices.Equal(active, want) {
		t.Errorf("active: got %v, want %v", active, want)
	}

	if got := Stale(text, values); !slices.Equal(got, []string{"ALSO_GONE", "GONE"}) {
		t.Errorf("stale: got %v", got)
	}
}
