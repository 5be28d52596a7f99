// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"testing"
)

func TestOpenAIModerator(t *testing.T) {
	t.Run("flagged input lists categories", func(t *testing.T) {
		srv, c := newCaptureServer(t, []byte(`{"id":"modr-1","model":"omni-moderation-latest","results":[
			{"flagged":true,"categories":{"hate":true,"hate/threatening":true,"violence":false}}]}`))

		m := newOpenAIModerator("sk-mod", srv.URL)
		res, err := m.CheckSafety(context.Background(), "nasty words")
		if err != nil {
			t.Fatalf("CheckSafety: %v", err)
		}
		if res.Safe {
			t.Fatal("expected flagged result")
		}
		if !slices.Contains(res.Categories, "hate") {
			t.Errorf("categories: got %v", res.Categories)
		}
		if slices.Contains(res.Categories, "violence") {
			t.Errorf("unflagged category reported: %v", res.Categories)
		}
		if c.path != "/moderations" {
			t.Errorf("path: got %q", c.path)
		}
		if !strings.Contains(string(c.body), "nasty words") {
			t.Errorf("input not sent: %s", c.body)
		}
	})

	t.Run("unflagged input is safe", func(t *testing.T) {
		srv, _ := newCaptureServer(t, []byte(`{"results":[{"flagged":false,"categories":{"hate":false}}]}`))
		res, err := newOpenAIModerator("k", srv.URL).CheckSafety(context.Background(), "우주 고양이")
		if err != nil || !res.Safe || len(res.Categories) != 0 {
			t.Errorf("got %+v, %v", res, err)
		}
	})

	t.Run("api error", func(t *testing.T) {
		srv := newTestServer(t, http.StatusUnauthorized, []byte(`{"error":{"message":"project key"}}`))
		defer srv.Close()
		if _, err := newOpenAIModerator("k", srv.URL).CheckSafety(context.Background(), "x"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestMistralModerator(t *testing.T) {
	t.Run("any true category flags", func(t *testing.T) {
		srv, c := newCaptureServer(t, []byte(`{"results":[{"categories":{"self_harm":true,"pii":false}}]}`))

		res, err := newMistralModerator("mk", srv.URL).CheckSafety(context.Background(), "text")
		if err != nil {
			t.Fatalf("CheckSafety: %v", err)
		}
		if res.Safe || len(res.Categories) != 1 || res.Categories[0] != "self harm" {
			t.Errorf("got %+v", res)
		}
		if c.path != "/moderations" {
			t.Errorf("path: got %q", c.path)
		}
		if c.headers.Get("Authorization") != "Bearer mk" {
			t.Errorf("Authorization: got %q", c.headers.Get("Authorization"))
		}
	})

	t.Run("no results is safe", func(t *testing.T) {
		srv, _ := newCaptureServer(t, []byte(`{"results":[]}`))
		res, err := newMistralModerator("mk", srv.URL).CheckSafety(context.Background(), "text")
		if err != nil || !res.Safe {
			t.Errorf("got %+v, %v", res, err)
		}
	})

	t.Run("http error keeps status", func(t *testing.T) {
		srv := newTestServer(t, http.StatusForbidden, []byte(`denied`))
		defer srv.Close()
		_, err := newMistralModerator("mk", srv.URL).CheckSafety(context.Background(), "text")
		if err == nil || !strings.Contains(err.Error(), "status 403") {
			t.Errorf("got %v", err)
		}
	})
}

func TestFallbackModerator(t *testing.T) {
	flagged := &ModerationResult{Safe: false, Categories: []string{"violence"}}

	t.Run("primary answer wins", func(t *testing.T) {
		primary := &stubModerator{result: &ModerationResult{Safe: true}}
		secondary := &stubModerator{result: flagged}
		res, err := newFallbackModerator(primary, secondary).CheckSafety(context.Background(), "x")
		if err != nil || !res.Safe || secondary.calls != 0 {
			t.Errorf("got %+v, %v, secondary calls %d", res, err, secondary.calls)
		}
	})

	t.Run("secondary used on primary failure", func(t *testing.T) {
		primary := &stubModerator{err: errors.New("401")}
		secondary := &stubModerator{result: flagged}
		res, err := newFallbackModerator(primary, secondary).CheckSafety(context.Background(), "x")
		if err != nil || res.Safe {
			t.Errorf("got %+v, %v", res, err)
		}
	})

	t.Run("both failing joins errors", func(t *testing.T) {
		e1, e2 := errors.New("first"), errors.New("second")
		_, err := newFallbackModerator(&stubModerator{err: e1}, &stubModerator{err: e2}).CheckSafety(context.Background(), "x")
		if !errors.Is(err, e1) || !errors.Is(err, e2) {
			t.Errorf("got %v", err)
		}
	})
}

func TestFlaggedNames(t *testing.T) {
	got := flaggedNames(map[string]bool{
		"violence/graphic": true,
		"self_harm":        true,
		"hate":             false,
	})
	want := []string{"self harm", "violence (graphic)"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
