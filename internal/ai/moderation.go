// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ModerationResult contains the outcome of a safety check.
type ModerationResult struct {
	Safe       bool     // true if the text passes moderation
	Categories []string // sorted flagged category names (empty when safe)
}

// Moderator checks user-supplied text for policy violations before it is
// sent to an AI generation endpoint.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// --- OpenAI Moderation (free endpoint) ---

// openAIModerator uses the OpenAI Moderation API (POST /moderations).
type openAIModerator struct {
	client *openai.Client
}

// newOpenAIModerator creates a moderator that uses OpenAI's moderation API.
func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	oc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		oc.BaseURL = baseURL
	}
	oc.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	return &openAIModerator{client: openai.NewClientWithConfig(oc)}
}

func (m *openAIModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	resp, err := m.client.Moderations(ctx, openai.ModerationRequest{Input: text})
	if err != nil {
		return nil, fmt.Errorf("moderation: %w", err)
	}
	if len(resp.Results) == 0 || !resp.Results[0].Flagged {
		return &ModerationResult{Safe: true}, nil
	}

	// Round-trip the typed categories through JSON to keep their wire names
	// ("hate/threatening") without listing every field by hand.
	raw, err := json.Marshal(resp.Results[0].Categories)
	if err != nil {
		return nil, fmt.Errorf("moderation categories: %w", err)
	}
	var categories map[string]bool
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("moderation categories: %w", err)
	}

	return &ModerationResult{Safe: false, Categories: flaggedNames(categories)}, nil
}

// --- Mistral Moderation (paid, fallback) ---

// mistralModerator uses the Mistral Moderation API (POST /v1/moderations).
type mistralModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// newMistralModerator creates a moderator using Mistral's classification
// endpoint. baseURL is the provider base URL including /v1.
func newMistralModerator(apiKey, baseURL string) *mistralModerator {
	if baseURL == "" {
		baseURL = mistralDefaultBaseURL
	}
	return &mistralModerator{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *mistralModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	payload, err := json.Marshal(mistralModRequest{
		Model: "mistral-moderation-latest",
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("mistral moderation marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("mistral moderation request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mistral moderation http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mistral moderation read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &moderationStatusError{status: resp.StatusCode, body: string(respBody)}
	}

	var result mistralModResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("mistral moderation unmarshal: %w", err)
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	// Mistral has no top-level "flagged"; any true category flags the input.
	flagged := flaggedNames(result.Results[0].Categories)
	return &ModerationResult{Safe: len(flagged) == 0, Categories: flagged}, nil
}

// --- Fallback ---

// fallbackModerator asks the primary moderator first and switches to the
// secondary when the primary fails, e.g. when a project-scoped OpenAI key
// is refused by the moderation endpoint.
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := m.primary.CheckSafety(ctx, text)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	slog.Warn("primary moderation failed, using fallback", "error", err)

	res, fbErr := m.secondary.CheckSafety(ctx, text)
	if fbErr != nil {
		return nil, errors.Join(err, fbErr)
	}
	return res, nil
}

// moderationStatusError reports a non-200 answer from a moderation API.
type moderationStatusError struct {
	status int
	body   string
}

func (e *moderationStatusError) Error() string {
	return fmt.Sprintf("moderation API error (status %d): %s", e.status, e.body)
}

// flaggedNames turns flagged category keys into readable, sorted names:
// "hate/threatening" becomes "hate (threatening)" and underscores become
// spaces.
func flaggedNames(categories map[string]bool) []string {
	var names []string
	for cat, isFlagged := range categories {
		if !isFlagged {
			continue
		}
		display := cat
		if before, after, ok := strings.Cut(cat, "/"); ok {
			display = before + " (" + after + ")"
		}
		names = append(names, strings.ReplaceAll(display, "_", " "))
	}
	slices.Sort(names)
	return names
}

// --- Request/Response types ---

type mistralModRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type mistralModResponse struct {
	Results []mistralModResult `json:"results"`
}

type mistralModResult struct {
	Categories map[string]bool `json:"categories"`
}
