// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assist runs the AI-backed helpers of the idea wizard: filling an
// idea from keywords or from a project name, proposing related or random
// keywords, and refining a finished prompt. Every AI answer that feeds
// the idea form goes through the suggestion validator before it is
// returned.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"promptwizard/internal/ai"
	"promptwizard/internal/cache"
	"promptwizard/internal/metrics"
	"promptwizard/internal/models"
	"promptwizard/internal/suggest"
)

// Operation names used for cache keys and metrics labels.
const (
	OpKeywords        = "keywords"
	OpProjectName     = "project_name"
	OpRelatedKeywords = "related_keywords"
	OpRandomKeywords  = "random_keywords"
	OpRefine          = "refine"
)

// DefaultRelatedness is the relatedness used when the caller sends none.
const DefaultRelatedness = 0.5

// trendsBaseURL opens Google Trends in Korean for a search term.
const trendsBaseURL = "https://trends.google.com/trends/explore?hl=ko&q="

var (
	ErrEmptyKeywords    = errors.New("keywords are required")
	ErrEmptyProjectName = errors.New("project name is required")
	ErrEmptyInstruction = errors.New("refinement instruction is required")
	ErrEmptyQuery       = errors.New("keywords or project name are required")
	ErrEmptyReply       = errors.New("AI returned an empty reply")
)

// FlaggedError reports user input rejected by moderation.
type FlaggedError struct {
	Categories []string
}

func (e *FlaggedError) Error() string {
	return "input flagged by moderation: " + strings.Join(e.Categories, ", ")
}

// Generator is the AI surface the wizard needs. *ai.Registry satisfies it.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CheckPrompt(ctx context.Context, text string) (*ai.ModerationResult, error)
	ActiveName() string
}

// Cache stores raw AI replies. *cache.ResponseCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, reply string)
}

// Suggestion is a validated idea plus the model's per-field rationales.
type Suggestion struct {
	Idea       models.IdeaData   `json:"idea"`
	Rationales map[string]string `json:"rationales"`
}

// Service runs wizard operations against the active AI provider.
type Service struct {
	gen     Generator
	cache   Cache            // nil disables caching
	metrics *metrics.Metrics // nil disables metrics
}

// New creates a wizard service. cache and m may be nil.
func New(gen Generator, c Cache, m *metrics.Metrics) *Service {
	return &Service{gen: gen, cache: c, metrics: m}
}

// KeywordWizard turns free keywords into a complete idea. The AI answer
// replaces every field it validly sets, including the project name.
func (s *Service) KeywordWizard(ctx context.Context, keywords string, current models.IdeaData) (*Suggestion, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, ErrEmptyKeywords
	}
	if err := s.moderate(ctx, OpKeywords, keywords); err != nil {
		return nil, err
	}
	return s.suggest(ctx, OpKeywords, keywordWizardPrompt(keywords, current), current, suggest.ModeKeywords)
}

// NameWizard fills an idea around its fixed project name.
func (s *Service) NameWizard(ctx context.Context, current models.IdeaData) (*Suggestion, error) {
	name := strings.TrimSpace(current.ProjectName)
	if name == "" {
		return nil, ErrEmptyProjectName
	}
	if err := s.moderate(ctx, OpProjectName, name); err != nil {
		return nil, err
	}
	return s.suggest(ctx, OpProjectName, nameWizardPrompt(current), current, suggest.ModeProjectName)
}

func (s *Service) suggest(ctx context.Context, op, prompt string, current models.IdeaData, mode suggest.Mode) (*Suggestion, error) {
	var payload map[string]any
	_, err := s.call(ctx, op, prompt, true, true, func(reply string) error {
		var err error
		payload, err = suggest.Parse(reply)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Suggestion{
		Idea:       suggest.Apply(payload, current, mode),
		Rationales: suggest.Rationales(payload),
	}, nil
}

// RelatedKeywords proposes a comma separated keyword list derived from
// keywords. relatedness is clamped to [0, 1].
func (s *Service) RelatedKeywords(ctx context.Context, keywords string, relatedness float64) (string, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return "", ErrEmptyKeywords
	}
	if err := s.moderate(ctx, OpRelatedKeywords, keywords); err != nil {
		return "", err
	}
	return s.call(ctx, OpRelatedKeywords, relatedKeywordsPrompt(keywords, relatedness), false, true, nil)
}

// RandomKeywords proposes five unrelated creative keywords. Replies are
// never cached.
func (s *Service) RandomKeywords(ctx context.Context) (string, error) {
	return s.call(ctx, OpRandomKeywords, randomKeywordsPrompt, false, false, nil)
}

// Refine applies instruction to promptText and returns the rewritten prompt.
func (s *Service) Refine(ctx context.Context, promptText, instruction string) (string, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return "", ErrEmptyInstruction
	}
	if err := s.moderate(ctx, OpRefine, instruction); err != nil {
		return "", err
	}
	return s.call(ctx, OpRefine, refinePrompt(promptText, instruction), false, true, nil)
}

// call sends prompt to the active provider, consulting the cache first.
// The reply is trimmed; an empty reply is an error. When check is set it
// must accept the reply before it is cached or returned.
func (s *Service) call(ctx context.Context, op, prompt string, jsonMode, cacheable bool, check func(string) error) (string, error) {
	key := cache.Key(s.gen.ActiveName(), op, prompt)
	if cacheable && s.cache != nil {
		if reply, ok := s.cache.Get(ctx, key); ok && (check == nil || check(reply) == nil) {
			s.metrics.AIRequest(op, metrics.OutcomeCached)
			return reply, nil
		}
	}

	var reply string
	var err error
	if jsonMode {
		reply, err = s.gen.GenerateJSON(ctx, "", prompt)
	} else {
		reply, err = s.gen.Generate(ctx, "", prompt)
	}
	if err != nil {
		s.metrics.AIRequest(op, metrics.OutcomeError)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		s.metrics.AIRequest(op, metrics.OutcomeError)
		return "", fmt.Errorf("%s: %w", op, ErrEmptyReply)
	}
	if check != nil {
		if err := check(reply); err != nil {
			s.metrics.AIRequest(op, metrics.OutcomeError)
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if cacheable && s.cache != nil {
		s.cache.Set(ctx, key, reply)
	}
	s.metrics.AIRequest(op, metrics.OutcomeOK)
	return reply, nil
}

// moderate rejects flagged input. A failing moderation backend lets the
// input through since providers apply their own safety filters.
func (s *Service) moderate(ctx context.Context, op, text string) error {
	res, err := s.gen.CheckPrompt(ctx, text)
	if err != nil {
		slog.Warn("moderation check failed, allowing input", "operation", op, "error", err)
		return nil
	}
	if res.Safe {
		return nil
	}
	slog.Warn("wizard input flagged by moderation", "operation", op, "categories", strings.Join(res.Categories, ", "))
	s.metrics.AIRequest(op, metrics.OutcomeRejected)
	return &FlaggedError{Categories: res.Categories}
}

// ClampRelatedness limits v to [0, 1]. NaN becomes DefaultRelatedness.
func ClampRelatedness(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultRelatedness
	}
	return math.Max(0, math.Min(1, v))
}

// FormatRelatedness renders a clamped relatedness with two decimals.
func FormatRelatedness(v float64) string {
	return strconv.FormatFloat(ClampRelatedness(v), 'f', 2, 64)
}

// TrendsURL links to Google Trends for the keywords or, when they are
// blank, the project name.
func TrendsURL(keywords, projectName string) (string, error) {
	q := strings.TrimSpace(keywords)
	if q == "" {
		q = strings.TrimSpace(projectName)
	}
	if q == "" {
		return "", ErrEmptyQuery
	}
	// Spaces as %20 so the link matches what browsers produce.
	return trendsBaseURL + strings.ReplaceAll(url.QueryEscape(q), "+", "%20"), nil
}
