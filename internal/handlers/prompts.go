// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"promptwizard/internal/library"
	"promptwizard/internal/metrics"
	"promptwizard/internal/models"
	"promptwizard/internal/options"
	"promptwizard/internal/placeholder"
	"promptwizard/internal/prompt"
)

// Prompts serves the option registries, prompt generation and the
// placeholder preview. None of it touches storage or the network.
type Prompts struct {
	metrics *metrics.Metrics
}

// NewPrompts creates the prompt handler group. m may be nil.
func NewPrompts(m *metrics.Metrics) *Prompts {
	return &Prompts{metrics: m}
}

type optionsResponse struct {
	options.Catalog
	SortOptions []options.Option[library.SortOption] `json:"sortOptions"`
}

// Options returns every registry in display order.
func (p *Prompts) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Catalog:     options.All(),
		SortOptions: library.SortOptions,
	})
}

type generateResponse struct {
	PromptText    string   `json:"promptText"`
	Placeholders  []string `json:"placeholders"`
	SuggestedName string   `json:"suggestedName"`
}

// Generate renders an idea into prompt text. Enum fields outside their
// closed sets are rejected before generation.
func (p *Prompts) Generate(w http.ResponseWriter, r *http.Request) {
	var idea models.IdeaData
	if !decodeJSON(w, r, &idea) {
		return
	}
	if err := idea.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := prompt.Generate(idea)
	p.metrics.PromptGenerated()
	slog.Debug("prompt generated", "project", idea.ProjectName, "chars", len(text))

	writeJSON(w, http.StatusOK, generateResponse{
		PromptText:    text,
		Placeholders:  placeholder.Extract(text),
		SuggestedName: models.DefaultPromptName(idea),
	})
}

type previewRequest struct {
	PromptText string            `json:"promptText"`
	Values     map[string]string `json:"values"`
}

type previewResponse struct {
	Placeholders []string               `json:"placeholders"`
	Variables    []placeholder.Variable `json:"variables"`
	Values       map[string]string      `json:"values"`
	Stale        []string               `json:"stale"`
	Preview      string                 `json:"preview"`
}

// PreviewPlaceholders detects the [NAME] tokens of a prompt, reconciles
// the caller's values against them and renders the substituted preview.
func (p *Prompts) PreviewPlaceholders(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	names := placeholder.Extract(req.PromptText)
	values := placeholder.Reconcile(req.Values, names)
	stale := placeholder.Stale(req.PromptText, values)
	if stale == nil {
		stale = []string{}
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Placeholders: names,
		Variables:    placeholder.Active(req.PromptText, values),
		Values:       values,
		Stale:        stale,
		Preview:      placeholder.Render(req.PromptText, values),
	})
}
