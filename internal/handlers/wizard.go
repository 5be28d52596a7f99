// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"promptwizard/internal/assist"
	"promptwizard/internal/models"
	"promptwizard/internal/store"
)

// ProviderSwitcher lists and switches AI providers. *ai.Registry satisfies it.
type ProviderSwitcher interface {
	ActiveName() string
	Available() []string
	SetActive(name string) error
}

// CachePurger clears cached AI replies. *cache.ResponseCache satisfies it.
type CachePurger interface {
	InvalidateAll(ctx context.Context) int
}

// PurgeLog records cache purges. *store.CacheLogStore satisfies it.
type PurgeLog interface {
	Log(reason, provider string, deleted int)
	RecentEntries(limit int) ([]store.CacheLogEntry, error)
}

// recentPurges is how many purge log entries the history endpoint returns.
const recentPurges = 20

// Wizard serves the AI-backed wizard endpoints and provider administration.
type Wizard struct {
	assist    *assist.Service
	providers ProviderSwitcher
	cache     CachePurger // nil when Valkey is not configured
	purgeLog  PurgeLog    // nil when the database is not configured
}

// NewWizard creates the wizard handler group. cache and purgeLog may be nil.
func NewWizard(svc *assist.Service, providers ProviderSwitcher, cache CachePurger, purgeLog PurgeLog) *Wizard {
	return &Wizard{assist: svc, providers: providers, cache: cache, purgeLog: purgeLog}
}

type keywordWizardRequest struct {
	Keywords string          `json:"keywords"`
	Idea     models.IdeaData `json:"idea"`
}

// KeywordWizard fills an idea from free keywords.
func (h *Wizard) KeywordWizard(w http.ResponseWriter, r *http.Request) {
	var req keywordWizardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateWizardText("Keywords", req.Keywords, maxKeywordsLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s, err := h.assist.KeywordWizard(r.Context(), req.Keywords, req.Idea)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type nameWizardRequest struct {
	Idea models.IdeaData `json:"idea"`
}

// NameWizard fills an idea around its project name.
func (h *Wizard) NameWizard(w http.ResponseWriter, r *http.Request) {
	var req nameWizardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateWizardText("Project name", req.Idea.ProjectName, maxNameLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s, err := h.assist.NameWizard(r.Context(), req.Idea)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type relatedKeywordsRequest struct {
	Keywords    string   `json:"keywords"`
	Relatedness *float64 `json:"relatedness"`
}

type keywordsResponse struct {
	Keywords    string   `json:"keywords"`
	Relatedness *float64 `json:"relatedness,omitempty"`
}

// RelatedKeywords proposes keywords related to the given ones. A missing
// relatedness uses the default; out of range values are clamped.
func (h *Wizard) RelatedKeywords(w http.ResponseWriter, r *http.Request) {
	var req relatedKeywordsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateWizardText("Keywords", req.Keywords, maxKeywordsLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	relatedness := assist.DefaultRelatedness
	if req.Relatedness != nil {
		relatedness = assist.ClampRelatedness(*req.Relatedness)
	}

	keywords, err := h.assist.RelatedKeywords(r.Context(), req.Keywords, relatedness)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keywordsResponse{Keywords: keywords, Relatedness: &relatedness})
}

// RandomKeywords proposes five unrelated creative keywords.
func (h *Wizard) RandomKeywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := h.assist.RandomKeywords(r.Context())
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keywordsResponse{Keywords: keywords})
}

type refineRequest struct {
	PromptText  string `json:"promptText"`
	Instruction string `json:"instruction"`
}

type refineResponse struct {
	PromptText string `json:"promptText"`
}

// Refine rewrites a prompt according to an instruction.
func (h *Wizard) Refine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateWizardText("Instruction", req.Instruction, maxInstructionLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateWizardText("Prompt text", req.PromptText, maxPromptTextLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	refined, err := h.assist.Refine(r.Context(), req.PromptText, req.Instruction)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refineResponse{PromptText: refined})
}

// Trends returns the Google Trends link for ?keywords= or ?projectName=.
func (h *Wizard) Trends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	u, err := assist.TrendsURL(q.Get("keywords"), q.Get("projectName"))
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

type providersResponse struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
}

// Providers reports the active AI provider and every configured one.
func (h *Wizard) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providersResponse{
		Active:    h.providers.ActiveName(),
		Available: h.providers.Available(),
	})
}

type setProviderRequest struct {
	Provider string `json:"provider"`
}

// SetProvider switches the active AI provider at runtime and clears the
// reply cache.
func (h *Wizard) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req setProviderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.ToLower(strings.TrimSpace(req.Provider))
	if name == "" {
		writeError(w, http.StatusBadRequest, "No provider specified.")
		return
	}

	if err := h.providers.SetActive(name); err != nil {
		slog.Warn("failed to switch AI provider", "provider", name, "error", err)
		writeError(w, http.StatusBadRequest, "Cannot switch to "+name+": provider not available (no API key configured).")
		return
	}
	slog.Info("ai provider switched", "provider", name)
	h.purge(r.Context(), store.PurgeProviderSwitch)

	h.Providers(w, r)
}

// PurgeCache clears every cached AI reply.
func (h *Wizard) PurgeCache(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeError(w, http.StatusServiceUnavailable, "AI response cache is not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": h.purge(r.Context(), store.PurgeManual)})
}

// PurgeHistory lists the latest cache purges.
func (h *Wizard) PurgeHistory(w http.ResponseWriter, r *http.Request) {
	entries := []store.CacheLogEntry{}
	if h.purgeLog != nil {
		recent, err := h.purgeLog.RecentEntries(recentPurges)
		if err != nil {
			slog.Error("list cache purges failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		entries = append(entries, recent...)
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Wizard) purge(ctx context.Context, reason string) int {
	if h.cache == nil {
		return 0
	}
	n := h.cache.InvalidateAll(ctx)
	if h.purgeLog != nil {
		h.purgeLog.Log(reason, h.providers.ActiveName(), n)
	}
	return n
}

// writeAssistError maps wizard errors to responses: bad input is 400,
// moderated input 422 and provider failures 502.
func writeAssistError(w http.ResponseWriter, err error) {
	var flagged *assist.FlaggedError
	switch {
	case errors.As(err, &flagged):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "Your input was flagged by moderation. Please reformulate it and try again.",
			"categories": flagged.Categories,
		})
	case errors.Is(err, assist.ErrEmptyKeywords),
		errors.Is(err, assist.ErrEmptyProjectName),
		errors.Is(err, assist.ErrEmptyInstruction),
		errors.Is(err, assist.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("ai request failed", "error", err)
		writeError(w, http.StatusBadGateway, "AI request failed. Please try again.")
	}
}
