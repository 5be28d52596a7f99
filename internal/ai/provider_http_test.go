// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// captured records the last request a capture server received.
type captured struct {
	path    string
	headers http.Header
	body    []byte
}

// newCaptureServer answers 200 with body and records the request.
func newCaptureServer(t *testing.T, body []byte) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		c.headers = r.Header.Clone()
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

// openAISuccessBody builds a chat completions response with one choice.
func openAISuccessBody(text string) []byte {
	resp := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

// claudeSuccessBody builds a Messages API response with one text block.
func claudeSuccessBody(text string) []byte {
	resp := claudeResponse{
		Content: []claudeContentBlock{{Type: "text", Text: text}},
	}
	b, _ := json.Marshal(resp)
	return b
}

// geminiSuccessBody builds a generateContent response with one candidate.
func geminiSuccessBody(parts ...string) []byte {
	var gp []geminiPart
	for _, p := range parts {
		gp = append(gp, geminiPart{Text: p})
	}
	resp := geminiResponse{
		Candidates: []geminiCandidate{{Content: geminiContent{Parts: gp}}},
	}
	b, _ := json.Marshal(resp)
	return b
}

// =====================================================================
// OpenAI-compatible providers (OpenAI, Mistral)
// =====================================================================

func TestOpenAICompatibleGenerate_Success(t *testing.T) {
	for _, tt := range []struct {
		name string
		ctor func(ProviderConfig) *openAIProvider
	}{
		{"openai", newOpenAI},
		{"mistral", newMistral},
	} {
		t.Run(tt.name, func(t *testing.T) {
			srv, c := newCaptureServer(t, openAISuccessBody("안녕하세요"))

			p := tt.ctor(ProviderConfig{APIKey: "sk-test-12345", Model: "model-x", BaseURL: srv.URL})
			if p.Name() != tt.name {
				t.Errorf("Name: got %q, want %q", p.Name(), tt.name)
			}

			got, err := p.Generate(context.Background(), "system prompt", "user prompt")
			if err != nil {
				t.Fatalf("Generate: unexpected error: %v", err)
			}
			if got != "안녕하세요" {
				t.Errorf("Generate: got %q", got)
			}

			if c.path != "/chat/completions" {
				t.Errorf("path: got %q, want /chat/completions", c.path)
			}
			if auth := c.headers.Get("Authorization"); auth != "Bearer sk-test-12345" {
				t.Errorf("Authorization header: got %q", auth)
			}

			var req openai.ChatCompletionRequest
			if err := json.Unmarshal(c.body, &req); err != nil {
				t.Fatalf("unmarshal request body: %v", err)
			}
			if req.Model != "model-x" {
				t.Errorf("request model: got %q", req.Model)
			}
			if len(req.Messages) != 2 {
				t.Fatalf("messages: got %d, want 2", len(req.Messages))
			}
			if req.Messages[0].Role != openai.ChatMessageRoleSystem || req.Messages[0].Content != "system prompt" {
				t.Errorf("system message: got %+v", req.Messages[0])
			}
			if req.Messages[1].Role != openai.ChatMessageRoleUser || req.Messages[1].Content != "user prompt" {
				t.Errorf("user message: got %+v", req.Messages[1])
			}
			if req.ResponseFormat != nil {
				t.Errorf("plain generation should not set a response format: %+v", req.ResponseFormat)
			}
		})
	}
}

func TestOpenAIGenerate_OmitsEmptySystemPrompt(t *testing.T) {
	srv, c := newCaptureServer(t, openAISuccessBody("ok"))
	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})

	if _, err := p.Generate(context.Background(), "", "only user"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var req openai.ChatCompletionRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != openai.ChatMessageRoleUser {
		t.Errorf("messages: got %+v", req.Messages)
	}
}

func TestOpenAIGenerateJSON_SetsResponseFormat(t *testing.T) {
	srv, c := newCaptureServer(t, openAISuccessBody(`{"projectName":"별빛"}`))
	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})

	got, err := p.GenerateJSON(context.Background(), "", "json please")
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if got != `{"projectName":"별빛"}` {
		t.Errorf("GenerateJSON: got %q", got)
	}

	var req openai.ChatCompletionRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Errorf("response format: got %+v", req.ResponseFormat)
	}
}

func TestOpenAIGenerate_APIError(t *testing.T) {
	errBody := `{"error":{"message":"invalid API key","type":"invalid_request_error"}}`
	srv := newTestServer(t, http.StatusUnauthorized, []byte(errBody))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "bad-key", Model: "gpt-4o", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), "sys", "usr")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("error should mention status 401: got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "invalid API key") {
		t.Errorf("error should contain the API message: got %q", err.Error())
	}
}

func TestOpenAIGenerate_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{not json`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "sys", "usr"); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestOpenAIGenerate_EmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"choices":[]}`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "sys", "usr")
	if err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
	if !strings.Contains(err.Error(), "no choices") {
		t.Errorf("error should mention no choices: got %q", err.Error())
	}
}

func TestOpenAICompatibleGenerate_ConnectionRefused(t *testing.T) {
	for _, tt := range []struct {
		name string
		ctor func(ProviderConfig) *openAIProvider
	}{
		{"openai", newOpenAI},
		{"mistral", newMistral},
	} {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, openAISuccessBody("ok"))
			srv.Close()

			p := tt.ctor(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			_, err := p.Generate(context.Background(), "sys", "usr")
			if err == nil {
				t.Fatal("expected error for connection refused, got nil")
			}
			if !strings.HasPrefix(err.Error(), tt.name+" chat") {
				t.Errorf("error should be wrapped with %q: got %q", tt.name+" chat", err.Error())
			}
		})
	}
}

func TestOpenAIGenerate_CancelledContext(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, openAISuccessBody("ok"))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, "sys", "usr"); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

// =====================================================================
// Claude Provider Tests
// =====================================================================

func TestClaudeGenerate_Success(t *testing.T) {
	srv, c := newCaptureServer(t, claudeSuccessBody("Hello from Claude"))

	p := newClaude(ProviderConfig{APIKey: "sk-ant-test-key", Model: "claude-sonnet-4-6", BaseURL: srv.URL})
	if p.Name() != "claude" {
		t.Errorf("Name: got %q", p.Name())
	}

	got, err := p.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != "Hello from Claude" {
		t.Errorf("Generate: got %q", got)
	}

	if c.path != "/v1/messages" {
		t.Errorf("path: got %q", c.path)
	}
	if c.headers.Get("x-api-key") != "sk-ant-test-key" {
		t.Errorf("x-api-key header: got %q", c.headers.Get("x-api-key"))
	}
	if c.headers.Get("anthropic-version") != claudeAPIVersion {
		t.Errorf("anthropic-version: got %q", c.headers.Get("anthropic-version"))
	}

	var req claudeRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.Model != "claude-sonnet-4-6" || req.MaxTokens != claudeMaxTokens || req.System != "system prompt" {
		t.Errorf("request: got %+v", req)
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != "user prompt" {
		t.Errorf("messages: got %+v", req.Messages)
	}
}

func TestClaudeGenerate_JoinsTextBlocks(t *testing.T) {
	body, _ := json.Marshal(claudeResponse{Content: []claudeContentBlock{
		{Type: "text", Text: "first "},
		{Type: "tool_use"},
		{Type: "text", Text: "second"},
	}})
	srv := newTestServer(t, http.StatusOK, body)
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	got, err := p.Generate(context.Background(), "", "usr")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "first second" {
		t.Errorf("got %q, want %q", got, "first second")
	}
}

func TestClaudeGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSub string
	}{
		{"http error keeps body", http.StatusUnauthorized, `{"type":"error","error":{"message":"invalid x-api-key"}}`, "invalid x-api-key"},
		{"malformed json", http.StatusOK, `{not json`, "unmarshal"},
		{"no text blocks", http.StatusOK, `{"content":[{"type":"tool_use"}]}`, "no text content"},
		{"empty content", http.StatusOK, `{"content":[]}`, "no text content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, []byte(tt.body))
			defer srv.Close()

			p := newClaude(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			_, err := p.Generate(context.Background(), "sys", "usr")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestClaudeGenerate_ConnectionRefused(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, claudeSuccessBody("ok"))
	srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "sys", "usr")
	if err == nil || !strings.Contains(err.Error(), "claude http") {
		t.Errorf("error should be wrapped with 'claude http': got %v", err)
	}
}

// =====================================================================
// Gemini Provider Tests
// =====================================================================

func TestGeminiGenerate_Success(t *testing.T) {
	srv, c := newCaptureServer(t, geminiSuccessBody("Hello from Gemini"))

	p := newGemini(ProviderConfig{APIKey: "gm-key", Model: "gemini-2.5-flash", BaseURL: srv.URL})
	if p.Name() != "gemini" {
		t.Errorf("Name: got %q", p.Name())
	}

	got, err := p.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != "Hello from Gemini" {
		t.Errorf("Generate: got %q", got)
	}

	if c.path != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path: got %q", c.path)
	}
	if c.headers.Get("x-goog-api-key") != "gm-key" {
		t.Errorf("x-goog-api-key: got %q", c.headers.Get("x-goog-api-key"))
	}

	var req geminiRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "system prompt" {
		t.Errorf("system instruction: got %+v", req.SystemInstruction)
	}
	if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "user prompt" {
		t.Errorf("contents: got %+v", req.Contents)
	}
	if req.GenerationConfig != nil {
		t.Errorf("plain generation should not set generationConfig: %+v", req.GenerationConfig)
	}
}

func TestGeminiGenerateJSON_SetsResponseMimeType(t *testing.T) {
	srv, c := newCaptureServer(t, geminiSuccessBody(`{"a":1}`))
	p := newGemini(ProviderConfig{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	if _, err := p.GenerateJSON(context.Background(), "", "json please"); err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}

	var req geminiRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
		t.Errorf("generationConfig: got %+v", req.GenerationConfig)
	}
	if req.SystemInstruction != nil {
		t.Errorf("empty system prompt should be omitted: %+v", req.SystemInstruction)
	}
}

func TestGeminiGenerate_JoinsParts(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, geminiSuccessBody(`{"project`, `Name":"x"}`))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	got, err := p.Generate(context.Background(), "", "usr")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != `{"projectName":"x"}` {
		t.Errorf("got %q", got)
	}
}

func TestGeminiGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSub string
	}{
		{"http error keeps body", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`, "API key not valid"},
		{"malformed json", http.StatusOK, `{not json`, "unmarshal"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "no candidates"},
		{"blocked prompt", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, "SAFETY"},
		{"empty parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`, "no text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, []byte(tt.body))
			defer srv.Close()

			p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			_, err := p.Generate(context.Background(), "sys", "usr")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestGeminiGenerate_ConnectionRefused(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, geminiSuccessBody("ok"))
	srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "sys", "usr")
	if err == nil || !strings.Contains(err.Error(), "gemini http") {
		t.Errorf("error should be wrapped with 'gemini http': got %v", err)
	}
}

func TestDefaultBaseURLs(t *testing.T) {
	if p := newGemini(ProviderConfig{APIKey: "k"}); p.config.BaseURL != geminiDefaultBaseURL {
		t.Errorf("gemini default: got %q", p.config.BaseURL)
	}
	if p := newClaude(ProviderConfig{APIKey: "k"}); p.config.BaseURL != claudeDefaultBaseURL {
		t.Errorf("claude default: got %q", p.config.BaseURL)
	}
	if m := newMistralModerator("k", ""); m.baseURL != mistralDefaultBaseURL {
		t.Errorf("mistral moderation default: got %q", m.baseURL)
	}
}

// =====================================================================
// Registry end-to-end over HTTP
// =====================================================================

func TestRegistryGenerateJSON_WithRealHTTPProviders(t *testing.T) {
	openaiSrv, openaiReq := newCaptureServer(t, openAISuccessBody("openai response"))
	claudeSrv, _ := newCaptureServer(t, claudeSuccessBody("claude response"))
	geminiSrv, geminiReq := newCaptureServer(t, geminiSuccessBody("gemini response"))
	mistralSrv, _ := newCaptureServer(t, openAISuccessBody("mistral response"))

	reg := NewRegistry("openai", map[string]ProviderConfig{
		"openai":  {APIKey: "ok1", Model: "gpt-4o", BaseURL: openaiSrv.URL},
		"claude":  {APIKey: "ok2", Model: "claude-sonnet-4-6", BaseURL: claudeSrv.URL},
		"gemini":  {APIKey: "ok3", Model: "gemini-2.5-flash", BaseURL: geminiSrv.URL},
		"mistral": {APIKey: "ok4", Model: "mistral-large", BaseURL: mistralSrv.URL},
	})

	for _, tt := range []struct {
		provider string
		want     string
	}{
		{"openai", "openai response"},
		{"claude", "claude response"},
		{"gemini", "gemini response"},
		{"mistral", "mistral response"},
	} {
		t.Run(tt.provider, func(t *testing.T) {
			if err := reg.SetActive(tt.provider); err != nil {
				t.Fatalf("SetActive(%q): %v", tt.provider, err)
			}
			got, err := reg.GenerateJSON(context.Background(), "", "user")
			if err != nil {
				t.Fatalf("GenerateJSON with %s: %v", tt.provider, err)
			}
			if got != tt.want {
				t.Errorf("GenerateJSON with %s: got %q, want %q", tt.provider, got, tt.want)
			}
		})
	}

	if !strings.Contains(string(openaiReq.body), "json_object") {
		t.Error("openai request did not use JSON mode")
	}
	if !strings.Contains(string(geminiReq.body), "application/json") {
		t.Error("gemini request did not use JSON mode")
	}
}
