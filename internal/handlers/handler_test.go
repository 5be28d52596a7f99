// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// hand-written doubles for every dependency plus a PostgreSQL helper for
// the integration tests, which skip when the database is unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"promptwizard/internal/ai"
	"promptwizard/internal/database"
	"promptwizard/internal/library"
	"promptwizard/internal/models"
	"promptwizard/internal/store"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	mu       sync.Mutex
	name     string
	response string
	err      error
	calls    int
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.response, m.err
}

// mockModerator implements ai.Moderator.
type mockModerator struct {
	result *ai.ModerationResult
	err    error
}

func (m *mockModerator) CheckSafety(_ context.Context, _ string) (*ai.ModerationResult, error) {
	return m.result, m.err
}

// newTestRegistry returns a registry whose active provider is a mock.
func newTestRegistry(response string, err error) (*ai.Registry, *mockAIProvider) {
	p := &mockAIProvider{name: "test", response: response, err: err}
	reg := ai.NewRegistry("test", map[string]ai.ProviderConfig{})
	reg.Register("test", p)
	return reg, p
}

// memPrompts is an in-memory PromptRepository with the store's semantics.
type memPrompts struct {
	mu      sync.Mutex
	records []models.SavedPrompt
	now     time.Time
	listErr error
}

func newMemPrompts(records ...models.SavedPrompt) *memPrompts {
	return &memPrompts{records: records, now: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
}

func (m *memPrompts) index(id string) int {
	for i, p := range m.records {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *memPrompts) List() ([]models.SavedPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.SavedPrompt(nil), m.records...), nil
}

func (m *memPrompts) FindByID(id string) (*models.SavedPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		p := m.records[i]
		return &p, nil
	}
	return nil, nil
}

func (m *memPrompts) Save(p models.SavedPrompt) (*models.SavedPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.Name == "" {
		p.Name = models.DefaultPromptName(p.IdeaDetails)
	}
	p.Tags = library.NormalizeTags(p.Tags)
	p.CreatedAt = models.Timestamp(m.now)
	if i := m.index(p.ID); p.ID != "" && i >= 0 {
		p.TemplateVariableValues = mergeValues(m.records[i].TemplateVariableValues, p.TemplateVariableValues)
		m.records[i] = p
		return &p, nil
	}
	p.ID = uuid.NewString()
	m.records = append(m.records, p)
	return &p, nil
}

func (m *memPrompts) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

func (m *memPrompts) ToggleFavorite(id string) (*models.SavedPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	m.records[i].IsFavorite = !m.records[i].IsFavorite
	p := m.records[i]
	return &p, nil
}

func (m *memPrompts) UpdateTags(id string, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	m.records[i].Tags = library.NormalizeTags(tags)
	return nil
}

func (m *memPrompts) UpdateVariables(id string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	m.records[i].TemplateVariableValues = mergeValues(m.records[i].TemplateVariableValues, values)
	return nil
}

func mergeValues(stored, values map[string]string) map[string]string {
	out := maps.Clone(stored)
	if out == nil {
		out = map[string]string{}
	}
	maps.Copy(out, values)
	if len(out) == 0 {
		return nil
	}
	return out
}

func (m *memPrompts) Duplicate(id string) (*models.SavedPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	dup := library.Duplicate(m.records[i], uuid.NewString(), m.now)
	m.records = append(m.records, dup)
	return &dup, nil
}

func (m *memPrompts) Import(records []models.SavedPrompt) (store.ImportResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res store.ImportResult
	for _, p := range records {
		if i := m.index(p.ID); i >= 0 {
			m.records[i] = p
			res.Updated++
		} else {
			m.records = append(m.records, p)
			res.Created++
		}
	}
	return res, nil
}

// memBackups is an in-memory BackupLog.
type memBackups struct {
	mu      sync.Mutex
	entries []store.Backup
}

func (m *memBackups) Record(key string, count int, size int64) (*store.Backup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := store.Backup{ID: uuid.New(), ObjectKey: key, RecordCount: count, SizeBytes: size, CreatedAt: time.Now()}
	m.entries = append([]store.Backup{b}, m.entries...)
	return &b, nil
}

func (m *memBackups) Recent(limit int) ([]store.Backup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

// fakeUploader is a BackupUploader that keeps the last document.
type fakeUploader struct {
	doc []byte
	err error
}

func (f *fakeUploader) UploadBackup(_ context.Context, doc []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.doc = doc
	return "backups/2026/04/20260401T080000.000Z.json", nil
}

func (f *fakeUploader) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.example.com/" + key + "?sig=x", nil
}

// fakePurger counts cache purges.
type fakePurger struct {
	deleted int
	calls   int
}

func (f *fakePurger) InvalidateAll(context.Context) int {
	f.calls++
	return f.deleted
}

// memPurgeLog is an in-memory PurgeLog.
type memPurgeLog struct {
	entries []store.CacheLogEntry
	err     error
}

func (m *memPurgeLog) Log(reason, provider string, deleted int) {
	m.entries = append([]store.CacheLogEntry{{
		ID: int64(len(m.entries) + 1), Reason: reason, Provider: provider, DeletedKeys: deleted, PurgedAt: time.Now(),
	}}, m.entries...)
}

func (m *memPurgeLog) RecentEntries(limit int) ([]store.CacheLogEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

var errBoom = errors.New("boom")

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a recorded JSON response into dst.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "promptwizard")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "promptwizard")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}
