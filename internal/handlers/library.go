// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"promptwizard/internal/library"
	"promptwizard/internal/metrics"
	"promptwizard/internal/models"
	"promptwizard/internal/slug"
	"promptwizard/internal/store"
)

// PromptRepository persists saved prompts. *store.PromptStore satisfies it.
type PromptRepository interface {
	List() ([]models.SavedPrompt, error)
	FindByID(id string) (*models.SavedPrompt, error)
	Save(p models.SavedPrompt) (*models.SavedPrompt, error)
	Delete(id string) error
	ToggleFavorite(id string) (*models.SavedPrompt, error)
	UpdateTags(id string, tags []string) error
	UpdateVariables(id string, values map[string]string) error
	Duplicate(id string) (*models.SavedPrompt, error)
	Import(records []models.SavedPrompt) (store.ImportResult, error)
}

// BackupLog records uploaded backups. *store.BackupStore satisfies it.
type BackupLog interface {
	Record(objectKey string, recordCount int, sizeBytes int64) (*store.Backup, error)
	Recent(limit int) ([]store.Backup, error)
}

// BackupUploader writes backup documents to object storage.
// *storage.Client satisfies it.
type BackupUploader interface {
	UploadBackup(ctx context.Context, doc []byte) (string, error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

const (
	// backupLinkTTL is how long the download link of a fresh backup stays valid.
	backupLinkTTL = 15 * time.Minute
	// recentBackups is how many backups the listing endpoint returns.
	recentBackups = 20
	// maxImportBytes caps an import document.
	maxImportBytes = 20 << 20
)

// Library serves the saved prompt collection.
type Library struct {
	prompts PromptRepository
	backups BackupLog      // nil disables the backup log
	storage BackupUploader // nil when S3 is not configured
	metrics *metrics.Metrics
}

// NewLibrary creates the library handler group. backups, uploader and m may be nil.
func NewLibrary(prompts PromptRepository, backups BackupLog, uploader BackupUploader, m *metrics.Metrics) *Library {
	return &Library{prompts: prompts, backups: backups, storage: uploader, metrics: m}
}

// List returns the records matching ?q=, ?tag= and ?favorites=true in the
// ?sort= order.
func (l *Library) List(w http.ResponseWriter, r *http.Request) {
	all, err := l.prompts.List()
	if err != nil {
		l.internalError(w, "list prompts", err)
		return
	}

	q := r.URL.Query()
	favorites, _ := strconv.ParseBool(q.Get("favorites"))
	found := library.Search(all, library.Query{
		Term:          q.Get("q"),
		Tag:           q.Get("tag"),
		FavoritesOnly: favorites,
		Sort:          library.ParseSort(q.Get("sort")),
	})
	writeJSON(w, http.StatusOK, found)
}

type saveRequest struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	PromptText             string            `json:"promptText"`
	IdeaDetails            models.IdeaData   `json:"ideaDetails"`
	Tags                   []string          `json:"tags"`
	TagsInput              *string           `json:"tagsInput"`
	IsFavorite             bool              `json:"isFavorite"`
	TemplateVariableValues map[string]string `json:"templateVariableValues"`
}

// Save creates a record or, when the id is stored, updates it in place.
// Tags may come as a list or as comma separated tagsInput.
func (l *Library) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tags := library.NormalizeTags(req.Tags)
	if req.TagsInput != nil {
		tags = library.ParseTags(*req.TagsInput)
	}
	if msg := validateSave(req.Name, req.PromptText, tags); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateVariables(req.TemplateVariableValues); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := req.IdeaDetails.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid ideaDetails: "+err.Error())
		return
	}

	saved, err := l.prompts.Save(models.SavedPrompt{
		ID:                     req.ID,
		Name:                   req.Name,
		PromptText:             req.PromptText,
		IdeaDetails:            req.IdeaDetails,
		Tags:                   tags,
		IsFavorite:             req.IsFavorite,
		TemplateVariableValues: req.TemplateVariableValues,
	})
	if err != nil {
		l.internalError(w, "save prompt", err)
		return
	}

	status := http.StatusCreated
	if req.ID != "" && saved.ID == req.ID {
		status = http.StatusOK
	}
	slog.Info("prompt saved", "id", saved.ID, "name", saved.Name, "created", status == http.StatusCreated)
	writeJSON(w, status, saved)
}

// Get returns one record.
func (l *Library) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := l.find(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete removes one record.
func (l *Library) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := l.prompts.Delete(id); err != nil {
		l.mutationError(w, "delete prompt", err)
		return
	}
	slog.Info("prompt deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate copies a record under a new id.
func (l *Library) Duplicate(w http.ResponseWriter, r *http.Request) {
	dup, err := l.prompts.Duplicate(chi.URLParam(r, "id"))
	if err != nil {
		l.mutationError(w, "duplicate prompt", err)
		return
	}
	writeJSON(w, http.StatusCreated, dup)
}

// ToggleFavorite flips a record's favorite flag.
func (l *Library) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	p, err := l.prompts.ToggleFavorite(chi.URLParam(r, "id"))
	if err != nil {
		l.mutationError(w, "toggle favorite", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type tagsRequest struct {
	Tags string `json:"tags"`
}

// UpdateTags replaces a record's tags from comma separated input.
func (l *Library) UpdateTags(w http.ResponseWriter, r *http.Request) {
	var req tagsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tags := library.ParseTags(req.Tags)
	if msg := validateTags(tags); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id := chi.URLParam(r, "id")
	if err := l.prompts.UpdateTags(id, tags); err != nil {
		l.mutationError(w, "update tags", err)
		return
	}
	l.Get(w, r)
}

type variablesRequest struct {
	Values map[string]string `json:"values"`
}

// UpdateVariables merges values into the stored template variable values of
// a record. Keys absent from the request keep their stored value.
func (l *Library) UpdateVariables(w http.ResponseWriter, r *http.Request) {
	var req variablesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateVariables(req.Values); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id := chi.URLParam(r, "id")
	if err := l.prompts.UpdateVariables(id, req.Values); err != nil {
		l.mutationError(w, "update variables", err)
		return
	}
	l.Get(w, r)
}

// ExportOne downloads a single record as a one-element library document
// named after the record.
func (l *Library) ExportOne(w http.ResponseWriter, r *http.Request) {
	p, ok := l.find(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	data, err := library.Export([]models.SavedPrompt{*p})
	if err != nil {
		l.internalError(w, "export prompt", err)
		return
	}
	writeAttachment(w, slug.Filename(p.Name), data)
}

// Tags lists every distinct tag in the library.
func (l *Library) Tags(w http.ResponseWriter, r *http.Request) {
	all, err := l.prompts.List()
	if err != nil {
		l.internalError(w, "list prompts", err)
		return
	}
	tags := library.Tags(all)
	if tags == nil {
		tags = []string{}
	}
	writeJSON(w, http.StatusOK, tags)
}

// Export downloads the whole library.
func (l *Library) Export(w http.ResponseWriter, r *http.Request) {
	data, _, err := l.exportAll()
	if err != nil {
		l.internalError(w, "export library", err)
		return
	}
	writeAttachment(w, library.ExportFilename, data)
}

type importResponse struct {
	Created  int                 `json:"created"`
	Updated  int                 `json:"updated"`
	Skipped  int                 `json:"skipped"`
	Rejected []library.Rejection `json:"rejected"`
}

// Import merges an uploaded library document by id. Invalid elements are
// skipped and reported; a document that is not an array is rejected.
func (l *Library) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "import document too large")
			return
		}
		writeError(w, http.StatusBadRequest, "cannot read import document")
		return
	}

	decoded, err := library.Decode(data)
	if errors.Is(err, library.ErrNotArray) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		l.internalError(w, "decode import", err)
		return
	}

	result, err := l.prompts.Import(decoded.Records)
	if err != nil {
		l.internalError(w, "import prompts", err)
		return
	}

	l.metrics.ImportRecords(metrics.ImportCreated, result.Created)
	l.metrics.ImportRecords(metrics.ImportUpdated, result.Updated)
	l.metrics.ImportRecords(metrics.ImportSkipped, decoded.Skipped())
	slog.Info("library imported", "created", result.Created, "updated", result.Updated, "skipped", decoded.Skipped())

	rejected := decoded.Rejected
	if rejected == nil {
		rejected = []library.Rejection{}
	}
	writeJSON(w, http.StatusOK, importResponse{
		Created:  result.Created,
		Updated:  result.Updated,
		Skipped:  decoded.Skipped(),
		Rejected: rejected,
	})
}

type backupResponse struct {
	ObjectKey   string `json:"objectKey"`
	RecordCount int    `json:"recordCount"`
	SizeBytes   int64  `json:"sizeBytes"`
	URL         string `json:"url,omitempty"`
}

// Backup uploads the library export to object storage.
func (l *Library) Backup(w http.ResponseWriter, r *http.Request) {
	if l.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	data, count, err := l.exportAll()
	if err != nil {
		l.internalError(w, "export library", err)
		return
	}

	key, err := l.storage.UploadBackup(r.Context(), data)
	if err != nil {
		slog.Error("backup upload failed", "error", err)
		writeError(w, http.StatusBadGateway, "backup upload failed")
		return
	}

	if l.backups != nil {
		if _, err := l.backups.Record(key, count, int64(len(data))); err != nil {
			slog.Warn("backup uploaded but not recorded", "key", key, "error", err)
		}
	}

	resp := backupResponse{ObjectKey: key, RecordCount: count, SizeBytes: int64(len(data))}
	if u, err := l.storage.PresignedURL(r.Context(), key, backupLinkTTL); err != nil {
		slog.Warn("presign backup link failed", "key", key, "error", err)
	} else {
		resp.URL = u
	}

	slog.Info("library backed up", "key", key, "records", count, "bytes", len(data))
	writeJSON(w, http.StatusCreated, resp)
}

// Backups lists the latest recorded backups.
func (l *Library) Backups(w http.ResponseWriter, r *http.Request) {
	list := []store.Backup{}
	if l.backups != nil {
		recent, err := l.backups.Recent(recentBackups)
		if err != nil {
			l.internalError(w, "list backups", err)
			return
		}
		list = append(list, recent...)
	}
	writeJSON(w, http.StatusOK, list)
}

func (l *Library) exportAll() ([]byte, int, error) {
	all, err := l.prompts.List()
	if err != nil {
		return nil, 0, err
	}
	data, err := library.Export(all)
	if err != nil {
		return nil, 0, err
	}
	return data, len(all), nil
}

// find loads a record, writing 404 or 500 when it cannot.
func (l *Library) find(w http.ResponseWriter, id string) (*models.SavedPrompt, bool) {
	p, err := l.prompts.FindByID(id)
	if err != nil {
		l.internalError(w, "find prompt", err)
		return nil, false
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "prompt not found")
		return nil, false
	}
	return p, true
}

func (l *Library) mutationError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "prompt not found")
		return
	}
	l.internalError(w, op, err)
}

func (l *Library) internalError(w http.ResponseWriter, op string, err error) {
	slog.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
