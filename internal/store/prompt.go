// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"promptwizard/internal/library"
	"promptwizard/internal/models"
)

// ErrNotFound is returned by mutating operations whose target row does not exist.
var ErrNotFound = errors.New("not found")

const promptColumns = `id, name, prompt_text, idea_details, created_at, tags, is_favorite, template_variable_values`

// PromptStore handles all saved-prompt database operations. Records are
// listed in storage order: insertion order, with updates keeping their slot.
type PromptStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewPromptStore creates a new PromptStore with the given database connection.
func NewPromptStore(db *sql.DB) *PromptStore {
	return &PromptStore{db: db, now: time.Now}
}

// ImportResult counts how an import batch was applied.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row rowScanner) (*models.SavedPrompt, error) {
	var p models.SavedPrompt
	var ideaJSON, tagsJSON, varsJSON []byte
	if err := row.Scan(&p.ID, &p.Name, &p.PromptText, &ideaJSON, &p.CreatedAt, &tagsJSON, &p.IsFavorite, &varsJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ideaJSON, &p.IdeaDetails); err != nil {
		return nil, fmt.Errorf("decode idea details: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal(varsJSON, &p.TemplateVariableValues); err != nil {
		return nil, fmt.Errorf("decode template variables: %w", err)
	}
	if len(p.Tags) == 0 {
		p.Tags = nil
	}
	if len(p.TemplateVariableValues) == 0 {
		p.TemplateVariableValues = nil
	}
	return &p, nil
}

// encodeColumns returns the JSONB column values of p.
func encodeColumns(p *models.SavedPrompt) (idea, tags, vars []byte, err error) {
	if idea, err = json.Marshal(p.IdeaDetails); err != nil {
		return nil, nil, nil, fmt.Errorf("encode idea details: %w", err)
	}
	t := p.Tags
	if t == nil {
		t = []string{}
	}
	if tags, err = json.Marshal(t); err != nil {
		return nil, nil, nil, fmt.Errorf("encode tags: %w", err)
	}
	v := p.TemplateVariableValues
	if v == nil {
		v = map[string]string{}
	}
	if vars, err = json.Marshal(v); err != nil {
		return nil, nil, nil, fmt.Errorf("encode template variables: %w", err)
	}
	return idea, tags, vars, nil
}

// List returns every saved prompt in storage order.
func (s *PromptStore) List() ([]models.SavedPrompt, error) {
	rows, err := s.db.Query(`SELECT ` + promptColumns + ` FROM saved_prompts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []models.SavedPrompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, *p)
	}
	return prompts, rows.Err()
}

// Count returns the number of saved prompts.
func (s *PromptStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM saved_prompts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count prompts: %w", err)
	}
	return n, nil
}

// FindByID retrieves a saved prompt. Returns nil if not found.
func (s *PromptStore) FindByID(id string) (*models.SavedPrompt, error) {
	p, err := scanPrompt(s.db.QueryRow(`SELECT `+promptColumns+` FROM saved_prompts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find prompt by id: %w", err)
	}
	return p, nil
}

// Save stores p and returns the persisted record. A prompt without an id,
// or with an id that is not stored, is created under a fresh UUID; a stored
// id is updated in place, its variable values merged into the stored ones.
// Either way createdAt is set to now and an empty
// name falls back to the project name.
func (s *PromptStore) Save(p models.SavedPrompt) (*models.SavedPrompt, error) {
	if p.Name == "" {
		p.Name = models.DefaultPromptName(p.IdeaDetails)
	}
	p.Tags = library.NormalizeTags(p.Tags)
	p.CreatedAt = models.Timestamp(s.now())

	idea, tags, vars, err := encodeColumns(&p)
	if err != nil {
		return nil, err
	}

	if p.ID != "" {
		var merged []byte
		err := s.db.QueryRow(`
			UPDATE saved_prompts SET
				name = $1, prompt_text = $2, idea_details = $3, created_at = $4,
				tags = $5, is_favorite = $6,
				template_variable_values = template_variable_values || $7::jsonb,
				updated_at = NOW()
			WHERE id = $8
			RETURNING template_variable_values
		`, p.Name, p.PromptText, idea, p.CreatedAt, tags, p.IsFavorite, vars, p.ID).Scan(&merged)
		switch {
		case err == nil:
			p.TemplateVariableValues = nil
			if err := json.Unmarshal(merged, &p.TemplateVariableValues); err != nil {
				return nil, fmt.Errorf("decode template variables: %w", err)
			}
			if len(p.TemplateVariableValues) == 0 {
				p.TemplateVariableValues = nil
			}
			return &p, nil
		case !errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("update prompt: %w", err)
		}
	}

	p.ID = uuid.NewString()
	if err := s.insert(s.db, &p, idea, tags, vars); err != nil {
		return nil, err
	}
	return &p, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *PromptStore) insert(db execer, p *models.SavedPrompt, idea, tags, vars []byte) error {
	_, err := db.Exec(`
		INSERT INTO saved_prompts (id, name, prompt_text, idea_details, created_at, tags, is_favorite, template_variable_values)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Name, p.PromptText, idea, p.CreatedAt, tags, p.IsFavorite, vars)
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

// Delete removes a saved prompt.
func (s *PromptStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM saved_prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return expectRow(res)
}

// ToggleFavorite flips the favorite flag and returns the updated record.
func (s *PromptStore) ToggleFavorite(id string) (*models.SavedPrompt, error) {
	p, err := scanPrompt(s.db.QueryRow(`
		UPDATE saved_prompts SET is_favorite = NOT is_favorite, updated_at = NOW()
		WHERE id = $1
		RETURNING `+promptColumns, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	return p, nil
}

// UpdateTags replaces the tags of a saved prompt after normalising them.
func (s *PromptStore) UpdateTags(id string, tags []string) error {
	data, err := json.Marshal(library.NormalizeTags(tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	res, err := s.db.Exec(`UPDATE saved_prompts SET tags = $1, updated_at = NOW() WHERE id = $2`, data, id)
	if err != nil {
		return fmt.Errorf("update tags: %w", err)
	}
	return expectRow(res)
}

// UpdateVariables merges values into the template variable values of a
// saved prompt. Stored keys missing from values, including those of tokens
// no longer in the text, keep their value.
func (s *PromptStore) UpdateVariables(id string, values map[string]string) error {
	if values == nil {
		values = map[string]string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode template variables: %w", err)
	}
	res, err := s.db.Exec(`UPDATE saved_prompts SET template_variable_values = template_variable_values || $1::jsonb, updated_at = NOW() WHERE id = $2`, data, id)
	if err != nil {
		return fmt.Errorf("update template variables: %w", err)
	}
	return expectRow(res)
}

// Duplicate copies a saved prompt under a new id. Returns ErrNotFound if
// the source does not exist.
func (s *PromptStore) Duplicate(id string) (*models.SavedPrompt, error) {
	src, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNotFound
	}

	dup := library.Duplicate(*src, uuid.NewString(), s.now())
	idea, tags, vars, err := encodeColumns(&dup)
	if err != nil {
		return nil, err
	}
	if err := s.insert(s.db, &dup, idea, tags, vars); err != nil {
		return nil, err
	}
	return &dup, nil
}

// Import merges records by id in one transaction: stored ids are
// overwritten in place, new ids are appended in batch order. Records are
// stored verbatim, createdAt included.
func (s *PromptStore) Import(records []models.SavedPrompt) (ImportResult, error) {
	var result ImportResult

	tx, err := s.db.Begin()
	if err != nil {
		return result, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i := range records {
		p := &records[i]
		idea, tags, vars, err := encodeColumns(p)
		if err != nil {
			return ImportResult{}, err
		}

		var inserted bool
		err = tx.QueryRow(`
			INSERT INTO saved_prompts (id, name, prompt_text, idea_details, created_at, tags, is_favorite, template_variable_values)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				prompt_text = EXCLUDED.prompt_text,
				idea_details = EXCLUDED.idea_details,
				created_at = EXCLUDED.created_at,
				tags = EXCLUDED.tags,
				is_favorite = EXCLUDED.is_favorite,
				template_variable_values = EXCLUDED.template_variable_values,
				updated_at = NOW()
			RETURNING (xmax = 0)
		`, p.ID, p.Name, p.PromptText, idea, p.CreatedAt, tags, p.IsFavorite, vars).Scan(&inserted)
		if err != nil {
			return ImportResult{}, fmt.Errorf("import prompt %q: %w", p.ID, err)
		}
		if inserted {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("commit import: %w", err)
	}
	return result, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
