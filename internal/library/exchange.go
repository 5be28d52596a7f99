// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package library

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"promptwizard/internal/models"
)

// ExportFilename is the download name of a full library export.
const ExportFilename = "prompt_architect_library.json"

// ErrNotArray is returned when an import document is not a JSON array.
var ErrNotArray = errors.New("import document must be a JSON array of prompts")

//go:embed record.schema.json
var recordSchemaJSON []byte

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.schema.json", bytes.NewReader(recordSchemaJSON)); err != nil {
			recordSchemaErr = fmt.Errorf("load record schema: %w", err)
			return
		}
		recordSchema, recordSchemaErr = compiler.Compile("record.schema.json")
		if recordSchemaErr != nil {
			recordSchemaErr = fmt.Errorf("compile record schema: %w", recordSchemaErr)
		}
	})
	return recordSchema, recordSchemaErr
}

// Export renders prompts as the library exchange document: a JSON array
// indented with two spaces. A nil slice exports as [].
func Export(prompts []models.SavedPrompt) ([]byte, error) {
	if prompts == nil {
		prompts = []models.SavedPrompt{}
	}
	data, err := json.MarshalIndent(prompts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode library: %w", err)
	}
	return data, nil
}

// Rejection explains why one element of an import document was skipped.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Decoded is the outcome of reading an import document. Records holds the
// valid elements in document order.
type Decoded struct {
	Records  []models.SavedPrompt
	Rejected []Rejection
}

// Skipped is the number of rejected elements.
func (d Decoded) Skipped() int { return len(d.Rejected) }

// Decode reads an import document. Each element is validated on its own,
// against the record schema and then against the option registries, and
// invalid elements are reported in Rejected rather than failing the batch.
// Only a document that is not a JSON array is an error.
func Decode(data []byte) (Decoded, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return Decoded{}, ErrNotArray
	}
	if elems == nil {
		// Literal null.
		return Decoded{}, ErrNotArray
	}

	schema, err := compiledRecordSchema()
	if err != nil {
		return Decoded{}, err
	}

	out := Decoded{Records: make([]models.SavedPrompt, 0, len(elems))}
	for i, raw := range elems {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			out.Rejected = append(out.Rejected, Rejection{Index: i, Reason: err.Error()})
			continue
		}
		if err := schema.Validate(doc); err != nil {
			out.Rejected = append(out.Rejected, Rejection{Index: i, Reason: err.Error()})
			continue
		}
		var p models.SavedPrompt
		if err := json.Unmarshal(raw, &p); err != nil {
			out.Rejected = append(out.Rejected, Rejection{Index: i, Reason: err.Error()})
			continue
		}
		if err := p.IdeaDetails.Validate(); err != nil {
			out.Rejected = append(out.Rejected, Rejection{Index: i, Reason: "ideaDetails: " + err.Error()})
			continue
		}
		p.Tags = normalizeImportedTags(p.Tags)
		out.Records = append(out.Records, p)
	}
	return out, nil
}

func normalizeImportedTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return NormalizeTags(tags)
}

// Merge folds incoming records into existing by id: a known id is
// overwritten in place, a new id is appended. Later duplicates within
// incoming win. Neither input is modified.
func Merge(existing, incoming []models.SavedPrompt) []models.SavedPrompt {
	out := make([]models.SavedPrompt, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	pos := make(map[string]int, len(out))
	for i, p := range out {
		pos[p.ID] = i
	}
	for _, p := range incoming {
		if i, ok := pos[p.ID]; ok {
			out[i] = p
			continue
		}
		pos[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}
