package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"promptwizard/internal/models"
	"promptwizard/internal/options"
	"promptwizard/internal/prompt"
)

// SeedPromptName is the name of the example record created by Seed.
const SeedPromptName = "예시: 스터디 메이트"

// Seed populates an empty library with one example prompt so a fresh
// development instance has something to list, search and export.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM saved_prompts").Scan(&count); err != nil {
		return fmt.Errorf("seed check prompts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	idea := models.IdeaData{
		ProjectName:              "스터디 메이트",
		ProjectType:              options.ProjectTypeApp,
		Category:                 options.CategoryEducation,
		Summary:                  "[AUDIENCE]를 위한 함께 공부하는 습관 만들기 앱",
		SelectedStandardFeatures: []options.FeatureKey{options.FeatureLogin, options.FeaturePush},
		TargetAudience:           "[AUDIENCE]",
		TechStack: models.TechStack{
			Language:  options.LanguageTypeScript,
			Framework: options.FrameworkReact,
			Platform:  options.PlatformWeb,
		},
		PromptTone:  options.ToneCasual,
		PromptStyle: options.StyleStepByStep,
	}

	ideaJSON, err := json.Marshal(idea)
	if err != nil {
		return fmt.Errorf("seed encode idea: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO saved_prompts (id, name, prompt_text, idea_details, created_at, tags, template_variable_values)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), SeedPromptName, prompt.Generate(idea), ideaJSON,
		models.Timestamp(time.Now()), `["예시"]`, `{"AUDIENCE": "대학생"}`)
	if err != nil {
		return fmt.Errorf("seed insert prompt: %w", err)
	}

	slog.Info("database seeded with example prompt", "name", SeedPromptName)
	return nil
}
