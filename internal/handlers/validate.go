// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation limits for API inputs.
const (
	maxNameLen        = 200
	maxPromptTextLen  = 200_000
	maxKeywordsLen    = 500
	maxInstructionLen = 2_000
	maxTags           = 50
	maxTagLen         = 50
	maxVariables      = 200
	maxVariableLen    = 10_000
)

// validateSave checks the fields of a library save and returns the first
// error found.
func validateSave(name, promptText string, tags []string) string {
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if strings.TrimSpace(promptText) == "" {
		return "Prompt text is required."
	}
	if utf8.RuneCountInString(promptText) > maxPromptTextLen {
		return "Prompt text is too long (max 200,000 characters)."
	}
	return validateTags(tags)
}

// validateTags checks an already parsed tag list.
func validateTags(tags []string) string {
	if len(tags) > maxTags {
		return "Too many tags (max 50)."
	}
	for _, t := range tags {
		if utf8.RuneCountInString(t) > maxTagLen {
			return fmt.Sprintf("Tag %q is too long (max 50 characters).", t)
		}
	}
	return ""
}

// validateVariables checks template variable values.
func validateVariables(values map[string]string) string {
	if len(values) > maxVariables {
		return "Too many template variables (max 200)."
	}
	for k, v := range values {
		if utf8.RuneCountInString(v) > maxVariableLen {
			return fmt.Sprintf("Value of %s is too long (max 10,000 characters).", k)
		}
	}
	return ""
}

// validateWizardText checks free text sent to the AI wizard.
func validateWizardText(field, text string, limit int) string {
	if utf8.RuneCountInString(text) > limit {
		return fmt.Sprintf("%s is too long (max %d characters).", field, limit)
	}
	return ""
}
