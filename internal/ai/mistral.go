// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

const mistralDefaultBaseURL = "https://api.mistral.ai/v1"

// newMistral creates a Mistral provider. Mistral's chat completions API is
// OpenAI-compatible, including the json_object response format, so the
// OpenAI client is reused with a different base URL.
func newMistral(cfg ProviderConfig) *openAIProvider {
	return newOpenAICompatible(ProviderMistral, cfg, mistralDefaultBaseURL)
}
