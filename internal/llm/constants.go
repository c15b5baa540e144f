// In file: internal/llm/constants.go
package llm

import "time"

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxTokens = 256

	defaultGeminiModel = "gemini-1.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)
