package llm

import (
	"context"
	"fmt"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// Provider defines the interface for LLM providers. Providers run after
// consolidation and validation; their output never feeds back into the
// case record or its confidence score.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of a consolidated case
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Record is the consolidated case record to summarize
	Record model.CaseRecord

	// AllowedCitations is the STRICT allowlist of statute citations the
	// LLM may reference. Anything outside this list is a hallucination.
	AllowedCitations []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// CitedStatutes are the citations the LLM actually used (for verification)
	CitedStatutes []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond caps outbound call rate
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           30,
		MaxTokens:         1000,
		RequestsPerSecond: 1,
	}
}

// AllowedCitations collects the statute citations present in a record's
// causes of action. This is the allowlist passed to providers.
func AllowedCitations(rec model.CaseRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, cause := range rec.CausesOfAction {
		for _, alleg := range cause.Allegations {
			if alleg.Citation == "" || seen[alleg.Citation] {
				continue
			}
			seen[alleg.Citation] = true
			out = append(out, alleg.Citation)
		}
	}
	return out
}

// BuildPrompt constructs the default summarization prompt. The record's
// own facts are the only evidence the model is allowed to restate.
func BuildPrompt(rec model.CaseRecord, allowedCitations []string) string {
	prompt := fmt.Sprintf(`You are summarizing a consolidated consumer credit case record. The record states allegations, not proven facts.

CRITICAL RULES:
1. You MUST ONLY reference statutes from this allowed list:
%s

2. DO NOT infer, speculate, or cite statutes or case law beyond this list.
3. Refer to defendants ONLY by the short names given below.
4. Describe what is ALLEGED. Never say a defendant "violated" the law; say the complaint alleges it.

Case:
- Court: %s, %s
- Case Number: %s
- Plaintiff: %s
- Confidence Score: %.0f/100
- Causes of Action: %d

Defendants:
`, joinCitations(allowedCitations), rec.CaseInformation.CourtName, rec.CaseInformation.District, rec.CaseInformation.CaseNumber, rec.Parties.Plaintiff.Name, rec.ConfidenceScore, len(rec.CausesOfAction))

	for _, d := range rec.Parties.Defendants {
		prompt += fmt.Sprintf("- %s (%s)\n", d.ShortName, d.Type)
	}

	prompt += "\nCounts:\n"
	for _, cause := range rec.CausesOfAction {
		prompt += fmt.Sprintf("- Count %d: %s (against %s)\n", cause.CountNumber, cause.Title, joinNames(cause.AgainstDefendants))
	}

	prompt += "\nProvide a 3-4 sentence summary of what this complaint alleges and against whom."

	return prompt
}

// Helper functions

func joinCitations(citations []string) string {
	if len(citations) == 0 {
		return "(No citations available)"
	}
	result := ""
	for _, c := range citations {
		result += fmt.Sprintf("\n- %s", c)
	}
	return result
}

func joinNames(names []string) string {
	result := ""
	for i, n := range names {
		if i > 0 {
			result += ", "
		}
		result += n
	}
	return result
}
