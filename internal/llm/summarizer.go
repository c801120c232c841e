package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/worker"
)

// Summarizer wraps an optional LLM provider. A nil provider means
// summarization is disabled and GenerateSummary is a no-op.
type Summarizer struct {
	provider Provider
	config   Config
	limiter  *worker.Limiter
}

// NewSummarizer creates a summarizer from configuration. An empty
// provider name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Summarizer{
		provider: provider,
		config:   config,
		limiter:  worker.NewLimiter(rps, 1),
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or "".
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces an LLM summary for a consolidated record.
// Failures degrade to a summary object carrying warnings; they never
// fail the run, and the record itself is never modified.
func (s *Summarizer) GenerateSummary(ctx context.Context, rec model.CaseRecord) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s is not available; skipping summary", s.provider.Name())},
		}, nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
			return nil, err
		}
	}

	req := SummarizeRequest{
		Record:           rec,
		AllowedCitations: AllowedCitations(rec),
		Model:            s.config.Model,
		MaxTokens:        s.config.MaxTokens,
	}

	resp, err := s.provider.Summarize(ctx, req)
	if err != nil {
		return &model.LLMSummary{
			Enabled:  true,
			Provider: s.provider.Name(),
			Model:    s.config.Model,
			Warnings: []string{fmt.Sprintf("summary generation failed: %v", err)},
		}, nil
	}

	warnings := []string{
		fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
		fmt.Sprintf("Verified %d citations against the record", len(resp.CitedStatutes)),
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings:  warnings,
	}, nil
}

// RenderSeparateMarkdown renders the summary as its own markdown
// document, clearly marked as generated content.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder

	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> **GENERATED CONTENT.** This summary was produced by a language model. ")
	b.WriteString("The case record and its confidence score were determined independently and are not affected by this text.\n\n")
	fmt.Fprintf(&b, "- Provider: %s\n", summary.Provider)
	fmt.Fprintf(&b, "- Model: %s\n\n", summary.Model)

	if summary.SummaryMD == "" {
		b.WriteString("No summary generated.\n")
	} else {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
