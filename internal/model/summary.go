package model

// LLMSummary is the optional LLM-generated case summary. It is written
// as a separate artifact and never stored inside the CaseRecord, so the
// record stays deterministic.
type LLMSummary struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`

	// SummaryMD is the generated summary in markdown
	SummaryMD string `json:"summary_md,omitempty"`

	// Warnings about generation (unavailable provider, token usage, etc.)
	Warnings []string `json:"warnings,omitempty"`
}
