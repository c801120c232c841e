package llm

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/worker"
)

// mockProvider is a controllable Provider for tests.
type mockProvider struct {
	name      string
	available bool
	response  *SummarizeResponse
	err       error
	lastReq   SummarizeRequest
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return m.available }

func (m *mockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func summaryRecord() model.CaseRecord {
	return model.CaseRecord{
		RecordID: "8cbd27fe-4f0c-5a70-9744-6b7d1f6e60a1",
		CaseID:   "youssef_v_tdbank",
		Parties: model.Parties{
			Plaintiff: model.Plaintiff{Name: "Eman Youssef"},
			Defendants: []model.Defendant{
				{Name: "EQUIFAX INFORMATION SERVICES, LLC", ShortName: "Equifax", Type: model.DefendantCRA},
			},
		},
		CausesOfAction: []model.CauseOfAction{
			{
				CountNumber:       1,
				Title:             "VIOLATION OF THE FCRA, 15 U.S.C. § 1681i",
				AgainstDefendants: []string{"Equifax"},
				Allegations: []model.Allegation{
					{Citation: "15 U.S.C. § 1681i(a)(1)", Description: "Failed to reinvestigate."},
					{Citation: "15 U.S.C. § 1681i(a)(5)", Description: "Failed to delete."},
					{Citation: "15 U.S.C. § 1681i(a)(1)", Description: "Duplicate citation."},
				},
			},
		},
		ConfidenceScore: 90,
	}
}

func mockSummarizer(p Provider) *Summarizer {
	return &Summarizer{
		provider: p,
		config:   Config{Model: "test-model", MaxTokens: 500},
		limiter:  worker.NewLimiter(100, 1),
	}
}

func TestNewSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("empty provider must not error: %v", err)
	}
	if s.IsEnabled() {
		t.Error("summarizer must be disabled without a provider")
	}

	summary, err := s.GenerateSummary(context.Background(), summaryRecord())
	if err != nil || summary != nil {
		t.Errorf("disabled summarizer must be a no-op, got %+v, %v", summary, err)
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "acme-llm"}); err == nil {
		t.Error("unknown provider must fail")
	}
}

func TestGenerateSummary_Unavailable(t *testing.T) {
	p := &mockProvider{name: "openai", available: false}
	s := mockSummarizer(p)

	summary, err := s.GenerateSummary(context.Background(), summaryRecord())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Enabled {
		t.Error("unavailable provider must yield a disabled summary")
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "not available") {
		t.Errorf("warnings = %v", summary.Warnings)
	}
}

func TestGenerateSummary_Success(t *testing.T) {
	p := &mockProvider{
		name:      "openai",
		available: true,
		response: &SummarizeResponse{
			Summary:       "The complaint alleges Equifax failed to reinvestigate under 15 U.S.C. § 1681i(a)(1).",
			CitedStatutes: []string{"15 U.S.C. § 1681i(a)(1)"},
			Model:         "test-model",
			TokensUsed:    321,
		},
	}
	s := mockSummarizer(p)

	summary, err := s.GenerateSummary(context.Background(), summaryRecord())
	if err != nil {
		t.Fatal(err)
	}
	if !summary.Enabled || summary.Provider != "openai" || summary.Model != "test-model" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.SummaryMD == "" {
		t.Error("summary text missing")
	}

	// The request must carry the deduplicated citation allowlist.
	want := []string{"15 U.S.C. § 1681i(a)(1)", "15 U.S.C. § 1681i(a)(5)"}
	if !reflect.DeepEqual(p.lastReq.AllowedCitations, want) {
		t.Errorf("allowlist = %v, want %v", p.lastReq.AllowedCitations, want)
	}
}

func TestGenerateSummary_ProviderErrorDegrades(t *testing.T) {
	p := &mockProvider{name: "openai", available: true, err: errors.New("rate limited")}
	s := mockSummarizer(p)

	summary, err := s.GenerateSummary(context.Background(), summaryRecord())
	if err != nil {
		t.Fatalf("provider errors must degrade, not fail the run: %v", err)
	}
	if !summary.Enabled {
		t.Error("a failed attempt is still an enabled summarizer")
	}
	if summary.SummaryMD != "" {
		t.Error("no summary text on failure")
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "rate limited") {
		t.Errorf("warnings = %v", summary.Warnings)
	}
}

func TestAllowedCitations(t *testing.T) {
	got := AllowedCitations(summaryRecord())
	want := []string{"15 U.S.C. § 1681i(a)(1)", "15 U.S.C. § 1681i(a)(5)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllowedCitations = %v, want %v", got, want)
	}

	if got := AllowedCitations(model.CaseRecord{}); len(got) != 0 {
		t.Errorf("empty record yields no citations, got %v", got)
	}
}

func TestExtractCitations(t *testing.T) {
	text := "Count one cites 15 U.S.C. § 1681i(a)(1); count two cites 15 U.S.C. § 1681s-2(b) and repeats 15 U.S.C. § 1681i(a)(1)."
	got := ExtractCitations(text)
	want := []string{"15 U.S.C. § 1681i(a)(1)", "15 U.S.C. § 1681s-2(b)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractCitations = %v, want %v", got, want)
	}

	if got := ExtractCitations("no statutes here"); len(got) != 0 {
		t.Errorf("expected none, got %v", got)
	}
}

func TestContainsCitation(t *testing.T) {
	allowed := []string{"15 U.S.C. § 1681i(a)(1)"}

	if !containsCitation(allowed, "15 U.S.C. §1681i(a)(1)") {
		t.Error("spacing differences must not matter")
	}
	if !containsCitation(allowed, "15 U.S.C. § 1681i") {
		t.Error("a broader form of an allowed citation is acceptable")
	}
	if containsCitation(allowed, "15 U.S.C. § 1681n") {
		t.Error("a different statute must be rejected")
	}
}

func TestBuildPrompt(t *testing.T) {
	rec := summaryRecord()
	prompt := BuildPrompt(rec, AllowedCitations(rec))

	for _, want := range []string{
		"CRITICAL RULES",
		"15 U.S.C. § 1681i(a)(1)",
		"Equifax (cra)",
		"Count 1:",
		"Eman Youssef",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  "openai",
		Model:     "test-model",
		SummaryMD: "The complaint alleges reporting failures.",
		Warnings:  []string{"Tokens used: 321"},
	}

	md := RenderSeparateMarkdown(summary)
	for _, want := range []string{
		"# LLM Summary",
		"GENERATED CONTENT",
		"determined independently",
		"The complaint alleges reporting failures.",
		"## Notes",
		"Tokens used: 321",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	if RenderSeparateMarkdown(nil) != "" {
		t.Error("nil summary renders nothing")
	}
	if RenderSeparateMarkdown(&model.LLMSummary{Enabled: false}) != "" {
		t.Error("disabled summary renders nothing")
	}

	empty := RenderSeparateMarkdown(&model.LLMSummary{Enabled: true, Provider: "openai"})
	if !strings.Contains(empty, "No summary generated.") {
		t.Errorf("empty summary must say so: %q", empty)
	}
}
