package pipeline

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

const caseNotes = `Court: UNITED STATES DISTRICT COURT
District: EASTERN DISTRICT OF NEW YORK
Case Number: 1:25-cv-01234
Document Title: COMPLAINT
Plaintiff: Eman Youssef
Address: 123 Main Street, Queens, NY 11373
Residency: Queens County, New York
Consumer Status: Individual consumer

DEFENDANTS:
- TD Bank (a Delaware corporation)
- Equifax

Client disputed the account with TD Bank on March 5, 2024.
`

const caseSummons = `UNITED STATES DISTRICT COURT
EASTERN DISTRICT OF NEW YORK

EMAN YOUSSEF,
Plaintiff,

v.
TD BANK, N.A.; EQUIFAX INFORMATION SERVICES, LLC,
Defendants.

Case No.: 1:25-cv-01234

SUMMONS IN A CIVIL ACTION`

func testCaseDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "youssef_v_tdbank")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "01_atty_notes.txt", caseNotes)
	writeFile(t, dir, "02_summons.txt", caseSummons)
	return dir
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.LLM.Provider = ""
	cfg.Policy.AddNationalCRAsOnTrigger = false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := NewPipeline(cfg, logger)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestProcessCase(t *testing.T) {
	p := testPipeline(t)

	result, err := p.ProcessCase(context.Background(), testCaseDir(t))
	if err != nil {
		t.Fatalf("ProcessCase: %v", err)
	}
	if result.CaseID != "youssef_v_tdbank" {
		t.Errorf("case id = %q", result.CaseID)
	}
	if result.DocumentCount != 2 {
		t.Errorf("document count = %d", result.DocumentCount)
	}
	if result.Summary != nil {
		t.Error("summary must be nil when the LLM is disabled")
	}

	rec := result.Record
	if rec.CaseInformation.CaseNumber != "1:25-cv-01234" {
		t.Errorf("case number = %q", rec.CaseInformation.CaseNumber)
	}
	if rec.Parties.Plaintiff.Name != "Eman Youssef" {
		t.Errorf("plaintiff = %+v", rec.Parties.Plaintiff)
	}
	if len(rec.Parties.Defendants) != 2 {
		t.Fatalf("defendants = %+v", rec.Parties.Defendants)
	}
	if rec.Parties.Defendants[0].ShortName != "TD Bank" || rec.Parties.Defendants[1].ShortName != "Equifax" {
		t.Errorf("roster = %+v", rec.Parties.Defendants)
	}
	if len(rec.CausesOfAction) != 3 {
		t.Errorf("causes = %+v", rec.CausesOfAction)
	}
	if rec.ConfidenceScore <= 0 || rec.ConfidenceScore > 100 {
		t.Errorf("score = %v", rec.ConfidenceScore)
	}
	if len(result.Signals) != 4 {
		t.Errorf("signals = %+v", result.Signals)
	}
}

func TestProcessCase_Deterministic(t *testing.T) {
	p := testPipeline(t)
	dir := testCaseDir(t)

	first, err := p.ProcessCase(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ProcessCase(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	pathA := filepath.Join(out, "a.json")
	pathB := filepath.Join(out, "b.json")
	if err := p.renderer.RenderJSON(first.Record, pathA); err != nil {
		t.Fatal(err)
	}
	if err := p.renderer.RenderJSON(second.Record, pathB); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(pathA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two runs over the same folder must serialize to identical bytes")
	}
}

func TestProcessCase_CacheRoundTrip(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.LLM.Provider = ""
	cfg.Policy.AddNationalCRAsOnTrigger = false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := NewPipeline(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}

	dir := testCaseDir(t)
	first, err := p.ProcessCase(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	// Second run hits the extraction cache; the record must not change.
	second, err := p.ProcessCase(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if first.Record.RecordID != second.Record.RecordID ||
		first.Record.ConfidenceScore != second.Record.ConfidenceScore {
		t.Errorf("cached rerun diverged: %+v vs %+v", first.Record, second.Record)
	}
}

func TestProcessCase_MissingFolder(t *testing.T) {
	p := testPipeline(t)
	if _, err := p.ProcessCase(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("missing folder must fail")
	}
}

func TestLLMMarkdownPath(t *testing.T) {
	if got := llmMarkdownPath("/out/case.json"); got != "/out/case.llm.md" {
		t.Errorf("llmMarkdownPath = %q", got)
	}
}
