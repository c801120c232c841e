package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

func rendererRecord() *model.CaseRecord {
	return &model.CaseRecord{
		RecordID: "8cbd27fe-4f0c-5a70-9744-6b7d1f6e60a1",
		CaseID:   "youssef_v_tdbank",
		CaseInformation: model.CaseInformation{
			CourtName:     "UNITED STATES DISTRICT COURT",
			District:      "EASTERN DISTRICT OF NEW YORK",
			CaseNumber:    "1:25-cv-01234",
			DocumentTitle: "COMPLAINT",
		},
		Parties: model.Parties{
			Plaintiff: model.Plaintiff{
				Name:           "Eman Youssef",
				Address:        "123 Main Street",
				Residency:      "Queens County, New York",
				ConsumerStatus: "Individual consumer",
			},
			Defendants: []model.Defendant{
				{Name: "TD BANK, N.A.", ShortName: "TD Bank", Type: model.DefendantFurnisher},
			},
		},
		CausesOfAction: []model.CauseOfAction{
			{
				CountNumber:       1,
				Title:             "VIOLATION OF THE FCRA, 15 U.S.C. § 1681s-2(b)",
				AgainstDefendants: []string{"TD Bank"},
				Allegations: []model.Allegation{
					{Citation: "15 U.S.C. § 1681s-2(b)(1)(A)", Description: "Failed to investigate."},
				},
			},
		},
		ConfidenceScore: 85,
		Warnings:        []string{"conflicting document_title: keeping \"COMPLAINT\""},
	}
}

func TestRenderJSON_Canonical(t *testing.T) {
	r := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "out", "case.json")

	if err := r.RenderJSON(rendererRecord(), path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("output must end in a newline")
	}

	var decoded model.CaseRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RecordID != "8cbd27fe-4f0c-5a70-9744-6b7d1f6e60a1" {
		t.Errorf("record id = %q", decoded.RecordID)
	}

	// Canonical form sorts object keys, so record_id precedes warnings.
	text := string(data)
	if strings.Index(text, `"record_id"`) > strings.Index(text, `"warnings"`) {
		t.Error("keys are not in canonical order")
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "case.md")

	if err := r.RenderMarkdown(rendererRecord(), path); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)
	for _, want := range []string{
		"# COMPLAINT",
		"**Case:** 1:25-cv-01234",
		"## Plaintiff",
		"| TD Bank | TD BANK, N.A. | furnisher |",
		"### Count 1: VIOLATION OF THE FCRA, 15 U.S.C. § 1681s-2(b)",
		"- **15 U.S.C. § 1681s-2(b)(1)(A)**: Failed to investigate.",
		"## Warnings",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderLLMMarkdown_EmptyIsNoop(t *testing.T) {
	r := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "case.llm.md")

	if err := r.RenderLLMMarkdown("", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty markdown must not create a file")
	}

	if err := r.RenderLLMMarkdown("# LLM Summary\n", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("summary file missing: %v", err)
	}
}
