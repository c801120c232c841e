package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/score"
)

// Renderer writes case records to files and the terminal.
type Renderer struct {
	includeMarkdown bool
}

// NewRenderer creates a new renderer.
func NewRenderer(includeMarkdown bool) *Renderer {
	return &Renderer{includeMarkdown: includeMarkdown}
}

// RenderJSON writes the record as canonical JSON (RFC 8785). The same
// record always serializes to the same bytes, so reruns can be compared
// with a plain diff.
func (r *Renderer) RenderJSON(rec *model.CaseRecord, path string) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	canonical, err := jcs.Transform(data)
	if err != nil {
		return fmt.Errorf("canonicalize record: %w", err)
	}
	canonical = append(canonical, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, canonical, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable digest of the record.
func (r *Renderer) RenderMarkdown(rec *model.CaseRecord, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rec.CaseInformation.DocumentTitle)
	fmt.Fprintf(&b, "**Case:** %s \n", rec.CaseInformation.CaseNumber)
	fmt.Fprintf(&b, "**Court:** %s, %s \n", rec.CaseInformation.CourtName, rec.CaseInformation.District)
	fmt.Fprintf(&b, "**Confidence Score:** %.0f/100\n\n", rec.ConfidenceScore)

	b.WriteString("## Plaintiff\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", rec.Parties.Plaintiff.Name)
	if rec.Parties.Plaintiff.Address != "" {
		fmt.Fprintf(&b, "- **Address:** %s\n", rec.Parties.Plaintiff.Address)
	}
	if rec.Parties.Plaintiff.Residency != "" {
		fmt.Fprintf(&b, "- **Residency:** %s\n", rec.Parties.Plaintiff.Residency)
	}
	fmt.Fprintf(&b, "- **Consumer Status:** %s\n\n", rec.Parties.Plaintiff.ConsumerStatus)

	b.WriteString("## Defendants\n\n")
	b.WriteString("| Short Name | Legal Name | Type | State |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, d := range rec.Parties.Defendants {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", d.ShortName, d.Name, d.Type, d.StateOfIncorporation)
	}
	b.WriteString("\n")

	b.WriteString("## Causes of Action\n\n")
	for _, cause := range rec.CausesOfAction {
		fmt.Fprintf(&b, "### Count %d: %s\n\n", cause.CountNumber, cause.Title)
		fmt.Fprintf(&b, "Against: %s\n\n", strings.Join(cause.AgainstDefendants, ", "))
		for _, alleg := range cause.Allegations {
			fmt.Fprintf(&b, "- **%s**: %s\n", alleg.Citation, alleg.Description)
		}
		b.WriteString("\n")
	}

	if len(rec.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range rec.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	return nil
}

// RenderLLMMarkdown writes the separate LLM summary document.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if markdown == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, []byte(markdown), 0644)
}

// RenderSummary prints a terminal summary of the consolidated case.
func (r *Renderer) RenderSummary(rec *model.CaseRecord, signals []score.Signal) {
	fmt.Printf("\nCase %s | %s\n", rec.CaseInformation.CaseNumber, rec.Parties.Plaintiff.Name)
	fmt.Printf("Confidence Score: %.0f/100\n", rec.ConfidenceScore)

	fmt.Printf("Defendants (%d):\n", len(rec.Parties.Defendants))
	for _, d := range rec.Parties.Defendants {
		fmt.Printf("  - %s (%s)\n", d.ShortName, d.Type)
	}

	fmt.Printf("Causes of Action (%d):\n", len(rec.CausesOfAction))
	for _, cause := range rec.CausesOfAction {
		fmt.Printf("  %d. %s\n", cause.CountNumber, cause.Title)
	}

	for _, sig := range signals {
		if sig.Severity == score.SeverityWarning || sig.Severity == score.SeverityCritical {
			fmt.Printf("  ! %s: %s\n", sig.Type, sig.Description)
		}
	}

	if len(rec.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(rec.Warnings))
		for _, w := range rec.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}

// llmMarkdownPath derives the LLM summary path from the JSON output path.
func llmMarkdownPath(jsonPath string) string {
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".llm.md"
}
