package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.CRAs) != 3 {
		t.Fatalf("expected the 3 national bureaus, got %d", len(cfg.CRAs))
	}
	if cfg.CRAs[0].ShortName != "Equifax" {
		t.Errorf("bureau order changed: %+v", cfg.CRAs[0])
	}
	if len(cfg.Claims) == 0 {
		t.Fatal("claims catalog is empty")
	}
	if cfg.Aliases["equifax"] != "EQUIFAX INFORMATION SERVICES, LLC" {
		t.Errorf("alias table: %q", cfg.Aliases["equifax"])
	}
	if !cfg.Policy.AddNationalCRAsOnTrigger {
		t.Error("CRA policy must default on")
	}
	if cfg.Concurrency.ExtractionWorkers <= 0 {
		t.Errorf("workers = %d", cfg.Concurrency.ExtractionWorkers)
	}
}

func TestLoadFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `policy:
  add_national_cras_on_trigger: false
concurrency:
  extraction_workers: 8
aliases:
  acme bank: "ACME BANK, N.A."
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Policy.AddNationalCRAsOnTrigger {
		t.Error("overlay must override the policy flag")
	}
	if cfg.Concurrency.ExtractionWorkers != 8 {
		t.Errorf("workers = %d", cfg.Concurrency.ExtractionWorkers)
	}
	if cfg.Aliases["acme bank"] != "ACME BANK, N.A." {
		t.Errorf("alias overlay missing: %v", cfg.Aliases["acme bank"])
	}
	// Untouched sections keep their defaults.
	if len(cfg.CRAs) != 3 {
		t.Errorf("overlay must not clear the bureau set: %d", len(cfg.CRAs))
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing file must not error: %v", err)
	}
}

func TestDocumentTypePriority(t *testing.T) {
	order := []DocumentType{
		DocTypeAttorneyNotes,
		DocTypeSummons,
		DocTypeDenialLetter,
		DocTypeCreditReport,
		DocTypeOther,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1].Priority() >= order[i].Priority() {
			t.Errorf("%s must outrank %s", order[i-1], order[i])
		}
	}
}

func TestParseDocumentType(t *testing.T) {
	if got := ParseDocumentType("summons"); got != DocTypeSummons {
		t.Errorf("ParseDocumentType(summons) = %v", got)
	}
	if got := ParseDocumentType("mystery"); got != DocTypeOther {
		t.Errorf("unknown tags default to other, got %v", got)
	}
	if got := ParseDocumentType(""); got != DocTypeOther {
		t.Errorf("empty tag defaults to other, got %v", got)
	}
}
