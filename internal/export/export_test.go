package export

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

func exportRecord() *model.CaseRecord {
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
				{
					Name:                 "EQUIFAX INFORMATION SERVICES, LLC",
					ShortName:            "Equifax",
					Type:                 model.DefendantCRA,
					StateOfIncorporation: "Georgia",
					BusinessStatus:       "Foreign limited liability company",
				},
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
				},
			},
		},
		ConfidenceScore: 95,
		Warnings:        []string{"conflicting document_title"},
	}
}

func testService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExportCaseXLSX(t *testing.T) {
	data, err := testService().ExportCaseXLSX(exportRecord())
	if err != nil {
		t.Fatalf("ExportCaseXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Case", "Defendants", "Causes"} {
		found := false
		for _, s := range sheets {
			if s == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing sheet %q in %v", want, sheets)
		}
	}

	if v, _ := f.GetCellValue("Case", "B3"); v != "1:25-cv-01234" {
		t.Errorf("case number cell = %q", v)
	}
	if v, _ := f.GetCellValue("Case", "B7"); v != "Eman Youssef" {
		t.Errorf("plaintiff cell = %q", v)
	}

	if v, _ := f.GetCellValue("Defendants", "A1"); v != "Short Name" {
		t.Errorf("defendants header = %q", v)
	}
	if v, _ := f.GetCellValue("Defendants", "A3"); v != "Equifax" {
		t.Errorf("defendant row = %q", v)
	}
	if v, _ := f.GetCellValue("Defendants", "C2"); v != "furnisher" {
		t.Errorf("defendant type = %q", v)
	}

	// One row per allegation, not per count.
	if v, _ := f.GetCellValue("Causes", "D3"); v != "15 U.S.C. § 1681i(a)(5)" {
		t.Errorf("allegation row = %q", v)
	}
	if v, _ := f.GetCellValue("Causes", "C2"); v != "Equifax" {
		t.Errorf("against cell = %q", v)
	}
}

func TestExportCaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "case.xlsx")
	if err := testService().ExportCaseFile(exportRecord(), path); err != nil {
		t.Fatalf("ExportCaseFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("export is empty")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 140); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	long := strings.Repeat("a", 200)
	got := truncate(long, 140)
	if len(got) != 140 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate length = %d, suffix = %q", len(got), got[len(got)-3:])
	}
}
