// Package export produces XLSX workbooks from consolidated case records
// for attorneys who review cases in spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// Service is a tiny façade that produces XLSX bytes for exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportCaseXLSX returns an XLSX workbook (as bytes) for one case record,
// with one sheet each for case details, defendants, and causes of action.
func (s *Service) ExportCaseXLSX(rec *model.CaseRecord) ([]byte, error) {
	f := excelize.NewFile()

	if err := s.writeCaseSheet(f, rec); err != nil {
		return nil, err
	}
	if err := s.writeDefendantsSheet(f, rec); err != nil {
		return nil, err
	}
	if err := s.writeCausesSheet(f, rec); err != nil {
		return nil, err
	}

	// Drop the default sheet and activate Case
	_ = f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex("Case"); err == nil {
		f.SetActiveSheet(index)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Debug("exported case workbook", "case_id", rec.CaseID, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// ExportCaseFile writes the workbook to disk.
func (s *Service) ExportCaseFile(rec *model.CaseRecord, path string) error {
	data, err := s.ExportCaseXLSX(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func (s *Service) writeCaseSheet(f *excelize.File, rec *model.CaseRecord) error {
	const sheet = "Case"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][2]any{
		{"Record ID", rec.RecordID},
		{"Case ID", rec.CaseID},
		{"Case Number", rec.CaseInformation.CaseNumber},
		{"Court", rec.CaseInformation.CourtName},
		{"District", rec.CaseInformation.District},
		{"Document Title", rec.CaseInformation.DocumentTitle},
		{"Plaintiff", rec.Parties.Plaintiff.Name},
		{"Plaintiff Address", rec.Parties.Plaintiff.Address},
		{"Residency", rec.Parties.Plaintiff.Residency},
		{"Consumer Status", rec.Parties.Plaintiff.ConsumerStatus},
		{"Confidence Score", rec.ConfidenceScore},
		{"Warnings", strings.Join(rec.Warnings, "; ")},
	}

	for i, r := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(sheet, labelCell, r[0])
		_ = f.SetCellValue(sheet, valueCell, r[1])
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 60)

	return nil
}

func (s *Service) writeDefendantsSheet(f *excelize.File, rec *model.CaseRecord) error {
	const sheet = "Defendants"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Short Name", "Legal Name", "Type", "State of Incorporation", "Business Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, d := range rec.Parties.Defendants {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, d.ShortName)
		write(2, d.Name)
		write(3, string(d.Type))
		write(4, d.StateOfIncorporation)
		write(5, d.BusinessStatus)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 45)
	_ = f.SetColWidth(sheet, "D", "E", 24)

	return nil
}

func (s *Service) writeCausesSheet(f *excelize.File, rec *model.CaseRecord) error {
	const sheet = "Causes"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Count", "Title", "Against", "Citation", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, cause := range rec.CausesOfAction {
		for _, alleg := range cause.Allegations {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			write(1, cause.CountNumber)
			write(2, cause.Title)
			write(3, strings.Join(cause.AgainstDefendants, ", "))
			write(4, alleg.Citation)
			write(5, truncate(alleg.Description, 140))
			row++
		}
	}

	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "D", "D", 22)
	_ = f.SetColWidth(sheet, "E", "E", 80)

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
