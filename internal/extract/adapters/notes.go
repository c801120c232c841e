package adapters

import (
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// NotesLibrary reads attorney notes: the most structured source, with
// labeled case fields and an explicit defendants block, plus dispute
// narrative.
type NotesLibrary struct {
	narrative []narrativePattern
}

// NewNotesLibrary creates the attorney-notes pattern library.
func NewNotesLibrary() *NotesLibrary {
	return &NotesLibrary{
		narrative: []narrativePattern{
			narrative(`(?i)disputed?(?: the)?(?: account| debt| charge| tradeline| item)?(?: directly)? (?:with|to) {ORG}`, 0.9, model.RoleFurnisher),
			narrative(`(?i)furnished by {ORG}`, 0.85, model.RoleFurnisher),
			narrative(`(?i)reported by {ORG}`, 0.8, model.RoleFurnisher),
			narrative(`(?i){ORG} (?:continued to report|re-?reported|failed to (?:investigate|correct))`, 0.85, model.RoleFurnisher),
			narrative(`(?i)denied by {ORG}`, 0.7, model.RoleDecisionMaker),
		},
	}
}

func (l *NotesLibrary) Name() string                     { return "attorney_notes" }
func (l *NotesLibrary) DocumentType() model.DocumentType { return model.DocTypeAttorneyNotes }

// Extract pulls labeled fields first, then the structured defendants
// block. Narrative scanning runs only when no explicit block exists:
// structured sections take precedence and stop the search.
func (l *NotesLibrary) Extract(text string) Result {
	res := newResult()

	if v, ok := labeledValue(text, "court"); ok {
		res.Court = &model.CourtRef{Name: v}
		res.setConfidence(model.FieldCourt, 1.0)
	}
	if v, ok := labeledValue(text, "district", "court district"); ok {
		if res.Court == nil {
			res.Court = &model.CourtRef{}
		}
		res.Court.District = v
		res.setConfidence(model.FieldCourt, 1.0)
	}
	if res.Court == nil {
		if court, conf := extractCourt(text); court != nil {
			res.Court = court
			res.setConfidence(model.FieldCourt, conf)
		}
	}

	if number, conf := extractCaseNumber(text); number != "" {
		res.CaseNumber = number
		res.setConfidence(model.FieldCaseNumber, conf)
	}

	if v, ok := labeledValue(text, "document title", "title"); ok {
		res.Title = v
		res.setConfidence(model.FieldTitle, 1.0)
	}

	if name, ok := labeledValue(text, "plaintiff", "client", "client name"); ok {
		p := &model.PlaintiffInfo{Name: name}
		if v, ok := labeledValue(text, "address"); ok {
			p.Address = v
		}
		if v, ok := labeledValue(text, "residency", "resident of"); ok {
			p.Residency = v
		}
		if v, ok := labeledValue(text, "consumer status"); ok {
			p.ConsumerStatus = v
		}
		res.Plaintiff = p
		res.setConfidence(model.FieldPlaintiff, 1.0)
	}

	if block := sectionLines(text, "defendants"); len(block) > 0 {
		res.Parties = sectionCandidates(block, model.RoleFurnisher)
		res.setConfidence(model.FieldParties, 1.0)
	} else if candidates := scanNarrative(text, l.narrative); len(candidates) > 0 {
		res.Parties = candidates
		res.setConfidence(model.FieldParties, maxConfidence(candidates))
	}

	if dates := extractDates(text, ""); len(dates) > 0 {
		res.Dates = dates
		res.setConfidence(model.FieldDates, maxDateConfidence(dates))
	}
	return res
}

func maxConfidence(candidates []Candidate) float64 {
	best := 0.0
	for _, c := range candidates {
		if c.Confidence > best {
			best = c.Confidence
		}
	}
	return best
}

func maxDateConfidence(dates []model.DatedEvent) float64 {
	best := 0.0
	for _, d := range dates {
		if d.Confidence > best {
			best = d.Confidence
		}
	}
	return best
}
