package adapters

import (
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// GenericLibrary is the fallback for untagged documents: the union of the
// narrative patterns at reduced confidence, since nothing about the
// document's structure can be assumed.
type GenericLibrary struct {
	narrative []narrativePattern
}

// NewGenericLibrary creates the fallback pattern library.
func NewGenericLibrary() *GenericLibrary {
	return &GenericLibrary{
		narrative: []narrativePattern{
			narrative(`(?i)disputed?(?: the)?(?: account| debt| charge| tradeline| item)? (?:with|to) {ORG}`, 0.7, model.RoleFurnisher),
			narrative(`(?i)(?:reported|furnished) by {ORG}`, 0.6, model.RoleFurnisher),
			narrative(`(?i)(?:denied|declined) by {ORG}`, 0.5, model.RoleDecisionMaker),
			narrative(`(?i)(?:information|report) (?:obtained|provided) (?:from|by) {ORG}`, 0.5, model.RoleUnknown),
		},
	}
}

func (l *GenericLibrary) Name() string                     { return "generic" }
func (l *GenericLibrary) DocumentType() model.DocumentType { return model.DocTypeOther }

// Extract applies every pattern it has and reports whatever sticks.
func (l *GenericLibrary) Extract(text string) Result {
	res := newResult()

	if candidates := scanNarrative(text, l.narrative); len(candidates) > 0 {
		res.Parties = candidates
		res.setConfidence(model.FieldParties, maxConfidence(candidates))
	}
	if number, conf := extractCaseNumber(text); number != "" {
		res.CaseNumber = number
		res.setConfidence(model.FieldCaseNumber, conf)
	}
	if court, conf := extractCourt(text); court != nil {
		res.Court = court
		res.setConfidence(model.FieldCourt, conf)
	}
	if dates := extractDates(text, ""); len(dates) > 0 {
		res.Dates = dates
		res.setConfidence(model.FieldDates, maxDateConfidence(dates))
	}
	return res
}
