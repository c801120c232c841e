package adapters

import (
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// CreditReportLibrary reads credit-report excerpts: tradeline listings
// name the furnishing creditor, dispute remarks carry dispute language.
type CreditReportLibrary struct {
	narrative []narrativePattern
}

// NewCreditReportLibrary creates the credit-report pattern library.
func NewCreditReportLibrary() *CreditReportLibrary {
	return &CreditReportLibrary{
		narrative: []narrativePattern{
			narrative(`(?i)(?:reported|furnished) by {ORG}`, 0.8, model.RoleFurnisher),
			narrative(`(?i)account (?:with|from) {ORG}`, 0.6, model.RoleFurnisher),
			narrative(`(?i){ORG} (?:tradeline|account)`, 0.5, model.RoleFurnisher),
		},
	}
}

func (l *CreditReportLibrary) Name() string                     { return "credit_report" }
func (l *CreditReportLibrary) DocumentType() model.DocumentType { return model.DocTypeCreditReport }

// Extract prefers labeled furnisher fields, then tradeline narrative.
func (l *CreditReportLibrary) Extract(text string) Result {
	res := newResult()

	if v, ok := labeledValue(text, "furnisher", "creditor", "reported by"); ok {
		res.Parties = []Candidate{{
			RawName:    v,
			Context:    "furnisher: " + v,
			Confidence: 0.9,
			RoleCue:    model.RoleFurnisher,
		}}
		res.setConfidence(model.FieldParties, 0.9)
	} else if candidates := scanNarrative(text, l.narrative); len(candidates) > 0 {
		res.Parties = candidates
		res.setConfidence(model.FieldParties, maxConfidence(candidates))
	}

	if dates := extractDates(text, "report"); len(dates) > 0 {
		res.Dates = dates
		res.setConfidence(model.FieldDates, maxDateConfidence(dates))
	}
	return res
}
