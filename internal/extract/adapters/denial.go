package adapters

import (
	"regexp"
	"strings"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// DenialLibrary reads adverse-action and denial letters. The letterhead
// entity denied credit, which makes it a decision maker, not a defendant;
// the pattern cues record that so the classifier can apply the exclusion.
// Bureau mentions ("based on information obtained from Trans Union")
// surface the report source.
type DenialLibrary struct {
	narrative []narrativePattern
}

var salutationRe = regexp.MustCompile(`(?m)^Dear\s+([A-Z][A-Za-z .'-]+?)\s*[,:]`)

// NewDenialLibrary creates the denial-letter pattern library.
func NewDenialLibrary() *DenialLibrary {
	return &DenialLibrary{
		narrative: []narrativePattern{
			narrative(`(?i)(?:denied|declined) by {ORG}`, 0.7, model.RoleDecisionMaker),
			narrative(`(?i){ORG} (?:has |have )?(?:denied|declined) your`, 0.7, model.RoleDecisionMaker),
			narrative(`(?i)(?:information|report|credit report) (?:obtained|provided|supplied|received) (?:from|by) {ORG}`, 0.75, model.RoleUnknown),
			narrative(`(?i)issued by {ORG}`, 0.6, model.RoleUnknown),
			narrative(`(?i)disputed?(?: the)?(?: account| debt| charge)? (?:with|to) {ORG}`, 0.9, model.RoleFurnisher),
		},
	}
}

func (l *DenialLibrary) Name() string                     { return "denial_letter" }
func (l *DenialLibrary) DocumentType() model.DocumentType { return model.DocTypeDenialLetter }

// Extract scans the letter narrative. Denial letters rarely carry case
// identity; whatever they do carry arrives at narrative confidence only.
func (l *DenialLibrary) Extract(text string) Result {
	res := newResult()

	if candidates := scanNarrative(text, l.narrative); len(candidates) > 0 {
		res.Parties = candidates
		res.setConfidence(model.FieldParties, maxConfidence(candidates))
	}

	// The addressee is the consumer, useful for plaintiff-name exclusion
	// downstream even though a letter never establishes full identity.
	if m := salutationRe.FindStringSubmatch(text); m != nil {
		res.Plaintiff = &model.PlaintiffInfo{Name: strings.TrimSpace(m[1])}
		res.setConfidence(model.FieldPlaintiff, 0.5)
	}

	if dates := extractDates(text, "denial"); len(dates) > 0 {
		res.Dates = dates
		res.setConfidence(model.FieldDates, maxDateConfidence(dates))
	}
	return res
}
