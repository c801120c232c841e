// Package validate checks a draft case record against the structural
// invariants the downstream template renderer depends on. Validation is
// pure and reports every violation, not just the first, so a caller can
// fix all issues in one pass.
package validate

import (
	"fmt"
	"strings"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// ValidationError names one violated invariant and the entity it
// concerns.
type ValidationError struct {
	Field   string `json:"field"`
	Entity  string `json:"entity,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s (%s): %s", e.Field, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates all violations of one record.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("record failed validation with %d violation(s): %s", len(es), strings.Join(msgs, "; "))
}

// Structural checks the invariants that cannot be expressed in a JSON
// schema: short_name uniqueness, cross-reference integrity, and count
// numbering.
func Structural(rec *model.CaseRecord) ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, requiredScalars(rec)...)

	if len(rec.Parties.Defendants) == 0 {
		errs = append(errs, ValidationError{
			Field:   "parties.defendants",
			Message: "defendant list is empty",
		})
	}

	shortNames := make(map[string]bool)
	for i, d := range rec.Parties.Defendants {
		if d.ShortName == "" {
			errs = append(errs, ValidationError{
				Field:   "parties.defendants.short_name",
				Entity:  d.Name,
				Message: fmt.Sprintf("defendant %d has an empty short_name", i+1),
			})
			continue
		}
		if shortNames[d.ShortName] {
			errs = append(errs, ValidationError{
				Field:   "parties.defendants.short_name",
				Entity:  d.ShortName,
				Message: "short_name is not unique across the defendant list",
			})
		}
		shortNames[d.ShortName] = true
	}

	for i, cause := range rec.CausesOfAction {
		if cause.CountNumber != i+1 {
			errs = append(errs, ValidationError{
				Field:   "causes_of_action.count_number",
				Entity:  cause.Title,
				Message: fmt.Sprintf("count_number %d at position %d breaks the contiguous sequence starting at 1", cause.CountNumber, i+1),
			})
		}
		for _, short := range cause.AgainstDefendants {
			if !shortNames[short] {
				errs = append(errs, ValidationError{
					Field:   "causes_of_action.against_defendants",
					Entity:  cause.Title,
					Message: fmt.Sprintf("references unknown defendant short_name %q", short),
				})
			}
		}
		for _, allegation := range cause.Allegations {
			for _, short := range allegation.AgainstDefendants {
				if !shortNames[short] {
					errs = append(errs, ValidationError{
						Field:   "causes_of_action.allegations.against_defendants",
						Entity:  allegation.Citation,
						Message: fmt.Sprintf("references unknown defendant short_name %q", short),
					})
				}
			}
		}
	}

	return errs
}

func requiredScalars(rec *model.CaseRecord) ValidationErrors {
	var errs ValidationErrors
	required := []struct {
		field string
		value string
	}{
		{"case_information.court_name", rec.CaseInformation.CourtName},
		{"case_information.district", rec.CaseInformation.District},
		{"case_information.case_number", rec.CaseInformation.CaseNumber},
		{"case_information.document_title", rec.CaseInformation.DocumentTitle},
		{"parties.plaintiff.name", rec.Parties.Plaintiff.Name},
		{"parties.plaintiff.address", rec.Parties.Plaintiff.Address},
		{"parties.plaintiff.residency", rec.Parties.Plaintiff.Residency},
		{"parties.plaintiff.consumer_status", rec.Parties.Plaintiff.ConsumerStatus},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, ValidationError{
				Field:   r.field,
				Message: "required field is empty",
			})
		}
	}
	return errs
}
