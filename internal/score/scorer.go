// Package score derives the overall confidence score of a consolidated
// case record. Every component is additive and non-negative, so the score
// is monotonic: finding another required field or another correctly
// classified defendant can only raise it.
package score

import (
	"fmt"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// Signal is one diagnostic sub-score with its transparent inputs.
type Signal struct {
	Type        string         `json:"type"`
	Severity    string         `json:"severity"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"`
}

const (
	SignalCaseIdentity = "case_identity"
	SignalPlaintiff    = "plaintiff_identity"
	SignalDefendants   = "defendant_roster"
	SignalExtraction   = "extraction_confidence"

	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Score component ceilings. Case identity and the defendant roster carry
// most of the weight; a record without them cannot produce a complaint.
const (
	caseIdentityMax = 40.0 // 10 per case_information field
	plaintiffMax    = 15.0
	defendantBase   = 25.0 // first defendant
	defendantStep   = 5.0  // each additional defendant
	defendantMax    = 35.0
	extractionMax   = 10.0
)

// Scorer computes case-record confidence.
type Scorer struct{}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores a draft record against its extraction inputs. The
// result is 0..100; signals carry the full breakdown.
func (s *Scorer) Calculate(rec *model.CaseRecord, results []model.ExtractionResult) (float64, []Signal) {
	var signals []Signal

	identity, identitySignal := s.caseIdentity(rec.CaseInformation)
	signals = append(signals, identitySignal)

	plaintiff, plaintiffSignal := s.plaintiffIdentity(rec.Parties.Plaintiff)
	signals = append(signals, plaintiffSignal)

	defendants, defendantSignal := s.defendantRoster(rec.Parties.Defendants)
	signals = append(signals, defendantSignal)

	extraction, extractionSignal := s.extractionBonus(results)
	signals = append(signals, extractionSignal)

	total := identity + plaintiff + defendants + extraction
	if total > 100 {
		total = 100
	}
	return total, signals
}

func (s *Scorer) caseIdentity(info model.CaseInformation) (float64, Signal) {
	present := 0
	for _, v := range []string{info.CourtName, info.District, info.CaseNumber, info.DocumentTitle} {
		if v != "" {
			present++
		}
	}
	points := float64(present) * (caseIdentityMax / 4)

	severity := SeverityInfo
	if present < 4 {
		severity = SeverityWarning
	}
	if present == 0 {
		severity = SeverityCritical
	}
	return points, Signal{
		Type:        SignalCaseIdentity,
		Severity:    severity,
		Description: fmt.Sprintf("case identity fields present: %d/4", present),
		Data: map[string]any{
			"present": present,
			"points":  points,
			"formula": "present * 10",
		},
	}
}

func (s *Scorer) plaintiffIdentity(p model.Plaintiff) (float64, Signal) {
	if p.Name == "" {
		return 0, Signal{
			Type:        SignalPlaintiff,
			Severity:    SeverityCritical,
			Description: "no plaintiff identity",
		}
	}
	points := plaintiffMax
	severity := SeverityInfo
	missing := 0
	for _, v := range []string{p.Address, p.Residency, p.ConsumerStatus} {
		if v == "" {
			missing++
		}
	}
	if missing > 0 {
		points = plaintiffMax - float64(missing)*2
		severity = SeverityWarning
	}
	return points, Signal{
		Type:        SignalPlaintiff,
		Severity:    severity,
		Description: fmt.Sprintf("plaintiff identified, %d detail field(s) missing", missing),
		Data:        map[string]any{"missing": missing, "points": points},
	}
}

func (s *Scorer) defendantRoster(defendants []model.Defendant) (float64, Signal) {
	n := len(defendants)
	if n == 0 {
		return 0, Signal{
			Type:        SignalDefendants,
			Severity:    SeverityCritical,
			Description: "no defendants",
		}
	}
	points := defendantBase + float64(n-1)*defendantStep
	if points > defendantMax {
		points = defendantMax
	}
	furnishers, cras := 0, 0
	for _, d := range defendants {
		switch d.Type {
		case model.DefendantFurnisher:
			furnishers++
		case model.DefendantCRA:
			cras++
		}
	}
	return points, Signal{
		Type:        SignalDefendants,
		Severity:    SeverityInfo,
		Description: fmt.Sprintf("defendant roster: %d furnisher(s), %d CRA(s)", furnishers, cras),
		Data: map[string]any{
			"defendants": n,
			"furnishers": furnishers,
			"cras":       cras,
			"points":     points,
			"formula":    "min(25 + (n-1)*5, 35)",
		},
	}
}

// extractionBonus rewards strong extraction confidence. Summing the best
// per-field confidences (never averaging) keeps the bonus monotonic: a
// weak additional document cannot drag it down.
func (s *Scorer) extractionBonus(results []model.ExtractionResult) (float64, Signal) {
	best := make(map[string]float64)
	for _, r := range results {
		for field, confidence := range r.FieldConfidences {
			if confidence > best[field] {
				best[field] = confidence
			}
		}
	}
	sum := 0.0
	for _, confidence := range best {
		sum += confidence * 2
	}
	points := sum
	if points > extractionMax {
		points = extractionMax
	}
	return points, Signal{
		Type:        SignalExtraction,
		Severity:    SeverityInfo,
		Description: fmt.Sprintf("extraction confidence bonus: %.1f", points),
		Data: map[string]any{
			"fields":  len(best),
			"points":  points,
			"formula": "min(sum(best_per_field * 2), 10)",
		},
	}
}
