// Package extract turns a single document's plain text into an
// ExtractionResult by running the document-type pattern library, then
// normalizing and classifying every candidate party.
package extract

import (
	"strings"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/classify"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/extract/adapters"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// Extractor applies pattern libraries to one document at a time. Extract
// is pure and safe for concurrent use: all shared state is read-only
// configuration.
type Extractor struct {
	registry   *adapters.Registry
	normalizer *Normalizer
	classifier *classify.Classifier
}

// New builds an extractor from configuration and a classifier.
func New(cfg *model.Config, classifier *classify.Classifier) *Extractor {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if classifier == nil {
		classifier = classify.New(cfg)
	}
	return &Extractor{
		registry:   adapters.NewRegistry(),
		normalizer: NewNormalizer(cfg.Aliases),
		classifier: classifier,
	}
}

// Extract produces the per-document extraction result. It never fails:
// malformed or empty text yields a result with empty candidates and zero
// confidences. Case-viability judgments belong to the consolidator.
func (e *Extractor) Extract(doc model.SourceDocument) model.ExtractionResult {
	text := StripMarkup(doc.Text)
	library := e.registry.For(doc.Type)
	raw := library.Extract(text)

	triggered := e.classifier.HasFCRATrigger(text)
	dctx := classify.DocumentContext{
		Type:          doc.Type,
		Text:          text,
		FCRATriggered: triggered,
	}

	result := model.ExtractionResult{
		SourceDocumentID:    doc.ID,
		DocumentType:        doc.Type,
		RawTextRef:          doc.ID,
		CandidateDates:      raw.Dates,
		CandidateCaseNumber: raw.CaseNumber,
		CandidateCourt:      raw.Court,
		CandidatePlaintiff:  raw.Plaintiff,
		CandidateTitle:      raw.Title,
		FCRATriggered:       triggered,
		FieldConfidences:    raw.Confidences,
	}
	if result.FieldConfidences == nil {
		result.FieldConfidences = make(map[string]float64)
	}

	plaintiffName := ""
	if raw.Plaintiff != nil {
		plaintiffName = foldName(raw.Plaintiff.Name)
	}

	result.CandidateParties = e.classifyCandidates(raw.Parties, plaintiffName, dctx)
	if len(result.CandidateParties) == 0 {
		result.FieldConfidences[model.FieldParties] = 0
	}
	return result
}

// classifyCandidates normalizes raw candidates, drops plaintiff-name
// echoes, classifies roles, and collapses duplicates keeping the
// strongest mention.
func (e *Extractor) classifyCandidates(raw []adapters.Candidate, plaintiffName string, dctx classify.DocumentContext) []model.CandidateParty {
	var parties []model.CandidateParty
	index := make(map[string]int)

	for _, candidate := range raw {
		normalized := e.normalizer.Normalize(candidate.RawName)
		if normalized == "" {
			continue
		}
		// The plaintiff's own name in narrative is never a defendant
		// candidate.
		if plaintiffName != "" && foldName(candidate.RawName) == plaintiffName {
			continue
		}

		party := model.CandidateParty{
			RawName:              strings.TrimSpace(candidate.RawName),
			NormalizedName:       normalized,
			Role:                 candidate.RoleCue,
			Context:              candidate.Context,
			Confidence:           candidate.Confidence,
			StateOfIncorporation: candidate.StateOfIncorporation,
		}
		party.Role = e.classifier.Classify(party, dctx)

		if at, ok := index[normalized]; ok {
			parties[at] = mergeCandidates(parties[at], party)
			continue
		}
		index[normalized] = len(parties)
		parties = append(parties, party)
	}
	return parties
}

// mergeCandidates keeps the strongest mention of a party within one
// document. Defendant-eligible roles outrank the exclusion roles so a
// furnisher cue is not erased by a later weaker mention.
func mergeCandidates(a, b model.CandidateParty) model.CandidateParty {
	winner, loser := a, b
	if roleRank(b.Role) > roleRank(a.Role) ||
		(roleRank(b.Role) == roleRank(a.Role) && b.Confidence > a.Confidence) {
		winner, loser = b, a
	}
	if winner.StateOfIncorporation == "" {
		winner.StateOfIncorporation = loser.StateOfIncorporation
	}
	if loser.Confidence > winner.Confidence {
		winner.Confidence = loser.Confidence
	}
	return winner
}

func roleRank(r model.RoleHint) int {
	switch r {
	case model.RoleCRA:
		return 3
	case model.RoleFurnisher:
		return 2
	case model.RoleDecisionMaker:
		return 1
	default:
		return 0
	}
}
