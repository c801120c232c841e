// Package adapters holds the per-document-type pattern libraries. Each
// library knows how one kind of source document phrases parties, dates,
// case identifiers, and courts. Libraries work on plain text only and
// return raw candidates; normalization and legal classification happen in
// the extractor.
package adapters

import (
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// Candidate is a raw party mention found by a pattern library, before
// normalization and classification.
type Candidate struct {
	RawName              string
	Context              string         // surrounding sentence or section line
	Confidence           float64        // 1.0 for structured sections, less for narrative cues
	RoleCue              model.RoleHint // what the matching pattern implies, not the final role
	StateOfIncorporation string
}

// Result is everything a pattern library recognized in one document.
type Result struct {
	Parties     []Candidate
	Dates       []model.DatedEvent
	CaseNumber  string
	Court       *model.CourtRef
	Plaintiff   *model.PlaintiffInfo
	Title       string
	Confidences map[string]float64
}

func newResult() Result {
	return Result{Confidences: make(map[string]float64)}
}

func (r *Result) setConfidence(field string, confidence float64) {
	if confidence > r.Confidences[field] {
		r.Confidences[field] = confidence
	}
}

// Library is one document-type pattern library.
type Library interface {
	Name() string
	DocumentType() model.DocumentType
	Extract(text string) Result
}

// Registry maps document types to libraries, with a generic fallback.
// Adding a document type means registering a library here, not scattering
// type checks through the merge logic.
type Registry struct {
	libraries map[model.DocumentType]Library
	generic   Library
}

// NewRegistry builds the registry with all built-in libraries.
func NewRegistry() *Registry {
	r := &Registry{libraries: make(map[model.DocumentType]Library)}
	r.Register(NewNotesLibrary())
	r.Register(NewDenialLibrary())
	r.Register(NewCreditReportLibrary())
	r.Register(NewSummonsLibrary())
	r.generic = NewGenericLibrary()
	return r
}

// Register adds or replaces the library for its document type.
func (r *Registry) Register(lib Library) {
	r.libraries[lib.DocumentType()] = lib
}

// For returns the library for a document type, falling back to generic.
func (r *Registry) For(t model.DocumentType) Library {
	if lib, ok := r.libraries[t]; ok {
		return lib
	}
	return r.generic
}
