package model

// DocumentType tags a source document with its kind. Consolidation order
// is driven by type priority, never by directory listing order.
type DocumentType string

const (
	DocTypeAttorneyNotes DocumentType = "attorney_notes"
	DocTypeDenialLetter  DocumentType = "denial_letter"
	DocTypeCreditReport  DocumentType = "credit_report"
	DocTypeSummons       DocumentType = "summons"
	DocTypeOther         DocumentType = "other"
)

// Priority returns the fixed merge priority for a document type.
// Lower sorts first. Attorney notes are the most authoritative source,
// followed by court papers, then creditor correspondence.
func (t DocumentType) Priority() int {
	switch t {
	case DocTypeAttorneyNotes:
		return 0
	case DocTypeSummons:
		return 1
	case DocTypeDenialLetter:
		return 2
	case DocTypeCreditReport:
		return 3
	default:
		return 4
	}
}

// ParseDocumentType maps a string tag to a DocumentType, defaulting to other.
func ParseDocumentType(s string) DocumentType {
	switch DocumentType(s) {
	case DocTypeAttorneyNotes, DocTypeDenialLetter, DocTypeCreditReport, DocTypeSummons:
		return DocumentType(s)
	default:
		return DocTypeOther
	}
}

// SourceDocument is one pre-extracted text document from a case folder.
// The engine never opens binary formats; upstream OCR/parsing supplies the text.
type SourceDocument struct {
	ID   string       `json:"id"`   // stable identifier, typically the file name
	Type DocumentType `json:"type"`
	Text string       `json:"text"`
}

// RoleHint is the legal role assigned to a candidate party.
type RoleHint string

const (
	RoleFurnisher     RoleHint = "furnisher"      // reported disputed data to a bureau; FCRA defendant
	RoleCRA           RoleHint = "cra"            // consumer reporting agency; FCRA defendant
	RoleDecisionMaker RoleHint = "decision_maker" // used a credit report to decide; NOT a defendant
	RolePlaintiff     RoleHint = "plaintiff"
	RoleUnknown       RoleHint = "unknown"
)

// CandidateParty is one organization or person recognized in a document.
type CandidateParty struct {
	RawName              string   `json:"raw_name"`
	NormalizedName       string   `json:"normalized_name"`
	Role                 RoleHint `json:"role_hint"`
	Context              string   `json:"supporting_context_snippet,omitempty"`
	Confidence           float64  `json:"confidence"`
	StateOfIncorporation string   `json:"state_of_incorporation,omitempty"`
}

// DatedEvent is a date recognized in a document, kept as text so that
// partial dates survive without being coerced.
type DatedEvent struct {
	Raw        string  `json:"raw"`
	Date       string  `json:"date,omitempty"` // normalized YYYY-MM-DD when fully parseable
	Label      string  `json:"label,omitempty"`
	Confidence float64 `json:"confidence"`
}

// CourtRef identifies a court by name and district.
type CourtRef struct {
	Name     string `json:"name"`
	District string `json:"district"`
}

// PlaintiffInfo is the plaintiff identity as recognized in a single document.
type PlaintiffInfo struct {
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	Residency      string `json:"residency,omitempty"`
	ConsumerStatus string `json:"consumer_status,omitempty"`
}

// Well-known field keys for ExtractionResult.FieldConfidences.
const (
	FieldParties    = "parties"
	FieldCaseNumber = "case_number"
	FieldCourt      = "court"
	FieldPlaintiff  = "plaintiff"
	FieldDates      = "dates"
	FieldTitle      = "document_title"
)

// ExtractionResult is the per-document output of the extractor. It is
// created once, never mutated, and consumed only by the consolidator.
type ExtractionResult struct {
	SourceDocumentID    string             `json:"source_document_id"`
	DocumentType        DocumentType       `json:"document_type"`
	RawTextRef          string             `json:"raw_text_ref,omitempty"`
	CandidateParties    []CandidateParty   `json:"candidate_parties"`
	CandidateDates      []DatedEvent       `json:"candidate_dates,omitempty"`
	CandidateCaseNumber string             `json:"candidate_case_number,omitempty"`
	CandidateCourt      *CourtRef          `json:"candidate_court,omitempty"`
	CandidatePlaintiff  *PlaintiffInfo     `json:"candidate_plaintiff,omitempty"`
	CandidateTitle      string             `json:"candidate_title,omitempty"`
	FCRATriggered       bool               `json:"fcra_triggered"`
	FieldConfidences    map[string]float64 `json:"field_confidences"`
}

// Confidence returns the recorded confidence for a field, zero when the
// field was not found.
func (r *ExtractionResult) Confidence(field string) float64 {
	if r.FieldConfidences == nil {
		return 0
	}
	return r.FieldConfidences[field]
}
