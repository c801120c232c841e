package model

// DefendantType is the FCRA liability category of a defendant.
type DefendantType string

const (
	DefendantFurnisher DefendantType = "furnisher"
	DefendantCRA       DefendantType = "cra"
)

// CaseRecord is the hydrated record: the consolidated, schema-validated
// case handed to the downstream template renderer. It carries no wall-clock
// fields so identical inputs serialize to identical bytes.
type CaseRecord struct {
	RecordID        string          `json:"record_id"` // deterministic UUIDv5 of the case id
	CaseID          string          `json:"case_id"`
	CaseInformation CaseInformation `json:"case_information"`
	Parties         Parties         `json:"parties"`
	CausesOfAction  []CauseOfAction `json:"causes_of_action"`
	ConfidenceScore float64         `json:"confidence_score"`
	Warnings        []string        `json:"warnings"`
}

// CaseInformation identifies the filing. All four fields must be non-empty
// for the record to validate.
type CaseInformation struct {
	CourtName     string `json:"court_name"`
	District      string `json:"district"`
	CaseNumber    string `json:"case_number"`
	DocumentTitle string `json:"document_title"`
}

// Parties holds the single plaintiff and the ordered defendant roster.
type Parties struct {
	Plaintiff  Plaintiff   `json:"plaintiff"`
	Defendants []Defendant `json:"defendants"`
}

// Plaintiff is the consumer bringing the action.
type Plaintiff struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Residency      string `json:"residency"`
	ConsumerStatus string `json:"consumer_status"`
}

// Defendant is one FCRA defendant. ShortName is the join key used by
// causes of action and must be unique across the roster.
type Defendant struct {
	Name                 string        `json:"name"`
	ShortName            string        `json:"short_name"`
	Type                 DefendantType `json:"type"`
	StateOfIncorporation string        `json:"state_of_incorporation,omitempty"`
	BusinessStatus       string        `json:"business_status,omitempty"`
}

// CauseOfAction is one numbered count. AgainstDefendants references
// defendants by short name.
type CauseOfAction struct {
	CountNumber       int          `json:"count_number"`
	Title             string       `json:"title"`
	AgainstDefendants []string     `json:"against_defendants"`
	Allegations       []Allegation `json:"allegations"`
}

// Allegation is one cited allegation inside a count.
type Allegation struct {
	Citation          string   `json:"citation"`
	Description       string   `json:"description"`
	AgainstDefendants []string `json:"against_defendants,omitempty"`
}

// Defendant returns the defendant with the given short name, if present.
func (p Parties) Defendant(shortName string) (Defendant, bool) {
	for _, d := range p.Defendants {
		if d.ShortName == shortName {
			return d, true
		}
	}
	return Defendant{}, false
}
