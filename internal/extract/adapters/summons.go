package adapters

import (
	"regexp"
	"strings"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// SummonsLibrary reads court papers (summons, filed complaints): the
// caption names the parties, the heading names the court, and the docket
// number is usually explicit.
type SummonsLibrary struct{}

var (
	captionPlaintiffRe  = regexp.MustCompile(`(?s)(?:^|\n)\s*([A-Z][A-Za-z .,'-]+?),?\s*\n\s*Plaintiffs?\s*[,.]`)
	captionDefendantsRe = regexp.MustCompile(`(?s)\n\s*vs?\.?\s*\n(.+?)\n\s*Defendants?\s*[,.]`)
	titleLineRe         = regexp.MustCompile(`(?m)^\s*((?:SUMMONS|COMPLAINT)[A-Z ,]*)\s*$`)
)

// NewSummonsLibrary creates the summons/complaint pattern library.
func NewSummonsLibrary() *SummonsLibrary {
	return &SummonsLibrary{}
}

func (l *SummonsLibrary) Name() string                     { return "summons" }
func (l *SummonsLibrary) DocumentType() model.DocumentType { return model.DocTypeSummons }

// Extract parses the caption. Caption defendants are structured data and
// carry confidence 1.0; they still pass through classification like every
// other candidate.
func (l *SummonsLibrary) Extract(text string) Result {
	res := newResult()

	if court, conf := extractCourt(text); court != nil {
		res.Court = court
		res.setConfidence(model.FieldCourt, conf)
	}
	if number, conf := extractCaseNumber(text); number != "" {
		res.CaseNumber = number
		res.setConfidence(model.FieldCaseNumber, conf)
	}
	if m := titleLineRe.FindStringSubmatch(text); m != nil {
		res.Title = strings.TrimSpace(m[1])
		res.setConfidence(model.FieldTitle, 0.9)
	}

	if m := captionPlaintiffRe.FindStringSubmatch(text); m != nil {
		res.Plaintiff = &model.PlaintiffInfo{Name: strings.TrimSpace(m[1])}
		res.setConfidence(model.FieldPlaintiff, 0.9)
	}

	if m := captionDefendantsRe.FindStringSubmatch(text); m != nil {
		res.Parties = captionParties(m[1])
		if len(res.Parties) > 0 {
			res.setConfidence(model.FieldParties, 1.0)
		}
	}

	if dates := extractDates(text, ""); len(dates) > 0 {
		res.Dates = dates
		res.setConfidence(model.FieldDates, maxDateConfidence(dates))
	}
	return res
}

// captionParties splits a caption defendant block on the separators court
// captions actually use: semicolons, line breaks, and "and".
func captionParties(block string) []Candidate {
	block = regexp.MustCompile(`(?i)[;,]?\s+and\s+`).ReplaceAllString(block, ";")
	block = strings.ReplaceAll(block, "\n", ";")

	var candidates []Candidate
	for _, part := range strings.Split(block, ";") {
		name := trimSentencePeriod(strings.Trim(part, " ,"))
		if !plausibleOrgName(name) {
			continue
		}
		candidates = append(candidates, Candidate{
			RawName:    name,
			Context:    "named as defendant in case caption",
			Confidence: 1.0,
			RoleCue:    model.RoleFurnisher,
		})
	}
	return candidates
}
