package adapters

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// orgGroup captures an organization name: capitalized words, a few
// connectives, and an optional legal suffix. RE2 has no lookaround, so
// implausible captures (dates, case numbers) are rejected afterwards by
// plausibleOrgName.
const orgGroup = `([A-Z][A-Za-z&.'-]*(?: (?:[A-Z][A-Za-z&.'-]*|of|the|and|&)){0,5}(?:,? (?:N\.A\.|L\.L\.C\.|LLC|Inc\.|Inc|Corp\.|Corp|Co\.|Ltd\.|L\.P\.|USA))?)`

// narrativePattern pairs a compiled party pattern with the confidence and
// role cue its phrasing implies.
type narrativePattern struct {
	re         *regexp.Regexp
	confidence float64
	cue        model.RoleHint
}

// narrative compiles an expression with {ORG} standing for the
// organization capture group.
func narrative(expr string, confidence float64, cue model.RoleHint) narrativePattern {
	return narrativePattern{
		re:         regexp.MustCompile(strings.Replace(expr, "{ORG}", orgGroup, 1)),
		confidence: confidence,
		cue:        cue,
	}
}

var (
	sentenceEndRe = regexp.MustCompile(`[.!?]\s`)

	caseNumberRe        = regexp.MustCompile(`\b\d:\d{2}-[a-z]{2}-\d{2,5}(?:-[A-Za-z]{2,4})?\b`)
	labeledCaseNumberRe = regexp.MustCompile(`(?im)^\s*(?:case\s*(?:no\.?|number)|civil\s+action\s+no\.?)\s*[:.]?\s*(\S.*?)\s*$`)

	districtCourtRe = regexp.MustCompile(`(?im)^.*DISTRICT COURT.*$`)
	districtRe      = regexp.MustCompile(`(?im)(?:FOR THE\s+)?((?:EASTERN|WESTERN|NORTHERN|SOUTHERN|MIDDLE|CENTRAL)?\s*DISTRICT OF\s+[A-Z][A-Za-z ]+?)\s*$`)

	monthDateRe   = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(\d{4})\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	monthYearRe   = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})\b`)

	bulletRe    = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
	statePareRe = regexp.MustCompile(`(?i)\(\s*(?:an?\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:corporation|company|bank|limited liability company|LLC)\s*\)`)
	headerRe    = regexp.MustCompile(`^[A-Z][A-Z /&-]*:?\s*$`)
)

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

// splitSentences breaks prose into sentences with a simple terminator
// heuristic; short fragments are kept because legal text is dense with
// abbreviations.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")
	var sentences []string
	last := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		sentence := strings.TrimSpace(text[last:loc[1]])
		if len(sentence) >= 8 {
			sentences = append(sentences, sentence)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); len(rest) >= 8 {
		sentences = append(sentences, rest)
	}
	return sentences
}

// scanNarrative applies pattern libraries sentence by sentence, in order.
// Every pattern may contribute; duplicates collapse later during
// normalization.
func scanNarrative(text string, patterns []narrativePattern) []Candidate {
	var candidates []Candidate
	for _, sentence := range splitSentences(text) {
		for _, p := range patterns {
			for _, match := range p.re.FindAllStringSubmatch(sentence, -1) {
				name := trimSentencePeriod(strings.Trim(match[1], " ,;:"))
				if !plausibleOrgName(name) {
					continue
				}
				candidates = append(candidates, Candidate{
					RawName:    name,
					Context:    sentence,
					Confidence: p.confidence,
					RoleCue:    p.cue,
				})
			}
		}
	}
	return candidates
}

// legal suffixes that legitimately end in a period.
var dottedSuffixes = map[string]bool{
	"Inc.": true, "Corp.": true, "Co.": true, "Ltd.": true,
}

// trimSentencePeriod drops a sentence-final period that the organization
// group swallowed, while leaving dotted legal suffixes ("N.A.", "Inc.")
// intact.
func trimSentencePeriod(name string) string {
	if !strings.HasSuffix(name, ".") {
		return name
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	last := fields[len(fields)-1]
	if dottedSuffixes[last] || strings.Count(last, ".") > 1 {
		return name
	}
	return strings.TrimSuffix(name, ".")
}

// plausibleOrgName guards party capture against dates, case numbers, and
// other non-name fragments that the broad organization group can swallow.
// sentence starters the organization group can swallow when a pattern
// anchors on a following noun ("The account", "Your report").
var orgStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"we": true, "you": true, "your": true, "our": true, "it": true,
}

func plausibleOrgName(name string) bool {
	if len(name) < 2 {
		return false
	}
	if orgStopwords[strings.ToLower(name)] {
		return false
	}
	if caseNumberRe.MatchString(name) {
		return false
	}
	if monthDateRe.MatchString(name) || numericDateRe.MatchString(name) || monthYearRe.MatchString(name) {
		return false
	}
	if _, isMonth := monthNumbers[strings.ToLower(strings.Fields(name)[0])]; isMonth {
		return false
	}
	hasLetter := false
	for _, r := range name {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

// labeledValue finds "Label: value" on its own line. Labels are matched
// case-insensitively; the first hit wins.
func labeledValue(text string, labels ...string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		for _, label := range labels {
			prefix := strings.ToLower(label)
			if !strings.HasPrefix(lower, prefix) {
				continue
			}
			rest := trimmed[len(prefix):]
			rest = strings.TrimLeft(rest, " \t")
			if !strings.HasPrefix(rest, ":") {
				continue
			}
			value := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			if value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// sectionLines returns the lines of an explicitly labeled block, e.g.
// everything under "DEFENDANTS:" until a blank line or the next header.
func sectionLines(text, header string) []string {
	lines := strings.Split(text, "\n")
	start := -1
	headerLower := strings.ToLower(header)
	for i, line := range lines {
		trimmed := strings.ToLower(strings.TrimRight(strings.TrimSpace(line), ":"))
		if trimmed == headerLower {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}
	var block []string
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		if headerRe.MatchString(trimmed) {
			break
		}
		block = append(block, bulletRe.ReplaceAllString(trimmed, ""))
	}
	return block
}

// sectionCandidates turns the lines of a structured party block into
// candidates. Structured sections carry confidence 1.0 and an optional
// "(Delaware corporation)" style incorporation note.
func sectionCandidates(lines []string, cue model.RoleHint) []Candidate {
	var candidates []Candidate
	for _, line := range lines {
		state := ""
		if m := statePareRe.FindStringSubmatch(line); m != nil {
			state = m[1]
		}
		name := strings.TrimSpace(statePareRe.ReplaceAllString(line, ""))
		name = strings.Trim(name, " ,;")
		if !plausibleOrgName(name) {
			continue
		}
		candidates = append(candidates, Candidate{
			RawName:              name,
			Context:              line,
			Confidence:           1.0,
			RoleCue:              cue,
			StateOfIncorporation: state,
		})
	}
	return candidates
}

// extractCaseNumber prefers an explicitly labeled case number over a bare
// docket-format match in prose.
func extractCaseNumber(text string) (string, float64) {
	if m := labeledCaseNumberRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), 1.0
	}
	if m := caseNumberRe.FindString(text); m != "" {
		return m, 0.8
	}
	return "", 0
}

// extractCourt recognizes a court from labeled fields or a caption
// heading ("UNITED STATES DISTRICT COURT / DISTRICT OF ...").
func extractCourt(text string) (*model.CourtRef, float64) {
	name, nameOK := labeledValue(text, "court")
	district, districtOK := labeledValue(text, "district", "court district")
	if nameOK || districtOK {
		return &model.CourtRef{Name: name, District: district}, 1.0
	}

	if m := districtCourtRe.FindString(text); m != "" {
		ref := &model.CourtRef{Name: strings.TrimSpace(m)}
		if d := districtRe.FindStringSubmatch(text); d != nil {
			ref.District = strings.TrimSpace(d[1])
		}
		return ref, 0.8
	}
	return nil, 0
}

// extractDates collects full and partial dates. Partial dates keep only
// their raw form; they are never coerced into a fabricated day.
func extractDates(text, label string) []model.DatedEvent {
	var events []model.DatedEvent
	seen := make(map[string]bool)

	add := func(raw, normalized string, confidence float64) {
		key := strings.ToLower(raw)
		if seen[key] {
			return
		}
		seen[key] = true
		events = append(events, model.DatedEvent{
			Raw:        raw,
			Date:       normalized,
			Label:      label,
			Confidence: confidence,
		})
	}

	for _, m := range monthDateRe.FindAllStringSubmatch(text, -1) {
		month := monthNumbers[strings.ToLower(m[1])]
		add(m[0], fmt.Sprintf("%s-%02d-%s", m[3], int(month), pad2(m[2])), 0.9)
	}
	for _, m := range numericDateRe.FindAllStringSubmatch(text, -1) {
		add(m[0], m[3]+"-"+pad2(m[1])+"-"+pad2(m[2]), 0.8)
	}
	for _, m := range monthYearRe.FindAllStringSubmatch(text, -1) {
		if seenFullDate(events, m[0]) {
			continue
		}
		add(m[0], "", 0.4)
	}
	return events
}

func seenFullDate(events []model.DatedEvent, partial string) bool {
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Raw), strings.ToLower(partial[:strings.Index(partial, " ")])) && e.Date != "" {
			return true
		}
	}
	return false
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
