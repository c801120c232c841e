package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// corporateSuffixes are recognized legal-entity suffixes in canonical
// spelling, longest variants first so greedy trimming works.
var corporateSuffixes = []string{
	"N.A.", "NA", "L.L.C.", "LLC", "L.P.", "LP", "INC.", "INC",
	"CORP.", "CORP", "CO.", "CO", "LTD.", "LTD", "N.V.", "PLC",
}

var suffixCanonical = map[string]string{
	"NA":     "N.A.",
	"LLC":    "LLC",
	"L.L.C.": "LLC",
	"INC":    "INC.",
	"CORP":   "CORP.",
	"CO":     "CO.",
	"LTD":    "LTD.",
	"LP":     "L.P.",
}

// Normalizer maps raw organization names onto canonical legal names. The
// mapping is deterministic: case folding, punctuation cleanup, legal-suffix
// canonicalization, then alias table lookup.
type Normalizer struct {
	aliases map[string]string // folded lookup key -> canonical name
}

// NewNormalizer builds a normalizer from an alias table. Keys are folded;
// both the raw variant and its suffix-stripped form resolve to the
// canonical name.
func NewNormalizer(aliases map[string]string) *Normalizer {
	n := &Normalizer{aliases: make(map[string]string, len(aliases)*2)}
	for raw, canonical := range aliases {
		n.aliases[foldName(raw)] = canonical
		n.aliases[foldName(TrimCorporateSuffix(raw))] = canonical
	}
	return n
}

// Normalize returns the canonical legal name for a raw organization name.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := CleanText(raw)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := n.aliases[foldName(cleaned)]; ok {
		return canonical
	}
	if canonical, ok := n.aliases[foldName(TrimCorporateSuffix(cleaned))]; ok {
		return canonical
	}
	return canonicalizeName(cleaned)
}

// canonicalizeName uppercases and tidies a name that has no alias entry.
func canonicalizeName(name string) string {
	upper := strings.ToUpper(name)
	upper = strings.Trim(upper, " ,;")
	// Canonical suffix spelling: "ACME BANK NA" -> "ACME BANK, N.A."
	for raw, canonical := range suffixCanonical {
		for _, sep := range []string{", ", " "} {
			if strings.HasSuffix(upper, sep+raw) {
				return strings.TrimRight(strings.TrimSuffix(upper, sep+raw), " ,") + ", " + canonical
			}
		}
	}
	return upper
}

// TrimCorporateSuffix drops a trailing legal-entity suffix from a name.
func TrimCorporateSuffix(name string) string {
	trimmed := strings.Trim(name, " ,")
	upper := strings.ToUpper(trimmed)
	for _, suffix := range corporateSuffixes {
		for _, sep := range []string{", ", " "} {
			if strings.HasSuffix(upper, sep+suffix) {
				return strings.Trim(trimmed[:len(trimmed)-len(sep)-len(suffix)], " ,")
			}
		}
	}
	return trimmed
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	markupHintRe = regexp.MustCompile(`<\s*(?:/|!|[a-zA-Z])`)
)

// CleanText collapses whitespace and trims punctuation noise from the
// edges of an extracted fragment.
func CleanText(s string) string {
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " \t\r\n\"'.,;:()")
}

// StripMarkup reduces HTML-ish input to visible plain text. Upstream
// providers occasionally hand over case-management exports with markup in
// them; pattern libraries only ever see plain text. Non-markup input is
// returned unchanged apart from newline normalization.
func StripMarkup(text string) string {
	if !markupHintRe.MatchString(text) {
		return strings.ReplaceAll(text, "\r\n", "\n")
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return strings.ReplaceAll(text, "\r\n", "\n")
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br", "p", "div", "li", "tr", "h1", "h2", "h3", "h4":
				buf.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Tidy line-by-line so labeled patterns still anchor on line starts.
	lines := strings.Split(buf.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// foldName produces the alias lookup key: lowercase, punctuation stripped,
// single spaces.
func foldName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '-':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
