// Package classify implements the FCRA defendant-eligibility policy.
//
// The crux: an organization is a valid FCRA defendant only when it is a
// furnisher of information or a consumer reporting agency. An entity that
// merely used a credit report to make a lending decision is a credit
// decision maker and is excluded, no matter how prominently a denial
// letter names it. That asymmetry lives here, as named and independently
// testable rules, not inside extraction regexes.
package classify

import (
	"strings"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// DocumentContext carries the document-level cues a classification may
// depend on beyond the candidate's own snippet.
type DocumentContext struct {
	Type          model.DocumentType
	Text          string
	FCRATriggered bool
}

// Classifier assigns legal roles to candidate parties. It is pure: no
// state beyond the read-only configuration it was built from.
type Classifier struct {
	craByMatch map[string]model.CRAEntry
	craEntries []model.CRAEntry
	cues       model.CueConfig
}

// New builds a classifier from configuration. Nil falls back to defaults.
func New(cfg *model.Config) *Classifier {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	c := &Classifier{
		craByMatch: make(map[string]model.CRAEntry),
		craEntries: cfg.CRAs,
		cues:       cfg.Cues,
	}
	for _, entry := range cfg.CRAs {
		c.craByMatch[strings.ToLower(entry.Name)] = entry
		for _, m := range entry.Match {
			c.craByMatch[strings.ToLower(m)] = entry
		}
	}
	return c
}

// Classify decides the legal role of a candidate party.
//
// Order matters: CRA identity is a closed-set name match and wins outright;
// furnisher cues beat decision-maker cues because an entity that both
// denied credit and furnished the disputed data is liable as a furnisher.
func (c *Classifier) Classify(p model.CandidateParty, dctx DocumentContext) model.RoleHint {
	if _, ok := c.MatchCRA(p.RawName); ok {
		return model.RoleCRA
	}
	if _, ok := c.MatchCRA(p.NormalizedName); ok {
		return model.RoleCRA
	}
	if p.Role == model.RolePlaintiff {
		return model.RolePlaintiff
	}
	if c.MatchesFurnisherContext(p.Context) {
		return model.RoleFurnisher
	}
	// A pattern-level furnisher cue (e.g. a tradeline listing) counts when
	// the document itself is FCRA-flavored. Structured listings (an
	// explicit defendants block or a case caption, confidence 1.0) stand
	// on their own.
	if p.Role == model.RoleFurnisher && (dctx.FCRATriggered || p.Confidence >= 1.0) {
		return model.RoleFurnisher
	}
	if c.MatchesDecisionMakerContext(p.Context) || p.Role == model.RoleDecisionMaker {
		return model.RoleDecisionMaker
	}
	return model.RoleUnknown
}

// MatchCRA checks a name against the closed set of known national bureaus
// and returns the configured entry on a hit.
func (c *Classifier) MatchCRA(name string) (model.CRAEntry, bool) {
	folded := strings.ToLower(strings.TrimSpace(name))
	if folded == "" {
		return model.CRAEntry{}, false
	}
	if entry, ok := c.craByMatch[folded]; ok {
		return entry, true
	}
	// Substring fallback walks the configured order so a name containing
	// two bureaus' terms always resolves to the same entry.
	for _, entry := range c.craEntries {
		if strings.Contains(folded, strings.ToLower(entry.Name)) {
			return entry, true
		}
		for _, m := range entry.Match {
			if strings.Contains(folded, strings.ToLower(m)) {
				return entry, true
			}
		}
	}
	return model.CRAEntry{}, false
}

// CRAs returns the configured bureau entries in configuration order.
func (c *Classifier) CRAs() []model.CRAEntry {
	return c.craEntries
}

// MatchesFurnisherContext reports whether a context snippet carries
// furnisher language: the entity reported, furnished, or ignored a dispute
// of account data.
func (c *Classifier) MatchesFurnisherContext(snippet string) bool {
	return containsAnyFold(snippet, c.cues.Furnisher)
}

// MatchesDecisionMakerContext reports whether a context snippet carries
// adverse-action language: the entity used a report to deny or decline.
func (c *Classifier) MatchesDecisionMakerContext(snippet string) bool {
	return containsAnyFold(snippet, c.cues.DecisionMaker)
}

// HasFCRATrigger reports whether document text shows any FCRA trigger cue:
// statute mentions, credit-report language, dispute language, or a known
// bureau name.
func (c *Classifier) HasFCRATrigger(text string) bool {
	if containsAnyFold(text, c.cues.FCRATriggers) {
		return true
	}
	folded := strings.ToLower(text)
	for _, entry := range c.craEntries {
		for _, m := range entry.Match {
			if strings.Contains(folded, strings.ToLower(m)) {
				return true
			}
		}
	}
	return false
}

func containsAnyFold(s string, cues []string) bool {
	if s == "" {
		return false
	}
	folded := strings.ToLower(s)
	for _, cue := range cues {
		if cue != "" && strings.Contains(folded, strings.ToLower(cue)) {
			return true
		}
	}
	return false
}
