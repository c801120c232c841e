package classify

import (
	"testing"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

func candidate(name string, role model.RoleHint, context string, confidence float64) model.CandidateParty {
	return model.CandidateParty{
		RawName:        name,
		NormalizedName: name,
		Role:           role,
		Context:        context,
		Confidence:     confidence,
	}
}

func TestClassify_CRANameWins(t *testing.T) {
	c := New(nil)
	// Even adverse-action context cannot demote a bureau: CRA identity is
	// a closed-set name match and is checked first.
	p := candidate("EQUIFAX INFORMATION SERVICES, LLC", model.RoleUnknown,
		"decision was based on information obtained from Equifax", 0.75)

	if got := c.Classify(p, DocumentContext{}); got != model.RoleCRA {
		t.Errorf("Classify = %v, want cra", got)
	}
}

func TestClassify_FurnisherContext(t *testing.T) {
	c := New(nil)
	p := candidate("TD BANK, N.A.", model.RoleUnknown,
		"Client disputed the account with TD Bank", 0.9)

	if got := c.Classify(p, DocumentContext{}); got != model.RoleFurnisher {
		t.Errorf("Classify = %v, want furnisher", got)
	}
}

func TestClassify_DecisionMaker(t *testing.T) {
	c := New(nil)
	p := candidate("BIG BOX BANK", model.RoleDecisionMaker,
		"your application was denied by Big Box Bank", 0.7)

	if got := c.Classify(p, DocumentContext{FCRATriggered: true}); got != model.RoleDecisionMaker {
		t.Errorf("Classify = %v, want decision_maker", got)
	}
}

func TestClassify_StructuredListingStandsAlone(t *testing.T) {
	c := New(nil)
	// A defendants-block listing carries confidence 1.0 and needs no
	// document-level trigger to count as a furnisher.
	p := candidate("ACME FINANCE, CORP.", model.RoleFurnisher,
		"listed under DEFENDANTS", 1.0)

	if got := c.Classify(p, DocumentContext{FCRATriggered: false}); got != model.RoleFurnisher {
		t.Errorf("Classify = %v, want furnisher", got)
	}
}

func TestClassify_PatternCueNeedsTrigger(t *testing.T) {
	c := New(nil)
	// A weak tradeline cue in a document with no FCRA language stays
	// unknown rather than inventing a defendant.
	p := candidate("ACME FINANCE, CORP.", model.RoleFurnisher,
		"Acme Finance tradeline", 0.5)

	if got := c.Classify(p, DocumentContext{FCRATriggered: false}); got != model.RoleUnknown {
		t.Errorf("Classify = %v, want unknown", got)
	}
	if got := c.Classify(p, DocumentContext{FCRATriggered: true}); got != model.RoleFurnisher {
		t.Errorf("Classify with trigger = %v, want furnisher", got)
	}
}

func TestMatchCRA(t *testing.T) {
	c := New(nil)

	entry, ok := c.MatchCRA("Equifax")
	if !ok || entry.ShortName != "Equifax" {
		t.Fatalf("MatchCRA(Equifax) = %+v, %v", entry, ok)
	}
	if entry.StateOfIncorporation != "Georgia" {
		t.Errorf("Equifax state = %q", entry.StateOfIncorporation)
	}

	// Contains fallback: a longer raw name still resolves.
	if _, ok := c.MatchCRA("TRANS UNION LLC, a foreign company"); !ok {
		t.Error("expected contains match for Trans Union")
	}
	if _, ok := c.MatchCRA("TransUnion"); !ok {
		t.Error("expected alternate spelling match")
	}

	if _, ok := c.MatchCRA("TD BANK, N.A."); ok {
		t.Error("a bank must never match the bureau set")
	}
	if _, ok := c.MatchCRA(""); ok {
		t.Error("empty name must not match")
	}
}

func TestMatchCRA_AmbiguousNameResolvesInConfigOrder(t *testing.T) {
	c := New(nil)

	// A reseller name can carry two bureaus' terms at once; the first
	// configured bureau that matches must win, every time.
	const name = "EXPERIAN TRANS UNION RESELLER SERVICES"

	first, ok := c.MatchCRA(name)
	if !ok {
		t.Fatalf("MatchCRA(%q) did not match", name)
	}
	if first.ShortName != "Experian" {
		t.Errorf("MatchCRA(%q) = %q, want the earlier configured bureau", name, first.ShortName)
	}
	for i := 0; i < 50; i++ {
		entry, _ := c.MatchCRA(name)
		if entry.Name != first.Name {
			t.Fatalf("run %d resolved %q, first run resolved %q", i, entry.Name, first.Name)
		}
	}
}

func TestHasFCRATrigger(t *testing.T) {
	c := New(nil)

	tests := []struct {
		text string
		want bool
	}{
		{"This action arises under the Fair Credit Reporting Act, 15 U.S.C. § 1681.", true},
		{"Client disputed the account in writing.", true},
		{"The report was pulled from Experian.", true},
		{"hello world", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.HasFCRATrigger(tt.text); got != tt.want {
			t.Errorf("HasFCRATrigger(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
