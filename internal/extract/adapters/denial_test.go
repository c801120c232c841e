package adapters

import (
	"testing"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

const denialText = `Big Box Bank
123 Main Street
New York, NY 10001

Dear Eman Youssef,

We regret to inform you that your application for a credit card was denied by Big Box Bank. This decision was based on information obtained from Trans Union. The denial was issued on March 5, 2024.
`

func TestDenialLibrary_Letter(t *testing.T) {
	lib := NewDenialLibrary()
	res := lib.Extract(denialText)

	if len(res.Parties) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(res.Parties), res.Parties)
	}

	denier := res.Parties[0]
	if denier.RawName != "Big Box Bank" {
		t.Errorf("expected denier candidate, got %q", denier.RawName)
	}
	if denier.RoleCue != model.RoleDecisionMaker {
		t.Errorf("denier cue = %v, want decision maker", denier.RoleCue)
	}

	source := res.Parties[1]
	if source.RawName != "Trans Union" {
		t.Errorf("expected report source candidate, got %q", source.RawName)
	}
	if source.RoleCue != model.RoleUnknown {
		t.Errorf("report source cue = %v, want unknown", source.RoleCue)
	}

	// The bureau mention is the strongest pattern in the letter.
	if res.Confidences[model.FieldParties] != 0.75 {
		t.Errorf("parties confidence = %v, want 0.75", res.Confidences[model.FieldParties])
	}

	if res.Plaintiff == nil || res.Plaintiff.Name != "Eman Youssef" {
		t.Fatalf("expected addressee from salutation, got %+v", res.Plaintiff)
	}
	if res.Confidences[model.FieldPlaintiff] != 0.5 {
		t.Errorf("salutation confidence = %v, want 0.5", res.Confidences[model.FieldPlaintiff])
	}

	if len(res.Dates) == 0 || res.Dates[0].Date != "2024-03-05" {
		t.Errorf("expected denial date, got %+v", res.Dates)
	}
}

func TestDenialLibrary_NoCaseIdentity(t *testing.T) {
	lib := NewDenialLibrary()
	res := lib.Extract(denialText)

	if res.CaseNumber != "" || res.Court != nil || res.Title != "" {
		t.Errorf("denial letters must not contribute case identity, got number=%q court=%+v title=%q",
			res.CaseNumber, res.Court, res.Title)
	}
}
