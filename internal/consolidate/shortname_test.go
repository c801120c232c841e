package consolidate

import "testing"

func TestDeriveShortName(t *testing.T) {
	tests := []struct {
		canonical string
		want      string
	}{
		{"TD BANK, N.A.", "TD Bank"},
		{"ACME BANK", "Acme Bank"},
		{"EQUIFAX INFORMATION SERVICES, LLC", "Equifax Information Services"},
		{"BARCLAYS BANK DELAWARE", "Barclays Bank Delaware"},
		{"GM FINANCIAL CORP", "GM Financial"},
		{"CAPITAL ONE, N.A.", "Capital One"},
	}
	for _, tt := range tests {
		if got := deriveShortName(tt.canonical); got != tt.want {
			t.Errorf("deriveShortName(%q) = %q, want %q", tt.canonical, got, tt.want)
		}
	}
}
