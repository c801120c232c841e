package model

// ClaimTemplate is one entry of the static legal-claims catalog. Causes of
// action are synthesized from this catalog and the finalized defendant
// roster, never from narrative text. AppliesTo selects which defendant
// types the count is pleaded against.
type ClaimTemplate struct {
	Title       string               `yaml:"title"`
	AppliesTo   DefendantType        `yaml:"applies_to"`
	Allegations []AllegationTemplate `yaml:"allegations"`
}

// AllegationTemplate is one cited allegation inside a claim template.
type AllegationTemplate struct {
	Citation    string `yaml:"citation"`
	Description string `yaml:"description"`
}

// DefaultClaims returns the shipped federal FCRA claims catalog.
// Per-jurisdiction catalogs replace this list through configuration.
func DefaultClaims() []ClaimTemplate {
	return []ClaimTemplate{
		{
			Title:     "VIOLATION OF THE FCRA, 15 U.S.C. § 1681e(b)",
			AppliesTo: DefendantCRA,
			Allegations: []AllegationTemplate{
				{
					Citation:    "15 U.S.C. § 1681e(b)",
					Description: "Defendant failed to follow reasonable procedures to assure maximum possible accuracy of the information concerning Plaintiff in the consumer reports it prepared.",
				},
			},
		},
		{
			Title:     "VIOLATION OF THE FCRA, 15 U.S.C. § 1681i",
			AppliesTo: DefendantCRA,
			Allegations: []AllegationTemplate{
				{
					Citation:    "15 U.S.C. § 1681i(a)(1)",
					Description: "Defendant failed to conduct a reasonable reinvestigation of the disputed information after receiving notice of Plaintiff's dispute.",
				},
				{
					Citation:    "15 U.S.C. § 1681i(a)(5)",
					Description: "Defendant failed to delete or modify information found to be inaccurate or unverifiable upon reinvestigation.",
				},
			},
		},
		{
			Title:     "VIOLATION OF THE FCRA, 15 U.S.C. § 1681s-2(b)",
			AppliesTo: DefendantFurnisher,
			Allegations: []AllegationTemplate{
				{
					Citation:    "15 U.S.C. § 1681s-2(b)(1)(A)",
					Description: "Defendant failed to conduct a reasonable investigation with respect to the disputed information after receiving notice of the dispute from a consumer reporting agency.",
				},
				{
					Citation:    "15 U.S.C. § 1681s-2(b)(1)(E)",
					Description: "Defendant continued to furnish inaccurate information that it could not verify, and failed to modify, delete, or permanently block the reporting of that information.",
				},
			},
		},
	}
}
