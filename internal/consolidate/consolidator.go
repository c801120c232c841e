// Package consolidate merges per-document extraction results into one
// draft case record. The merge is deterministic: documents are processed
// in fixed type-priority order, scalars are first-seen-wins with recorded
// conflicts, and nothing depends on extraction completion order.
package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/classify"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/score"
)

// recordNamespace seeds deterministic record IDs: the same case id always
// yields the same UUID, keeping reruns byte-identical.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("satori-tm/case-record"))

// FatalError aborts consolidation: the case cannot produce a complaint.
// Missing names the absent element ("defendants" or "plaintiff").
type FatalError struct {
	CaseID  string
	Missing string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("case %s cannot be consolidated: no %s identified", e.CaseID, e.Missing)
}

// Consolidator merges extraction results for one case.
type Consolidator struct {
	cfg        *model.Config
	classifier *classify.Classifier
	scorer     *score.Scorer
}

// New builds a consolidator. Nil arguments fall back to defaults.
func New(cfg *model.Config, classifier *classify.Classifier) *Consolidator {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if classifier == nil {
		classifier = classify.New(cfg)
	}
	return &Consolidator{cfg: cfg, classifier: classifier, scorer: score.NewScorer()}
}

// Consolidate merges the extraction results into a draft record. Missing
// optional data never fails; the only fatal outcomes are an empty
// defendant roster after classification and an unidentifiable plaintiff.
func (c *Consolidator) Consolidate(caseID string, results []model.ExtractionResult) (*model.CaseRecord, []score.Signal, error) {
	ordered := make([]model.ExtractionResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DocumentType.Priority() != ordered[j].DocumentType.Priority() {
			return ordered[i].DocumentType.Priority() < ordered[j].DocumentType.Priority()
		}
		return ordered[i].SourceDocumentID < ordered[j].SourceDocumentID
	})

	warnings := []string{}

	info := c.mergeCaseInformation(ordered, &warnings)
	plaintiff, err := c.mergePlaintiff(caseID, ordered, &warnings)
	if err != nil {
		return nil, nil, err
	}
	defendants, err := c.mergeDefendants(caseID, ordered, plaintiff.Name, &warnings)
	if err != nil {
		return nil, nil, err
	}

	rec := &model.CaseRecord{
		RecordID:        uuid.NewSHA1(recordNamespace, []byte(caseID)).String(),
		CaseID:          caseID,
		CaseInformation: info,
		Parties: model.Parties{
			Plaintiff:  plaintiff,
			Defendants: defendants,
		},
		CausesOfAction: c.synthesizeCauses(defendants),
		Warnings:       warnings,
	}

	confidence, signals := c.scorer.Calculate(rec, ordered)
	rec.ConfidenceScore = confidence
	return rec, signals, nil
}

// scalarField tracks first-seen-wins resolution for one scalar.
type scalarField struct {
	name   string
	value  string
	source string
}

func (f *scalarField) observe(value, source string, warnings *[]string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if f.value == "" {
		f.value = value
		f.source = source
		return
	}
	if !strings.EqualFold(f.value, value) {
		*warnings = append(*warnings, fmt.Sprintf(
			"conflicting %s: keeping %q (from %s), ignoring %q (from %s)",
			f.name, f.value, f.source, value, source))
	}
}

func (c *Consolidator) mergeCaseInformation(ordered []model.ExtractionResult, warnings *[]string) model.CaseInformation {
	caseNumber := scalarField{name: "case_number"}
	courtName := scalarField{name: "court_name"}
	district := scalarField{name: "district"}
	title := scalarField{name: "document_title"}

	for _, r := range ordered {
		caseNumber.observe(r.CandidateCaseNumber, r.SourceDocumentID, warnings)
		if r.CandidateCourt != nil {
			courtName.observe(r.CandidateCourt.Name, r.SourceDocumentID, warnings)
			district.observe(r.CandidateCourt.District, r.SourceDocumentID, warnings)
		}
		title.observe(r.CandidateTitle, r.SourceDocumentID, warnings)
	}

	if title.value == "" && c.cfg.Policy.DefaultDocumentTitle != "" {
		title.value = c.cfg.Policy.DefaultDocumentTitle
		*warnings = append(*warnings, "document_title not found in any source; applied configured default")
	}

	return model.CaseInformation{
		CourtName:     courtName.value,
		District:      district.value,
		CaseNumber:    caseNumber.value,
		DocumentTitle: title.value,
	}
}

func (c *Consolidator) mergePlaintiff(caseID string, ordered []model.ExtractionResult, warnings *[]string) (model.Plaintiff, error) {
	name := scalarField{name: "plaintiff_name"}
	address := scalarField{name: "plaintiff_address"}
	residency := scalarField{name: "plaintiff_residency"}
	status := scalarField{name: "plaintiff_consumer_status"}

	for _, r := range ordered {
		if r.CandidatePlaintiff == nil {
			continue
		}
		name.observe(r.CandidatePlaintiff.Name, r.SourceDocumentID, warnings)
		address.observe(r.CandidatePlaintiff.Address, r.SourceDocumentID, warnings)
		residency.observe(r.CandidatePlaintiff.Residency, r.SourceDocumentID, warnings)
		status.observe(r.CandidatePlaintiff.ConsumerStatus, r.SourceDocumentID, warnings)
	}

	if name.value == "" {
		return model.Plaintiff{}, &FatalError{CaseID: caseID, Missing: "plaintiff"}
	}
	if status.value == "" && c.cfg.Policy.DefaultConsumerStatus != "" {
		status.value = c.cfg.Policy.DefaultConsumerStatus
		*warnings = append(*warnings, "plaintiff consumer_status not found; applied configured default")
	}

	return model.Plaintiff{
		Name:           name.value,
		Address:        address.value,
		Residency:      residency.value,
		ConsumerStatus: status.value,
	}, nil
}

// mergedDefendant accumulates mentions of one entity across documents.
type mergedDefendant struct {
	name  string
	dtype model.DefendantType
	state string
}

func (c *Consolidator) mergeDefendants(caseID string, ordered []model.ExtractionResult, plaintiffName string, warnings *[]string) ([]model.Defendant, error) {
	var order []string
	merged := make(map[string]*mergedDefendant)
	excluded := make(map[string]bool)
	plaintiffFold := strings.ToLower(strings.TrimSpace(plaintiffName))
	triggered := false

	for _, r := range ordered {
		if r.FCRATriggered {
			triggered = true
		}
		for _, p := range r.CandidateParties {
			if strings.ToLower(strings.TrimSpace(p.NormalizedName)) == plaintiffFold ||
				strings.ToLower(strings.TrimSpace(p.RawName)) == plaintiffFold {
				continue
			}
			switch p.Role {
			case model.RoleCRA, model.RoleFurnisher:
				c.addDefendant(merged, &order, p)
			case model.RoleDecisionMaker:
				if !excluded[p.NormalizedName] {
					excluded[p.NormalizedName] = true
					*warnings = append(*warnings, fmt.Sprintf(
						"excluded credit decision maker %q (seen in %s): not a furnisher or consumer reporting agency",
						p.NormalizedName, r.SourceDocumentID))
				}
			default:
				if !excluded[p.NormalizedName] {
					excluded[p.NormalizedName] = true
					*warnings = append(*warnings, fmt.Sprintf(
						"ignored unclassified party %q (seen in %s)", p.NormalizedName, r.SourceDocumentID))
				}
			}
		}
	}

	if triggered && c.cfg.Policy.AddNationalCRAsOnTrigger {
		added := c.addConfiguredCRAs(merged, &order)
		if len(added) > 0 {
			*warnings = append(*warnings, fmt.Sprintf(
				"policy add_national_cras_on_trigger: added %s as defendants on FCRA trigger language",
				strings.Join(added, ", ")))
		}
	}

	if len(order) == 0 {
		return nil, &FatalError{CaseID: caseID, Missing: "defendants"}
	}

	return c.assignShortNames(order, merged, warnings), nil
}

func (c *Consolidator) addDefendant(merged map[string]*mergedDefendant, order *[]string, p model.CandidateParty) {
	dtype := model.DefendantFurnisher
	name := p.NormalizedName
	state := p.StateOfIncorporation

	if entry, ok := c.classifier.MatchCRA(p.NormalizedName); ok {
		dtype = model.DefendantCRA
		name = entry.Name
		if state == "" {
			state = entry.StateOfIncorporation
		}
	}

	if existing, ok := merged[name]; ok {
		// CRA identity is a closed-set name match and outranks any
		// contextual furnisher reading of the same entity.
		if dtype == model.DefendantCRA {
			existing.dtype = model.DefendantCRA
		}
		if existing.state == "" {
			existing.state = state
		}
		return
	}
	merged[name] = &mergedDefendant{name: name, dtype: dtype, state: state}
	*order = append(*order, name)
}

func (c *Consolidator) addConfiguredCRAs(merged map[string]*mergedDefendant, order *[]string) []string {
	var added []string
	for _, entry := range c.classifier.CRAs() {
		if _, ok := merged[entry.Name]; ok {
			continue
		}
		merged[entry.Name] = &mergedDefendant{
			name:  entry.Name,
			dtype: model.DefendantCRA,
			state: entry.StateOfIncorporation,
		}
		*order = append(*order, entry.Name)
		added = append(added, entry.Name)
	}
	return added
}

// assignShortNames derives the unique join keys. Collisions get a
// deterministic ordinal suffix based on roster position, never on
// anything run-dependent.
func (c *Consolidator) assignShortNames(order []string, merged map[string]*mergedDefendant, warnings *[]string) []model.Defendant {
	taken := make(map[string]int)
	defendants := make([]model.Defendant, 0, len(order))

	for _, name := range order {
		d := merged[name]
		short := c.cfg.ShortNames[d.name]
		if short == "" {
			short = deriveShortName(d.name)
		}
		if short == "" {
			short = deriveShortName(d.name + " Defendant")
		}
		if n, ok := taken[short]; ok {
			base := short
			for {
				n++
				short = fmt.Sprintf("%s %d", base, n)
				if _, used := taken[short]; !used {
					break
				}
			}
			taken[base] = n
			taken[short] = 1
			*warnings = append(*warnings, fmt.Sprintf(
				"short_name collision: %q already used; %q assigned %q", base, d.name, short))
		} else {
			taken[short] = 1
		}

		status := c.businessStatus(d.name)
		defendants = append(defendants, model.Defendant{
			Name:                 d.name,
			ShortName:            short,
			Type:                 d.dtype,
			StateOfIncorporation: d.state,
			BusinessStatus:       status,
		})
	}
	return defendants
}

func (c *Consolidator) businessStatus(name string) string {
	if entry, ok := c.classifier.MatchCRA(name); ok {
		return entry.BusinessStatus
	}
	return ""
}

// synthesizeCauses builds the numbered counts from the static claims
// catalog and the finalized roster. Counts are never extracted from
// narrative text; the catalog is the legal source of truth.
func (c *Consolidator) synthesizeCauses(defendants []model.Defendant) []model.CauseOfAction {
	causes := []model.CauseOfAction{}
	count := 0
	for _, tpl := range c.cfg.Claims {
		var against []string
		for _, d := range defendants {
			if d.Type == tpl.AppliesTo {
				against = append(against, d.ShortName)
			}
		}
		if len(against) == 0 {
			continue
		}
		count++
		allegations := make([]model.Allegation, 0, len(tpl.Allegations))
		for _, a := range tpl.Allegations {
			allegations = append(allegations, model.Allegation{
				Citation:    a.Citation,
				Description: a.Description,
			})
		}
		causes = append(causes, model.CauseOfAction{
			CountNumber:       count,
			Title:             tpl.Title,
			AgainstDefendants: against,
			Allegations:       allegations,
		})
	}
	return causes
}
