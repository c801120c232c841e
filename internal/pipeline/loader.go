package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

// manifestName is the optional per-folder manifest mapping file names to
// document types. Without it, types are inferred from file names.
const manifestName = "documents.yaml"

// documentExtensions are the file types read from a case folder.
var documentExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

type manifest struct {
	Documents map[string]string `yaml:"documents"`
}

// LoadCaseFolder reads every document in a case folder. The folder's
// base name is the case ID. Files are returned sorted by name so a
// folder always loads the same way.
func LoadCaseFolder(dir string) (string, []model.SourceDocument, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", nil, fmt.Errorf("case folder: %w", err)
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("case folder: %s is not a directory", dir)
	}

	caseID := filepath.Base(filepath.Clean(dir))

	types, err := loadManifest(dir)
	if err != nil {
		return "", nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("read case folder: %w", err)
	}

	var docs []model.SourceDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == manifestName {
			continue
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", nil, fmt.Errorf("read document %s: %w", name, err)
		}

		docType := types[name]
		if docType == "" {
			docType = inferDocumentType(name)
		}

		docs = append(docs, model.SourceDocument{
			ID:   name,
			Type: model.ParseDocumentType(docType),
			Text: string(data),
		})
	}

	if len(docs) == 0 {
		return "", nil, fmt.Errorf("case folder %s contains no documents", dir)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	return caseID, docs, nil
}

// loadManifest reads documents.yaml if present. A missing manifest is
// not an error.
func loadManifest(dir string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m.Documents, nil
}

// inferDocumentType guesses a document type from file name cues.
func inferDocumentType(name string) string {
	lower := strings.ToLower(name)

	switch {
	case strings.Contains(lower, "note"), strings.Contains(lower, "atty"), strings.Contains(lower, "attorney"):
		return string(model.DocTypeAttorneyNotes)
	case strings.Contains(lower, "denial"), strings.Contains(lower, "adverse"), strings.Contains(lower, "decline"):
		return string(model.DocTypeDenialLetter)
	case strings.Contains(lower, "credit"), strings.Contains(lower, "tradeline"), strings.Contains(lower, "report"):
		return string(model.DocTypeCreditReport)
	case strings.Contains(lower, "summons"), strings.Contains(lower, "complaint"), strings.Contains(lower, "caption"):
		return string(model.DocTypeSummons)
	default:
		return string(model.DocTypeOther)
	}
}
