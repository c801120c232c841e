package validate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
)

//go:embed schema/caserecord.schema.json
var caseRecordSchema []byte

// Validator combines the structural checks with JSON Schema validation of
// the serialized record, so the downstream contract (field names, types,
// required-ness) is mechanically enforced before hand-off.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded case-record schema once per process.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(caseRecordSchema)
	if err != nil {
		return nil, fmt.Errorf("compile case record schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate returns every violated invariant of the record. An empty
// result means the record is safe to hand downstream.
func (v *Validator) Validate(rec *model.CaseRecord) ValidationErrors {
	errs := Structural(rec)

	data, err := json.Marshal(rec)
	if err != nil {
		return append(errs, ValidationError{
			Field:   "record",
			Message: fmt.Sprintf("record does not serialize: %v", err),
		})
	}

	result := v.schema.ValidateJSON(data)
	if !result.IsValid() {
		fields := make([]string, 0, len(result.Errors))
		for field := range result.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: result.Errors[field].Error(),
			})
		}
	}
	return errs
}
