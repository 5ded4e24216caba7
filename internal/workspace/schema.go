package workspace

import (
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed workspace_schema.json
var workspaceSchema string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("workspace_schema.json", strings.NewReader(workspaceSchema)); err != nil {
		return nil, err
	}
	return c.Compile("workspace_schema.json")
})

// ValidateWorkspace checks a loaded document against the bundled
// workspace schema. Schema failures are reported as a *ValidationError
// carrying one Violation per offending value.
func ValidateWorkspace(doc *Document) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(doc.Raw(), &v); err != nil {
		return &LoadError{Path: doc.Path, Err: err}
	}
	err = sch.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	verr := &ValidationError{Path: doc.Path}
	for _, cause := range leafCauses(ve) {
		verr.Violations = append(verr.Violations, Violation{
			InstancePath: cause.InstanceLocation,
			Message:      cause.Message,
		})
	}
	return verr
}

// leafCauses flattens a validation error tree into its most specific
// failures.
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}
