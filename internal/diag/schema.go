package diag

import (
	_ "embed"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/diagnostics.schema.json
var diagnosticsSchemaJSON string

// CompileDiagnosticsSchema compiles the committed diagnostics.schema.json,
// grounded on the teacher's jsonschema/v5 Draft2020 compiler setup
// (core/types/validation.go). Tests use it to assert ExportJSON never
// drifts from the documented wire shape.
func CompileDiagnosticsSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	url := "schema://epsilon/diagnostics.json"
	if err := compiler.AddResource(url, strings.NewReader(diagnosticsSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}
