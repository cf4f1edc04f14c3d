package scenario

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "scenario.schema.json"

//go:embed schemas/scenario.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Schema returns the embedded JSON schema document.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func validateSchema(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("scenario: compile schema: %w", err)
	}
	v, err := toJSON(doc)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("scenario: schema: %w", err)
	}
	return nil
}
