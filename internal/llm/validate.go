package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled schemas keyed by Schema.Name
var compiledSchemas sync.Map

// validateResponse returns *ErrInvalidResponse when raw is not JSON matching
// schema. A nil schema always passes.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, err error) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, err)}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}
	sch, err := schema.compile()
	if err != nil {
		return invalid("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalid("schema validation failed: %w", err)
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if v, ok := compiledSchemas.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	// UnmarshalJSON keeps numbers as json.Number, which the compiler expects.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}

	url := "schema://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}

	v, _ := compiledSchemas.LoadOrStore(s.Name, sch)
	return v.(*jsonschema.Schema), nil
}
