package tuning

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "tuning.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Schema returns the JSON schema of the tuning file, reflected from Tuning.
func Schema() ([]byte, error) {
	r := invopop.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	s := r.Reflect(&Tuning{})
	if s == nil {
		return nil, fmt.Errorf("reflect tuning schema")
	}
	return json.MarshalIndent(s, "", "  ")
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := Schema()
		if err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
			compileErr = fmt.Errorf("add tuning schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

func validate(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	v, err := jsonValue(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	return nil
}
