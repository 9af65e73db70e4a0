package parser

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed record.schema.json
var recordSchemaData []byte

var (
	recordSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchema compiles the embedded record schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat()

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(recordSchemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal record schema: %w", err)
			return
		}

		if err := compiler.AddResource("record.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add record schema resource: %w", err)
			return
		}

		recordSchema, err = compiler.Compile("record.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile record schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateRecord validates one JSON record document against the record schema.
func ValidateRecord(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := recordSchema.Validate(v); err != nil {
		return fmt.Errorf("record validation failed: %w", err)
	}

	return nil
}
