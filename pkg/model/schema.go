package model

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://questionnaire-model.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// SchemaError reports a structural problem in a model document.
type SchemaError struct {
	Source   string
	Location string
	Message  string
}

func (e *SchemaError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("model: %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("model: %s at %s: %s", e.Source, e.Location, e.Message)
}

func modelSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("model: parse embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("model: add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("model: compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// validateStructure checks canonical JSON bytes against the model schema.
func validateStructure(data []byte, source string) error {
	sch, err := modelSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("model: parse %s: %w", source, err)
	}

	if err := sch.Validate(inst); err != nil {
		return schemaErrorFrom(err, source)
	}
	return nil
}

func schemaErrorFrom(err error, source string) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &SchemaError{Source: source, Message: err.Error()}
	}

	// Report the deepest cause; it names the offending value.
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	location := "/" + strings.Join(leaf.InstanceLocation, "/")
	message := leaf.Error()
	if idx := strings.LastIndex(message, ": "); idx >= 0 && strings.HasPrefix(message, "at ") {
		message = message[idx+2:]
	}
	return &SchemaError{
		Source:   source,
		Location: location,
		Message:  strings.TrimSpace(message),
	}
}
