package model

import (
	"encoding/json"
	"fmt"
)

// Built-in question types.
const (
	TypeSingle       = "single"
	TypeOpenTextList = "openTextList"
)

// Document is a parsed model document.
type Document struct {
	Source    string
	Title     string
	Questions []Definition
}

// Definition is a single question entry. Raw holds the full entry as JSON
// with the resolved id applied.
type Definition struct {
	ID   string
	Type string
	Raw  json.RawMessage
	// GeneratedID is set when the document omitted the id.
	GeneratedID bool
}

// Decode unmarshals the definition into dst, typically a question config.
func (d Definition) Decode(dst any) error {
	if err := json.Unmarshal(d.Raw, dst); err != nil {
		return fmt.Errorf("model: decode question %q: %w", d.ID, err)
	}
	return nil
}

// Question returns the definition with the given id.
func (d Document) Question(id string) (Definition, bool) {
	for _, def := range d.Questions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Response is the recorded state for one question. Single questions use
// Value and OtherValue; list questions use Values and OtherValues.
type Response struct {
	Value       string            `json:"value,omitempty" yaml:"value,omitempty"`
	OtherValue  string            `json:"otherValue,omitempty" yaml:"otherValue,omitempty"`
	Values      map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	OtherValues map[string]string `json:"otherValues,omitempty" yaml:"otherValues,omitempty"`
}

// Responses maps question ids to their recorded state.
type Responses map[string]Response
