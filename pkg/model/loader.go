package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Title     string            `json:"title"`
	Questions []json.RawMessage `json:"questions"`
}

type definitionHead struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// LoadFS reads and parses the model document at path.
func LoadFS(fsys fs.FS, path string) (Document, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return Document{}, err
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML model document. Questions without an id get
// a generated one; duplicate ids are rejected.
func Parse(data []byte, source string) (Document, error) {
	canonical, err := canonicalJSON(data, source)
	if err != nil {
		return Document{}, err
	}
	if err := validateStructure(canonical, source); err != nil {
		return Document{}, err
	}

	var file documentFile
	if err := json.Unmarshal(canonical, &file); err != nil {
		return Document{}, fmt.Errorf("model: decode %s: %w", source, err)
	}

	doc := Document{
		Source:    source,
		Title:     strings.TrimSpace(file.Title),
		Questions: make([]Definition, 0, len(file.Questions)),
	}
	seen := make(map[string]int, len(file.Questions))
	for idx, raw := range file.Questions {
		def, err := newDefinition(raw)
		if err != nil {
			return Document{}, fmt.Errorf("model: %s question %d: %w", source, idx, err)
		}
		if prev, exists := seen[def.ID]; exists {
			return Document{}, fmt.Errorf("model: %s defines duplicate question id %q (entries %d and %d)", source, def.ID, prev, idx)
		}
		seen[def.ID] = idx
		doc.Questions = append(doc.Questions, def)
	}
	return doc, nil
}

func newDefinition(raw json.RawMessage) (Definition, error) {
	var head definitionHead
	if err := json.Unmarshal(raw, &head); err != nil {
		return Definition{}, err
	}

	def := Definition{
		ID:   strings.TrimSpace(head.ID),
		Type: strings.TrimSpace(head.Type),
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
		def.GeneratedID = true
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Definition{}, err
	}
	fields["id"] = def.ID
	resolved, err := json.Marshal(fields)
	if err != nil {
		return Definition{}, err
	}
	def.Raw = resolved
	return def, nil
}

// LoadResponsesFS reads and parses the responses document at path.
func LoadResponsesFS(fsys fs.FS, path string) (Responses, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return ParseResponses(data, path)
}

// ParseResponses decodes a JSON or YAML responses document keyed by
// question id.
func ParseResponses(data []byte, source string) (Responses, error) {
	canonical, err := canonicalJSON(data, source)
	if err != nil {
		return nil, err
	}

	var responses Responses
	if err := json.Unmarshal(canonical, &responses); err != nil {
		return nil, fmt.Errorf("model: decode responses %s: %w", source, err)
	}
	out := make(Responses, len(responses))
	for id, response := range responses {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			return nil, fmt.Errorf("model: responses %s contain an empty question id", source)
		}
		out[trimmed] = response
	}
	return out, nil
}

func readFile(fsys fs.FS, path string) ([]byte, error) {
	if fsys == nil {
		return nil, fmt.Errorf("model: read %s: filesystem is nil", path)
	}
	if !isDocumentFile(path) {
		return nil, fmt.Errorf("model: %s: unsupported extension (want .json, .yaml or .yml)", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	return data, nil
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// canonicalJSON parses JSON or YAML and re-encodes it as JSON. YAML mapping
// keys that are not strings (answer codes like 1) are converted to strings.
func canonicalJSON(data []byte, source string) ([]byte, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("model: %s is empty", source)
	}

	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("model: parse %s: invalid JSON or YAML: %w", source, err)
	}

	out, err := json.Marshal(stringKeys(parsed))
	if err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", source, err)
	}
	return out, nil
}

func stringKeys(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, nested := range typed {
			typed[key] = stringKeys(nested)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			out[fmt.Sprint(key)] = stringKeys(nested)
		}
		return out
	case []any:
		for idx, nested := range typed {
			typed[idx] = stringKeys(nested)
		}
		return typed
	default:
		return value
	}
}
