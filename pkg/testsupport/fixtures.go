// Package testsupport holds fixture and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questionnaire/pkg/model"
)

// LoadDocument parses a model fixture and fails the test on error.
func LoadDocument(t *testing.T, path string) model.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (model.Document, error) {
	if path == "" {
		return model.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := model.Parse(data, filepath.Base(path))
	if err != nil {
		return model.Document{}, fmt.Errorf("testsupport: parse document: %w", err)
	}
	return doc, nil
}

// MustLoadResponses reads an answers fixture.
func MustLoadResponses(t *testing.T, path string) model.Responses {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read responses: %v", err)
	}
	responses, err := model.ParseResponses(data, filepath.Base(path))
	if err != nil {
		t.Fatalf("parse responses: %v", err)
	}
	return responses
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// It reports whether the golden was written.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareJSONGolden marshals got and diffs it against the golden JSON at
// path. Both sides are decoded into generic values first, so key order and
// indentation do not matter.
func CompareJSONGolden(t *testing.T, path string, got any) string {
	t.Helper()

	if WriteGolden(t, path, got) {
		return ""
	}

	payload, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var gotValue, wantValue any
	if err := json.Unmarshal(payload, &gotValue); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if err := json.Unmarshal(MustReadGolden(t, path), &wantValue); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	return cmp.Diff(wantValue, gotValue)
}
