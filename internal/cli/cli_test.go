package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questionnaire/pkg/prompt"
)

var (
	surveyPath    = filepath.Join("..", "..", "testdata", "survey.yaml")
	responsesPath = filepath.Join("..", "..", "testdata", "responses.json")
)

type summary struct {
	Valid      bool                `json:"valid"`
	Messages   map[string][]string `json:"messages"`
	FormValues map[string]string   `json:"formValues"`
}

func execute(t *testing.T, args ...string) (summary, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	var out summary
	if stdout.Len() > 0 {
		if decodeErr := json.Unmarshal(stdout.Bytes(), &out); decodeErr != nil {
			t.Fatalf("decode output: %v\n%s", decodeErr, stdout.String())
		}
	}
	return out, stderr.String(), err
}

func TestValidate_ReportsInvalidModel(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "validate", "--model", surveyPath)
	if !errors.Is(err, ErrInvalidAnswers) {
		t.Fatalf("want ErrInvalidAnswers, got %v", err)
	}
	if out.Valid {
		t.Fatalf("report should be invalid")
	}
	if diff := cmp.Diff(map[string][]string{"channel": {"Please pick a channel."}}, out.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_AppliesAnswers(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "validate", "--model", surveyPath, "--answers", responsesPath, "--sanitize")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !out.Valid {
		t.Fatalf("report should be valid: %+v", out)
	}
	want := map[string]string{
		"channel":       "other",
		"channel_other": "newsletter",
		"detail_1":      "fast",
		"detail_2":      "friendly",
	}
	if diff := cmp.Diff(want, out.FormValues); diff != "" {
		t.Fatalf("form values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RuleFilterAndFlagErrors(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "validate", "--model", surveyPath, "--rule", "MaxLength")
	if err != nil {
		t.Fatalf("only MaxLength should be evaluated: %v", err)
	}
	if !out.Valid {
		t.Fatalf("report should be valid when Required is filtered out")
	}

	if _, _, err := execute(t, "validate"); err == nil {
		t.Fatalf("missing --model should fail")
	}
	if _, _, err := execute(t, "validate", "--model", surveyPath, "--log-level", "loud"); err == nil {
		t.Fatalf("bad log level should fail")
	}
}

func TestTypes_ListsBuiltins(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"types"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("types: %v", err)
	}
	if diff := cmp.Diff("openTextList\nsingle\n", stdout.String()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

type scriptedDriver struct {
	selects []int
	inputs  []string
}

func (s *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	return next, nil
}

func (s *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	next := s.selects[0]
	s.selects = s.selects[1:]
	return next, nil
}

func (s *scriptedDriver) Info(context.Context, string) error { return nil }

func TestPrompt_CollectsFormValues(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetContext(context.Background())

	driver := &scriptedDriver{
		// channel: Website; third question: "y".
		selects: []int{0, 0},
		// details: answer 1 then answer 2.
		inputs: []string{"<b>quick</b>", ""},
	}
	opts := &promptOptions{model: surveyPath, maxAttempts: 1}
	if err := runPrompt(cmd, &globalFlags{logLevel: "error", logFormat: "text"}, opts, driver); err != nil {
		t.Fatalf("prompt: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{"channel": "web", "detail_1": "quick"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form values mismatch (-want +got):\n%s", diff)
	}
}
