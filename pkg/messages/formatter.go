// Package messages renders validation messages. A rule message may contain
// pongo2 placeholders that are filled from the failing rule's data, for
// example "At most {{ maxLength }} characters.".
package messages

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-questionnaire/pkg/question"
)

// Formatter renders ValidationError messages. Compiled templates are cached
// per message; a Formatter is safe for concurrent use.
type Formatter struct {
	mu        sync.RWMutex
	templates map[string]*pongo2.Template
	defaults  map[question.RuleKind]string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithDefault sets the message used when a rule was configured without one.
func WithDefault(kind question.RuleKind, message string) Option {
	return func(f *Formatter) {
		f.defaults[kind] = message
	}
}

// New returns a Formatter with built-in fallback messages.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		templates: make(map[string]*pongo2.Template),
		defaults: map[question.RuleKind]string{
			question.RuleRequired:                 "This question is required.",
			question.RuleOtherRequired:            "Please specify.",
			question.RuleMultiCount:               "Select the expected number of answers.",
			question.RuleMaxLength:                "Use at most {{ maxLength }} characters.",
			question.RuleRequiredIfOtherSpecified: "Select an answer for the text you entered.",
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Format renders the message for failure. questionID and answerCode are
// exposed to the template as "question" and "answer" next to the rule data.
func (f *Formatter) Format(failure question.ValidationError, questionID, answerCode string) (string, error) {
	message := strings.TrimSpace(failure.Message)
	if message == "" {
		message = f.defaults[failure.RuleType]
	}
	if message == "" {
		return string(failure.RuleType), nil
	}
	if !strings.Contains(message, "{{") && !strings.Contains(message, "{%") {
		return message, nil
	}

	tpl, err := f.template(message)
	if err != nil {
		return "", err
	}

	ctx := pongo2.Context{
		"rule":     string(failure.RuleType),
		"question": questionID,
		"answer":   answerCode,
	}
	switch data := failure.Data.(type) {
	case map[string]int:
		for key, value := range data {
			ctx[key] = value
		}
	case map[string]any:
		for key, value := range data {
			ctx[key] = value
		}
	case nil:
	default:
		ctx["data"] = data
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("messages: render %q: %w", message, err)
	}
	return strings.TrimSpace(out), nil
}

// Result flattens a validation result into display lines: question-level
// messages first, then one line per answer failure prefixed with its code.
func (f *Formatter) Result(result *question.QuestionValidationResult) ([]string, error) {
	if result == nil {
		return nil, nil
	}
	var lines []string
	for _, failure := range result.Errors {
		line, err := f.Format(failure, result.QuestionID, "")
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	for _, bucket := range result.AnswerValidationResults {
		for _, failure := range bucket.Errors {
			line, err := f.Format(failure, result.QuestionID, bucket.AnswerCode)
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("[%s] %s", bucket.AnswerCode, line))
		}
	}
	return lines, nil
}

func (f *Formatter) template(message string) (*pongo2.Template, error) {
	f.mu.RLock()
	tpl, ok := f.templates[message]
	f.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := pongo2.FromString(message)
	if err != nil {
		return nil, fmt.Errorf("messages: compile %q: %w", message, err)
	}

	f.mu.Lock()
	f.templates[message] = tpl
	f.mu.Unlock()
	return tpl, nil
}
