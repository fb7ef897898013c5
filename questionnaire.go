// Package questionnaire assembles questions from a model document into a
// Form, loads recorded responses into them, and validates them together.
// Each question keeps its own events and revalidation policy; the Form only
// fans calls out in document order.
package questionnaire

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/goliatone/go-questionnaire/pkg/formvalues"
	"github.com/goliatone/go-questionnaire/pkg/model"
	"github.com/goliatone/go-questionnaire/pkg/question"
	"github.com/goliatone/go-questionnaire/pkg/visibility"
)

var (
	// ErrUnknownType is returned when no builder is registered for a
	// definition's type.
	ErrUnknownType = errors.New("questionnaire: unknown question type")
	// ErrUnknownQuestion is returned when a response names a question the
	// form does not contain.
	ErrUnknownQuestion = errors.New("questionnaire: unknown question")
	// ErrNotAnswerable is returned when a response targets a question type
	// that cannot load responses.
	ErrNotAnswerable = errors.New("questionnaire: question cannot load responses")
)

// Answerable is implemented by custom question types that can load a
// recorded response.
type Answerable interface {
	ApplyResponse(response model.Response)
}

// Option configures Form construction.
type Option func(*config)

type config struct {
	registry        *Registry
	logger          *slog.Logger
	questionOptions []question.Option
}

// WithRegistry overrides the builder registry.
func WithRegistry(registry *Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithLogger sets the logger used by the form and passed to its questions.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithQuestionOptions forwards options to every question builder.
func WithQuestionOptions(opts ...question.Option) Option {
	return func(cfg *config) {
		cfg.questionOptions = append(cfg.questionOptions, opts...)
	}
}

// Form is an ordered set of questions built from one document.
type Form struct {
	title     string
	source    string
	questions []question.Question
	index     map[string]int
	logger    *slog.Logger
}

// LoadFS reads the model document at path and builds a Form from it.
func LoadFS(fsys fs.FS, path string, opts ...Option) (*Form, error) {
	doc, err := model.LoadFS(fsys, path)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// New builds every question of doc.
func New(doc model.Document, opts ...Option) (*Form, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = NewRegistry()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	questionOpts := append([]question.Option{question.WithLogger(cfg.logger)}, cfg.questionOptions...)

	form := &Form{
		title:     doc.Title,
		source:    doc.Source,
		questions: make([]question.Question, 0, len(doc.Questions)),
		index:     make(map[string]int, len(doc.Questions)),
		logger:    cfg.logger,
	}
	for _, def := range doc.Questions {
		q, err := cfg.registry.Build(def, questionOpts...)
		if err != nil {
			return nil, fmt.Errorf("questionnaire: build %s: %w", doc.Source, err)
		}
		form.index[q.ID()] = len(form.questions)
		form.questions = append(form.questions, q)
	}

	form.logger.Debug("form built", "source", doc.Source, "questions", len(form.questions))
	return form, nil
}

// Title returns the document title.
func (f *Form) Title() string { return f.title }

// Questions returns the questions in document order.
func (f *Form) Questions() []question.Question {
	return append([]question.Question(nil), f.questions...)
}

// Question looks up a question by id.
func (f *Form) Question(id string) (question.Question, bool) {
	idx, ok := f.index[id]
	if !ok {
		return nil, false
	}
	return f.questions[idx], true
}

// Apply loads responses into their questions through the regular mutators,
// so change events fire and eager questions revalidate. Responses are
// applied in document order. Fields a response leaves empty keep the
// question's current state.
func (f *Form) Apply(responses model.Responses) error {
	for id := range responses {
		if _, ok := f.index[id]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownQuestion, id)
		}
	}

	for _, q := range f.questions {
		response, ok := responses[q.ID()]
		if !ok {
			continue
		}
		if err := applyResponse(q, response); err != nil {
			return err
		}
	}
	return nil
}

func applyResponse(q question.Question, response model.Response) error {
	switch typed := q.(type) {
	case *question.Single:
		if response.Value != "" {
			typed.SetValue(response.Value)
		}
		if response.OtherValue != "" {
			typed.SetOtherValue(response.OtherValue)
		}
	case *question.OpenTextList:
		for _, code := range sortedKeys(response.Values) {
			typed.SetValue(code, response.Values[code])
		}
		for _, code := range sortedKeys(response.OtherValues) {
			typed.SetOtherValue(code, response.OtherValues[code])
		}
	case Answerable:
		typed.ApplyResponse(response)
	default:
		return fmt.Errorf("%w: %q", ErrNotAnswerable, q.ID())
	}
	return nil
}

// Report collects the results of a form-wide validation.
type Report struct {
	Results []*question.QuestionValidationResult `json:"results"`
}

// IsValid reports whether every question passed.
func (r Report) IsValid() bool {
	for _, result := range r.Results {
		if !result.IsValid() {
			return false
		}
	}
	return true
}

// Invalid returns only the failing results.
func (r Report) Invalid() []*question.QuestionValidationResult {
	var out []*question.QuestionValidationResult
	for _, result := range r.Results {
		if !result.IsValid() {
			out = append(out, result)
		}
	}
	return out
}

// Validate validates every question in document order. Each question emits
// its own events and updates its own revalidation policy.
func (f *Form) Validate(opts ...question.ValidateOption) Report {
	report := Report{Results: make([]*question.QuestionValidationResult, 0, len(f.questions))}
	for _, q := range f.questions {
		report.Results = append(report.Results, q.Validate(opts...))
	}
	f.logger.Debug("form validated", "source", f.source, "valid", report.IsValid(), "invalid", len(report.Invalid()))
	return report
}

// Visible resolves which questions are currently relevant, keyed by id.
func (f *Form) Visible() map[string]bool {
	return visibility.Resolve(f.questions, nil)
}

// FormValues merges the form values of all questions.
func (f *Form) FormValues() map[string]string {
	return formvalues.Collect(f.questions...)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
