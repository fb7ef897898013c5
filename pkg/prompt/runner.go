// Package prompt asks questions in a terminal. The Runner drives each
// question through its mutators, validates it, and shows the messages it
// receives on the question's validation event until the answer passes or the
// attempt limit is reached.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-questionnaire/pkg/messages"
	"github.com/goliatone/go-questionnaire/pkg/question"
	"github.com/goliatone/go-questionnaire/pkg/visibility"
)

var (
	// ErrAborted signals the user aborted input (for example Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrTooManyAttempts is returned when a question is still invalid after
	// the configured number of attempts.
	ErrTooManyAttempts = errors.New("prompt: too many invalid attempts")
)

const skipOption = "(skip)"

// Option configures a Runner.
type Option func(*Runner)

// WithDriver replaces the survey driver.
func WithDriver(driver Driver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithFormatter sets the message formatter used for validation feedback.
func WithFormatter(formatter *messages.Formatter) Option {
	return func(r *Runner) {
		if formatter != nil {
			r.formatter = formatter
		}
	}
}

// WithMaxAttempts bounds how often an invalid question is asked again.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithVisibility replaces the evaluator deciding which questions are asked.
func WithVisibility(evaluator visibility.Evaluator) Option {
	return func(r *Runner) {
		if evaluator != nil {
			r.visibility = evaluator
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner asks questions through a Driver.
type Runner struct {
	driver      Driver
	formatter   *messages.Formatter
	maxAttempts int
	visibility  visibility.Evaluator
	logger      *slog.Logger
}

// NewRunner constructs a Runner. Without WithDriver it prompts through
// survey on stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{maxAttempts: 3}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.formatter == nil {
		r.formatter = messages.New()
	}
	if r.visibility == nil {
		r.visibility = visibility.Triggered
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run asks every question in order. Read-only questions, questions whose
// triggers are unanswered and types the runner cannot drive are skipped.
// Visibility is resolved again before each question, so answers given
// earlier in the run reveal the questions they trigger.
func (r *Runner) Run(ctx context.Context, questions ...question.Question) error {
	if ctx == nil {
		return errors.New("prompt: context is required")
	}
	for _, q := range questions {
		if q == nil || q.ReadOnly() {
			continue
		}
		if !visibility.Resolve(questions, r.visibility)[q.ID()] {
			r.logger.Debug("question hidden", "question", q.ID())
			continue
		}
		if err := r.runQuestion(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runQuestion(ctx context.Context, q question.Question) error {
	var feedback []string
	var formatErr error
	off := q.ValidationEvent().On(func(result *question.QuestionValidationResult) {
		feedback, formatErr = r.formatter.Result(result)
	})
	defer off()

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		asked, err := r.ask(ctx, q)
		if err != nil {
			return err
		}
		if !asked {
			r.logger.Debug("question type not supported by prompt", "question", q.ID())
			return r.driver.Info(ctx, fmt.Sprintf("Skipping %q: unsupported question type.", q.ID()))
		}

		if q.Validate().IsValid() {
			return nil
		}
		if formatErr != nil {
			return formatErr
		}
		for _, line := range feedback {
			if err := r.driver.Info(ctx, "  ! "+line); err != nil {
				return err
			}
		}
		r.logger.Debug("invalid answer", "question", q.ID(), "attempt", attempt)
	}
	return fmt.Errorf("%w: %q", ErrTooManyAttempts, q.ID())
}

func (r *Runner) ask(ctx context.Context, q question.Question) (bool, error) {
	switch typed := q.(type) {
	case *question.Single:
		return true, r.askSingle(ctx, typed)
	case *question.OpenTextList:
		return true, r.askList(ctx, typed)
	default:
		return false, nil
	}
}

func (r *Runner) askSingle(ctx context.Context, q *question.Single) error {
	answers := q.Answers()
	options := make([]string, 0, len(answers)+1)
	defaultIdx := -1
	for idx, answer := range answers {
		options = append(options, answerLabel(answer))
		if answer.Code == q.Value() {
			defaultIdx = idx
		}
	}
	if !q.Required() {
		options = append(options, skipOption)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      q.Text(),
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(answers) {
		q.SetValue(nil)
		return nil
	}

	answer := answers[idx]
	q.SetValue(answer.Code)
	if !answer.IsOther {
		return nil
	}
	other, err := r.driver.Input(ctx, InputConfig{
		Message: "Please specify:",
		Default: q.OtherValue(),
	})
	if err != nil {
		return err
	}
	q.SetOtherValue(other)
	return nil
}

func (r *Runner) askList(ctx context.Context, q *question.OpenTextList) error {
	if err := r.driver.Info(ctx, q.Text()); err != nil {
		return err
	}
	others := q.OtherValues()
	for _, answer := range q.Answers() {
		current, _ := q.Value(answer.Code)
		value, err := r.driver.Input(ctx, InputConfig{
			Message: answerLabel(answer) + ":",
			Default: current,
		})
		if err != nil {
			return err
		}
		q.SetValue(answer.Code, value)

		if !answer.IsOther || value == "" {
			continue
		}
		other, err := r.driver.Input(ctx, InputConfig{
			Message: "Please specify:",
			Default: others[answer.Code],
		})
		if err != nil {
			return err
		}
		q.SetOtherValue(answer.Code, other)
	}
	return nil
}

func answerLabel(answer question.Answer) string {
	if answer.Text != "" {
		return answer.Text
	}
	return answer.Code
}
