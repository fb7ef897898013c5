package question

import (
	"fmt"

	"github.com/goliatone/go-questionnaire/pkg/valuemap"
)

// Single is a single-select question. Other texts are keyed by the answer
// that was selected when the text was entered.
type Single struct {
	Base
	answerSet

	value       string
	otherValues *valuemap.Map

	answerButtons bool
	slider        bool
	dropdown      bool
}

var _ Question = (*Single)(nil)

// NewSingle builds a Single question from its configuration.
func NewSingle(cfg SingleConfig, opts ...Option) (*Single, error) {
	answers, err := newAnswerSet(cfg.Answers)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", cfg.ID, err)
	}
	value := stringify(cfg.Value)
	if value != "" {
		if _, ok := answers.Answer(value); !ok {
			return nil, fmt.Errorf("question %q: value: %w %q", cfg.ID, ErrUnknownAnswer, value)
		}
	}
	if err := answers.checkCodes(cfg.OtherValues); err != nil {
		return nil, fmt.Errorf("question %q: otherValues: %w", cfg.ID, err)
	}

	q := &Single{
		answerSet:     answers,
		otherValues:   valuemap.FromOrdered(answers.codes(), cfg.OtherValues),
		answerButtons: cfg.AnswerButtons,
		slider:        cfg.Slider,
		dropdown:      cfg.Dropdown,
	}
	if value != "" {
		canonical, _ := answers.Answer(value)
		q.value = canonical.Code
	}
	if err := q.setup(cfg.Common, q, opts); err != nil {
		return nil, err
	}
	return q, nil
}

// AnswerButtons reports the answer-buttons presentation hint.
func (q *Single) AnswerButtons() bool { return q.answerButtons }

// Slider reports the slider presentation hint.
func (q *Single) Slider() bool { return q.slider }

// Dropdown reports the dropdown presentation hint.
func (q *Single) Dropdown() bool { return q.dropdown }

// Value returns the selected answer code, or "" when nothing is selected.
func (q *Single) Value() string { return q.value }

// OtherValue returns the other text captured for the current selection.
func (q *Single) OtherValue() string {
	if q.value == "" {
		return ""
	}
	other, _ := q.otherValues.Get(q.value)
	return other
}

// OtherValues returns a copy of every captured other text keyed by code.
func (q *Single) OtherValues() map[string]string { return q.otherValues.ToMap() }

// FormValues maps the selected answer's field name to its code, plus the
// other field when the selection is an "other" answer.
func (q *Single) FormValues() map[string]string {
	form := make(map[string]string)
	answer, ok := q.Answer(q.value)
	if !ok {
		return form
	}
	if answer.FieldName != "" {
		form[answer.FieldName] = q.value
	}
	if answer.IsOther && answer.OtherFieldName != "" {
		form[answer.OtherFieldName] = q.OtherValue()
	}
	return form
}

// SetValue selects the answer with the given code. An empty value clears
// the selection and reports Changes.Value as ""; unknown codes and redundant
// writes are ignored.
func (q *Single) SetValue(value any) {
	code := stringify(value)
	if code != "" {
		answer, ok := q.Answer(code)
		if !ok {
			q.logger.Debug("value rejected for unknown answer", "answer", code)
			return
		}
		code = answer.Code
	}
	if code == q.value {
		return
	}

	q.value = code
	q.onChange(Changes{Value: &code})
}

// SetOtherValue stores the other text for the current selection. It is
// ignored when nothing is selected.
func (q *Single) SetOtherValue(otherValue any) {
	code := q.value
	if code == "" {
		q.logger.Debug("other value rejected without a selection")
		return
	}
	if !q.otherValues.Set(code, stringify(otherValue)) {
		return
	}
	q.onChange(Changes{OtherValue: &code})
}

// SupportedRules lists the rule kinds Single evaluates.
func (q *Single) SupportedRules() []RuleKind {
	return []RuleKind{RuleRequired, RuleOtherRequired, RuleRequiredIfOtherSpecified}
}

// EvaluateRule evaluates one rule against the current selection.
func (q *Single) EvaluateRule(kind RuleKind) RuleResult {
	switch kind {
	case RuleRequired:
		if !q.Required() || q.value != "" {
			return Pass()
		}
		return Fail()
	case RuleOtherRequired:
		return q.validateOther()
	case RuleRequiredIfOtherSpecified:
		if q.value != "" {
			return Pass()
		}
		return failIfAny(q.otherValues.Keys())
	default:
		return unsupportedRule(kind)
	}
}

func (q *Single) validateOther() RuleResult {
	if q.value == "" {
		return Pass()
	}
	answer, _ := q.Answer(q.value)
	if !answer.IsOther || q.OtherValue() != "" {
		return Pass()
	}
	return Fail(q.value)
}
