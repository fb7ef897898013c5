package question

import (
	"fmt"
	"unicode/utf8"

	"github.com/goliatone/go-questionnaire/pkg/valuemap"
)

// OpenTextList is a multi-value question: every answer accepts free text.
// Values is sparse, so an answer appears only while it holds text.
type OpenTextList struct {
	Base
	answerSet

	values      *valuemap.Map
	otherValues *valuemap.Map
	maxLength   *int
	multiCount  MultiCount
}

var _ Question = (*OpenTextList)(nil)

// NewOpenTextList builds an OpenTextList from its configuration.
func NewOpenTextList(cfg OpenTextListConfig, opts ...Option) (*OpenTextList, error) {
	answers, err := newAnswerSet(cfg.Answers)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", cfg.ID, err)
	}
	if err := answers.checkCodes(cfg.Values); err != nil {
		return nil, fmt.Errorf("question %q: values: %w", cfg.ID, err)
	}
	if err := answers.checkCodes(cfg.OtherValues); err != nil {
		return nil, fmt.Errorf("question %q: otherValues: %w", cfg.ID, err)
	}
	if cfg.MaxLength != nil && *cfg.MaxLength < 0 {
		return nil, fmt.Errorf("question %q: %w: maxLength %d", cfg.ID, ErrInvalidBound, *cfg.MaxLength)
	}
	for name, bound := range cfg.MultiCount.data() {
		if bound < 0 {
			return nil, fmt.Errorf("question %q: %w: multiCount.%s %d", cfg.ID, ErrInvalidBound, name, bound)
		}
	}

	q := &OpenTextList{
		answerSet:   answers,
		values:      valuemap.FromOrdered(answers.codes(), cfg.Values),
		otherValues: valuemap.FromOrdered(answers.codes(), cfg.OtherValues),
		maxLength:   cloneInt(cfg.MaxLength),
		multiCount:  cfg.MultiCount.clone(),
	}
	if err := q.setup(cfg.Common, q, opts); err != nil {
		return nil, err
	}
	return q, nil
}

// Values returns a copy of the entered values keyed by answer code.
func (q *OpenTextList) Values() map[string]string { return q.values.ToMap() }

// OtherValues returns a copy of the "other" texts keyed by answer code.
func (q *OpenTextList) OtherValues() map[string]string { return q.otherValues.ToMap() }

// Value returns the text entered for code.
func (q *OpenTextList) Value(code string) (string, bool) { return q.values.Get(code) }

// MaxLength returns the per-value length cap, if configured.
func (q *OpenTextList) MaxLength() (int, bool) {
	if q.maxLength == nil {
		return 0, false
	}
	return *q.maxLength, true
}

// MultiCount returns a copy of the answered-count bounds.
func (q *OpenTextList) MultiCount() MultiCount { return q.multiCount.clone() }

// FormValues maps each answered field name to its text, plus the other
// field for "other" answers.
func (q *OpenTextList) FormValues() map[string]string {
	form := make(map[string]string)
	q.values.Range(func(code, value string) bool {
		answer, ok := q.Answer(code)
		if !ok {
			return true
		}
		if answer.FieldName != "" {
			form[answer.FieldName] = value
		}
		if answer.IsOther && answer.OtherFieldName != "" {
			other, _ := q.otherValues.Get(code)
			form[answer.OtherFieldName] = other
		}
		return true
	})
	return form
}

// SetValue stores the text for an answer. Empty values clear the answer.
// Unknown codes and redundant writes are ignored.
func (q *OpenTextList) SetValue(code string, value any) {
	answer, ok := q.Answer(code)
	if !ok {
		q.logger.Debug("value rejected for unknown answer", "answer", code)
		return
	}

	before := q.values.Clone()
	if !q.values.Set(answer.Code, stringify(value)) {
		return
	}
	q.onChange(Changes{Values: valuemap.Compare(before, q.values)})
}

// SetOtherValue stores the "other" text for an answer. The answer does not
// need a primary value; OtherRequired enforces the pairing.
func (q *OpenTextList) SetOtherValue(code string, value any) {
	answer, ok := q.Answer(code)
	if !ok {
		q.logger.Debug("other value rejected for unknown answer", "answer", code)
		return
	}

	before := q.otherValues.Clone()
	if !q.otherValues.Set(answer.Code, stringify(value)) {
		return
	}
	q.onChange(Changes{OtherValues: valuemap.Compare(before, q.otherValues)})
}

// SupportedRules lists the rule kinds OpenTextList evaluates.
func (q *OpenTextList) SupportedRules() []RuleKind {
	return []RuleKind{RuleRequired, RuleOtherRequired, RuleMultiCount, RuleMaxLength}
}

// EvaluateRule evaluates one rule against the current values.
func (q *OpenTextList) EvaluateRule(kind RuleKind) RuleResult {
	switch kind {
	case RuleRequired:
		return q.validateRequired()
	case RuleOtherRequired:
		return q.validateOther()
	case RuleMultiCount:
		return q.validateMultiCount()
	case RuleMaxLength:
		return q.validateMaxLength()
	default:
		return unsupportedRule(kind)
	}
}

// validateRequired means "all answered" for list questions. With a
// multiCount bound the decision belongs to MultiCount.
func (q *OpenTextList) validateRequired() RuleResult {
	if !q.Required() || q.multiCount.IsSet() {
		return Pass()
	}

	var missing []string
	for _, answer := range q.answers {
		if !answer.IsOther && !q.values.Has(answer.Code) {
			missing = append(missing, answer.Code)
		}
	}
	return failIfAny(missing)
}

func (q *OpenTextList) validateOther() RuleResult {
	var missing []string
	for _, answer := range q.answers {
		if answer.IsOther && q.values.Has(answer.Code) && !q.otherValues.Has(answer.Code) {
			missing = append(missing, answer.Code)
		}
	}
	return failIfAny(missing)
}

func (q *OpenTextList) validateMultiCount() RuleResult {
	count := q.values.Len()
	if !q.Required() && count == 0 {
		return Pass()
	}

	bounds := q.multiCount
	failed := (bounds.Equal != nil && count != *bounds.Equal) ||
		(bounds.Min != nil && count < *bounds.Min) ||
		(bounds.Max != nil && count > *bounds.Max)
	if !failed {
		return Pass()
	}
	return RuleResult{Data: bounds.data()}
}

func (q *OpenTextList) validateMaxLength() RuleResult {
	limit, ok := q.MaxLength()
	if !ok {
		return Pass()
	}

	var tooLong []string
	q.values.Range(func(code, value string) bool {
		if utf8.RuneCountInString(value) > limit {
			tooLong = append(tooLong, code)
		}
		return true
	})

	result := failIfAny(tooLong)
	if !result.Valid {
		result.Data = map[string]int{"maxLength": limit}
	}
	return result
}
