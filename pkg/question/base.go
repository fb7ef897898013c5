package question

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-questionnaire/pkg/event"
	"github.com/goliatone/go-questionnaire/pkg/valuemap"
)

// Event channel names.
const (
	EventChange             = "question:change"
	EventValidation         = "question:validation"
	EventValidationComplete = "question:validation-complete"
)

// Question is the behaviour shared by every question variant.
type Question interface {
	ID() string
	Text() string
	ReadOnly() bool
	Required() bool
	ValidationRules() []ValidationRule
	TriggeredQuestions() []string
	Policy() RevalidationPolicy

	ChangeEvent() *event.Event[ChangeEvent]
	ValidationEvent() *event.Event[*QuestionValidationResult]
	ValidationCompleteEvent() *event.Event[*QuestionValidationResult]

	Validate(opts ...ValidateOption) *QuestionValidationResult

	// FormValues projects the current state onto submittable field names.
	FormValues() map[string]string
}

// ChangeEvent is the payload of the change channel.
type ChangeEvent struct {
	Model   Question
	Changes Changes
}

// Changes describes a confirmed mutation. Single questions set Value or
// OtherValue (the affected answer code); list questions set Values or
// OtherValues with only the keys that changed. A Value pointing to "" means
// the selection was cleared (a null value); a nil Value means the selection
// did not change.
type Changes struct {
	Value       *string       `json:"value,omitempty"`
	OtherValue  *string       `json:"otherValue,omitempty"`
	Values      valuemap.Diff `json:"values,omitempty"`
	OtherValues valuemap.Diff `json:"otherValues,omitempty"`
}

// variant is what a concrete question hands to Base.
type variant interface {
	Question
	RuleEvaluator
}

// Base holds the lifecycle shared by all variants. It is embedded by value
// and initialised through setup; it is not usable on its own.
type Base struct {
	id                 string
	text               string
	readOnly           bool
	required           bool
	rules              []ValidationRule
	triggeredQuestions []string

	policy       RevalidationPolicy
	revalidating bool

	self      Question
	evaluator RuleEvaluator
	logger    *slog.Logger

	changeEvent             *event.Event[ChangeEvent]
	validationEvent         *event.Event[*QuestionValidationResult]
	validationCompleteEvent *event.Event[*QuestionValidationResult]
}

func (b *Base) setup(common Common, self variant, opts []Option) error {
	id := strings.TrimSpace(common.ID)
	if id == "" {
		return ErrMissingID
	}
	if err := checkRules(id, common.ValidationRules, self); err != nil {
		return err
	}

	cfg := buildOptions(opts)

	b.id = id
	b.text = strings.TrimSpace(common.Text)
	b.readOnly = common.ReadOnly
	b.required = common.Required
	b.rules = append([]ValidationRule(nil), common.ValidationRules...)
	b.triggeredQuestions = append([]string(nil), common.TriggeredQuestions...)
	b.policy = Lazy
	b.self = self
	b.evaluator = self
	b.logger = cfg.logger.With("question", id)

	b.changeEvent = event.New[ChangeEvent](EventChange)
	b.validationEvent = event.New[*QuestionValidationResult](EventValidation)
	b.validationCompleteEvent = event.New[*QuestionValidationResult](EventValidationComplete)
	return nil
}

// ID returns the question identifier.
func (b *Base) ID() string { return b.id }

// Text returns the question wording, falling back to the id.
func (b *Base) Text() string {
	if b.text == "" {
		return b.id
	}
	return b.text
}

// ReadOnly reports whether the question is read-only.
func (b *Base) ReadOnly() bool { return b.readOnly }

// Required reports whether the question must be answered.
func (b *Base) Required() bool { return b.required }

// ValidationRules returns a copy of the configured rules.
func (b *Base) ValidationRules() []ValidationRule {
	return append([]ValidationRule(nil), b.rules...)
}

// TriggeredQuestions returns the ids of questions this question's answers
// make relevant.
func (b *Base) TriggeredQuestions() []string {
	return append([]string(nil), b.triggeredQuestions...)
}

// Policy reports the current revalidation policy.
func (b *Base) Policy() RevalidationPolicy { return b.policy }

// ChangeEvent fires after every confirmed mutation.
func (b *Base) ChangeEvent() *event.Event[ChangeEvent] { return b.changeEvent }

// ValidationEvent fires on every Validate call.
func (b *Base) ValidationEvent() *event.Event[*QuestionValidationResult] {
	return b.validationEvent
}

// ValidationCompleteEvent fires after ValidationEvent unless the caller
// passed WithoutCompleteEvent.
func (b *Base) ValidationCompleteEvent() *event.Event[*QuestionValidationResult] {
	return b.validationCompleteEvent
}

// Validate evaluates the configured rules in order and returns a new
// result. It emits the validation event, then the validationComplete event
// (unless suppressed); an invalid completed result switches the question to
// the Eager policy. Question state is not modified.
func (b *Base) Validate(opts ...ValidateOption) *QuestionValidationResult {
	cfg := validateConfig{raiseComplete: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	result := b.evaluate(cfg.filter)

	b.validationEvent.Trigger(result)
	if cfg.raiseComplete {
		b.complete(result)
	}
	return result
}

func (b *Base) evaluate(filter RuleFilter) *QuestionValidationResult {
	result := &QuestionValidationResult{
		QuestionID:              b.id,
		Errors:                  []ValidationError{},
		AnswerValidationResults: []AnswerValidationResult{},
	}
	for _, rule := range b.rules {
		if filter != nil && !filter(rule) {
			continue
		}
		outcome := b.evaluator.EvaluateRule(rule.Type)
		if outcome.Valid {
			continue
		}
		result.record(rule, outcome)
	}
	return result
}

func (b *Base) complete(result *QuestionValidationResult) {
	b.validationCompleteEvent.Trigger(result)

	next := b.policy.Escalate(result.IsValid())
	if next != b.policy {
		b.logger.Debug("revalidation policy escalated", "from", b.policy.String(), "to", next.String())
		b.policy = next
	}
}

// onChange is called by variants after a confirmed mutation.
func (b *Base) onChange(changes Changes) {
	b.changeEvent.Trigger(ChangeEvent{Model: b.self, Changes: changes})

	if b.policy != Eager {
		return
	}
	if b.revalidating {
		b.logger.Debug("revalidation suppressed while already revalidating")
		return
	}

	b.revalidating = true
	defer func() { b.revalidating = false }()
	b.Validate()
}
