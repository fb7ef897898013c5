package question

import (
	"fmt"
	"slices"
)

// RuleKind identifies a validation rule.
type RuleKind string

const (
	RuleRequired                 RuleKind = "Required"
	RuleOtherRequired            RuleKind = "OtherRequired"
	RuleMultiCount               RuleKind = "MultiCount"
	RuleMaxLength                RuleKind = "MaxLength"
	RuleRequiredIfOtherSpecified RuleKind = "RequiredIfOtherSpecified"
)

// ValidationRule pairs a rule kind with the message reported when it fails.
type ValidationRule struct {
	Type    RuleKind `json:"type" yaml:"type"`
	Message string   `json:"message" yaml:"message"`
}

// RuleFilter selects the rules a Validate call evaluates.
type RuleFilter func(rule ValidationRule) bool

// RuleResult is the verdict for a single rule. Answers lists the answer codes
// the failure applies to; an empty list scopes the failure to the whole
// question. Data is copied into the ValidationError.
type RuleResult struct {
	Valid   bool
	Answers []string
	Data    any
}

// Pass returns a successful RuleResult.
func Pass() RuleResult {
	return RuleResult{Valid: true}
}

// Fail returns a failed RuleResult targeting the supplied answer codes.
func Fail(answers ...string) RuleResult {
	return RuleResult{Answers: answers}
}

// failIfAny fails with the supplied codes, or passes when there are none.
func failIfAny(answers []string) RuleResult {
	if len(answers) == 0 {
		return Pass()
	}
	return Fail(answers...)
}

// RuleEvaluator is implemented by every question variant. SupportedRules is
// consulted at construction; EvaluateRule is only called with kinds it lists.
type RuleEvaluator interface {
	SupportedRules() []RuleKind
	EvaluateRule(kind RuleKind) RuleResult
}

func checkRules(id string, rules []ValidationRule, evaluator RuleEvaluator) error {
	supported := evaluator.SupportedRules()
	for _, rule := range rules {
		if !slices.Contains(supported, rule.Type) {
			return fmt.Errorf("%w %q on question %q", ErrUnsupportedRule, rule.Type, id)
		}
	}
	return nil
}

// unsupportedRule is returned by evaluators for kinds they do not know. It
// fails the question as a whole so the problem is visible in the result.
func unsupportedRule(kind RuleKind) RuleResult {
	return RuleResult{Data: fmt.Errorf("%w %q", ErrUnsupportedRule, kind)}
}
