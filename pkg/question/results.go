package question

import "encoding/json"

// ValidationError records one failing rule.
type ValidationError struct {
	RuleType RuleKind `json:"ruleType"`
	Message  string   `json:"message"`
	Data     any      `json:"data,omitempty"`
}

// AnswerValidationResult groups the errors scoped to a single answer.
type AnswerValidationResult struct {
	AnswerCode string            `json:"answerCode"`
	Errors     []ValidationError `json:"errors"`
}

// QuestionValidationResult is produced fresh by every Validate call.
type QuestionValidationResult struct {
	QuestionID              string                   `json:"questionId"`
	Errors                  []ValidationError        `json:"errors"`
	AnswerValidationResults []AnswerValidationResult `json:"answerValidationResults"`
}

// IsValid reports whether neither question-level nor answer-level errors
// were recorded.
func (r *QuestionValidationResult) IsValid() bool {
	if r == nil {
		return true
	}
	return len(r.Errors) == 0 && len(r.AnswerValidationResults) == 0
}

// AnswerResult returns the bucket for code, if any rule failed for it.
func (r *QuestionValidationResult) AnswerResult(code string) (AnswerValidationResult, bool) {
	if r == nil {
		return AnswerValidationResult{}, false
	}
	for _, bucket := range r.AnswerValidationResults {
		if bucket.AnswerCode == code {
			return bucket, true
		}
	}
	return AnswerValidationResult{}, false
}

// MarshalJSON adds the derived isValid flag. Both error lists are always
// encoded as arrays.
func (r *QuestionValidationResult) MarshalJSON() ([]byte, error) {
	type plain QuestionValidationResult
	out := plain(*r)
	if out.Errors == nil {
		out.Errors = []ValidationError{}
	}
	if out.AnswerValidationResults == nil {
		out.AnswerValidationResults = []AnswerValidationResult{}
	}
	return json.Marshal(struct {
		plain
		IsValid bool `json:"isValid"`
	}{
		plain:   out,
		IsValid: r.IsValid(),
	})
}

func (r *QuestionValidationResult) record(rule ValidationRule, outcome RuleResult) {
	failure := ValidationError{
		RuleType: rule.Type,
		Message:  rule.Message,
		Data:     outcome.Data,
	}

	if len(outcome.Answers) == 0 {
		r.Errors = append(r.Errors, failure)
		return
	}

	for _, code := range outcome.Answers {
		idx := r.bucket(code)
		r.AnswerValidationResults[idx].Errors = append(r.AnswerValidationResults[idx].Errors, failure)
	}
}

// bucket returns the index of the answer bucket for code, creating it on
// first use.
func (r *QuestionValidationResult) bucket(code string) int {
	for idx, existing := range r.AnswerValidationResults {
		if existing.AnswerCode == code {
			return idx
		}
	}
	r.AnswerValidationResults = append(r.AnswerValidationResults, AnswerValidationResult{AnswerCode: code})
	return len(r.AnswerValidationResults) - 1
}
