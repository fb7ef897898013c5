package question

import (
	"fmt"
	"strings"
)

// Answer is an answer option owned by a question. Answers are fixed once the
// question is constructed.
type Answer struct {
	Code           string `json:"code" yaml:"code"`
	Text           string `json:"text,omitempty" yaml:"text,omitempty"`
	FieldName      string `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
	OtherFieldName string `json:"otherFieldName,omitempty" yaml:"otherFieldName,omitempty"`
	IsOther        bool   `json:"isOther,omitempty" yaml:"isOther,omitempty"`
}

// answerSet provides ordered answer lookup for variants that carry answers.
type answerSet struct {
	answers []Answer
	index   map[string]int
}

func newAnswerSet(answers []Answer) (answerSet, error) {
	set := answerSet{
		answers: make([]Answer, 0, len(answers)),
		index:   make(map[string]int, len(answers)),
	}
	for _, answer := range answers {
		answer.Code = strings.TrimSpace(answer.Code)
		if answer.Code == "" {
			return answerSet{}, fmt.Errorf("%w: empty code", ErrInvalidAnswer)
		}
		if _, exists := set.index[answer.Code]; exists {
			return answerSet{}, fmt.Errorf("%w: duplicate code %q", ErrInvalidAnswer, answer.Code)
		}
		set.index[answer.Code] = len(set.answers)
		set.answers = append(set.answers, answer)
	}
	return set, nil
}

// Answers returns the answer options in configured order.
func (s answerSet) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}

// Answer looks up an answer by code.
func (s answerSet) Answer(code string) (Answer, bool) {
	idx, ok := s.index[strings.TrimSpace(code)]
	if !ok {
		return Answer{}, false
	}
	return s.answers[idx], true
}

func (s answerSet) codes() []string {
	out := make([]string, len(s.answers))
	for idx, answer := range s.answers {
		out[idx] = answer.Code
	}
	return out
}

// checkCodes returns ErrUnknownAnswer for the first key of values that does
// not name an answer.
func (s answerSet) checkCodes(values map[string]string) error {
	for code := range values {
		if _, ok := s.Answer(code); !ok {
			return fmt.Errorf("%w %q", ErrUnknownAnswer, code)
		}
	}
	return nil
}
