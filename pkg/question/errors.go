package question

import "errors"

var (
	// ErrMissingID is returned when a question is configured without an id.
	ErrMissingID = errors.New("question: id is required")
	// ErrUnsupportedRule is returned when a question declares a rule kind its
	// variant does not evaluate.
	ErrUnsupportedRule = errors.New("question: unsupported validation rule")
	// ErrInvalidAnswer is returned for answers with an empty or duplicate code.
	ErrInvalidAnswer = errors.New("question: invalid answer")
	// ErrUnknownAnswer is returned when initial state references an answer
	// code the question does not define.
	ErrUnknownAnswer = errors.New("question: unknown answer code")
	// ErrInvalidBound is returned for negative length or count limits.
	ErrInvalidBound = errors.New("question: invalid bound")
)
