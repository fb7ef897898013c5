// Package visibility decides which questions are currently relevant. A
// question named in another question's triggeredQuestions is only shown once
// a visible trigger holds an answer; every other question is always shown.
package visibility

import (
	"slices"

	"github.com/goliatone/go-questionnaire/pkg/question"
)

// Answerer reports whether a question currently holds an answer. The
// built-in variants are recognised without implementing it.
type Answerer interface {
	Answered() bool
}

// Evaluator determines whether a question should be visible given the
// visibility already resolved for the rest of the form.
type Evaluator interface {
	Eval(q question.Question, ctx Context) bool
}

// Context carries the questions that trigger each id and the visibility
// resolved so far.
type Context struct {
	Triggers map[string][]question.Question
	Visible  map[string]bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(q question.Question, ctx Context) bool

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(q question.Question, ctx Context) bool {
	return fn(q, ctx)
}

// Triggered is the default Evaluator.
var Triggered Evaluator = EvaluatorFunc(func(q question.Question, ctx Context) bool {
	triggers, ok := ctx.Triggers[q.ID()]
	if !ok {
		return true
	}
	for _, trigger := range triggers {
		if ctx.Visible[trigger.ID()] && Answered(trigger) {
			return true
		}
	}
	return false
})

// Resolve returns the visibility of every question keyed by id. Trigger
// chains are followed until the result is stable; cycles resolve to hidden.
func Resolve(questions []question.Question, evaluator Evaluator) map[string]bool {
	if evaluator == nil {
		evaluator = Triggered
	}
	questions = slices.DeleteFunc(slices.Clone(questions), func(q question.Question) bool { return q == nil })

	ctx := Context{
		Triggers: make(map[string][]question.Question),
		Visible:  make(map[string]bool, len(questions)),
	}
	for _, q := range questions {
		for _, id := range q.TriggeredQuestions() {
			ctx.Triggers[id] = append(ctx.Triggers[id], q)
		}
	}

	for i := 0; i < len(questions)+1; i++ {
		changed := false
		for _, q := range questions {
			visible := evaluator.Eval(q, ctx)
			if ctx.Visible[q.ID()] != visible {
				ctx.Visible[q.ID()] = visible
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for _, q := range questions {
		if _, ok := ctx.Visible[q.ID()]; !ok {
			ctx.Visible[q.ID()] = false
		}
	}
	return ctx.Visible
}

// Answered reports whether q holds a value.
func Answered(q question.Question) bool {
	switch typed := q.(type) {
	case *question.Single:
		return typed.Value() != ""
	case *question.OpenTextList:
		return len(typed.Values()) > 0
	case Answerer:
		return typed.Answered()
	default:
		return len(q.FormValues()) > 0
	}
}
