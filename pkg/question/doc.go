// Package question models survey questions, their answer options, and the
// per-question validation rules that a rendering layer reacts to.
//
// Every concrete question embeds Base, which owns identity, the read-only and
// required flags, the ordered ValidationRule list, the RevalidationPolicy and
// three event channels (change, validation, validationComplete). Base
// orchestrates Validate: it walks the configured rules in order, asks the
// variant's RuleEvaluator for a RuleResult per rule, and aggregates failures
// into question-scoped errors or per-answer buckets. Variants never see the
// aggregation and Base never inspects variant state.
//
// Mutators on the variants (SetValue, SetOtherValue) are silent on invalid
// input: an unknown answer code or a redundant write leaves the state
// untouched and emits nothing. A confirmed mutation fires the change event
// and, once a completed validation has failed, re-runs Validate
// automatically.
//
// Rule kinds a variant does not evaluate are rejected by its constructor with
// ErrUnsupportedRule, so Validate never encounters an unknown kind.
package question
