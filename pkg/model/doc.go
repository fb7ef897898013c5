// Package model reads questionnaire documents: the list of question
// definitions a form is built from, and response documents holding the
// answers to load into those questions. Both accept JSON or YAML. Model
// documents are checked against an embedded JSON Schema before decoding so
// structural mistakes are reported with their location instead of surfacing
// as zero values. Definitions keep their raw JSON so each question type can
// decode the fields it understands.
package model
