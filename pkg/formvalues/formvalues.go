// Package formvalues prepares the formValues projection of questions for
// submission: values are merged across questions, stripped of markup and
// encoded as url.Values.
package formvalues

import (
	"html"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-questionnaire/pkg/question"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func textPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Collect merges the form values of every question. Later questions win on
// field-name collisions.
func Collect(questions ...question.Question) map[string]string {
	out := make(map[string]string)
	for _, q := range questions {
		if q == nil {
			continue
		}
		for name, value := range q.FormValues() {
			out[name] = value
		}
	}
	return out
}

// Sanitize returns a copy of values with all markup removed. The result is
// plain text: entities escaped by the policy are decoded again. Field names
// that are empty after trimming are dropped.
func Sanitize(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	p := textPolicy()
	out := make(map[string]string, len(values))
	for name, value := range values {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(html.UnescapeString(p.Sanitize(value)))
	}
	return out
}

// Encode converts values to url.Values.
func Encode(values map[string]string) url.Values {
	out := make(url.Values, len(values))
	for name, value := range values {
		out.Set(name, value)
	}
	return out
}

// Names returns the field names in sorted order.
func Names(values map[string]string) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
