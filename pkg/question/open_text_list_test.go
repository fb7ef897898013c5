package question_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questionnaire/pkg/question"
	"github.com/goliatone/go-questionnaire/pkg/valuemap"
)

func intPtr(v int) *int { return &v }

func newList(t *testing.T, mutate func(*question.OpenTextListConfig)) *question.OpenTextList {
	t.Helper()
	cfg := question.OpenTextListConfig{
		Common: question.Common{ID: "list"},
		Answers: []question.Answer{
			{Code: "1", FieldName: "f1"},
			{Code: "2", FieldName: "f2"},
			{Code: "9", FieldName: "f9", OtherFieldName: "f9_other", IsOther: true},
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	q, err := question.NewOpenTextList(cfg)
	if err != nil {
		t.Fatalf("new open text list: %v", err)
	}
	return q
}

func recordChanges(q question.Question) *[]question.Changes {
	var changes []question.Changes
	q.ChangeEvent().On(func(evt question.ChangeEvent) {
		changes = append(changes, evt.Changes)
	})
	return &changes
}

func TestOpenTextList_SetValueSparseAndDiff(t *testing.T) {
	t.Parallel()

	q := newList(t, nil)
	changes := recordChanges(q)

	q.SetValue("1", "hello")
	q.SetValue("1", "hello")
	q.SetValue("2", 42)
	q.SetValue("1", "")
	q.SetValue("1", nil)
	q.SetValue("missing", "x")

	want := []question.Changes{
		{Values: valuemap.Diff{"1": {Value: "hello"}}},
		{Values: valuemap.Diff{"2": {Value: "42"}}},
		{Values: valuemap.Diff{"1": {Deleted: true}}},
	}
	if diff := cmp.Diff(want, *changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"2": "42"}, q.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if _, ok := q.Value("1"); ok {
		t.Fatalf("cleared answer must not be stored")
	}
}

func TestOpenTextList_SetOtherValueSparseAndDiff(t *testing.T) {
	t.Parallel()

	q := newList(t, nil)
	changes := recordChanges(q)

	q.SetOtherValue("9", "elsewhere")
	q.SetOtherValue("9", "elsewhere")
	q.SetOtherValue("1", 7)
	q.SetOtherValue("9", "")
	q.SetOtherValue("9", nil)
	q.SetOtherValue("missing", "x")

	want := []question.Changes{
		{OtherValues: valuemap.Diff{"9": {Value: "elsewhere"}}},
		{OtherValues: valuemap.Diff{"1": {Value: "7"}}},
		{OtherValues: valuemap.Diff{"9": {Deleted: true}}},
	}
	if diff := cmp.Diff(want, *changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"1": "7"}, q.OtherValues()); diff != "" {
		t.Fatalf("other values mismatch (-want +got):\n%s", diff)
	}
	if q.Values() != nil {
		t.Fatalf("other values must not touch values, got %v", q.Values())
	}
}

func TestOpenTextList_ChangeEventCarriesModel(t *testing.T) {
	t.Parallel()

	q := newList(t, nil)
	var model question.Question
	q.ChangeEvent().On(func(evt question.ChangeEvent) { model = evt.Model })

	q.SetOtherValue("9", "other text")

	if model != question.Question(q) {
		t.Fatalf("change event should carry the question itself")
	}
	if diff := cmp.Diff(map[string]string{"9": "other text"}, q.OtherValues()); diff != "" {
		t.Fatalf("other values mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTextList_MaxLengthScenario(t *testing.T) {
	t.Parallel()

	q := newList(t, func(cfg *question.OpenTextListConfig) {
		cfg.MaxLength = intPtr(5)
		cfg.ValidationRules = []question.ValidationRule{{Type: question.RuleMaxLength, Message: "too long"}}
	})

	q.SetValue("1", "toolong")
	if diff := cmp.Diff(map[string]string{"1": "toolong"}, q.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	result := q.Validate()
	if result.IsValid() {
		t.Fatalf("expected MaxLength failure")
	}
	want := []question.AnswerValidationResult{{
		AnswerCode: "1",
		Errors: []question.ValidationError{{
			RuleType: question.RuleMaxLength,
			Message:  "too long",
			Data:     map[string]int{"maxLength": 5},
		}},
	}}
	if diff := cmp.Diff(want, result.AnswerValidationResults); diff != "" {
		t.Fatalf("answer results mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTextList_MaxLengthCountsRunes(t *testing.T) {
	t.Parallel()

	q := newList(t, func(cfg *question.OpenTextListConfig) {
		cfg.MaxLength = intPtr(3)
		cfg.ValidationRules = []question.ValidationRule{{Type: question.RuleMaxLength}}
	})
	q.SetValue("1", "äöü")

	if result := q.Validate(); !result.IsValid() {
		t.Fatalf("three runes fit a limit of three, got %+v", result)
	}
}

func TestOpenTextList_Required(t *testing.T) {
	t.Parallel()

	rules := []question.ValidationRule{{Type: question.RuleRequired, Message: "answer all"}}

	q := newList(t, func(cfg *question.OpenTextListConfig) {
		cfg.Required = true
		cfg.ValidationRules = rules
	})
	q.SetValue("1", "a")

	result := q.Validate()
	if _, ok := result.AnswerResult("2"); !ok {
		t.Fatalf("answer 2 should be reported, got %+v", result)
	}
	if _, ok := result.AnswerResult("9"); ok {
		t.Fatalf("other answers are not covered by Required")
	}

	bounded := newList(t, func(cfg *question.OpenTextListConfig) {
		cfg.Required = true
		cfg.ValidationRules = rules
		cfg.MultiCount = question.MultiCount{Min: intPtr(1)}
	})
	if result := bounded.Validate(); !result.IsValid() {
		t.Fatalf("Required defers to MultiCount when bounds are set, got %+v", result)
	}
}

func TestOpenTextList_OtherRequired(t *testing.T) {
	t.Parallel()

	q := newList(t, func(cfg *question.OpenTextListConfig) {
		cfg.ValidationRules = []question.ValidationRule{{Type: question.RuleOtherRequired, Message: "specify"}}
	})

	if result := q.Validate(); !result.IsValid() {
		t.Fatalf("unanswered other is valid, got %+v", result)
	}

	q.SetValue("9", "yes")
	result := q.Validate()
	if _, ok := result.AnswerResult("9"); !ok {
		t.Fatalf("other answer without text should fail, got %+v", result)
	}

	q.SetOtherValue("9", "details")
	if !q.Validate().IsValid() {
		t.Fatalf("other answer with text should pass")
	}
}

func TestOpenTextList_MultiCount(t *testing.T) {
	t.Parallel()

	rules := []question.ValidationRule{
		{Type: question.RuleRequired},
		{Type: question.RuleMultiCount, Message: "pick two"},
	}

	t.Run("bypassed when optional and unanswered", func(t *testing.T) {
		q := newList(t, func(cfg *question.OpenTextListConfig) {
			cfg.ValidationRules = rules
			cfg.MultiCount = question.MultiCount{Min: intPtr(2)}
		})
		if result := q.Validate(); !result.IsValid() {
			t.Fatalf("expected bypass, got %+v", result)
		}
	})

	cases := []struct {
		name   string
		bounds question.MultiCount
		values []string
		valid  bool
	}{
		{"equal mismatch", question.MultiCount{Equal: intPtr(2)}, []string{"1"}, false},
		{"equal match", question.MultiCount{Equal: intPtr(2)}, []string{"1", "2"}, true},
		{"below min", question.MultiCount{Min: intPtr(2)}, []string{"1"}, false},
		{"above max", question.MultiCount{Max: intPtr(1)}, []string{"1", "2"}, false},
		{"within range", question.MultiCount{Min: intPtr(1), Max: intPtr(2)}, []string{"2"}, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q := newList(t, func(cfg *question.OpenTextListConfig) {
				cfg.ValidationRules = rules
				cfg.MultiCount = tc.bounds
			})
			for _, code := range tc.values {
				q.SetValue(code, "v")
			}
			result := q.Validate()
			if result.IsValid() != tc.valid {
				t.Fatalf("want valid=%v, got %+v", tc.valid, result)
			}
			if !tc.valid {
				if len(result.Errors) != 1 || len(result.AnswerValidationResults) != 0 {
					t.Fatalf("MultiCount failures are question scoped, got %+v", result)
				}
			}
		})
	}

	t.Run("required and unanswered fails", func(t *testing.T) {
		q := newList(t, func(cfg *question.OpenTextListConfig) {
			cfg.Required = true
			cfg.ValidationRules = rules
			cfg.MultiCount = question.MultiCount{Min: intPtr(1)}
		})
		if q.Validate().IsValid() {
			t.Fatalf("required question with no answers should fail MultiCount")
		}
	})
}

func TestOpenTextList_EagerRevalidationAfterFailure(t *testing.T) {
	t.Parallel()

	q := newList(t, func(cfg *question.OpenTextListConfig) {
		cfg.MaxLength = intPtr(2)
		cfg.ValidationRules = []question.ValidationRule{{Type: question.RuleMaxLength}}
	})
	var results []bool
	q.ValidationEvent().On(func(r *question.QuestionValidationResult) {
		results = append(results, r.IsValid())
	})

	q.SetValue("1", "long")
	if len(results) != 0 {
		t.Fatalf("no automatic validation before the first failure")
	}

	q.Validate()
	q.SetValue("1", "ok")
	q.SetValue("1", "ok")

	if diff := cmp.Diff([]bool{false, true}, results); diff != "" {
		t.Fatalf("validation sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTextList_FormValues(t *testing.T) {
	t.Parallel()

	q := newList(t, nil)
	q.SetValue("2", "two")
	q.SetValue("9", "nine")
	q.SetOtherValue("9", "because")

	want := map[string]string{"f2": "two", "f9": "nine", "f9_other": "because"}
	if diff := cmp.Diff(want, q.FormValues()); diff != "" {
		t.Fatalf("form values mismatch (-want +got):\n%s", diff)
	}
}

func TestNewOpenTextList_ConfigErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  question.OpenTextListConfig
		want error
	}{
		{
			name: "unsupported rule",
			cfg: question.OpenTextListConfig{
				Common: question.Common{ID: "q", ValidationRules: []question.ValidationRule{{Type: question.RuleRequiredIfOtherSpecified}}},
			},
			want: question.ErrUnsupportedRule,
		},
		{
			name: "duplicate answer",
			cfg: question.OpenTextListConfig{
				Common:  question.Common{ID: "q"},
				Answers: []question.Answer{{Code: "1"}, {Code: " 1 "}},
			},
			want: question.ErrInvalidAnswer,
		},
		{
			name: "unknown initial value",
			cfg: question.OpenTextListConfig{
				Common:  question.Common{ID: "q"},
				Answers: []question.Answer{{Code: "1"}},
				Values:  map[string]string{"2": "x"},
			},
			want: question.ErrUnknownAnswer,
		},
		{
			name: "negative bound",
			cfg: question.OpenTextListConfig{
				Common:     question.Common{ID: "q"},
				MultiCount: question.MultiCount{Min: intPtr(-1)},
			},
			want: question.ErrInvalidBound,
		},
	}
	for _, tc := range cases {
		if _, err := question.NewOpenTextList(tc.cfg); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNewOpenTextList_InitialStateDropsEmptyValues(t *testing.T) {
	t.Parallel()

	q := newList(t, func(cfg *question.OpenTextListConfig) {
		cfg.Values = map[string]string{"1": "", "2": "kept"}
	})
	if diff := cmp.Diff(map[string]string{"2": "kept"}, q.Values()); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
}
