package question

// Common carries the options shared by every question variant.
type Common struct {
	ID                 string           `json:"id" yaml:"id"`
	Text               string           `json:"text,omitempty" yaml:"text,omitempty"`
	ReadOnly           bool             `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Required           bool             `json:"required,omitempty" yaml:"required,omitempty"`
	ValidationRules    []ValidationRule `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`
	TriggeredQuestions []string         `json:"triggeredQuestions,omitempty" yaml:"triggeredQuestions,omitempty"`
}

// MultiCount bounds how many answers of a list question may hold a value.
// Nil fields are unconstrained.
type MultiCount struct {
	Equal *int `json:"equal,omitempty" yaml:"equal,omitempty"`
	Min   *int `json:"min,omitempty" yaml:"min,omitempty"`
	Max   *int `json:"max,omitempty" yaml:"max,omitempty"`
}

// IsSet reports whether any bound is configured.
func (m MultiCount) IsSet() bool {
	return m.Equal != nil || m.Min != nil || m.Max != nil
}

func (m MultiCount) data() map[string]int {
	out := make(map[string]int, 3)
	if m.Equal != nil {
		out["equal"] = *m.Equal
	}
	if m.Min != nil {
		out["min"] = *m.Min
	}
	if m.Max != nil {
		out["max"] = *m.Max
	}
	return out
}

func (m MultiCount) clone() MultiCount {
	return MultiCount{Equal: cloneInt(m.Equal), Min: cloneInt(m.Min), Max: cloneInt(m.Max)}
}

// OpenTextListConfig configures an OpenTextList question.
type OpenTextListConfig struct {
	Common      `yaml:",inline"`
	Answers     []Answer          `json:"answers" yaml:"answers"`
	Values      map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	OtherValues map[string]string `json:"otherValues,omitempty" yaml:"otherValues,omitempty"`
	MaxLength   *int              `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MultiCount  MultiCount        `json:"multiCount,omitempty" yaml:"multiCount,omitempty"`
}

// SingleConfig configures a Single question. AnswerButtons, Slider and
// Dropdown are presentation hints and do not affect validation.
type SingleConfig struct {
	Common        `yaml:",inline"`
	Answers       []Answer          `json:"answers" yaml:"answers"`
	Value         string            `json:"value,omitempty" yaml:"value,omitempty"`
	OtherValues   map[string]string `json:"otherValues,omitempty" yaml:"otherValues,omitempty"`
	AnswerButtons bool              `json:"answerButtons,omitempty" yaml:"answerButtons,omitempty"`
	Slider        bool              `json:"slider,omitempty" yaml:"slider,omitempty"`
	Dropdown      bool              `json:"dropdown,omitempty" yaml:"dropdown,omitempty"`
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
