package question

import (
	"io"
	"log/slog"
)

// Option configures a question at construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes debug records (rejected writes, policy escalation,
// suppressed revalidation) to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	cfg := options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// ValidateOption tunes a single Validate call.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	raiseComplete bool
	filter        RuleFilter
}

// WithoutCompleteEvent skips the validationComplete event, and with it any
// policy escalation.
func WithoutCompleteEvent() ValidateOption {
	return func(cfg *validateConfig) {
		cfg.raiseComplete = false
	}
}

// WithRuleFilter evaluates only the rules accepted by filter.
func WithRuleFilter(filter RuleFilter) ValidateOption {
	return func(cfg *validateConfig) {
		cfg.filter = filter
	}
}

// OnlyRules evaluates only rules of the listed kinds.
func OnlyRules(kinds ...RuleKind) ValidateOption {
	return WithRuleFilter(func(rule ValidationRule) bool {
		for _, kind := range kinds {
			if rule.Type == kind {
				return true
			}
		}
		return false
	})
}
