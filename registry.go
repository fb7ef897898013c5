package questionnaire

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-questionnaire/pkg/model"
	"github.com/goliatone/go-questionnaire/pkg/question"
)

// BuildFunc turns a model definition into a question.
type BuildFunc func(def model.Definition, opts ...question.Option) (question.Question, error)

// Registry maps model question types to builders. The latest registration
// for a type wins.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]BuildFunc
}

// NewRegistry returns a registry with the built-in question types.
func NewRegistry() *Registry {
	reg := &Registry{builders: make(map[string]BuildFunc)}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces the builder for kind. Empty kinds and nil
// builders are ignored.
func (r *Registry) Register(kind string, build BuildFunc) {
	if r == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.builders == nil {
		r.builders = make(map[string]BuildFunc)
	}
	r.builders[trimmed] = build
}

// Build constructs the question described by def.
func (r *Registry) Build(def model.Definition, opts ...question.Option) (question.Question, error) {
	if r == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, def.Type)
	}
	r.mu.RLock()
	build, ok := r.builders[strings.TrimSpace(def.Type)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (question %q)", ErrUnknownType, def.Type, def.ID)
	}
	return build(def, opts...)
}

// Types lists the registered question types in sorted order.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.builders))
	for kind := range r.builders {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(model.TypeSingle, func(def model.Definition, opts ...question.Option) (question.Question, error) {
		var cfg question.SingleConfig
		if err := def.Decode(&cfg); err != nil {
			return nil, err
		}
		return question.NewSingle(cfg, opts...)
	})

	r.Register(model.TypeOpenTextList, func(def model.Definition, opts ...question.Option) (question.Question, error) {
		var cfg question.OpenTextListConfig
		if err := def.Decode(&cfg); err != nil {
			return nil, err
		}
		return question.NewOpenTextList(cfg, opts...)
	})
}
