// Package cli wires the questionnaire commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	questionnaire "github.com/goliatone/go-questionnaire"
	"github.com/goliatone/go-questionnaire/pkg/model"
	"github.com/goliatone/go-questionnaire/pkg/question"
)

// ErrInvalidAnswers is returned by validate when at least one question
// fails. The report has already been written when it is returned.
var ErrInvalidAnswers = errors.New("cli: answers are invalid")

type globalFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree. A fresh tree is returned on every
// call so tests can run commands in parallel.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "questionnaire",
		Short:         "Validate survey answers against a question model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newValidateCommand(flags))
	root.AddCommand(newPromptCommand(flags))
	root.AddCommand(newTypesCommand())
	return root
}

func (g *globalFlags) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("cli: --log-level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(g.logFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("cli: unknown --log-format %q", g.logFormat)
	}
}

func loadForm(path string, logger *slog.Logger) (*questionnaire.Form, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cli: --model is required")
	}
	dir, file := splitPath(path)
	return questionnaire.LoadFS(os.DirFS(dir), file,
		questionnaire.WithLogger(logger),
		questionnaire.WithQuestionOptions(question.WithLogger(logger)),
	)
}

func loadResponses(path string) (model.Responses, error) {
	dir, file := splitPath(path)
	return model.LoadResponsesFS(os.DirFS(dir), file)
}

func splitPath(path string) (string, string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filepath.Dir(abs), filepath.ToSlash(filepath.Base(abs))
}
