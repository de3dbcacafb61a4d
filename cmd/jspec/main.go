// Package main provides the CLI entry point for jspec, a tool that
// evaluates a document against a declarative, MongoDB-style matching
// specification.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thekitchencoder/jspec/cli"
	"github.com/thekitchencoder/jspec/codec"
	"github.com/thekitchencoder/jspec/format"
	"github.com/thekitchencoder/jspec/format/jsonenc"
	"github.com/thekitchencoder/jspec/log"
	"github.com/thekitchencoder/jspec/match"
	"github.com/thekitchencoder/jspec/profiler"
	"github.com/thekitchencoder/jspec/version"
)

// exitUsage is returned for usage/parse errors, distinct from a clean
// not-matched evaluation outcome.
const exitUsage = 2

func main() {
	jsonenc.SetConfig(jsonenc.Config{
		Marshal:       sonicMarshal,
		MarshalIndent: sonicMarshalIndent,
	})

	cfg := cli.NewConfig()
	logCfg := log.NewConfig()
	prof := profiler.New()

	var matched bool

	rootCmd := &cobra.Command{
		Use:           "jspec <spec-file> <doc-file>",
		Short:         "Evaluate a document against a declarative matching specification",
		Version:       version.Version,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Verbose {
				logCfg.Level = "debug"
			}

			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			if err := prof.Start(); err != nil {
				return err
			}
			defer func() { _ = prof.Stop() }()

			outcome, err := run(cmd.Context(), cfg, args[0], args[1])
			if err != nil {
				return err
			}

			matched = everyTopLevelMatched(outcome)

			return renderOutcome(cmd.OutOrStdout(), cfg, outcome)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	prof.RegisterFlags(rootCmd.PersistentFlags())

	for _, regErr := range []error{
		cfg.RegisterCompletions(rootCmd),
		logCfg.RegisterCompletions(rootCmd),
	} {
		if regErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", regErr)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitUsage)
	}

	if !matched {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *cli.Config, specPath, docPath string) (*match.EvaluationOutcome, error) {
	specBytes, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("reading specification file: %w", err)
	}

	docBytes, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("reading document file: %w", err)
	}

	spec, err := codec.DecodeSpecification(specBytes, codec.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("decoding specification: %w", err)
	}

	doc, err := codec.DecodeDocument(docBytes)
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	registry := match.WithDefaults()

	opts := []match.Option{match.WithLogger(slog.Default())}
	if cfg.Workers > 0 {
		opts = append(opts, match.WithWorkers(cfg.Workers))
	}

	evaluator := match.NewEvaluator(registry, opts...)

	outcome, err := evaluator.Evaluate(ctx, doc, spec)
	if err != nil {
		return nil, fmt.Errorf("evaluating: %w", err)
	}

	return outcome, nil
}

func renderOutcome(w io.Writer, cfg *cli.Config, outcome *match.EvaluationOutcome) error {
	outFmt, err := cli.ParseOutputFormat(cfg.Format)
	if err != nil {
		return err
	}

	switch outFmt {
	case cli.OutputJSON:
		return format.RenderJSON(w, outcome)
	case cli.OutputYAML:
		return format.RenderYAML(w, outcome)
	case cli.OutputSummary:
		return format.RenderSummary(w, outcome)
	case cli.OutputText:
		return format.RenderText(w, outcome, format.TextOptions{Color: cfg.Color || isTerminal(w)})
	}

	return fmt.Errorf("%w: %q", cli.ErrUnknownFormat, cfg.Format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

func everyTopLevelMatched(outcome *match.EvaluationOutcome) bool {
	for _, r := range outcome.Criteria {
		if r.State() != match.Matched {
			return false
		}
	}

	for _, r := range outcome.Groups {
		if r.State() != match.Matched {
			return false
		}
	}

	return true
}
