package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/thekitchencoder/jspec/format/jsonenc"
	"github.com/thekitchencoder/jspec/match"
)

// RenderJSON writes outcome as indented JSON, matching the shape in §6.
// Encoding goes through [jsonenc.MarshalIndent] so the CLI can swap in a
// faster implementation without this package knowing about it.
func RenderJSON(w io.Writer, outcome *match.EvaluationOutcome) error {
	data, err := jsonenc.MarshalIndent(toOutcomeDoc(outcome), "", "  ")
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}

	_, err = w.Write(append(data, '\n'))

	return err
}

// RenderYAML writes outcome as YAML, the same structural shape as
// RenderJSON (§6).
func RenderYAML(w io.Writer, outcome *match.EvaluationOutcome) error {
	data, err := yaml.Marshal(toOutcomeDoc(outcome))
	if err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	_, err = w.Write(data)

	return err
}

// RenderSummary writes a single-line rendering of outcome.Summary.
func RenderSummary(w io.Writer, outcome *match.EvaluationOutcome) error {
	s := outcome.Summary

	_, err := fmt.Fprintf(w, "%s: total=%d matched=%d notMatched=%d undetermined=%d fullyDetermined=%t\n",
		outcome.SpecificationID, s.Total, s.Matched, s.NotMatched, s.Undetermined, s.FullyDetermined)

	return err
}

// TextOptions configures [RenderText].
type TextOptions struct {
	// Color enables ANSI coloring of the state labels. Callers typically
	// set this from golang.org/x/term.IsTerminal on the destination file
	// descriptor (§4.9).
	Color bool
}

// RenderText writes a human-readable, indented multi-line rendering of
// outcome: one line per top-level result, with composite children indented
// beneath their parent.
func RenderText(w io.Writer, outcome *match.EvaluationOutcome, opts TextOptions) error {
	for _, r := range outcome.Criteria {
		if err := writeResultLine(w, r, 0, opts); err != nil {
			return err
		}
	}

	for _, r := range outcome.Groups {
		if err := writeResultLine(w, r, 0, opts); err != nil {
			return err
		}
	}

	return RenderSummary(w, outcome)
}

func writeResultLine(w io.Writer, r match.Result, depth int, opts TextOptions) error {
	indent := strings.Repeat("  ", depth)

	label := stateLabel(r.State(), opts.Color)

	line := fmt.Sprintf("%s%s [%s]", indent, r.CriterionID(), label)
	if r.Reason() != "" {
		line += " -- " + r.Reason()
	}

	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	switch v := r.(type) {
	case *match.CompositeResult:
		for _, child := range v.Children {
			if err := writeResultLine(w, child, depth+1, opts); err != nil {
				return err
			}
		}
	case *match.ReferenceResult:
		return writeResultLine(w, v.Resolved, depth+1, opts)
	}

	return nil
}

const (
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func stateLabel(state match.EvaluationState, color bool) string {
	label := state.String()
	if !color {
		return label
	}

	switch state {
	case match.Matched:
		return ansiGreen + label + ansiReset
	case match.NotMatched:
		return ansiRed + label + ansiReset
	default:
		return ansiYellow + label + ansiReset
	}
}
