// Package format renders a match.EvaluationOutcome for human and machine
// consumption: RenderJSON and RenderYAML produce the structural shape
// described in the external interfaces, RenderText produces an indented,
// optionally ANSI-colored multi-line rendering, and RenderSummary renders
// just the summary block on a single line.
package format
