// Package cli provides Cobra/pflag-based CLI configuration for jspec:
// flags for output format, verbosity, and evaluator worker count, plus
// shell-completion registration.
package cli
