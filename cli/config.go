package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// OutputFormat selects how an evaluation outcome is rendered.
type OutputFormat string

const (
	OutputJSON    OutputFormat = "json"
	OutputYAML    OutputFormat = "yaml"
	OutputText    OutputFormat = "text"
	OutputSummary OutputFormat = "summary"
)

// AllOutputFormats returns the recognized --format values, for flag help
// text and shell completion.
func AllOutputFormats() []string {
	return []string{string(OutputJSON), string(OutputYAML), string(OutputText), string(OutputSummary)}
}

// ErrUnknownFormat indicates an unrecognized --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseOutputFormat validates s against [AllOutputFormats].
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	for _, candidate := range AllOutputFormats() {
		if string(f) == candidate {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Flags holds CLI flag names for jspec configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Format  string
	Verbose string
	Workers string
	Color   string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values for jspec's evaluation and rendering
// surface.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags   Flags
	Format  string
	Workers int
	Verbose bool
	Color   bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Format:  "format",
		Verbose: "verbose",
		Workers: "workers",
		Color:   "color",
	}

	return f.NewConfig()
}

// RegisterFlags adds jspec flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Format, c.Flags.Format, string(OutputText),
		fmt.Sprintf("output format, one of: %s", AllOutputFormats()))
	flags.BoolVarP(&c.Verbose, c.Flags.Verbose, "v", false,
		"enable debug-level logging")
	flags.IntVar(&c.Workers, c.Flags.Workers, 0,
		"number of concurrent evaluation workers (0 = GOMAXPROCS)")
	flags.BoolVar(&c.Color, c.Flags.Color, false,
		"force ANSI color in text output (default: auto-detect terminal)")
}

// RegisterCompletions registers shell completions for jspec flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(AllOutputFormats(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}
