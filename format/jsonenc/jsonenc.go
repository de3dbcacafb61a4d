// Package jsonenc is a small swappable JSON encoding layer: it defaults to
// encoding/json but callers may install a faster implementation (for
// example github.com/bytedance/sonic) via SetConfig, since both satisfy the
// same Marshal/MarshalIndent function-value shape.
package jsonenc

import stdjson "encoding/json"

// Config holds the JSON marshal functions the format package uses to
// render an outcome.
type Config struct {
	Marshal       func(v any) ([]byte, error)
	MarshalIndent func(v any, prefix, indent string) ([]byte, error)
}

// DefaultConfig returns the stdlib-backed configuration.
func DefaultConfig() Config {
	return Config{
		Marshal:       stdjson.Marshal,
		MarshalIndent: stdjson.MarshalIndent,
	}
}

var config = DefaultConfig()

// SetConfig installs c as the global JSON configuration. Call it once
// during start-up, before any rendering happens.
func SetConfig(c Config) {
	config = c
}

// GetConfig returns the current global JSON configuration.
func GetConfig() Config {
	return config
}

// Marshal encodes v using the installed configuration.
func Marshal(v any) ([]byte, error) {
	return config.Marshal(v)
}

// MarshalIndent encodes v with indentation using the installed configuration.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return config.MarshalIndent(v, prefix, indent)
}
