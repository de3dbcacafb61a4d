package codec

import "bytes"

// Format names the serialization of an input byte stream. The parser
// itself is format-agnostic (valid JSON parses as YAML), so Format only
// affects diagnostic messages and FormatAuto's sniffing.
type Format int

const (
	// FormatAuto sniffs the leading non-whitespace byte of the input:
	// '{' or '[' implies JSON, anything else implies YAML.
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
)

// String names the format for diagnostics.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// Detect resolves FormatAuto against input's leading non-whitespace byte.
// Any other Format value is returned unchanged.
func Detect(format Format, input []byte) Format {
	if format != FormatAuto {
		return format
	}

	trimmed := bytes.TrimLeft(input, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}

	return FormatYAML
}
