package match

import "strconv"

// rootPath is the literal used to denote the document root itself in
// MissingPaths and explanations, per §4.2.
const rootPath = "root"

// buildFieldPath appends a field segment to a dotted path. An empty base
// (meaning "the document root") yields just field.
func buildFieldPath(base, field string) string {
	if base == "" {
		return field
	}

	return base + "." + field
}

// buildIndexPath appends a sequence index segment to a dotted path.
func buildIndexPath(base string, index int) string {
	seg := "[" + strconv.Itoa(index) + "]"

	if base == "" {
		return seg
	}

	return base + seg
}

// displayPath renders path for human-readable output, substituting the
// root literal for the empty path.
func displayPath(path string) string {
	if path == "" {
		return rootPath
	}

	return path
}
