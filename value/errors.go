package value

import "errors"

// ErrDuplicateKey is returned by [Mapping.SetUnique] when a key has already
// been set.
var ErrDuplicateKey = errors.New("duplicate key")
