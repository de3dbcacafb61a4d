package match

import "errors"

// ErrInvalidArgument is returned for bad registry input (empty name, nil
// handler) and bad specification construction (empty id, duplicate id,
// cycle in group references). See §7 of the specification.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrMalformedSpecification is a sentinel for a collaborator to wrap when it
// surfaces a parsing/structural problem. The match package never returns it
// itself, and the codec package reports such problems with its own
// codec.ErrMalformedSpecification instead of this one.
var ErrMalformedSpecification = errors.New("malformed specification")
