package main

import (
	"bytes"
	"encoding/json"

	"github.com/bytedance/sonic"
)

// sonicMarshal wires jsonenc to bytedance/sonic for the production binary.
func sonicMarshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// sonicMarshalIndent marshals with sonic, then reindents with encoding/json,
// since sonic's encoder does not expose a MarshalIndent of its own.
func sonicMarshalIndent(v any, prefix, indent string) ([]byte, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	if indentErr := json.Indent(&buf, data, prefix, indent); indentErr != nil {
		return nil, indentErr
	}

	return buf.Bytes(), nil
}
