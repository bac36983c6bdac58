package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"
)

// Indent formats a JSON document with two-space indentation.
func Indent(raw []byte) []byte {
	return pretty.PrettyOptions(raw, &pretty.Options{
		Width:  80,
		Indent: "  ",
	})
}

// SaveJSON writes v to path as one indented JSON document, replacing any existing file.
// Raw JSON values are written as given; anything else is marshalled first.
func SaveJSON(path string, v any) error {
	var raw []byte
	switch data := v.(type) {
	case json.RawMessage:
		raw = data
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		raw = b
	}

	if !json.Valid(raw) {
		return fmt.Errorf("refusing to write %s: not a JSON document", path)
	}

	if err := os.WriteFile(path, Indent(raw), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
