// Package format encodes command output as json or yaml.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "classsign/internal/platform/errors"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

const separator = "---\n"

func Parse(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", Text:
		return Text, nil
	case JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("output format %q must be text, json or yaml: %w", value, apperrors.ErrInvalidInput)
	}
}

// Encode writes v as json or yaml. YAML output is a single document opened
// with a separator so several encodes can be concatenated into one stream.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case YAML:
		raw, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if _, err := io.WriteString(w, separator); err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	default:
		return fmt.Errorf("format %q is not structured: %w", f, apperrors.ErrInvalidInput)
	}
}
