// Package yamlutil wraps YAML parsing behind a small seam so profile and
// config loading do not depend on the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps YAML input at 1MB. Profile and config files are tiny;
// anything larger is a mistake, not a document.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("md2docx: nil or empty YAML data")
	ErrNilDestination = errors.New("md2docx: nil YAML destination pointer")
	ErrInputTooLarge  = errors.New("md2docx: YAML input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("md2docx: yaml: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("md2docx: yaml: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields, used for the config file where a
// misspelled key should fail loudly instead of being silently dropped.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("md2docx: yaml: %w", err)
	}
	return nil
}
