package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/concave-dev/attest/internal/batch"
	"gopkg.in/yaml.v3"
)

// LoadForm reads a batch form from a YAML file, or from stdin when path is
// "-". Unknown keys are rejected so a misspelled field is not silently
// dropped.
func LoadForm(path string) (*batch.Form, error) {
	if path == "" {
		return nil, fmt.Errorf("form file is required (use -f FILE or -f - for stdin)")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}
	return ParseForm(data)
}

// ParseForm decodes a YAML batch form.
func ParseForm(data []byte) (*batch.Form, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var form batch.Form
	if err := dec.Decode(&form); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("form is empty")
		}
		return nil, fmt.Errorf("invalid form: %w", err)
	}
	return &form, nil
}
