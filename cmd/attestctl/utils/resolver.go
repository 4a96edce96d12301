package utils

import (
	"fmt"
	"strings"

	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/logging"
)

// ResolveBatch finds the batch an identifier refers to. An exact id wins,
// then a case-insensitive exact name, then a unique id prefix. Ambiguous
// prefixes and names are errors listing the candidates.
func ResolveBatch(batches []backend.Batch, identifier string) (*backend.Batch, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("batch id or name is required")
	}

	for i := range batches {
		if batches[i].ID == identifier {
			return &batches[i], nil
		}
	}

	var named []int
	for i := range batches {
		if strings.EqualFold(batches[i].Name, identifier) {
			named = append(named, i)
		}
	}
	if len(named) == 1 {
		return &batches[named[0]], nil
	}
	if len(named) > 1 {
		return nil, ambiguous(batches, named, identifier, "name")
	}

	var prefixed []int
	for i := range batches {
		if strings.HasPrefix(batches[i].ID, identifier) {
			prefixed = append(prefixed, i)
		}
	}
	switch len(prefixed) {
	case 0:
		return nil, fmt.Errorf("batch %q not found", identifier)
	case 1:
		b := &batches[prefixed[0]]
		logging.Info("Resolved partial ID '%s' to batch %s (%s)", identifier, b.ID, b.Name)
		return b, nil
	default:
		return nil, ambiguous(batches, prefixed, identifier, "partial ID")
	}
}

func ambiguous(batches []backend.Batch, idx []int, identifier, kind string) error {
	logging.Error("%s '%s' is not unique, matches multiple batches:", kind, identifier)
	for _, i := range idx {
		logging.Error("  %s (%s)", batches[i].ID, batches[i].Name)
	}
	return fmt.Errorf("%s %q matches %d batches", kind, identifier, len(idx))
}
