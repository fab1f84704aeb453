package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fightgraphs/pipeline/internal/identity"
)

var (
	ErrMissingKey           = errors.New("missing natural key")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMissingFighter       = errors.New("missing fighter")
)

// Entity kinds reported in ValidationError.
const (
	EntityFighter = "fighter"
	EntityEvent   = "event"
	EntityFight   = "fight"
)

// ValidationError rejects one source document. Err is one of the sentinel
// errors above and can be matched with errors.Is.
type ValidationError struct {
	Entity     string
	NaturalKey string
	Field      string
	Err        error
}

func (e *ValidationError) Error() string {
	key := e.NaturalKey
	if key == "" {
		key = "<no key>"
	}
	return fmt.Sprintf("%s %q: %s: %v", e.Entity, key, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// deriveID computes the surrogate id of a required natural key.
func deriveID(entity, field, key string) (int64, error) {
	id, err := identity.ID(key)
	if err != nil {
		return 0, &ValidationError{
			Entity:     entity,
			NaturalKey: key,
			Field:      field,
			Err:        fmt.Errorf("%w: %w", ErrMissingKey, err),
		}
	}
	return id, nil
}

// requireField fails when value is empty or whitespace.
func requireField(entity, key, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Entity: entity, NaturalKey: key, Field: field, Err: ErrMissingRequiredField}
	}
	return nil
}

// optionalID derives an id for a key that may be absent.
func optionalID(key string) *int64 {
	id, err := identity.ID(key)
	if err != nil {
		return nil
	}
	return &id
}

// childID derives the id of a row identified by a composite natural key.
// Callers only pass parts whose first element is a non-empty key.
func childID(parts ...string) int64 {
	id, _ := identity.ID(strings.Join(parts, "|"))
	return id
}

// optional returns nil for blank strings and the "--" placeholder.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return nil
	}
	return &s
}
