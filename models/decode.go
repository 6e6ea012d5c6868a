package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// DecodeError reports a record that could not be built from its JSON form
type DecodeError struct {
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode builds a record from raw JSON and validates its required fields.
// With strict set, fields the record does not declare are rejected.
func Decode[T any](raw []byte, strict bool) (T, error) {
	var v T
	if err := unmarshal(raw, &v, strict); err != nil {
		return v, &DecodeError{Type: typeName[T](), Err: err}
	}
	if err := Validate(&v); err != nil {
		return v, &DecodeError{Type: typeName[T](), Err: err}
	}
	return v, nil
}

// DecodeList builds records from a raw JSON array, failing on the first invalid item
func DecodeList[T any](raw []byte, strict bool) ([]T, error) {
	var items []T
	if err := unmarshal(raw, &items, strict); err != nil {
		return nil, &DecodeError{Type: "[]" + typeName[T](), Err: err}
	}
	for i := range items {
		if err := Validate(&items[i]); err != nil {
			return nil, &DecodeError{Type: typeName[T](), Err: fmt.Errorf("item %d: %w", i, err)}
		}
	}
	return items, nil
}

// Validate checks the validation tags of a record
func Validate(v any) error {
	return validatorInstance().Struct(v)
}

// ValidateVar checks a single value against a validation tag, e.g. "min=1,max=100"
func ValidateVar(v any, tag string) error {
	return validatorInstance().Var(v, tag)
}

func unmarshal(raw []byte, v any, strict bool) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(v)
}

func typeName[T any]() string {
	var v T
	return fmt.Sprintf("%T", v)
}
