package domain

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field that distinguishes "absent" from "set to null".
// Set reports whether the field was supplied; Value is nil for an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the document.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// SQLValue returns the value to bind for the field: nil for null.
func (n Nullable[T]) SQLValue() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
