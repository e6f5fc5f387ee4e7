package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// ParameterSet is an immutable mapping from parameter names to JSON values.
//
// A key mapped to nil is present with a JSON null value, which is distinct
// from a key that is absent. Values are kept opaque: no schema is applied.
type ParameterSet struct {
	values map[string]any
}

// NewParameterSet creates a ParameterSet holding a deep copy of values.
func NewParameterSet(values map[string]any) ParameterSet {
	cp := make(map[string]any, len(values))
	for k, v := range values {
		cp[k] = copyValue(v)
	}
	return ParameterSet{values: cp}
}

// ParseParameters decodes a JSON object into a ParameterSet.
// Numbers are preserved as json.Number so they reach the task unchanged.
func ParseParameters(data []byte) (ParameterSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return ParameterSet{}, zerr.Wrap(ErrInvalidParameters, err.Error())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ParameterSet{}, zerr.Wrap(ErrInvalidParameters, "unexpected data after JSON object")
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return ParameterSet{}, ErrInvalidParameters
	}
	return ParameterSet{values: obj}, nil
}

// Get returns the value for key and whether the key is present.
func (p ParameterSet) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return copyValue(v), ok
}

// Len returns the number of parameters.
func (p ParameterSet) Len() int {
	return len(p.values)
}

// Keys returns the parameter names in sorted order.
func (p ParameterSet) Keys() []string {
	return slices.Sorted(maps.Keys(p.values))
}

// With returns a new ParameterSet with key set to value.
func (p ParameterSet) With(key string, value any) ParameterSet {
	next := p.Map()
	next[key] = copyValue(value)
	return ParameterSet{values: next}
}

// Map returns a deep copy of the parameters as a plain map.
func (p ParameterSet) Map() map[string]any {
	cp := make(map[string]any, len(p.values))
	for k, v := range p.values {
		cp[k] = copyValue(v)
	}
	return cp
}

// MarshalJSON encodes the set as a JSON object. An empty set encodes as {}.
func (p ParameterSet) MarshalJSON() ([]byte, error) {
	if p.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.values)
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, inner := range t {
			cp[k] = copyValue(inner)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, inner := range t {
			cp[i] = copyValue(inner)
		}
		return cp
	default:
		return v
	}
}
