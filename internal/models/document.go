package models

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// json is the codec shared by every scene document. It behaves like
// encoding/json, so Marshaler implementations and struct tags are honoured.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissingKey is returned when a document lacks a key its schema requires.
var ErrMissingKey = errors.New("missing key")

// document is a decoded JSON object whose keys are looked up on demand,
// so that a missing key can be reported by its full path.
type document struct {
	path   string                         // dotted path of this object inside the root document
	fields map[string]jsoniter.RawMessage // raw value of every key
}

func decodeDocument(data []byte) (document, error) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return document{}, fmt.Errorf("decode document: %w", err)
	}
	if fields == nil {
		return document{}, fmt.Errorf("decode document: expected a JSON object")
	}
	return document{fields: fields}, nil
}

func (d document) keyPath(key string) string {
	if d.path == "" {
		return key
	}
	return d.path + "." + key
}

// raw returns the undecoded value stored under key.
func (d document) raw(key string) (jsoniter.RawMessage, error) {
	raw, ok := d.fields[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingKey, d.keyPath(key))
	}
	return raw, nil
}

// field decodes the value stored under key into v.
func (d document) field(key string, v interface{}) error {
	raw, err := d.raw(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %q: %w", d.keyPath(key), err)
	}
	return nil
}

// optionalFloat decodes a number that may be null. The key itself must be
// present; null yields nil.
func (d document) optionalFloat(key string) (*float64, error) {
	raw, err := d.raw(key)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %q: %w", d.keyPath(key), err)
	}
	return &v, nil
}

// object returns the nested object stored under key.
func (d document) object(key string) (document, error) {
	raw, err := d.raw(key)
	if err != nil {
		return document{}, err
	}
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return document{}, fmt.Errorf("decode %q: %w", d.keyPath(key), err)
	}
	if fields == nil {
		return document{}, fmt.Errorf("%w %q", ErrMissingKey, d.keyPath(key))
	}
	return document{path: d.keyPath(key), fields: fields}, nil
}

// triple decodes a nested object with three float members named by keys.
func (d document) triple(key string, keys [3]string) ([3]float64, error) {
	var out [3]float64
	obj, err := d.object(key)
	if err != nil {
		return out, err
	}
	for i, k := range keys {
		if err := obj.field(k, &out[i]); err != nil {
			return out, err
		}
	}
	return out, nil
}
