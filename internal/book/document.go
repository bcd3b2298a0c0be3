package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// Member is one key and value of a persisted document.
type Member[V any] struct {
	Key   string
	Value V
}

// Document is a JSON object whose members keep their order when encoded.
// Books serialize to a Document in insertion order so a save and reload
// keeps pagination stable.
type Document[V any] []Member[V]

// Keys returns the member keys in order.
func (d Document[V]) Keys() []string {
	keys := make([]string, len(d))
	for i, m := range d {
		keys[i] = m.Key
	}
	return keys
}

// MarshalJSON writes the members as one JSON object in order.
func (d Document[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, m := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(m.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(m.Value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", m.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject splits a JSON object into its raw members in document
// order. Anything other than a single object, including null, fails with
// ErrInvalidData, as does a key that appears twice.
func decodeObject(data []byte) (Document[json.RawMessage], error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: expected a JSON object: %v", types.ErrInvalidData, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", types.ErrInvalidData)
	}

	doc := Document[json.RawMessage]{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", types.ErrInvalidData, tok)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: key %q appears twice", types.ErrInvalidData, key)
		}
		seen[key] = true

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidData, key, err)
		}
		doc = append(doc, Member[json.RawMessage]{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: data after the closing brace", types.ErrInvalidData)
	}
	return doc, nil
}
