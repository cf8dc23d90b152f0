package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"mars/internal/domain"
)

// Codec converts a payload to and from its on-disk form.
type Codec interface {
	Encode(w io.Writer, p domain.Payload) error
	Decode(r io.Reader) (domain.Payload, error)
}

// JSONCodec stores the payload as a bare JSON object.
type JSONCodec struct {
	// Indent, when non-empty, pretty-prints the object.
	Indent string
	// UseNumber decodes numbers as json.Number instead of float64.
	UseNumber bool
}

// Encode writes p as a single JSON document.
func (c JSONCodec) Encode(w io.Writer, p domain.Payload) error {
	enc := json.NewEncoder(w)
	if c.Indent != "" {
		enc.SetIndent("", c.Indent)
	}
	return enc.Encode(p)
}

// Decode reads exactly one JSON object from r.
func (c JSONCodec) Decode(r io.Reader) (domain.Payload, error) {
	dec := json.NewDecoder(r)
	if c.UseNumber {
		dec.UseNumber()
	}
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: stored document is %s", ErrNotMapping, jsonKind(raw))
	}
	return domain.Payload(obj), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
