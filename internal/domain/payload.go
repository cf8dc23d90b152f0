package domain

// Payload is a schema-less mapping of string keys to JSON-representable
// values: string, number, bool, nil, []any and nested map[string]any.
type Payload map[string]any

// Sent is the marker returned by a successful send.
const Sent = 1
