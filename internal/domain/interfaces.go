package domain

// PayloadStore persists a single payload at a fixed location.
type PayloadStore interface {
	// Send replaces the stored payload. payload must be a map keyed by
	// strings; it returns Sent on success.
	Send(payload any) (int, error)
	// Receive returns the currently stored payload.
	Receive() (Payload, error)
	// Location reports where the payload lives.
	Location() string
}
