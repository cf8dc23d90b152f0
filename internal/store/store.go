package store

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"

	"mars/internal/domain"
)

// DefaultLocation is used when a Store is created without a path.
const DefaultLocation = "./martian_spaceship.json"

// Store persists one payload at a fixed location.
type Store struct {
	location string
	codec    Codec
	mode     os.FileMode
	log      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCodec selects the on-disk format. The default is JSONCodec{}.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFileMode sets the permissions used when Send creates the file.
// An existing file keeps its permissions.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Store) { s.mode = mode }
}

// New returns a Store bound to location, or DefaultLocation if it is empty.
// It performs no I/O.
func New(location string, opts ...Option) *Store {
	if location == "" {
		location = DefaultLocation
	}
	s := &Store{
		location: location,
		codec:    JSONCodec{},
		mode:     0o644,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the path the store reads and writes.
func (s *Store) Location() string { return s.location }

// Send truncates the file at the store's location and writes payload to it.
// payload must be a map with string keys; anything else is rejected before
// the file is touched. It returns domain.Sent on success.
func (s *Store) Send(payload any) (int, error) {
	p, err := asPayload(payload)
	if err != nil {
		return 0, wrap("send", s.location, err)
	}
	if err := s.write(p); err != nil {
		s.log.Debug("send failed", "location", s.location, "err", err)
		return 0, wrap("send", s.location, err)
	}
	s.log.Debug("payload sent", "location", s.location, "keys", len(p))
	return domain.Sent, nil
}

// Receive decodes the payload currently stored at the store's location.
func (s *Store) Receive() (domain.Payload, error) {
	p, err := s.read()
	if err != nil {
		s.log.Debug("receive failed", "location", s.location, "err", err)
		return nil, wrap("receive", s.location, err)
	}
	s.log.Debug("payload received", "location", s.location, "keys", len(p))
	return p, nil
}

func (s *Store) write(p domain.Payload) (err error) {
	f, err := os.OpenFile(s.location, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.mode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.codec.Encode(f, p)
}

func (s *Store) read() (domain.Payload, error) {
	f, err := os.Open(s.location)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.codec.Decode(f)
}

// asPayload accepts any map keyed by strings.
func asPayload(v any) (domain.Payload, error) {
	switch m := v.(type) {
	case domain.Payload:
		if m == nil {
			return domain.Payload{}, nil
		}
		return m, nil
	case map[string]any:
		if m == nil {
			return domain.Payload{}, nil
		}
		return domain.Payload(m), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w, is: %T", ErrNotMapping, v)
	}
	p := make(domain.Payload, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		p[iter.Key().String()] = iter.Value().Interface()
	}
	return p, nil
}

// Compile-time assertion that Store implements domain.PayloadStore.
var _ domain.PayloadStore = (*Store)(nil)
