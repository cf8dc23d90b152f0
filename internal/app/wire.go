package app

import (
	"io"
	"log/slog"

	"mars/internal/domain"
	mlog "mars/internal/log"
	"mars/internal/store"
)

// Wire bundles the logger and store for the CLI.
type Wire struct {
	Config Config
	Log    *slog.Logger
	Store  domain.PayloadStore
}

// NewWire constructs the dependency graph from cfg. Logs go to logOut.
func NewWire(cfg Config, logOut io.Writer) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := mlog.ParseLevel(cfg.LogLevel)
	logger := mlog.New(logOut, level, cfg.LogFormat)

	s := store.New(cfg.Location,
		store.WithCodec(codecFor(cfg)),
		store.WithLogger(logger.With("component", "store")),
	)
	logger.Debug("wired store", "location", s.Location(), "sealed", cfg.Passphrase != "")

	return &Wire{Config: cfg, Log: logger, Store: s}, nil
}

// codecFor picks the on-disk format: sealed when a passphrase is set,
// plain JSON otherwise. Both honour cfg.Indent.
func codecFor(cfg Config) store.Codec {
	inner := store.JSONCodec{Indent: cfg.Indent}
	if cfg.Passphrase == "" {
		return inner
	}
	sealed := store.NewSealedCodec(cfg.Passphrase)
	sealed.Inner = inner
	return sealed
}
