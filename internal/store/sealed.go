package store

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"mars/internal/domain"
	"mars/internal/util/memzero"
)

const (
	saltSize = 16

	// Upper bounds on the scrypt costs accepted from disk. N is capped so a
	// hostile envelope cannot demand gigabytes of memory.
	maxScryptN  = 1 << 20
	maxScryptRP = 1 << 30
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted payload")

	errEmptyPassphrase = errors.New("empty passphrase")
)

// kdf holds the scrypt costs used to derive the payload key.
type kdf struct {
	N int `json:"scrypt_N"`
	R int `json:"scrypt_r"`
	P int `json:"scrypt_p"`
}

var defaultKDF = kdf{N: 1 << 15, R: 8, P: 1}

func (k kdf) validate() error {
	switch {
	case k.N < 2 || k.N > maxScryptN || bits.OnesCount(uint(k.N)) != 1:
		return fmt.Errorf("scrypt N %d: want a power of two in [2, %d]", k.N, maxScryptN)
	case k.R < 1 || k.P < 1:
		return fmt.Errorf("scrypt r=%d p=%d: both must be at least 1", k.R, k.P)
	case k.R >= maxScryptRP || k.P >= maxScryptRP || k.R*k.P >= maxScryptRP:
		return fmt.Errorf("scrypt r=%d p=%d: r*p must be below %d", k.R, k.P, maxScryptRP)
	}
	return nil
}

// aead derives the payload key from passphrase and salt. The key is wiped
// before returning; the AEAD keeps its own copy.
func (k kdf) aead(passphrase string, salt []byte) (cipher.AEAD, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	if len(salt) != saltSize {
		return nil, fmt.Errorf("salt is %d bytes, want %d", len(salt), saltSize)
	}
	key, err := scrypt.Key([]byte(passphrase), salt, k.N, k.R, k.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	return chacha20poly1305.New(key)
}

// envelope is the sealed file: KDF costs, salt and ciphertext. The salt
// doubles as associated data, binding the ciphertext to its key.
type envelope struct {
	Salt []byte `json:"salt"`
	kdf
	Cipher []byte `json:"cipher"`
}

// SealedCodec encrypts the JSON form of the payload with a key derived
// from Passphrase. The inner document is produced by Inner.
type SealedCodec struct {
	Passphrase string
	Inner      JSONCodec

	// scrypt cost parameters; zero values select the defaults.
	N, R, P int
}

// NewSealedCodec returns a SealedCodec using the default scrypt costs.
func NewSealedCodec(passphrase string) SealedCodec {
	return SealedCodec{Passphrase: passphrase}
}

func (c SealedCodec) kdf() kdf {
	k := defaultKDF
	if c.N > 0 {
		k.N = c.N
	}
	if c.R > 0 {
		k.R = c.R
	}
	if c.P > 0 {
		k.P = c.P
	}
	return k
}

// Encode seals p and writes the envelope to w.
func (c SealedCodec) Encode(w io.Writer, p domain.Payload) error {
	if c.Passphrase == "" {
		return errEmptyPassphrase
	}
	var buf bytes.Buffer
	if err := c.Inner.Encode(&buf, p); err != nil {
		return err
	}
	defer memzero.Zero(buf.Bytes())

	env := envelope{Salt: make([]byte, saltSize), kdf: c.kdf()}
	if _, err := rand.Read(env.Salt); err != nil {
		return err
	}
	aead, err := env.aead(c.Passphrase, env.Salt)
	if err != nil {
		return err
	}
	// A fresh salt gives a fresh key per seal, so the zero nonce never repeats under one key.
	nonce := make([]byte, aead.NonceSize())
	env.Cipher = aead.Seal(nil, nonce, buf.Bytes(), env.Salt)

	return json.NewEncoder(w).Encode(env)
}

// Decode reads an envelope from r and opens it. Out-of-range KDF costs or
// a malformed salt are rejected before any key is derived.
func (c SealedCodec) Decode(r io.Reader) (domain.Payload, error) {
	if c.Passphrase == "" {
		return nil, errEmptyPassphrase
	}
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, err
	}
	aead, err := env.aead(c.Passphrase, env.Salt)
	if err != nil {
		return nil, fmt.Errorf("sealed envelope: %w", err)
	}
	pt, err := aead.Open(nil, make([]byte, aead.NonceSize()), env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	defer memzero.Zero(pt)
	return c.Inner.Decode(bytes.NewReader(pt))
}
