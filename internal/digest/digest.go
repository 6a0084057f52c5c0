// Package digest maps hash algorithm names to implementations.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Default is the algorithm used when none is configured.
const Default = "sha256"

// ErrUnknownAlgorithm is returned for names not present in the registry.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

var constructors = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512_224": sha512.New512_224,
	"sha512_256": sha512.New512_256,
	"sha3_224":   sha3.New224,
	"sha3_256":   sha3.New256,
	"sha3_384":   sha3.New384,
	"sha3_512":   sha3.New512,
	"blake2b":    unkeyed(blake2b.New512),
	"blake2s":    unkeyed(blake2s.New256),
}

// unkeyed adapts a keyed blake2 constructor; a nil key never fails.
func unkeyed(fn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

// squash drops case and separators, so "SHA-256", "sha_256" and "sha256"
// all map to the same key.
func squash(name string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// canonical maps squashed spellings to registered names.
var canonical = func() map[string]string {
	m := make(map[string]string, len(constructors))
	for name := range constructors {
		m[squash(name)] = name
	}
	return m
}()

// Normalize returns the registered name for any case or separator spelling of
// it ("SHA-256" is "sha256", "SHA3-256" is "sha3_256"). Unknown names come
// back lowercased.
func Normalize(name string) string {
	if n, ok := canonical[squash(name)]; ok {
		return n
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Supported reports whether name refers to a registered algorithm.
func Supported(name string) bool {
	_, ok := constructors[Normalize(name)]
	return ok
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a fresh hash.Hash for the named algorithm.
func New(name string) (hash.Hash, error) {
	fn, ok := constructors[Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownAlgorithm, name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// Sum reads r to EOF and returns its hex-encoded digest.
func Sum(r io.Reader, name string) (string, error) {
	h, err := New(name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
