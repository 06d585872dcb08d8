// Package hash fingerprints batch files.
//
// The watcher compares fingerprints before reloading so that editors which
// emit several write events for one save trigger a single reload.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher computes a content fingerprint for a file.
type Hasher interface {
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile returns the hex-encoded SHA-256 of the file at path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sum := sha256.New()
	if _, err := io.Copy(sum, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}

// FakeHasher returns preset fingerprints and counts calls.
type FakeHasher struct {
	hashes map[string]string
	Calls  int
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{hashes: make(map[string]string)}
}

// SetHash sets the fingerprint returned for path.
func (h *FakeHasher) SetHash(path, hash string) {
	h.hashes[path] = hash
}

// HashFile returns the preset fingerprint, or an error if none was set.
func (h *FakeHasher) HashFile(path string) (string, error) {
	h.Calls++
	hash, ok := h.hashes[path]
	if !ok {
		return "", fmt.Errorf("no fingerprint set for %s", path)
	}
	return hash, nil
}
