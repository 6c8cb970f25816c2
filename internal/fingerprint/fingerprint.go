// Package fingerprint hashes schema graphs so snapshots of the same state
// can be recognised without a full comparison.
package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/schemadelta/schemadelta/schema"
)

// ErrMismatch is returned by Compare when two fingerprints differ
var ErrMismatch = errors.New("schema fingerprint mismatch")

// Fingerprint identifies a schema state
type Fingerprint struct {
	Hash string `json:"hash"` // SHA256 of the JSON encoding
}

// Compute fingerprints s. The provider is left out so a snapshot read from
// one dialect and re-saved keeps its hash; a nil schema hashes like an
// empty one.
func Compute(s *schema.Schema) (*Fingerprint, error) {
	if s == nil {
		s = &schema.Schema{}
	}
	normalized := *s
	normalized.Provider = ""

	data, err := json.Marshal(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to compute schema hash: %w", err)
	}
	return &Fingerprint{Hash: fmt.Sprintf("%x", sha256.Sum256(data))}, nil
}

// Short returns the first 8 hex digits of the hash
func (f *Fingerprint) Short() string {
	if len(f.Hash) >= 8 {
		return f.Hash[:8]
	}
	return f.Hash
}

func (f *Fingerprint) String() string {
	return "Schema fingerprint: " + f.Short()
}

// Compare returns an error wrapping ErrMismatch when the hashes differ
func Compare(expected, actual *Fingerprint) error {
	if expected.Hash == actual.Hash {
		return nil
	}
	preview := func(h string) string {
		if len(h) > 16 {
			return h[:16]
		}
		return h
	}
	return fmt.Errorf("%w - expected: %s, actual: %s", ErrMismatch, preview(expected.Hash), preview(actual.Hash))
}
