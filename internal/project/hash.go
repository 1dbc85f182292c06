package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a 256-bit hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by deps. deps must come in a
// deterministic order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Short is the first 12 hex digits, enough to tell closures apart in output.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}
