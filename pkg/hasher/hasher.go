// Package hasher provides the hash functions used across the SDK.
//
// All functions return fixed-size 32-byte digests and accept multiple
// byte slices, which hashes them as if concatenated without the extra
// allocation. SHA256 comes from the standard library; Keccak-256 and
// BLAKE2b-256 come from golang.org/x/crypto.
package hasher

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/fortiblox/x1-sdk/pkg/types"
)

// HashSize is the size of every digest this package produces.
const HashSize = 32

// Sha256 computes the SHA256 digest of the inputs.
func Sha256(data ...[]byte) types.Hash {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var result types.Hash
	copy(result[:], h.Sum(nil))
	return result
}

// Keccak256 computes the legacy Keccak-256 digest of the inputs (the
// pre-NIST padding variant used by Ethereum and the secp256k1 recovery
// syscall).
func Keccak256(data ...[]byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var result types.Hash
	copy(result[:], h.Sum(nil))
	return result
}

// Blake2b256 computes the BLAKE2b-256 digest of the inputs.
func Blake2b256(data ...[]byte) types.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for invalid key sizes; nil is valid.
		panic(err)
	}
	for _, d := range data {
		h.Write(d)
	}
	var result types.Hash
	copy(result[:], h.Sum(nil))
	return result
}
