// Package types provides the core Solana/X1 data types shared by the SDK.
package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 32

// Address represents a 32-byte account identifier (an Ed25519 public key
// or a program-derived address).
type Address [AddressSize]byte

// ZeroAddress is an all-zero address.
var ZeroAddress Address

// Well-known program ids referenced by the SDK.
var (
	SystemProgramID    = MustAddressFromBase58("11111111111111111111111111111111")
	TokenProgramID     = MustAddressFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	VoteProgramID      = MustAddressFromBase58("Vote111111111111111111111111111111111111111")
	StakeProgramID     = MustAddressFromBase58("Stake11111111111111111111111111111111111111")
	BPFLoaderProgramID = MustAddressFromBase58("BPFLoader1111111111111111111111111111111111")
	NativeLoaderID     = MustAddressFromBase58("NativeLoader1111111111111111111111111111111")
)

// AddressFromBytes creates an Address from a byte slice.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// AddressFromBase58 decodes a base58 string into an Address.
func AddressFromBase58(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid base58: %w", err)
	}
	return AddressFromBytes(b)
}

// MustAddressFromBase58 decodes a base58 string or panics.
func MustAddressFromBase58(s string) Address {
	a, err := AddressFromBase58(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

// String returns the base58 representation.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Hash represents a 32-byte digest.
type Hash [32]byte

// ZeroHash is an all-zero hash.
var ZeroHash Hash

// HashFromBytes creates a Hash from a byte slice.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != 32 {
		return Hash{}, fmt.Errorf("hash must be 32 bytes, got %d", len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// String returns the base58 representation.
func (h Hash) String() string {
	return base58.Encode(h[:])
}

// Hex returns the hex representation.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// SHA256 computes the SHA256 hash of data.
func SHA256(data []byte) Hash {
	return sha256.Sum256(data)
}

// Lamports represents a lamport amount (1 SOL = 1_000_000_000 lamports).
type Lamports uint64

// SOL converts lamports to SOL.
func (l Lamports) SOL() float64 {
	return float64(l) / 1_000_000_000
}

// LamportsFromSOL converts SOL to lamports.
func LamportsFromSOL(sol float64) Lamports {
	return Lamports(sol * 1_000_000_000)
}

// Epoch represents an epoch number.
type Epoch uint64
