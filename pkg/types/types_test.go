package types

import (
	"bytes"
	"testing"
)

func TestAddressBase58RoundTrip(t *testing.T) {
	var a Address
	for i := range a {
		a[i] = byte(i)
	}

	decoded, err := AddressFromBase58(a.String())
	if err != nil {
		t.Fatalf("AddressFromBase58: %v", err)
	}
	if decoded != a {
		t.Errorf("round trip mismatch: %s != %s", decoded, a)
	}
}

func TestAddressFromBytes(t *testing.T) {
	if _, err := AddressFromBytes(make([]byte, 31)); err == nil {
		t.Error("31-byte input should error")
	}
	if _, err := AddressFromBytes(make([]byte, 33)); err == nil {
		t.Error("33-byte input should error")
	}

	a, err := AddressFromBytes(make([]byte, 32))
	if err != nil {
		t.Fatalf("AddressFromBytes: %v", err)
	}
	if !a.IsZero() {
		t.Error("zero bytes should produce the zero address")
	}
}

func TestSystemProgramID(t *testing.T) {
	// The system program id is the all-ones base58 string, i.e. all zero
	// bytes.
	if !bytes.Equal(SystemProgramID.Bytes(), make([]byte, 32)) {
		t.Errorf("system program id = %x, want 32 zero bytes", SystemProgramID.Bytes())
	}
	if SystemProgramID.String() != "11111111111111111111111111111111" {
		t.Errorf("system program id string = %s", SystemProgramID)
	}
}

func TestAddressFromBase58_Invalid(t *testing.T) {
	if _, err := AddressFromBase58("not base58 0OIl"); err == nil {
		t.Error("invalid base58 should error")
	}
	// Valid base58 but wrong length.
	if _, err := AddressFromBase58("abc"); err == nil {
		t.Error("short base58 should error")
	}
}

func TestLamportsSOL(t *testing.T) {
	if got := Lamports(1_000_000_000).SOL(); got != 1.0 {
		t.Errorf("1e9 lamports = %f SOL, want 1", got)
	}
	if got := LamportsFromSOL(2.5); got != 2_500_000_000 {
		t.Errorf("2.5 SOL = %d lamports, want 2500000000", got)
	}
}

func TestHashHex(t *testing.T) {
	h := SHA256([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if h.Hex() != want {
		t.Errorf("sha256(abc) = %s, want %s", h.Hex(), want)
	}
	if h.IsZero() {
		t.Error("digest should not be zero")
	}
}
