package hasher

import "testing"

func TestSha256(t *testing.T) {
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := Sha256([]byte("abc")).Hex(); got != want {
		t.Errorf("sha256(abc) = %s, want %s", got, want)
	}

	// Multi-slice input hashes as the concatenation.
	if Sha256([]byte("a"), []byte("bc")) != Sha256([]byte("abc")) {
		t.Error("multi-slice digest must match concatenated input")
	}
}

func TestKeccak256(t *testing.T) {
	// Legacy Keccak (Ethereum variant), not NIST SHA3.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := Keccak256().Hex(); got != want {
		t.Errorf("keccak256() = %s, want %s", got, want)
	}

	want = "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"
	if got := Keccak256([]byte("abc")).Hex(); got != want {
		t.Errorf("keccak256(abc) = %s, want %s", got, want)
	}
}

func TestBlake2b256(t *testing.T) {
	want := "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	if got := Blake2b256().Hex(); got != want {
		t.Errorf("blake2b256() = %s, want %s", got, want)
	}

	want = "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"
	if got := Blake2b256([]byte("abc")).Hex(); got != want {
		t.Errorf("blake2b256(abc) = %s, want %s", got, want)
	}
}
