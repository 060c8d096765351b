package hostmem

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"testing"
	"unsafe"

	"github.com/fortiblox/x1-sdk/pkg/accountview"
	"github.com/fortiblox/x1-sdk/pkg/programerror"
	"github.com/fortiblox/x1-sdk/pkg/types"
)

func testAddress(seed string) types.Address {
	hash := sha256.Sum256([]byte(seed))
	var a types.Address
	copy(a[:], hash[:])
	return a
}

func TestBuildParseRoundTrip(t *testing.T) {
	programID := testAddress("program")
	instrData := []byte{0, 1, 2, 3, 4}

	b := NewBuilder(programID, instrData)
	params := []AccountParam{
		{
			Address:    testAddress("payer"),
			Owner:      types.SystemProgramID,
			Lamports:   1_000_000_000,
			Data:       nil,
			IsSigner:   true,
			IsWritable: true,
		},
		{
			Address:    testAddress("state"),
			Owner:      programID,
			Lamports:   2_039_280,
			Data:       []byte("account payload"),
			IsWritable: true,
		},
	}
	for _, p := range params {
		if err := b.AddAccount(p); err != nil {
			t.Fatalf("AddAccount: %v", err)
		}
	}

	region := b.Build()
	in, err := ParseInput(region)
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}

	if in.ProgramID != programID {
		t.Errorf("program id = %s, want %s", in.ProgramID, programID)
	}
	if !bytes.Equal(in.Data, instrData) {
		t.Errorf("instruction data = %v, want %v", in.Data, instrData)
	}
	if len(in.Accounts) != len(params) {
		t.Fatalf("parsed %d accounts, want %d", len(in.Accounts), len(params))
	}

	for i, p := range params {
		v := in.Accounts[i]
		if v.Address() != p.Address {
			t.Errorf("account %d address = %s, want %s", i, v.Address(), p.Address)
		}
		if !v.OwnedBy(p.Owner) {
			t.Errorf("account %d owner mismatch", i)
		}
		if v.Lamports() != p.Lamports {
			t.Errorf("account %d lamports = %d, want %d", i, v.Lamports(), p.Lamports)
		}
		if v.IsSigner() != p.IsSigner || v.IsWritable() != p.IsWritable || v.Executable() != p.Executable {
			t.Errorf("account %d flags mismatch", i)
		}
		if v.ResizeDelta() != 0 {
			t.Errorf("account %d resize delta = %d, want 0 at instruction start", i, v.ResizeDelta())
		}
		if !bytes.Equal(v.BorrowDataUnchecked(), p.Data) {
			t.Errorf("account %d data mismatch", i)
		}
	}
}

func TestViewsAreZeroCopy(t *testing.T) {
	b := NewBuilder(testAddress("program"), nil)
	if err := b.AddAccount(AccountParam{
		Address: testAddress("acct"),
		Owner:   types.SystemProgramID,
		Data:    []byte{1, 2, 3},
	}); err != nil {
		t.Fatal(err)
	}

	region := b.Build()
	in, err := ParseInput(region)
	if err != nil {
		t.Fatal(err)
	}
	v := in.Accounts[0]

	// Writing through a guard lands in the region itself.
	refMut, err := v.TryBorrowDataMut()
	if err != nil {
		t.Fatal(err)
	}
	refMut.Bytes()[0] = 9
	refMut.Release()

	recordOff := int(uintptr(v.RecordPtr()) - uintptr(unsafe.Pointer(&region[0])))
	if region[recordOff+accountview.HeaderSize] != 9 {
		t.Error("guard write did not land in the backing region")
	}
}

func TestDuplicateAccountsAlias(t *testing.T) {
	b := NewBuilder(testAddress("program"), nil)
	if err := b.AddAccount(AccountParam{
		Address:    testAddress("shared"),
		Owner:      types.SystemProgramID,
		Data:       []byte{1, 2, 3, 4},
		IsWritable: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddDuplicate(0); err != nil {
		t.Fatalf("AddDuplicate: %v", err)
	}

	in, err := ParseInput(b.Build())
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Accounts) != 2 {
		t.Fatalf("parsed %d accounts, want 2", len(in.Accounts))
	}

	a, dup := in.Accounts[0], in.Accounts[1]

	// Both views point at the one record.
	if a.RecordPtr() != dup.RecordPtr() {
		t.Fatal("duplicate view does not alias the original record")
	}
	if !a.Equal(dup) {
		t.Error("aliasing views must be equal")
	}

	// The borrow state is shared: a mutable borrow through one view
	// blocks the other.
	refMut, err := a.TryBorrowDataMut()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dup.TryBorrowData(); !errors.Is(err, programerror.AccountBorrowFailed) {
		t.Errorf("duplicate borrow = %v, want AccountBorrowFailed", err)
	}
	refMut.Bytes()[0] = 7
	refMut.Release()

	// And the write is visible through the duplicate.
	ref, err := dup.TryBorrowData()
	if err != nil {
		t.Fatal(err)
	}
	if ref.Bytes()[0] != 7 {
		t.Error("write through one alias not visible through the other")
	}
	ref.Release()
}

func TestBuiltRegionAllowsMaxGrowth(t *testing.T) {
	b := NewBuilder(testAddress("program"), nil)
	data := bytes.Repeat([]byte{0xaa}, 100)
	if err := b.AddAccount(AccountParam{
		Address: testAddress("grow"),
		Owner:   types.SystemProgramID,
		Data:    data,
	}); err != nil {
		t.Fatal(err)
	}

	in, err := ParseInput(b.Build())
	if err != nil {
		t.Fatal(err)
	}
	v := in.Accounts[0]

	// The builder reserved the full permitted growth, so resizing to the
	// cap stays inside the region.
	if err := v.Resize(100 + accountview.MaxPermittedDataIncrease); err != nil {
		t.Fatalf("resize to cap: %v", err)
	}
	grown := v.BorrowDataUnchecked()
	if len(grown) != 100+accountview.MaxPermittedDataIncrease {
		t.Fatalf("data len = %d", len(grown))
	}
	for i := 100; i < len(grown); i++ {
		if grown[i] != 0 {
			t.Fatalf("grown byte %d = %#x, want 0", i, grown[i])
		}
	}
}

func TestEntriesAreAligned(t *testing.T) {
	b := NewBuilder(testAddress("program"), []byte{1})
	// Odd data lengths force padding.
	for i, n := range []int{0, 1, 7, 8, 9, 100} {
		if err := b.AddAccount(AccountParam{
			Address: testAddress(string(rune('a' + i))),
			Owner:   types.SystemProgramID,
			Data:    bytes.Repeat([]byte{byte(i)}, n),
		}); err != nil {
			t.Fatal(err)
		}
	}

	region := b.Build()
	in, err := ParseInput(region)
	if err != nil {
		t.Fatal(err)
	}

	base := uintptr(unsafe.Pointer(&region[0]))
	for i, v := range in.Accounts {
		if (uintptr(v.RecordPtr())-base)%8 != 0 {
			t.Errorf("account %d record is not 8-aligned within the region", i)
		}
	}
}

func TestBuilderValidation(t *testing.T) {
	b := NewBuilder(testAddress("program"), nil)

	if err := b.AddDuplicate(0); !errors.Is(err, ErrBadDuplicateIndex) {
		t.Errorf("AddDuplicate(0) on empty builder = %v, want ErrBadDuplicateIndex", err)
	}

	if err := b.AddAccount(AccountParam{Address: testAddress("a")}); err != nil {
		t.Fatal(err)
	}
	// A duplicate may not reference another duplicate.
	if err := b.AddDuplicate(0); err != nil {
		t.Fatal(err)
	}
	if err := b.AddDuplicate(1); !errors.Is(err, ErrBadDuplicateIndex) {
		t.Errorf("duplicate-of-duplicate = %v, want ErrBadDuplicateIndex", err)
	}
}

func TestParseInputTruncated(t *testing.T) {
	b := NewBuilder(testAddress("program"), []byte{1, 2, 3})
	if err := b.AddAccount(AccountParam{
		Address: testAddress("acct"),
		Owner:   types.SystemProgramID,
		Data:    []byte{1, 2, 3, 4, 5},
	}); err != nil {
		t.Fatal(err)
	}
	region := b.Build()

	// Every strict prefix must fail cleanly rather than panic.
	for n := 0; n < len(region); n += 17 {
		if _, err := ParseInput(region[:n]); err == nil {
			t.Fatalf("ParseInput accepted a %d-byte prefix of a %d-byte region", n, len(region))
		}
	}
}

func TestParseInputBadDuplicate(t *testing.T) {
	b := NewBuilder(testAddress("program"), nil)
	if err := b.AddAccount(AccountParam{Address: testAddress("a")}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddDuplicate(0); err != nil {
		t.Fatal(err)
	}
	region := b.Build()

	// Corrupt the duplicate index to point past the parsed accounts.
	dupOff := 8 + entrySize(0)
	region[dupOff] = 5

	if _, err := ParseInput(region); !errors.Is(err, ErrBadDuplicateIndex) {
		t.Errorf("ParseInput = %v, want ErrBadDuplicateIndex", err)
	}
}
