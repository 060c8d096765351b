package accountview

import (
	"bytes"
	"math"
	"unsafe"

	"github.com/fortiblox/x1-sdk/pkg/programerror"
	"github.com/fortiblox/x1-sdk/pkg/types"
)

// View is a non-owning handle to an account record.
//
// Views are cheap to copy; copying duplicates the handle, not the record.
// The runtime may hand out multiple Views over the same record (duplicate
// account entries within one instruction), and all of them observe the
// one borrow state byte in the record.
//
// Invariants the caller of NewUnchecked must uphold:
//   - raw points to memory containing a valid account record header,
//     immediately followed by the account's data region.
//   - The length of the data region exactly matches the header's data_len.
//
// The View never allocates or frees the memory it points at; the runtime
// owns the record for the duration of the instruction.
type View struct {
	raw unsafe.Pointer
}

// NewUnchecked creates a View for a raw account record pointer.
//
// The caller must guarantee the record invariants documented on View.
// This is the boundary to the runtime; every other View method is safe
// given that the invariants hold.
func NewUnchecked(raw unsafe.Pointer) View {
	return View{raw: raw}
}

// Address returns the address of the account.
func (v View) Address() types.Address {
	return *(*types.Address)(unsafe.Add(v.raw, offAddress))
}

// Owner returns a pointer to the owner field inside the record.
//
// The pointer is invalidated the instant Assign or Close executes; callers
// must not retain or dereference it past that point. For ownership checks,
// use OwnedBy instead.
func (v View) Owner() *types.Address {
	return (*types.Address)(unsafe.Add(v.raw, offOwner))
}

// OwnedBy reports whether the account is owned by the given program.
func (v View) OwnedBy(program types.Address) bool {
	return *v.Owner() == program
}

// Assign changes the owner of the account.
//
// The caller must guarantee that no pointer obtained from Owner is
// retained across the call.
func (v View) Assign(newOwner types.Address) {
	*(*types.Address)(unsafe.Add(v.raw, offOwner)) = newOwner
}

// IsSigner reports whether the transaction was signed by this account.
func (v View) IsSigner() bool {
	return v.flag(offIsSigner)
}

// IsWritable reports whether the account is writable in this instruction.
func (v View) IsWritable() bool {
	return v.flag(offIsWritable)
}

// Executable reports whether this account holds executable program data.
// Program accounts are always read-only.
func (v View) Executable() bool {
	return v.flag(offExecutable)
}

// DataLen returns the current length of the account's data region.
func (v View) DataLen() uint64 {
	return v.loadU64(offDataLen)
}

// IsDataEmpty reports whether the account data length is zero.
func (v View) IsDataEmpty() bool {
	return v.DataLen() == 0
}

// ResizeDelta returns the cumulative change in data length since the
// runtime serialized the account. Non-zero if the account has been
// resized during the current instruction.
func (v View) ResizeDelta() int32 {
	return v.loadI32(offResizeDelta)
}

// Lamports returns the lamports in the account.
func (v View) Lamports() types.Lamports {
	return types.Lamports(v.loadU64(offLamports))
}

// SetLamports sets the lamports in the account.
//
// Lamports are not tracked by the borrow state; balance invariants across
// an instruction are enforced by the runtime, not by this layer.
func (v View) SetLamports(lamports types.Lamports) {
	v.storeU64(offLamports, uint64(lamports))
}

// IsBorrowed reports whether the account data is borrowed in any form.
func (v View) IsBorrowed() bool {
	return *v.borrowState() != NotBorrowed
}

// IsBorrowedMut reports whether the account data is mutably borrowed.
func (v View) IsBorrowedMut() bool {
	return *v.borrowState() == 0
}

// CanBorrowData checks whether an immutable borrow of the data could be
// taken, failing if the data is mutably borrowed or no immutable borrow
// capacity remains.
func (v View) CanBorrowData() error {
	// There must be at least one immutable borrow available. Values below
	// 2 cover both "mutably borrowed" (0) and "capacity exhausted" (1).
	if *v.borrowState() < 2 {
		return programerror.AccountBorrowFailed
	}
	return nil
}

// CanBorrowDataMut checks whether a mutable borrow of the data could be
// taken, failing if the data is borrowed in any form.
func (v View) CanBorrowDataMut() error {
	if *v.borrowState() != NotBorrowed {
		return programerror.AccountBorrowFailed
	}
	return nil
}

// TryBorrowData takes an immutable borrow of the account data, failing
// with AccountBorrowFailed if the data is mutably borrowed or no borrow
// capacity remains. The returned guard must be released.
func (v View) TryBorrowData() (*Ref, error) {
	if err := v.CanBorrowData(); err != nil {
		return nil, err
	}

	// Consume one immutable borrow. We are guaranteed at least one is
	// available, so the decrement cannot reach the mutable sentinel 0.
	*v.borrowState()--

	return &Ref{
		data:  v.dataSlice(),
		state: v.borrowState(),
	}, nil
}

// TryBorrowDataMut takes the exclusive mutable borrow of the account
// data, failing with AccountBorrowFailed if any borrow is outstanding.
// The returned guard must be released.
func (v View) TryBorrowDataMut() (*RefMut, error) {
	if err := v.CanBorrowDataMut(); err != nil {
		return nil, err
	}

	// Mark the data as mutably borrowed.
	*v.borrowState() = 0

	return &RefMut{
		data:  v.dataSlice(),
		state: v.borrowState(),
	}, nil
}

// BorrowDataUnchecked returns the account data without touching the
// borrow state.
//
// The caller must guarantee that no aliasing View mutates the data while
// the slice is in use. Useful when an instruction has verified it holds
// no duplicate accounts.
func (v View) BorrowDataUnchecked() []byte {
	return v.dataSlice()
}

// BorrowDataUncheckedMut returns the account data for mutation without
// touching the borrow state.
//
// The caller must guarantee exclusive access for the lifetime of the
// slice. Useful when an instruction has verified it holds no duplicate
// accounts.
func (v View) BorrowDataUncheckedMut() []byte {
	return v.dataSlice()
}

// Resize grows or shrinks the account's data region in place, failing
// with AccountBorrowFailed if any borrow is outstanding.
//
// The data region can grow by at most MaxPermittedDataIncrease bytes net
// across the whole instruction; shrinking is unbounded. Newly exposed
// bytes are zero-filled. The data region never moves: the runtime
// reserves the maximum permitted growth after the serialized account.
func (v View) Resize(newLen uint64) error {
	// Resizing mutates the data region, so it is refused under any
	// outstanding borrow.
	if err := v.CanBorrowDataMut(); err != nil {
		return err
	}
	return v.ResizeUnchecked(newLen)
}

// ResizeUnchecked is Resize without the borrow check.
//
// The caller must guarantee that no borrows of the account data are
// outstanding.
func (v View) ResizeUnchecked(newLen uint64) error {
	// Account lengths always fit in an int32, so the new length must too.
	if newLen > math.MaxInt32 {
		return programerror.InvalidRealloc
	}
	currentLen := int32(v.DataLen())
	length := int32(newLen)

	if length == currentLen {
		return nil
	}

	difference := length - currentLen
	accumulated := v.ResizeDelta() + difference

	// The cap applies to the net growth from the length the runtime
	// originally serialized, not to this call alone.
	if accumulated > MaxPermittedDataIncrease {
		return programerror.InvalidRealloc
	}

	v.storeU64(offDataLen, uint64(length))
	v.storeI32(offResizeDelta, accumulated)

	if difference > 0 {
		grown := unsafe.Slice(
			(*byte)(unsafe.Add(v.DataPtr(), currentLen)),
			difference,
		)
		clear(grown)
	}

	return nil
}

// Close zeroes the account's owner, lamports and data_len fields,
// signaling deallocation to the runtime. Fails with AccountBorrowFailed
// if any borrow is outstanding.
//
// The data payload is not zeroed here; the runtime zeroes it at the end
// of the instruction or before the next cross-program invocation. Move
// the lamports out of the account before closing it, or the runtime will
// reject the instruction as unbalanced.
func (v View) Close() error {
	if v.IsBorrowed() {
		return programerror.AccountBorrowFailed
	}

	// Closing implicitly shrinks the account to zero length without going
	// through Resize, so account for it in the resize delta first.
	v.storeI32(offResizeDelta, v.ResizeDelta()-int32(v.DataLen()))

	v.CloseUnchecked()
	return nil
}

// CloseUnchecked is Close without the borrow check and without the
// resize delta adjustment.
//
// The caller must guarantee that no borrows are outstanding and that no
// Resize will be attempted on this record afterward within the same
// instruction (the delta bookkeeping is skipped, so a later Resize could
// wrongly hit the growth cap).
func (v View) CloseUnchecked() {
	// The 48 bytes directly preceding the data region are the owner (32),
	// the lamports (8) and the data_len (8).
	clear(v.header(offOwner, closeWipeSize))
}

// DataPtr returns the address of the account's data region.
//
// Obtaining the pointer is always allowed, but reading or writing through
// it while any guard from TryBorrowData or TryBorrowDataMut is live is
// the caller's aliasing bug to avoid.
func (v View) DataPtr() unsafe.Pointer {
	return unsafe.Add(v.raw, HeaderSize)
}

// RecordPtr returns the raw pointer to the account record.
func (v View) RecordPtr() unsafe.Pointer {
	return v.raw
}

// Equal reports whether two Views observe the same account state. Views
// over the same record are always equal; Views over distinct records are
// equal when their header fields and current data bytes match.
func (v View) Equal(other View) bool {
	if v.raw == other.raw {
		return true
	}
	if !bytes.Equal(v.header(0, HeaderSize), other.header(0, HeaderSize)) {
		return false
	}
	return bytes.Equal(v.dataSlice(), other.dataSlice())
}

// dataSlice returns the current data region as a slice.
func (v View) dataSlice() []byte {
	return unsafe.Slice((*byte)(v.DataPtr()), v.DataLen())
}
