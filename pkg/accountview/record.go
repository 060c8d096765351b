// Package accountview provides zero-copy access to runtime-owned account
// records. The runtime serializes each account into a fixed-layout record
// followed immediately by the account's data region; a View is a non-owning
// handle to one such record. Multiple Views may alias the same record
// (duplicate account entries within one instruction), so data access goes
// through a single-byte borrow protocol packed into the record itself.
package accountview

import (
	"encoding/binary"
	"unsafe"
)

// Account record layout. The field order and sizes form a byte-for-byte
// ABI with the runtime; any change breaks compatibility.
//
//	offset  size  field
//	     0     1  borrow_state
//	     1     1  is_signer
//	     2     1  is_writable
//	     3     1  executable
//	     4     4  resize_delta (little-endian int32)
//	     8    32  address
//	    40    32  owner
//	    72     8  lamports (little-endian uint64)
//	    80     8  data_len (little-endian uint64)
//	    88     -  data region (data_len bytes)
const (
	offBorrowState = 0
	offIsSigner    = 1
	offIsWritable  = 2
	offExecutable  = 3
	offResizeDelta = 4
	offAddress     = 8
	offOwner       = 40
	offLamports    = 72
	offDataLen     = 80

	// HeaderSize is the size of the account record header. The account's
	// data region starts immediately after.
	HeaderSize = 88

	// closeWipeSize is the span zeroed by Close: owner (32) + lamports (8)
	// + data_len (8), the tail of the header directly preceding the data.
	closeWipeSize = 48
)

// MaxPermittedDataIncrease is the maximum number of bytes a program may
// add to an account during a single top-level instruction. The runtime
// reserves this much spare memory after each serialized account, which is
// why resizing never moves the data region.
const MaxPermittedDataIncrease = 1024 * 10

// NotBorrowed is the borrow state of an account with no outstanding
// borrows. It is the same value as the runtime's non-duplicate marker:
// the borrow state byte reuses the memory reserved for the duplicate flag
// in the serialized account.
//
// Valid borrow state values:
//
//	0         the data is mutably borrowed
//	2..=255   value-1 more immutable borrows may still be taken
//	255       no borrows outstanding (full capacity)
//
// Immutable acquisition stops at a floor of 1 rather than 0, so "all
// immutable slots consumed" can never be confused with "mutably borrowed".
const NotBorrowed = 0xff

// header returns n header bytes starting at off as a slice over the
// record's memory.
func (v View) header(off, n uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Add(v.raw, off)), n)
}

// borrowState returns a pointer to the record's borrow state byte.
func (v View) borrowState() *byte {
	return (*byte)(unsafe.Add(v.raw, offBorrowState))
}

func (v View) flag(off uintptr) bool {
	return *(*byte)(unsafe.Add(v.raw, off)) != 0
}

func (v View) loadU64(off uintptr) uint64 {
	return binary.LittleEndian.Uint64(v.header(off, 8))
}

func (v View) storeU64(off uintptr, x uint64) {
	binary.LittleEndian.PutUint64(v.header(off, 8), x)
}

func (v View) loadI32(off uintptr) int32 {
	return int32(binary.LittleEndian.Uint32(v.header(off, 4)))
}

func (v View) storeI32(off uintptr, x int32) {
	binary.LittleEndian.PutUint32(v.header(off, 4), uint32(x))
}
