// Package hostmem builds and parses instruction input regions.
//
// The runtime hands a program one contiguous memory region per
// instruction: the account records (each followed by its data, the
// realloc spare and alignment padding), the instruction data, and the
// program id. Builder produces such a region the way the runtime would,
// which lets tests and embedders stand in for the host; ParseInput walks
// a region and yields zero-copy account views over it.
//
// The region layout is:
//
//	u64                  number of account entries
//	per entry, 8-aligned:
//	  duplicate:         1-byte index of the earlier account + 7 padding
//	  otherwise:         account record header (the first byte doubles as
//	                     the non-duplicate marker and borrow state),
//	                     data_len payload bytes,
//	                     MaxPermittedDataIncrease spare bytes,
//	                     padding to the next 8-byte boundary
//	u64                  instruction data length
//	instruction data, padded to the next 8-byte boundary
//	program id           32 bytes
package hostmem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/fortiblox/x1-sdk/pkg/accountview"
	"github.com/fortiblox/x1-sdk/pkg/types"
)

// NonDupMarker flags a serialized account as not being a duplicate of an
// earlier account in the instruction. It is also the initial borrow state
// of the record: the borrow state byte reuses the duplicate-flag memory.
const NonDupMarker = 0xff

// MaxAccounts is the maximum number of accounts one input region can
// carry. Duplicate indices must fit in a single byte below NonDupMarker.
const MaxAccounts = 255

const (
	dupEntrySize = 8
	alignment    = 8
)

// Input region errors.
var (
	// ErrTooManyAccounts is returned when more than MaxAccounts entries
	// are added to a Builder.
	ErrTooManyAccounts = errors.New("hostmem: too many accounts for one input region")

	// ErrBadDuplicateIndex is returned when a duplicate entry does not
	// reference an earlier non-duplicate account.
	ErrBadDuplicateIndex = errors.New("hostmem: duplicate index does not reference an earlier account")

	// ErrAccountDataTooLarge is returned when account data exceeds the
	// signed 32-bit length bound used for account lengths.
	ErrAccountDataTooLarge = errors.New("hostmem: account data exceeds the length bound")

	// ErrRegionTruncated is returned when an input region is shorter than
	// its own headers claim.
	ErrRegionTruncated = errors.New("hostmem: input region truncated")
)

// AccountParam describes one account to serialize into an input region.
type AccountParam struct {
	Address    types.Address
	Owner      types.Address
	Lamports   types.Lamports
	Data       []byte
	IsSigner   bool
	IsWritable bool
	Executable bool
}

// entry is one account slot in the builder: either a parameter set or a
// back-reference to an earlier slot.
type entry struct {
	param AccountParam
	dupOf int // -1 for a non-duplicate entry
}

// Builder assembles an instruction input region.
type Builder struct {
	programID types.Address
	instrData []byte
	entries   []entry
}

// NewBuilder creates a Builder for the given program id and instruction
// data.
func NewBuilder(programID types.Address, instrData []byte) *Builder {
	return &Builder{
		programID: programID,
		instrData: instrData,
	}
}

// AddAccount appends a full account entry.
func (b *Builder) AddAccount(p AccountParam) error {
	if len(b.entries) >= MaxAccounts {
		return ErrTooManyAccounts
	}
	if uint64(len(p.Data)) > math.MaxInt32 {
		return fmt.Errorf("%w: %d bytes", ErrAccountDataTooLarge, len(p.Data))
	}
	b.entries = append(b.entries, entry{param: p, dupOf: -1})
	return nil
}

// AddDuplicate appends an entry aliasing the account at index, which must
// reference an earlier non-duplicate entry. The parsed region yields a
// second view over the same record for such entries.
func (b *Builder) AddDuplicate(index int) error {
	if len(b.entries) >= MaxAccounts {
		return ErrTooManyAccounts
	}
	if index < 0 || index >= len(b.entries) || b.entries[index].dupOf != -1 {
		return fmt.Errorf("%w: %d", ErrBadDuplicateIndex, index)
	}
	b.entries = append(b.entries, entry{dupOf: index})
	return nil
}

// Build serializes the region. The returned buffer is owned by the
// caller; it must outlive every view parsed from it.
func (b *Builder) Build() []byte {
	size := 8 // account count
	for _, e := range b.entries {
		if e.dupOf >= 0 {
			size += dupEntrySize
			continue
		}
		size += entrySize(len(e.param.Data))
	}
	size += 8 // instruction data length
	size += alignUp(len(b.instrData))
	size += types.AddressSize

	buf := make([]byte, size)
	off := 0

	binary.LittleEndian.PutUint64(buf[off:], uint64(len(b.entries)))
	off += 8

	for _, e := range b.entries {
		if e.dupOf >= 0 {
			buf[off] = byte(e.dupOf)
			// 7 padding bytes keep the next entry 8-aligned.
			off += dupEntrySize
			continue
		}
		off += putRecord(buf[off:], e.param)
	}

	binary.LittleEndian.PutUint64(buf[off:], uint64(len(b.instrData)))
	off += 8
	copy(buf[off:], b.instrData)
	off += alignUp(len(b.instrData))

	copy(buf[off:], b.programID[:])

	return buf
}

// putRecord writes one account record, its payload, the realloc spare and
// the alignment padding at the start of buf, returning the entry size.
func putRecord(buf []byte, p AccountParam) int {
	buf[0] = NonDupMarker // borrow state: unborrowed
	putFlag(buf, 1, p.IsSigner)
	putFlag(buf, 2, p.IsWritable)
	putFlag(buf, 3, p.Executable)
	// resize_delta starts at zero: buf is already zeroed.
	copy(buf[8:], p.Address[:])
	copy(buf[40:], p.Owner[:])
	binary.LittleEndian.PutUint64(buf[72:], uint64(p.Lamports))
	binary.LittleEndian.PutUint64(buf[80:], uint64(len(p.Data)))
	copy(buf[accountview.HeaderSize:], p.Data)
	// The spare and padding stay zero.
	return entrySize(len(p.Data))
}

func putFlag(buf []byte, off int, set bool) {
	if set {
		buf[off] = 1
	}
}

// entrySize returns the serialized size of a non-duplicate account entry
// holding dataLen payload bytes.
func entrySize(dataLen int) int {
	return accountview.HeaderSize + alignUp(dataLen) + accountview.MaxPermittedDataIncrease
}

func alignUp(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Input is a parsed instruction input region. Accounts, Data and
// ProgramID all reference the region's memory without copying; the region
// must stay alive while they are in use.
type Input struct {
	Accounts  []accountview.View
	Data      []byte
	ProgramID types.Address
}

// ParseInput walks an input region and yields views over its account
// records. A duplicate entry yields a second view over the same record,
// so aliases share one borrow state.
func ParseInput(region []byte) (*Input, error) {
	if len(region) < 8 {
		return nil, ErrRegionTruncated
	}
	count := binary.LittleEndian.Uint64(region)
	if count > MaxAccounts {
		return nil, fmt.Errorf("%w: %d accounts", ErrTooManyAccounts, count)
	}
	off := 8

	views := make([]accountview.View, 0, count)
	for i := uint64(0); i < count; i++ {
		if len(region)-off < dupEntrySize {
			return nil, ErrRegionTruncated
		}
		if region[off] != NonDupMarker {
			idx := int(region[off])
			if idx >= len(views) {
				return nil, fmt.Errorf("%w: %d", ErrBadDuplicateIndex, idx)
			}
			views = append(views, views[idx])
			off += dupEntrySize
			continue
		}

		if len(region)-off < accountview.HeaderSize {
			return nil, ErrRegionTruncated
		}
		view := accountview.NewUnchecked(unsafe.Pointer(&region[off]))
		dataLen := view.DataLen()
		if dataLen > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %d bytes", ErrAccountDataTooLarge, dataLen)
		}
		size := entrySize(int(dataLen))
		if len(region)-off < size {
			return nil, ErrRegionTruncated
		}
		views = append(views, view)
		off += size
	}

	if len(region)-off < 8 {
		return nil, ErrRegionTruncated
	}
	dataLen := binary.LittleEndian.Uint64(region[off:])
	off += 8
	if uint64(len(region)-off) < dataLen {
		return nil, ErrRegionTruncated
	}
	data := region[off : off+int(dataLen)]
	off += alignUp(int(dataLen))

	if len(region)-off < types.AddressSize {
		return nil, ErrRegionTruncated
	}
	programID, err := types.AddressFromBytes(region[off : off+types.AddressSize])
	if err != nil {
		return nil, err
	}

	return &Input{
		Accounts:  views,
		Data:      data,
		ProgramID: programID,
	}, nil
}
