package accounts

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/fortiblox/x1-sdk/pkg/types"
)

// Stored record format:
// - lamports:   8 bytes (little-endian uint64)
// - executable: 1 byte (0 or 1)
// - owner:      32 bytes
// - data_len:   4 bytes (little-endian uint32, uncompressed length)
// - data:       zstd-compressed account data (remainder of the record)
//
// Total fixed size: 8 + 1 + 32 + 4 = 45 bytes + compressed data

const storedRecordHeaderSize = 8 + 1 + 32 + 4

var (
	// ErrInvalidAccountRecord is returned when a stored account record is
	// malformed.
	ErrInvalidAccountRecord = errors.New("accounts: invalid account record")
)

// Shared zstd coders. Both are safe for concurrent use via EncodeAll and
// DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(fmt.Sprintf("accounts: zstd encoder: %v", err))
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("accounts: zstd decoder: %v", err))
	}
}

// SerializeAccount serializes an account to the stored record format.
func SerializeAccount(account *Account) ([]byte, error) {
	if account == nil {
		return nil, errors.New("accounts: cannot serialize nil account")
	}

	buf := make([]byte, storedRecordHeaderSize, storedRecordHeaderSize+len(account.Data))
	offset := 0

	// Write lamports (8 bytes, little-endian)
	binary.LittleEndian.PutUint64(buf[offset:], uint64(account.Lamports))
	offset += 8

	// Write executable (1 byte)
	if account.Executable {
		buf[offset] = 1
	}
	offset++

	// Write owner (32 bytes)
	copy(buf[offset:], account.Owner[:])
	offset += 32

	// Write uncompressed data length (4 bytes, little-endian)
	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(account.Data)))

	// Append compressed data
	return zstdEncoder.EncodeAll(account.Data, buf), nil
}

// DeserializeAccount deserializes an account from the stored record format.
func DeserializeAccount(record []byte) (*Account, error) {
	if len(record) < storedRecordHeaderSize {
		return nil, fmt.Errorf("%w: record too short, need at least %d bytes, got %d",
			ErrInvalidAccountRecord, storedRecordHeaderSize, len(record))
	}

	offset := 0

	// Read lamports (8 bytes, little-endian)
	lamports := types.Lamports(binary.LittleEndian.Uint64(record[offset:]))
	offset += 8

	// Read executable (1 byte)
	executable := record[offset] != 0
	offset++

	// Read owner (32 bytes)
	var owner types.Address
	copy(owner[:], record[offset:offset+32])
	offset += 32

	// Read uncompressed data length (4 bytes, little-endian)
	dataLen := binary.LittleEndian.Uint32(record[offset:])
	offset += 4

	// Decompress data
	var data []byte
	if dataLen > 0 {
		var err error
		data, err = zstdDecoder.DecodeAll(record[offset:], make([]byte, 0, dataLen))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAccountRecord, err)
		}
		if uint32(len(data)) != dataLen {
			return nil, fmt.Errorf("%w: data length mismatch, expected %d bytes, got %d",
				ErrInvalidAccountRecord, dataLen, len(data))
		}
	}

	return &Account{
		Lamports:   lamports,
		Data:       data,
		Owner:      owner,
		Executable: executable,
	}, nil
}
