// Package accounts provides the allocator-backed account representation
// and account storage for the SDK. Stored accounts can be mounted into an
// instruction input region (see HostParam) and captured back out of a
// zero-copy view after execution (see AccountFromView).
package accounts

import (
	"encoding/binary"

	"github.com/fortiblox/x1-sdk/pkg/accountview"
	"github.com/fortiblox/x1-sdk/pkg/hasher"
	"github.com/fortiblox/x1-sdk/pkg/hostmem"
	"github.com/fortiblox/x1-sdk/pkg/types"
)

// Account represents one account's state outside of an instruction.
type Account struct {
	Lamports   types.Lamports // Balance in lamports
	Data       []byte         // Account data
	Owner      types.Address  // Program that owns this account
	Executable bool           // Is this a program account?
}

// NewAccount creates a new account with no data.
func NewAccount(lamports types.Lamports, owner types.Address) *Account {
	return &Account{
		Lamports: lamports,
		Owner:    owner,
	}
}

// NewAccountWithData creates a new account with data.
func NewAccountWithData(lamports types.Lamports, data []byte, owner types.Address) *Account {
	return &Account{
		Lamports: lamports,
		Data:     data,
		Owner:    owner,
	}
}

// Clone creates a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	clone := &Account{
		Lamports:   a.Lamports,
		Owner:      a.Owner,
		Executable: a.Executable,
	}
	if a.Data != nil {
		clone.Data = make([]byte, len(a.Data))
		copy(clone.Data, a.Data)
	}
	return clone
}

// DataLen returns the length of the account data.
func (a *Account) DataLen() uint64 {
	return uint64(len(a.Data))
}

// IsEmpty returns true if the account has zero lamports and no data.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0
}

// ContentHash computes the account content hash used by the store.
// Format: BLAKE2b-256(lamports || data || executable || owner || address)
func (a *Account) ContentHash(address types.Address) types.Hash {
	var lamportsBuf [8]byte
	binary.LittleEndian.PutUint64(lamportsBuf[:], uint64(a.Lamports))

	executable := []byte{0}
	if a.Executable {
		executable[0] = 1
	}

	return hasher.Blake2b256(
		lamportsBuf[:],
		a.Data,
		executable,
		a.Owner[:],
		address[:],
	)
}

// RentExemptMinimum calculates the minimum lamports for rent exemption.
// Formula: (data_size + 128) * 3480 lamports/byte/year * 2 years
func RentExemptMinimum(dataSize uint64) types.Lamports {
	const (
		lamportsPerByteYear = 3480
		exemptionThreshold  = 2 // years
		accountOverhead     = 128
	)
	return types.Lamports((dataSize + accountOverhead) * lamportsPerByteYear * exemptionThreshold)
}

// HostParam converts the account into an input-region parameter so it can
// be serialized into an instruction region. The parameter references the
// account's data slice directly; Builder copies it when the region is
// built.
func (a *Account) HostParam(address types.Address, isSigner, isWritable bool) hostmem.AccountParam {
	return hostmem.AccountParam{
		Address:    address,
		Owner:      a.Owner,
		Lamports:   a.Lamports,
		Data:       a.Data,
		IsSigner:   isSigner,
		IsWritable: isWritable,
		Executable: a.Executable,
	}
}

// AccountFromView captures an account's post-execution state out of a
// zero-copy view. The data is copied, so the returned account stays valid
// after the input region is released. Fails with AccountBorrowFailed if
// the view's data is still borrowed.
func AccountFromView(v accountview.View) (*Account, error) {
	ref, err := v.TryBorrowData()
	if err != nil {
		return nil, err
	}
	defer ref.Release()

	data := make([]byte, ref.Len())
	copy(data, ref.Bytes())

	return &Account{
		Lamports:   v.Lamports(),
		Data:       data,
		Owner:      *v.Owner(),
		Executable: v.Executable(),
	}, nil
}
