package accounts

import (
	"github.com/fortiblox/x1-sdk/pkg/types"
)

// AccountsDB defines the interface for account storage.
type AccountsDB interface {
	// GetAccount retrieves an account by address.
	// Returns nil, nil if the account does not exist.
	GetAccount(address types.Address) (*Account, error)

	// SetAccount stores an account.
	SetAccount(address types.Address, account *Account) error

	// DeleteAccount removes an account.
	DeleteAccount(address types.Address) error

	// HasAccount returns true if the account exists.
	HasAccount(address types.Address) bool

	// GetAccountsCount returns the total number of accounts.
	GetAccountsCount() uint64

	// Close closes the database.
	Close() error
}
