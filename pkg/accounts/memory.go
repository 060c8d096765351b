package accounts

import (
	"sync"

	"github.com/fortiblox/x1-sdk/pkg/types"
)

// MemoryDB is an in-memory implementation of AccountsDB for testing.
type MemoryDB struct {
	mu       sync.RWMutex
	accounts map[types.Address]*Account
}

// NewMemoryDB creates a new in-memory account database.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		accounts: make(map[types.Address]*Account),
	}
}

// GetAccount retrieves an account by address.
// Returns nil, nil if the account does not exist.
func (db *MemoryDB) GetAccount(address types.Address) (*Account, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	account, exists := db.accounts[address]
	if !exists {
		return nil, nil
	}
	// Return a clone to prevent external modification
	return account.Clone(), nil
}

// SetAccount stores an account.
func (db *MemoryDB) SetAccount(address types.Address, account *Account) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	// Store a clone to prevent external modification
	db.accounts[address] = account.Clone()
	return nil
}

// DeleteAccount removes an account.
func (db *MemoryDB) DeleteAccount(address types.Address) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.accounts, address)
	return nil
}

// HasAccount returns true if the account exists.
func (db *MemoryDB) HasAccount(address types.Address) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	_, exists := db.accounts[address]
	return exists
}

// GetAccountsCount returns the total number of accounts.
func (db *MemoryDB) GetAccountsCount() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return uint64(len(db.accounts))
}

// Close closes the database.
func (db *MemoryDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.accounts = make(map[types.Address]*Account)
	return nil
}

// Ensure MemoryDB implements AccountsDB.
var _ AccountsDB = (*MemoryDB)(nil)
