// Package programerror defines the error codes a program returns to the
// X1 runtime. The numeric values are part of the runtime ABI: builtin
// errors occupy the upper 32 bits of the u64 return value, while custom
// program errors are carried in the lower 32 bits.
package programerror

import "fmt"

// BuiltinBitShift is the bit offset of builtin error codes within the
// u64 return value.
const BuiltinBitShift = 32

// ProgramError is the reason a program invocation failed.
type ProgramError uint32

// Builtin program errors. The values (before shifting) are fixed by the
// runtime and must not be reordered.
const (
	// CustomZero stands in for a custom error with code zero, which would
	// otherwise be indistinguishable from success.
	CustomZero ProgramError = iota + 1
	// InvalidArgument indicates the arguments provided to a program
	// instruction were invalid.
	InvalidArgument
	// InvalidInstructionData indicates an instruction's data contents
	// were invalid.
	InvalidInstructionData
	// InvalidAccountData indicates an account's data contents were invalid.
	InvalidAccountData
	// AccountDataTooSmall indicates an account's data was too small.
	AccountDataTooSmall
	// InsufficientFunds indicates an account's balance was too small to
	// complete the instruction.
	InsufficientFunds
	// IncorrectProgramID indicates the account did not have the expected
	// program id.
	IncorrectProgramID
	// MissingRequiredSignature indicates a signature was required but
	// not found.
	MissingRequiredSignature
	// AccountAlreadyInitialized indicates an initialize instruction was
	// sent to an account that has already been initialized.
	AccountAlreadyInitialized
	// UninitializedAccount indicates an attempt to operate on an account
	// that hasn't been initialized.
	UninitializedAccount
	// NotEnoughAccountKeys indicates the instruction expected additional
	// account keys.
	NotEnoughAccountKeys
	// AccountBorrowFailed indicates a borrow of account data failed
	// because the data is already borrowed.
	AccountBorrowFailed
	// MaxSeedLengthExceeded indicates the length of a seed is too long
	// for address generation.
	MaxSeedLengthExceeded
	// InvalidSeeds indicates the provided seeds do not result in a
	// valid address.
	InvalidSeeds
	// SerializationFailed indicates an IO error while (de)serializing.
	SerializationFailed
	// AccountNotRentExempt indicates an account does not have enough
	// lamports to be rent-exempt.
	AccountNotRentExempt
	// UnsupportedSysvar indicates the requested sysvar is unsupported
	// in this environment.
	UnsupportedSysvar
	// IllegalOwner indicates the provided owner is not allowed.
	IllegalOwner
	// MaxAccountsDataAllocationsExceeded indicates the accounts data
	// budget for the transaction was exceeded.
	MaxAccountsDataAllocationsExceeded
	// InvalidRealloc indicates an account data reallocation was invalid:
	// the requested length does not fit the account length bound, or the
	// cumulative growth cap for the instruction would be exceeded.
	InvalidRealloc
	// MaxInstructionTraceLengthExceeded indicates the instruction trace
	// length was exceeded.
	MaxInstructionTraceLengthExceeded
	// BuiltinProgramsMustConsumeComputeUnits indicates a builtin program
	// finished without consuming compute units.
	BuiltinProgramsMustConsumeComputeUnits
	// InvalidAccountOwner indicates an invalid account owner.
	InvalidAccountOwner
	// ArithmeticOverflow indicates a program arithmetic overflowed.
	ArithmeticOverflow
	// Immutable indicates the account is immutable.
	Immutable
	// IncorrectAuthority indicates an incorrect authority was provided.
	IncorrectAuthority
)

var errStrings = map[ProgramError]string{
	CustomZero:                             "custom program error: 0",
	InvalidArgument:                        "the arguments provided to a program instruction were invalid",
	InvalidInstructionData:                 "an instruction's data contents was invalid",
	InvalidAccountData:                     "an account's data contents was invalid",
	AccountDataTooSmall:                    "an account's data was too small",
	InsufficientFunds:                      "an account's balance was too small to complete the instruction",
	IncorrectProgramID:                     "the account did not have the expected program id",
	MissingRequiredSignature:               "a signature was required but not found",
	AccountAlreadyInitialized:              "an initialize instruction was sent to an account that has already been initialized",
	UninitializedAccount:                   "an attempt to operate on an account that hasn't been initialized",
	NotEnoughAccountKeys:                   "the instruction expected additional account keys",
	AccountBorrowFailed:                    "failed to borrow a reference to account data, already borrowed",
	MaxSeedLengthExceeded:                  "length of the seed is too long for address generation",
	InvalidSeeds:                           "provided seeds do not result in a valid address",
	SerializationFailed:                    "(de)serialization failed",
	AccountNotRentExempt:                   "an account does not have enough lamports to be rent-exempt",
	UnsupportedSysvar:                      "unsupported sysvar",
	IllegalOwner:                           "provided owner is not allowed",
	MaxAccountsDataAllocationsExceeded:     "accounts data allocations exceeded the maximum allowed per transaction",
	InvalidRealloc:                         "account data reallocation was invalid",
	MaxInstructionTraceLengthExceeded:      "max instruction trace length exceeded",
	BuiltinProgramsMustConsumeComputeUnits: "builtin programs must consume compute units",
	InvalidAccountOwner:                    "invalid account owner",
	ArithmeticOverflow:                     "program arithmetic overflowed",
	Immutable:                              "account is immutable",
	IncorrectAuthority:                     "incorrect authority provided",
}

// Error implements the error interface.
func (e ProgramError) Error() string {
	if s, ok := errStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("unknown program error: %d", uint32(e))
}

// ToBuiltin returns the u64 return value encoding this builtin error.
func (e ProgramError) ToBuiltin() uint64 {
	return uint64(e) << BuiltinBitShift
}

// FromBuiltin decodes a u64 return value into a builtin ProgramError.
// Returns false if the value does not encode a known builtin error.
func FromBuiltin(v uint64) (ProgramError, bool) {
	if v&((1<<BuiltinBitShift)-1) != 0 {
		return 0, false
	}
	e := ProgramError(v >> BuiltinBitShift)
	if _, ok := errStrings[e]; !ok {
		return 0, false
	}
	return e, true
}
