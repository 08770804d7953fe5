package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrInvalidAddress will throw if an account address fails validation
	ErrInvalidAddress = errors.New("Invalid address")
	// ErrInvalidAmount will throw if a currency amount cannot be represented in base units
	ErrInvalidAmount = errors.New("Invalid amount")
	// ErrDataIntegrity will throw if the ledger returns a record violating a
	// documented invariant, e.g. a highest bid without a highest bidder
	ErrDataIntegrity = errors.New("Ledger returned inconsistent record")
	// ErrNoWalletAccount will throw if a transaction is initiated without a connected account
	ErrNoWalletAccount = errors.New("No wallet account connected")
	// ErrNotActionable will throw if an auction record carries no handle to act on
	ErrNotActionable = errors.New("Auction has no reference to act on")
)
