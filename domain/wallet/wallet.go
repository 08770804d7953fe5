package wallet

import (
	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/domain/auction"
)

// Provider is the wallet boundary. Key management and cryptographic signing
// live behind it; this system only hands over canonical payloads.
type Provider interface {
	// Account returns the connected account address, or
	// domain.ErrNoWalletAccount when nothing is connected.
	Account(c bCtx.Ctx) (domain.Address, error)
	// SignAndSubmitTransaction signs the payload with the connected account
	// and submits it to the ledger, returning the pending transaction hash.
	SignAndSubmitTransaction(c bCtx.Ctx, payload *auction.EntryPayload) (domain.TxHash, error)
}
