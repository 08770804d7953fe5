package aptos

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/domain"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrTxTimeout       = errors.New("transaction was not confirmed in time")
)

// Client is the gateway to a fullnode. Reads go through View; transaction
// submission happens at the wallet boundary, only the finality wait lives
// here.
type Client interface {
	// View executes a read-only view function and returns its raw, ordered
	// return values. The caller owns the typing of the result.
	View(c bCtx.Ctx, payload *ViewPayload) (json.RawMessage, error)
	// WaitForTransaction polls a submitted transaction by hash until it is
	// committed, or fails with ErrTxTimeout.
	WaitForTransaction(c bCtx.Ctx, hash domain.TxHash) (*domain.TxReceipt, error)
	// LedgerInfo returns the node's current ledger state.
	LedgerInfo(c bCtx.Ctx) (*LedgerInfo, error)
}

type ClientCfg struct {
	HttpClient http.Client
	NodeUrl    string
	// Timeout bounds a single request
	Timeout time.Duration
	// TxTimeout bounds a whole finality wait
	TxTimeout time.Duration
	// TxPollInterval is the gap between finality polls
	TxPollInterval time.Duration
}

// ViewPayload is a view function call: fully qualified function id plus its
// ordered argument list.
type ViewPayload struct {
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

type LedgerInfo struct {
	ChainId         uint8  `json:"chain_id"`
	LedgerVersion   string `json:"ledger_version"`
	LedgerTimestamp string `json:"ledger_timestamp"`
	NodeRole        string `json:"node_role"`
}
