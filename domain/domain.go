package domain

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

// OctasPerAPT is the fixed scale between the human currency unit and the
// base unit carried in every on-chain amount field.
const OctasPerAPT = 100_000_000

type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLower() == b.ToLower()
}

type TxHash string

func (h TxHash) String() string {
	return string(h)
}

// OctaAmount is an amount in base units. Amounts are u64 on the ledger and
// must never pass through a float.
type OctaAmount uint64

var (
	octaScale     = decimal.New(1, 8)
	maxOctaAmount = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)
)

// FromAPT converts a human decimal amount to base units. The conversion is
// exact: sub-octa precision, negative amounts and u64 overflow are rejected.
func FromAPT(apt decimal.Decimal) (OctaAmount, error) {
	if apt.IsNegative() {
		return 0, xerrors.Errorf("amount %s: %w", apt, ErrInvalidAmount)
	}
	octas := apt.Mul(octaScale)
	if !octas.IsInteger() {
		return 0, xerrors.Errorf("amount %s has sub-octa precision: %w", apt, ErrInvalidAmount)
	}
	if octas.Cmp(maxOctaAmount) > 0 {
		return 0, xerrors.Errorf("amount %s overflows u64: %w", apt, ErrInvalidAmount)
	}
	return OctaAmount(octas.BigInt().Uint64()), nil
}

// APT returns the human decimal value of the amount.
func (a OctaAmount) APT() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -8)
}

// TimeFromMicros converts a chain timestamp to time.Time. The ledger
// reports microseconds; this is the only place the unit is interpreted.
func TimeFromMicros(us uint64) time.Time {
	return time.UnixMicro(int64(us)).UTC()
}

// TxReceipt is the outcome of a finality wait on a submitted transaction.
type TxReceipt struct {
	Hash     TxHash
	Success  bool
	VMStatus string
	GasUsed  uint64
	Version  uint64
}
