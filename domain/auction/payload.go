package auction

import (
	"fmt"

	"github.com/movebid/goapi/domain"
)

const contractModule = "auction_contract"

// entry function names of the auction contract
const (
	FnCreateNewAuction  = "create_new_auction"
	FnMakeAuctionBid    = "make_auction_bid"
	FnCloseAuction      = "close_auction"
	FnCollectWinningBid = "collect_winning_bid"
)

// view function names of the auction contract
const (
	FnGetAllActiveAuctions       = "get_all_active_auctions"
	FnGetAllAuctionsUserBiddedOn = "get_all_auctions_user_bidded_on"
	FnGetAuctionCreatedByMe      = "get_auction_created_by_me"
	FnGetAuctionData             = "get_auction_data"
)

// EntryPayload is a canonical transaction request: a fully qualified entry
// function id plus its ordered argument list. The wallet boundary signs and
// submits it as-is.
type EntryPayload struct {
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

type CreateAuctionArgs struct {
	Description    string
	DescriptionUrl string
	EndDateMillis  uint64
}

type PlaceBidArgs struct {
	Handle   string
	BidOctas domain.OctaAmount
}

// TxBuilder maps typed arguments to entry payloads under a fixed module
// address. Builders are pure: no validation, no I/O, identical input yields
// an identical payload.
type TxBuilder struct {
	moduleAddr domain.Address
}

func NewTxBuilder(moduleAddr domain.Address) *TxBuilder {
	return &TxBuilder{moduleAddr: moduleAddr}
}

func (b *TxBuilder) functionId(name string) string {
	return fmt.Sprintf("%s::%s::%s", b.moduleAddr, contractModule, name)
}

func (b *TxBuilder) BuildCreateAuction(args CreateAuctionArgs) *EntryPayload {
	return &EntryPayload{
		Function:      b.functionId(FnCreateNewAuction),
		TypeArguments: []string{},
		Arguments:     []interface{}{args.Description, args.DescriptionUrl, args.EndDateMillis},
	}
}

func (b *TxBuilder) BuildPlaceBid(args PlaceBidArgs) *EntryPayload {
	return &EntryPayload{
		Function:      b.functionId(FnMakeAuctionBid),
		TypeArguments: []string{},
		Arguments:     []interface{}{args.Handle, uint64(args.BidOctas)},
	}
}

func (b *TxBuilder) BuildCloseAuction(handle string) *EntryPayload {
	return &EntryPayload{
		Function:      b.functionId(FnCloseAuction),
		TypeArguments: []string{},
		Arguments:     []interface{}{handle},
	}
}

func (b *TxBuilder) BuildCollectWinningBid(handle string) *EntryPayload {
	return &EntryPayload{
		Function:      b.functionId(FnCollectWinningBid),
		TypeArguments: []string{},
		Arguments:     []interface{}{handle},
	}
}

// ViewFunctionId builds the fully qualified id of a view function under the
// same module namespace as the entry functions.
func ViewFunctionId(moduleAddr domain.Address, name string) string {
	return fmt.Sprintf("%s::%s::%s", moduleAddr, contractModule, name)
}
