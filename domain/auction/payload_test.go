package auction

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_BuildCreateAuction(t *testing.T) {
	req := require.New(t)
	b := NewTxBuilder("0x7")

	endDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := b.BuildCreateAuction(CreateAuctionArgs{
		Description:    "Rare painting",
		DescriptionUrl: "https://x.test/desc",
		EndDateMillis:  uint64(endDate.UnixMilli()),
	})

	req.Equal("0x7::auction_contract::create_new_auction", p.Function)
	req.Empty(p.TypeArguments)
	req.Equal([]interface{}{"Rare painting", "https://x.test/desc", uint64(1735689600000)}, p.Arguments)
}

func Test_BuildPlaceBid(t *testing.T) {
	req := require.New(t)
	b := NewTxBuilder("0x7")

	p := b.BuildPlaceBid(PlaceBidArgs{Handle: "0x1::auction::42", BidOctas: 500000000})

	req.Equal("0x7::auction_contract::make_auction_bid", p.Function)
	req.Equal([]interface{}{"0x1::auction::42", uint64(500000000)}, p.Arguments)
}

func Test_BuildCloseAuction_Deterministic(t *testing.T) {
	req := require.New(t)
	b := NewTxBuilder("0x7")

	first := b.BuildCloseAuction("0x1::auction::42")
	second := b.BuildCloseAuction("0x1::auction::42")
	req.Equal(first, second)
	req.Equal("0x7::auction_contract::close_auction", first.Function)
	req.Equal([]interface{}{"0x1::auction::42"}, first.Arguments)
}

func Test_BuildCollectWinningBid(t *testing.T) {
	req := require.New(t)
	b := NewTxBuilder("0x7")

	p := b.BuildCollectWinningBid("0x1::auction::42")
	req.Equal("0x7::auction_contract::collect_winning_bid", p.Function)
	req.Equal([]interface{}{"0x1::auction::42"}, p.Arguments)
}

func Test_EntryPayload_Json(t *testing.T) {
	req := require.New(t)
	b := NewTxBuilder("0x7")

	raw, err := json.Marshal(b.BuildPlaceBid(PlaceBidArgs{Handle: "0xh", BidOctas: 1}))
	req.NoError(err)
	req.JSONEq(`{
	  "function": "0x7::auction_contract::make_auction_bid",
	  "type_arguments": [],
	  "arguments": ["0xh", 1]
	}`, string(raw))
}

func Test_ViewFunctionId(t *testing.T) {
	require.Equal(t,
		"0x7::auction_contract::get_auction_data",
		ViewFunctionId("0x7", FnGetAuctionData))
}
