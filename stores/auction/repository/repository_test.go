package repository

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/service/aptos"
)

type fakeChain struct {
	lastPayload *aptos.ViewPayload
	resp        string
	err         error
}

func (f *fakeChain) View(c bCtx.Ctx, payload *aptos.ViewPayload) (json.RawMessage, error) {
	f.lastPayload = payload
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.resp), nil
}

func (f *fakeChain) WaitForTransaction(c bCtx.Ctx, hash domain.TxHash) (*domain.TxReceipt, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeChain) LedgerInfo(c bCtx.Ctx) (*aptos.LedgerInfo, error) {
	return nil, errors.New("not implemented")
}

const activeAuctionsResp = `[[
  {
    "owner": "0xA11CE",
    "auction_brief_description": "Rare painting",
    "auction_description_url": "https://x.test/desc",
    "auction_url": "https://x.test",
    "highest_bidder": {"vec": ["0xB0B"]},
    "highest_bid": {"vec": ["500000000"]},
    "auction_end_time": "1735689600000000",
    "created_date": "1733000000000000",
    "auction_ended": false,
    "num_of_bidders": "3",
    "auction_reference": {"inner": "0x1::auction::42"}
  },
  {
    "owner": "0xCAFE",
    "auction_brief_description": "Old clock",
    "auction_description_url": "https://x.test/clock",
    "auction_url": "https://x.test",
    "highest_bidder": {"vec": []},
    "highest_bid": {"vec": []},
    "auction_end_time": "1735689600000000",
    "created_date": "1733000000000000",
    "auction_ended": false,
    "num_of_bidders": "0",
    "auction_reference": {"inner": "0x1::auction::43"}
  }
]]`

func newRepo(chain aptos.Client) *impl {
	return New(&Cfg{Client: chain, ModuleAddr: "0x1", DetailTtl: time.Millisecond}).(*impl)
}

func Test_GetActiveAuctions(t *testing.T) {
	req := require.New(t)
	chain := &fakeChain{resp: activeAuctionsResp}
	repo := newRepo(chain)

	out, err := repo.GetActiveAuctions(bCtx.Background())
	req.NoError(err)
	req.Equal("0x1::auction_contract::get_all_active_auctions", chain.lastPayload.Function)
	req.Empty(chain.lastPayload.Arguments)
	req.Len(out, 2)

	first := out[0]
	req.Equal(domain.Address("0xa11ce"), first.Owner)
	req.Equal("Rare painting", first.BriefDescription)
	req.NotNil(first.HighestBidder)
	req.Equal(domain.Address("0xb0b"), *first.HighestBidder)
	req.NotNil(first.HighestBid)
	req.Equal(domain.OctaAmount(500000000), *first.HighestBid)
	req.Equal("5", first.HighestBidDisplay())
	req.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.EndTime)
	req.Equal(uint64(3), first.NumBidders)
	req.Equal("0x1::auction::42", first.Handle)
	req.True(first.Actionable())

	second := out[1]
	req.Nil(second.HighestBidder)
	req.Nil(second.HighestBid)
	req.Equal("No bids yet", second.HighestBidDisplay())
}

func Test_GetActiveAuctions_FailureReturnsEmptyList(t *testing.T) {
	req := require.New(t)
	chain := &fakeChain{err: errors.New("node down")}
	repo := newRepo(chain)

	out, err := repo.GetActiveAuctions(bCtx.Background())
	req.Error(err)
	req.NotNil(out)
	req.Empty(out)
}

func Test_GetActiveAuctions_MismatchedOptionPair(t *testing.T) {
	req := require.New(t)
	chain := &fakeChain{resp: `[[
	  {
	    "owner": "0xCAFE",
	    "auction_brief_description": "x",
	    "auction_description_url": "u",
	    "auction_url": "u",
	    "highest_bidder": {"vec": ["0xB0B"]},
	    "highest_bid": {"vec": []},
	    "auction_end_time": "0",
	    "created_date": "0",
	    "auction_ended": false,
	    "num_of_bidders": "1",
	    "auction_reference": {"inner": "0x1::auction::9"}
	  }
	]]`}
	repo := newRepo(chain)

	out, err := repo.GetActiveAuctions(bCtx.Background())
	req.ErrorIs(err, domain.ErrDataIntegrity)
	req.NotNil(out)
	req.Empty(out)
}

func Test_GetAuctionsBidOnBy(t *testing.T) {
	req := require.New(t)
	chain := &fakeChain{resp: `[[
	  {
	    "my_bid": "250000000",
	    "highest_bidder": {"vec": ["0xB0B"]},
	    "highest_bid": {"vec": ["500000000"]},
	    "auction_ended": true,
	    "total_bidders": "7",
	    "auction_reference": {"inner": "0x1::auction::42"}
	  }
	]]`}
	repo := newRepo(chain)

	out, err := repo.GetAuctionsBidOnBy(bCtx.Background(), "0xabc")
	req.NoError(err)
	req.Equal("0x1::auction_contract::get_all_auctions_user_bidded_on", chain.lastPayload.Function)
	req.Equal([]interface{}{"0xabc"}, chain.lastPayload.Arguments)
	req.Len(out, 1)
	req.Equal("2.5", out[0].MyBidDisplay())
	req.Equal("5", out[0].HighestBidDisplay())
	req.True(out[0].Ended)
	req.Equal(uint64(7), out[0].TotalBidders)
}

func Test_GetAuctionsCreatedBy(t *testing.T) {
	req := require.New(t)
	chain := &fakeChain{resp: activeAuctionsResp}
	repo := newRepo(chain)

	out, err := repo.GetAuctionsCreatedBy(bCtx.Background(), "0xa11ce")
	req.NoError(err)
	req.Equal("0x1::auction_contract::get_auction_created_by_me", chain.lastPayload.Function)
	req.Equal([]interface{}{"0xa11ce"}, chain.lastPayload.Arguments)
	req.Len(out, 2)
}

func Test_GetAuctionByHandle(t *testing.T) {
	req := require.New(t)
	chain := &fakeChain{resp: `[
	  {
	    "owner": "0xA11CE",
	    "auction_brief_description": "Rare painting",
	    "auction_description_url": "https://x.test/desc",
	    "auction_url": "https://x.test",
	    "highest_bidder": {"vec": []},
	    "highest_bid": {"vec": []},
	    "auction_end_time": "1735689600000000",
	    "created_date": "1733000000000000",
	    "auction_ended": false,
	    "num_of_bidders": "0",
	    "auction_reference": {"inner": "0x1::auction::42"}
	  }
	]`}
	repo := newRepo(chain)

	a, err := repo.GetAuctionByHandle(bCtx.Background(), "0x1::auction::42")
	req.NoError(err)
	req.Equal("0x1::auction_contract::get_auction_data", chain.lastPayload.Function)
	req.Equal([]interface{}{"0x1::auction::42"}, chain.lastPayload.Arguments)
	req.Equal(domain.Address("0xa11ce"), a.Owner)
	req.Equal("0x1::auction::42", a.Handle)
}

func Test_View_MalformedWrapper(t *testing.T) {
	req := require.New(t)
	chain := &fakeChain{resp: `[[], []]`}
	repo := newRepo(chain)

	out, err := repo.GetActiveAuctions(bCtx.Background())
	req.ErrorIs(err, domain.ErrDataIntegrity)
	req.Empty(out)
}
