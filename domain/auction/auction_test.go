package auction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/movebid/goapi/base/ptr"
)

func Test_HighestBidDisplay(t *testing.T) {
	req := require.New(t)

	a := &Auction{
		HighestBidder: ptr.Address("0xb0b"),
		HighestBid:    ptr.Octa(500000000),
	}
	req.Equal("5", a.HighestBidDisplay())

	noBids := &Auction{}
	req.Equal("No bids yet", noBids.HighestBidDisplay())
}

func Test_UserBidDisplay(t *testing.T) {
	req := require.New(t)

	b := &UserBid{
		MyBid:         250000000,
		HighestBidder: ptr.Address("0xb0b"),
		HighestBid:    ptr.Octa(500000000),
	}
	req.Equal("2.5", b.MyBidDisplay())
	req.Equal("5", b.HighestBidDisplay())

	outbidNobody := &UserBid{MyBid: 1}
	req.Equal("0.00000001", outbidNobody.MyBidDisplay())
	req.Equal("No bids yet", outbidNobody.HighestBidDisplay())
}

func Test_Actionable(t *testing.T) {
	req := require.New(t)
	req.True((&Auction{Handle: "0xh"}).Actionable())
	req.False((&Auction{}).Actionable())
}

func Test_Auction_JsonNullsAbsentBid(t *testing.T) {
	req := require.New(t)

	raw, err := json.Marshal(&Auction{Owner: "0xa11ce"})
	req.NoError(err)

	got := map[string]interface{}{}
	req.NoError(json.Unmarshal(raw, &got))
	req.Nil(got["highestBidder"])
	req.Nil(got["highestBid"])
	req.Equal("0xa11ce", got["owner"])
}
