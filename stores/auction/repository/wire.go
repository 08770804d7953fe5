package repository

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/domain/auction"
	"golang.org/x/xerrors"
)

// u64 accepts both JSON string and number encodings. The node encodes u64
// as a string; older gateways pass numbers through.
type u64 uint64

func (u *u64) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return xerrors.Errorf("parse u64 %s: %w", data, err)
	}
	*u = u64(v)
	return nil
}

// option mirrors the Move option encoding: a zero-or-one-element vector.
type option struct {
	Vec []json.RawMessage `json:"vec"`
}

func (o *option) present() bool {
	return len(o.Vec) > 0
}

func (o *option) asAddress() (*domain.Address, error) {
	if !o.present() {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(o.Vec[0], &s); err != nil {
		return nil, xerrors.Errorf("option address: %w", err)
	}
	addr := domain.Address(s).ToLower()
	return &addr, nil
}

func (o *option) asOcta() (*domain.OctaAmount, error) {
	if !o.present() {
		return nil, nil
	}
	var v u64
	if err := v.UnmarshalJSON(o.Vec[0]); err != nil {
		return nil, err
	}
	amount := domain.OctaAmount(v)
	return &amount, nil
}

// objectRef mirrors the on-chain object handle wrapper.
type objectRef struct {
	Inner string `json:"inner"`
}

type auctionWire struct {
	Owner            string     `json:"owner"`
	BriefDescription string     `json:"auction_brief_description"`
	DescriptionUrl   string     `json:"auction_description_url"`
	AuctionUrl       string     `json:"auction_url"`
	HighestBidder    option     `json:"highest_bidder"`
	HighestBid       option     `json:"highest_bid"`
	AuctionEndTime   u64        `json:"auction_end_time"`
	CreatedDate      u64        `json:"created_date"`
	AuctionEnded     bool       `json:"auction_ended"`
	NumOfBidders     u64        `json:"num_of_bidders"`
	AuctionReference *objectRef `json:"auction_reference"`
}

func (w *auctionWire) toAuction() (*auction.Auction, error) {
	if w.Owner == "" {
		return nil, xerrors.Errorf("record without owner: %w", domain.ErrDataIntegrity)
	}
	bidder, err := w.HighestBidder.asAddress()
	if err != nil {
		return nil, err
	}
	bid, err := w.HighestBid.asOcta()
	if err != nil {
		return nil, err
	}
	// bidder and bid are jointly present or jointly absent
	if (bidder == nil) != (bid == nil) {
		return nil, xerrors.Errorf("highest_bidder/highest_bid mismatch: %w", domain.ErrDataIntegrity)
	}
	a := &auction.Auction{
		Owner:            domain.Address(w.Owner).ToLower(),
		BriefDescription: w.BriefDescription,
		DescriptionUrl:   w.DescriptionUrl,
		AuctionUrl:       w.AuctionUrl,
		HighestBidder:    bidder,
		HighestBid:       bid,
		EndTime:          domain.TimeFromMicros(uint64(w.AuctionEndTime)),
		CreatedAt:        domain.TimeFromMicros(uint64(w.CreatedDate)),
		Ended:            w.AuctionEnded,
		NumBidders:       uint64(w.NumOfBidders),
	}
	if w.AuctionReference != nil {
		a.Handle = w.AuctionReference.Inner
	}
	return a, nil
}

type userBidWire struct {
	MyBid            u64        `json:"my_bid"`
	HighestBidder    option     `json:"highest_bidder"`
	HighestBid       option     `json:"highest_bid"`
	AuctionEnded     bool       `json:"auction_ended"`
	TotalBidders     u64        `json:"total_bidders"`
	AuctionReference *objectRef `json:"auction_reference"`
}

func (w *userBidWire) toUserBid() (*auction.UserBid, error) {
	bidder, err := w.HighestBidder.asAddress()
	if err != nil {
		return nil, err
	}
	bid, err := w.HighestBid.asOcta()
	if err != nil {
		return nil, err
	}
	if (bidder == nil) != (bid == nil) {
		return nil, xerrors.Errorf("highest_bidder/highest_bid mismatch: %w", domain.ErrDataIntegrity)
	}
	b := &auction.UserBid{
		MyBid:         domain.OctaAmount(w.MyBid),
		HighestBidder: bidder,
		HighestBid:    bid,
		Ended:         w.AuctionEnded,
		TotalBidders:  uint64(w.TotalBidders),
	}
	if w.AuctionReference != nil {
		b.Handle = w.AuctionReference.Inner
	}
	return b, nil
}
