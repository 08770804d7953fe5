package auction

import (
	"time"

	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/domain"
)

// Auction is the projection of one on-chain auction. Records are rebuilt
// from scratch on every fetch; nothing here is locally owned or mutated.
type Auction struct {
	Owner            domain.Address     `json:"owner"`
	BriefDescription string             `json:"briefDescription"`
	DescriptionUrl   string             `json:"descriptionUrl"`
	AuctionUrl       string             `json:"auctionUrl"`
	HighestBidder    *domain.Address    `json:"highestBidder"`
	HighestBid       *domain.OctaAmount `json:"highestBid"`
	EndTime          time.Time          `json:"endTime"`
	CreatedAt        time.Time          `json:"createdAt"`
	Ended            bool               `json:"ended"`
	NumBidders       uint64             `json:"numBidders"`
	// Handle is the opaque on-chain object reference. An auction without a
	// handle cannot be bid on, closed or collected.
	Handle string `json:"handle"`
}

// HighestBidDisplay renders the highest bid in APT, or a fixed placeholder
// when the auction has no bids yet. It never dereferences an absent bid.
func (a *Auction) HighestBidDisplay() string {
	return displayBid(a.HighestBid)
}

func (a *Auction) Actionable() bool {
	return a.Handle != ""
}

// UserBid is the projection of one auction from the view of a bidder.
type UserBid struct {
	MyBid         domain.OctaAmount  `json:"myBid"`
	HighestBidder *domain.Address    `json:"highestBidder"`
	HighestBid    *domain.OctaAmount `json:"highestBid"`
	Ended         bool               `json:"ended"`
	TotalBidders  uint64             `json:"totalBidders"`
	Handle        string             `json:"handle"`
}

func (b *UserBid) MyBidDisplay() string {
	return b.MyBid.APT().String()
}

func (b *UserBid) HighestBidDisplay() string {
	return displayBid(b.HighestBid)
}

const noBidsDisplay = "No bids yet"

func displayBid(bid *domain.OctaAmount) string {
	if bid == nil {
		return noBidsDisplay
	}
	return bid.APT().String()
}

// Repo fetches auction projections from the ledger. List operations return
// a non-nil empty slice alongside any error so a failed cycle never leaves
// the caller with a nil dataset.
type Repo interface {
	GetActiveAuctions(c bCtx.Ctx) ([]Auction, error)
	GetAuctionsBidOnBy(c bCtx.Ctx, bidder domain.Address) ([]UserBid, error)
	GetAuctionsCreatedBy(c bCtx.Ctx, owner domain.Address) ([]Auction, error)
	GetAuctionByHandle(c bCtx.Ctx, handle string) (*Auction, error)
}

// UseCase is the auction business surface consumed by delivery.
type UseCase interface {
	ListActive(c bCtx.Ctx) ([]Auction, error)
	ListBidOnBy(c bCtx.Ctx, bidder domain.Address) ([]UserBid, error)
	ListCreatedBy(c bCtx.Ctx, owner domain.Address) ([]Auction, error)
	GetByHandle(c bCtx.Ctx, handle string) (*Auction, error)
	CreateAuction(c bCtx.Ctx, args CreateAuctionArgs) (*domain.TxReceipt, error)
	PlaceBid(c bCtx.Ctx, args PlaceBidArgs) (*domain.TxReceipt, error)
	CloseAuction(c bCtx.Ctx, handle string) (*domain.TxReceipt, error)
	CollectWinningBid(c bCtx.Ctx, handle string) (*domain.TxReceipt, error)
}
