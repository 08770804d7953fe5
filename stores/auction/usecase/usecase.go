package usecase

import (
	"fmt"

	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/log"
	"github.com/movebid/goapi/base/metrics"
	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/domain/auction"
	"github.com/movebid/goapi/domain/wallet"
	"github.com/movebid/goapi/service/aptos"
	"github.com/movebid/goapi/service/notify"
	"golang.org/x/xerrors"
)

type AuctionUseCaseCfg struct {
	Repo     auction.Repo
	Wallet   wallet.Provider
	Chain    aptos.Client
	Builder  *auction.TxBuilder
	Notifier notify.Notifier
}

type impl struct {
	repo     auction.Repo
	wallet   wallet.Provider
	chain    aptos.Client
	builder  *auction.TxBuilder
	notifier notify.Notifier
	met      metrics.Service
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	return &impl{
		repo:     cfg.Repo,
		wallet:   cfg.Wallet,
		chain:    cfg.Chain,
		builder:  cfg.Builder,
		notifier: cfg.Notifier,
		met:      metrics.New("auction"),
	}
}

func (im *impl) ListActive(c bCtx.Ctx) ([]auction.Auction, error) {
	return im.repo.GetActiveAuctions(c)
}

func (im *impl) ListBidOnBy(c bCtx.Ctx, bidder domain.Address) ([]auction.UserBid, error) {
	if bidder.IsEmpty() {
		return []auction.UserBid{}, xerrors.Errorf("bidder: %w", domain.ErrInvalidAddress)
	}
	return im.repo.GetAuctionsBidOnBy(c, bidder)
}

func (im *impl) ListCreatedBy(c bCtx.Ctx, owner domain.Address) ([]auction.Auction, error) {
	if owner.IsEmpty() {
		return []auction.Auction{}, xerrors.Errorf("owner: %w", domain.ErrInvalidAddress)
	}
	return im.repo.GetAuctionsCreatedBy(c, owner)
}

func (im *impl) GetByHandle(c bCtx.Ctx, handle string) (*auction.Auction, error) {
	if handle == "" {
		return nil, xerrors.Errorf("handle: %w", domain.ErrNotActionable)
	}
	return im.repo.GetAuctionByHandle(c, handle)
}

func (im *impl) CreateAuction(c bCtx.Ctx, args auction.CreateAuctionArgs) (*domain.TxReceipt, error) {
	if args.Description == "" {
		return nil, xerrors.Errorf("description is required: %w", domain.ErrBadParamInput)
	}
	if args.DescriptionUrl == "" {
		return nil, xerrors.Errorf("descriptionUrl is required: %w", domain.ErrBadParamInput)
	}
	if args.EndDateMillis == 0 {
		return nil, xerrors.Errorf("endDate is required: %w", domain.ErrBadParamInput)
	}
	return im.submit(c, "create auction", im.builder.BuildCreateAuction(args))
}

func (im *impl) PlaceBid(c bCtx.Ctx, args auction.PlaceBidArgs) (*domain.TxReceipt, error) {
	if args.Handle == "" {
		return nil, xerrors.Errorf("bid: %w", domain.ErrNotActionable)
	}
	if args.BidOctas == 0 {
		return nil, xerrors.Errorf("bid amount is required: %w", domain.ErrInvalidAmount)
	}
	return im.submit(c, "place bid", im.builder.BuildPlaceBid(args))
}

func (im *impl) CloseAuction(c bCtx.Ctx, handle string) (*domain.TxReceipt, error) {
	if handle == "" {
		return nil, xerrors.Errorf("close: %w", domain.ErrNotActionable)
	}
	return im.submit(c, "close auction", im.builder.BuildCloseAuction(handle))
}

func (im *impl) CollectWinningBid(c bCtx.Ctx, handle string) (*domain.TxReceipt, error) {
	if handle == "" {
		return nil, xerrors.Errorf("collect: %w", domain.ErrNotActionable)
	}
	return im.submit(c, "collect winning bid", im.builder.BuildCollectWinningBid(handle))
}

// submit runs one transaction flow to completion: connected-account check,
// sign and submit, finality wait, then a user-visible notification. Every
// failure path notifies; there is no retry.
func (im *impl) submit(c bCtx.Ctx, title string, payload *auction.EntryPayload) (*domain.TxReceipt, error) {
	defer im.met.BumpTime("submit.time", "function", payload.Function).End()

	if _, err := im.wallet.Account(c); err != nil {
		return nil, im.fail(c, title, err)
	}

	hash, err := im.wallet.SignAndSubmitTransaction(c, payload)
	if err != nil {
		return nil, im.fail(c, title, err)
	}

	receipt, err := im.chain.WaitForTransaction(c, hash)
	if err != nil {
		return nil, im.fail(c, title, err)
	}
	if !receipt.Success {
		return nil, im.fail(c, title, xerrors.Errorf("transaction %s rejected: %s", receipt.Hash, receipt.VMStatus))
	}

	im.met.BumpSum("submit.ok", 1, "function", payload.Function)
	im.notifier.Notify(c, notify.LevelSuccess, "Success",
		fmt.Sprintf("Transaction succeeded, hash: %s", receipt.Hash))
	return receipt, nil
}

func (im *impl) fail(c bCtx.Ctx, title string, err error) error {
	im.met.BumpSum("submit.err", 1)
	c.WithFields(log.Fields{
		"action": title,
		"err":    err,
	}).Error("transaction flow failed")
	im.notifier.Notify(c, notify.LevelDestructive, "Error",
		fmt.Sprintf("failed to %s: %s", title, err))
	return err
}
