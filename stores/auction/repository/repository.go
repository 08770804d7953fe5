package repository

import (
	"encoding/json"
	"time"

	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/log"
	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/domain/auction"
	"github.com/movebid/goapi/domain/keys"
	"github.com/movebid/goapi/service/aptos"
	"github.com/movebid/goapi/service/cache"
	"github.com/movebid/goapi/service/cache/provider/primitive"
	"golang.org/x/xerrors"
)

type Cfg struct {
	Client     aptos.Client
	ModuleAddr domain.Address
	// DetailTtl caches single-auction lookups between poll cycles
	DetailTtl time.Duration
}

type impl struct {
	client     aptos.Client
	moduleAddr domain.Address
	cache      cache.Service
}

func New(cfg *Cfg) auction.Repo {
	ttl := cfg.DetailTtl
	if ttl == 0 {
		ttl = 5 * time.Second
	}
	return &impl{
		client:     cfg.Client,
		moduleAddr: cfg.ModuleAddr,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxAuctionView,
			Cache: primitive.NewPrimitive(keys.PfxAuctionView, 8),
		}),
	}
}

func (im *impl) GetActiveAuctions(c bCtx.Ctx) ([]auction.Auction, error) {
	return im.listAuctions(c, auction.FnGetAllActiveAuctions, []interface{}{})
}

func (im *impl) GetAuctionsCreatedBy(c bCtx.Ctx, owner domain.Address) ([]auction.Auction, error) {
	return im.listAuctions(c, auction.FnGetAuctionCreatedByMe, []interface{}{string(owner)})
}

func (im *impl) listAuctions(c bCtx.Ctx, fn string, args []interface{}) ([]auction.Auction, error) {
	// never return a nil dataset, even on failure
	empty := []auction.Auction{}

	wires := []auctionWire{}
	if err := im.view(c, fn, args, &wires); err != nil {
		return empty, err
	}

	out := make([]auction.Auction, 0, len(wires))
	for i := range wires {
		a, err := wires[i].toAuction()
		if err != nil {
			c.WithFields(log.Fields{
				"function": fn,
				"err":      err,
			}).Error("malformed auction record")
			return empty, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (im *impl) GetAuctionsBidOnBy(c bCtx.Ctx, bidder domain.Address) ([]auction.UserBid, error) {
	empty := []auction.UserBid{}

	wires := []userBidWire{}
	if err := im.view(c, auction.FnGetAllAuctionsUserBiddedOn, []interface{}{string(bidder)}, &wires); err != nil {
		return empty, err
	}

	out := make([]auction.UserBid, 0, len(wires))
	for i := range wires {
		b, err := wires[i].toUserBid()
		if err != nil {
			c.WithFields(log.Fields{
				"bidder": bidder,
				"err":    err,
			}).Error("malformed user bid record")
			return empty, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (im *impl) GetAuctionByHandle(c bCtx.Ctx, handle string) (*auction.Auction, error) {
	a := &auction.Auction{}
	key := keys.MD5(handle)
	if err := im.cache.GetByFunc(c, key, a, func() (interface{}, error) {
		wire := auctionWire{}
		if err := im.view(c, auction.FnGetAuctionData, []interface{}{handle}, &wire); err != nil {
			return nil, err
		}
		return wire.toAuction()
	}); err != nil {
		return nil, err
	}
	return a, nil
}

// view executes a view function and unwraps the single-element return value
// wrapper into out.
func (im *impl) view(c bCtx.Ctx, fn string, args []interface{}, out interface{}) error {
	raw, err := im.client.View(c, &aptos.ViewPayload{
		Function:      auction.ViewFunctionId(im.moduleAddr, fn),
		TypeArguments: []string{},
		Arguments:     args,
	})
	if err != nil {
		return err
	}

	returns := []json.RawMessage{}
	if err := json.Unmarshal(raw, &returns); err != nil {
		c.WithFields(log.Fields{"function": fn, "err": err}).Error("json.Unmarshal failed")
		return err
	}
	if len(returns) != 1 {
		return xerrors.Errorf("view %s returned %d values, want 1: %w", fn, len(returns), domain.ErrDataIntegrity)
	}
	if err := json.Unmarshal(returns[0], out); err != nil {
		c.WithFields(log.Fields{"function": fn, "err": err}).Error("json.Unmarshal failed")
		return err
	}
	return nil
}
