package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/delivery"
	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/domain/auction"
	"github.com/movebid/goapi/middleware"
	"github.com/movebid/goapi/service/cache"
	"github.com/movebid/goapi/service/notify"
	"github.com/movebid/goapi/service/refresher"
)

// DatasetActiveAuctions names the snapshot the refresher keeps for the
// active-auction listing.
const DatasetActiveAuctions = "activeAuctions"

type handler struct {
	uc        auction.UseCase
	refresher *refresher.Refresher
	notifier  notify.Notifier
}

// New will initialize the auction endpoints
func New(e *echo.Echo, uc auction.UseCase, r *refresher.Refresher, notifier notify.Notifier) {
	h := &handler{
		uc:        uc,
		refresher: r,
		notifier:  notifier,
	}

	g := e.Group("/auctions")
	g.GET("", h.listActive)
	g.POST("", h.createAuction)
	g.GET("/:handle", h.getAuction)
	g.POST("/:handle/bids", h.placeBid)
	g.POST("/:handle/close", h.closeAuction)
	g.POST("/:handle/collect", h.collectWinningBid)

	a := e.Group("/accounts")
	a.GET("/:address/auctions", h.listCreatedBy, middleware.IsValidAddress("address"))
	a.GET("/:address/bids", h.listBidOnBy, middleware.IsValidAddress("address"))

	e.GET("/notifications", h.listNotifications)
}

// listActive serves the refresher snapshot when one has been applied, and
// falls back to a live fetch before the first cycle completes.
func (h *handler) listActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	auctions := []auction.Auction{}
	if h.refresher != nil {
		err := h.refresher.Snapshot(ctx, DatasetActiveAuctions, &auctions)
		if err == nil {
			return delivery.MakeJsonResp(c, http.StatusOK, auctions)
		}
		if err != cache.ErrNotFound {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
	}

	auctions, err := h.uc.ListActive(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, auctions)
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.uc.GetByHandle(ctx, c.Param("handle"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) listCreatedBy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	auctions, err := h.uc.ListCreatedBy(ctx, domain.Address(c.Param("address")).ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, auctions)
}

func (h *handler) listBidOnBy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	bids, err := h.uc.ListBidOnBy(ctx, domain.Address(c.Param("address")).ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, bids)
}

func (h *handler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Description    string `json:"description" validate:"required"`
		DescriptionUrl string `json:"descriptionUrl" validate:"required,url"`
		EndDate        uint64 `json:"endDate" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.uc.CreateAuction(ctx, auction.CreateAuctionArgs{
		Description:    p.Description,
		DescriptionUrl: p.DescriptionUrl,
		EndDateMillis:  p.EndDate,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		// Amount is a decimal string in the human currency unit
		Amount string `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	octas, err := domain.FromAPT(amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	receipt, err := h.uc.PlaceBid(ctx, auction.PlaceBidArgs{
		Handle:   c.Param("handle"),
		BidOctas: octas,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

func (h *handler) closeAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	receipt, err := h.uc.CloseAuction(ctx, c.Param("handle"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

func (h *handler) collectWinningBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	receipt, err := h.uc.CollectWinningBid(ctx, c.Param("handle"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, receipt)
}

func (h *handler) listNotifications(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.notifier.Recent(ctx, 0))
}
