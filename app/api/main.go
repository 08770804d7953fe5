package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/log"
	bValidator "github.com/movebid/goapi/base/validator"
	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/domain/auction"
	mmiddleware "github.com/movebid/goapi/middleware"
	"github.com/movebid/goapi/service/aptos"
	"github.com/movebid/goapi/service/cache"
	"github.com/movebid/goapi/service/cache/provider/primitive"
	"github.com/movebid/goapi/service/notify"
	"github.com/movebid/goapi/service/refresher"
	"github.com/movebid/goapi/service/walletbridge"
	auction_delivery "github.com/movebid/goapi/stores/auction/delivery/http"
	auction_repository "github.com/movebid/goapi/stores/auction/repository"
	auction_usecase "github.com/movebid/goapi/stores/auction/usecase"
	hc_delivery "github.com/movebid/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/movebid/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/movebid/goapi/stores/healthcheck/usecase"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "config file path")
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init fullnode gateway
	context.Info("init fullnode gateway")
	aptosClient := aptos.NewClient(&aptos.ClientCfg{
		HttpClient:     http.Client{},
		NodeUrl:        viper.GetString("aptos.nodeUrl"),
		Timeout:        viper.GetDuration("aptos.timeout"),
		TxTimeout:      viper.GetDuration("aptos.txTimeout"),
		TxPollInterval: viper.GetDuration("aptos.txPollInterval"),
	})
	moduleAddr := domain.Address(viper.GetString("aptos.moduleAddress")).ToLower()

	// init wallet agent bridge
	context.Info("init wallet bridge")
	walletProvider := walletbridge.NewClient(&walletbridge.ClientCfg{
		HttpClient: http.Client{},
		BridgeUrl:  viper.GetString("wallet.bridgeUrl"),
		Timeout:    viper.GetDuration("wallet.timeout"),
	})

	notifier, err := notify.New(&notify.Cfg{
		RingSize:         viper.GetInt("notify.ringSize"),
		DiscordBotKey:    viper.GetString("notify.discord.botKey"),
		DiscordChannelId: viper.GetString("notify.discord.channelId"),
	})
	if err != nil {
		panic(err)
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(aptosClient)
	auctionRepo := auction_repository.New(&auction_repository.Cfg{
		Client:     aptosClient,
		ModuleAddr: moduleAddr,
		DetailTtl:  viper.GetDuration("aptos.detailTtl"),
	})

	hc := hc_usecase.New(hcRepo)
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Repo:     auctionRepo,
		Wallet:   walletProvider,
		Chain:    aptosClient,
		Builder:  auction.NewTxBuilder(moduleAddr),
		Notifier: notifier,
	})

	// snapshot cache never expires; a failed cycle keeps the last applied data
	snapshotCache := cache.New(cache.ServiceConfig{
		Ttl:   0,
		Pfx:   "refresher",
		Cache: primitive.NewPrimitive("refresher", 16),
	})
	refr := refresher.New(&refresher.Cfg{
		Interval: viper.GetDuration("refresher.interval"),
		Cache:    snapshotCache,
		Notifier: notifier,
		Workers:  viper.GetInt("refresher.workers"),
	})
	refr.Register(auction_delivery.DatasetActiveAuctions, func(c ctx.Ctx) (interface{}, error) {
		auctions, err := auctionRepo.GetActiveAuctions(c)
		if err != nil {
			return nil, err
		}
		return &auctions, nil
	})
	refr.Start(context)

	hc_delivery.New(e, hc)
	auction_delivery.New(e, auctionUC, refr, notifier)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	refr.Stop()

	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
