package repository

import (
	"time"

	"github.com/movebid/goapi/base/ctx"
	hcdomain "github.com/movebid/goapi/domain/healthcheck"
	"github.com/movebid/goapi/service/aptos"
)

type impl struct {
	client aptos.Client
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(client aptos.Client) hcdomain.HealthCheckRepo {
	return &impl{
		client: client,
	}
}

func (im *impl) PingNode(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if _, err := im.client.LedgerInfo(ctx); err != nil {
		context.WithField("err", err).Error("ping fullnode error")
		return err
	}
	return nil
}
