package healthcheck

import (
	"github.com/movebid/goapi/base/ctx"
)

type HealthCheckRepo interface {
	PingNode(ctx.Ctx) error
}

type HealthCheckUsecase interface {
	Check(ctx.Ctx) error
}
