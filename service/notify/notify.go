package notify

import (
	"time"

	bCtx "github.com/movebid/goapi/base/ctx"
)

type Level string

const (
	LevelSuccess     Level = "success"
	LevelDestructive Level = "destructive"
)

// Notice is a transient user-visible notification: a title and a
// description, nothing persisted beyond the ring buffer.
type Notice struct {
	Id          string    `json:"id"`
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Notifier interface {
	Notify(c bCtx.Ctx, level Level, title, description string)
	// Recent returns up to limit notices, newest first.
	Recent(c bCtx.Ctx, limit int) []Notice
}
