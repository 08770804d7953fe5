package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/log"
)

const defaultRingSize = 64

type Cfg struct {
	RingSize int
	// DiscordBotKey and DiscordChannelId enable the operator sink; both
	// empty means notices only land in the ring buffer and the log.
	DiscordBotKey    string
	DiscordChannelId string
}

type impl struct {
	mu       sync.Mutex
	ring     []Notice
	ringSize int

	discord   *discordgo.Session
	channelId string
}

func New(cfg *Cfg) (Notifier, error) {
	ringSize := cfg.RingSize
	if ringSize <= 0 {
		ringSize = defaultRingSize
	}
	im := &impl{ringSize: ringSize}
	if cfg.DiscordBotKey != "" && cfg.DiscordChannelId != "" {
		discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.DiscordBotKey))
		if err != nil {
			return nil, err
		}
		im.discord = discord
		im.channelId = cfg.DiscordChannelId
	}
	return im, nil
}

func (im *impl) Notify(ctx bCtx.Ctx, level Level, title, description string) {
	n := Notice{
		Id:          uuid.New().String(),
		Level:       level,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	im.mu.Lock()
	im.ring = append(im.ring, n)
	if len(im.ring) > im.ringSize {
		im.ring = im.ring[len(im.ring)-im.ringSize:]
	}
	im.mu.Unlock()

	ctx.WithFields(log.Fields{
		"level": level,
		"title": title,
		"desc":  description,
	}).Info("notice")

	if im.discord != nil {
		msg := &discordgo.MessageEmbed{
			Title:       title,
			Description: description,
		}
		if _, err := im.discord.ChannelMessageSendEmbed(im.channelId, msg); err != nil {
			ctx.WithField("err", err).Warn("ChannelMessageSendEmbed failed")
		}
	}
}

func (im *impl) Recent(ctx bCtx.Ctx, limit int) []Notice {
	im.mu.Lock()
	defer im.mu.Unlock()
	if limit <= 0 || limit > len(im.ring) {
		limit = len(im.ring)
	}
	out := make([]Notice, 0, limit)
	for i := len(im.ring) - 1; i >= len(im.ring)-limit; i-- {
		out = append(out, im.ring[i])
	}
	return out
}
