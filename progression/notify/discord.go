// Package notify announces progression milestones to a Discord channel.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

// Notifier receives milestone announcements. Implementations are best effort;
// callers log errors and carry on.
type Notifier interface {
	LevelUp(ctx context.Context, userID string, level int) error
	BadgeUnlocked(ctx context.Context, userID string, badge BadgeNotice) error
	MaturityRankUp(ctx context.Context, userID, strengthID string, level models.MaturityLevel) error
}

type BadgeNotice struct {
	Key     string
	Name    string
	Tier    models.BadgeTier
	XPBonus int64
}

// MessageSender is the part of the disgo REST client used here.
type MessageSender interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

type Discord struct {
	sender    MessageSender
	channelID snowflake.ID
}

// NewDiscord builds a notifier posting with a bot token.
func NewDiscord(token string, channelID snowflake.ID) *Discord {
	return NewDiscordWithSender(rest.New(rest.NewClient(token)), channelID)
}

func NewDiscordWithSender(sender MessageSender, channelID snowflake.ID) *Discord {
	return &Discord{sender: sender, channelID: channelID}
}

func (d *Discord) LevelUp(ctx context.Context, userID string, level int) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("Level up").
		SetDescription(fmt.Sprintf("**%s** reached level **%d**", userID, level)).
		SetColor(config.LevelUpColor).
		SetTimestamp(time.Now()).
		Build()
	return d.send(ctx, embed, "level_up", userID)
}

func (d *Discord) BadgeUnlocked(ctx context.Context, userID string, badge BadgeNotice) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("Badge unlocked").
		SetDescription(fmt.Sprintf("**%s** earned **%s** (%s, +%d XP)", userID, badge.Name, badge.Tier, badge.XPBonus)).
		SetColor(config.BadgeColor).
		SetTimestamp(time.Now()).
		Build()
	return d.send(ctx, embed, "badge_unlocked", userID)
}

func (d *Discord) MaturityRankUp(ctx context.Context, userID, strengthID string, level models.MaturityLevel) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("Strength matured").
		SetDescription(fmt.Sprintf("**%s** is now **%s** in %s", userID, level, strengthID)).
		SetColor(config.LevelUpColor).
		SetTimestamp(time.Now()).
		Build()
	return d.send(ctx, embed, "maturity_rank_up", userID)
}

func (d *Discord) send(ctx context.Context, embed discord.Embed, kind, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, config.NotifyTimeout)
	defer cancel()

	msg := discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		Build()
	if _, err := d.sender.CreateMessage(d.channelID, msg, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("send %s notification: %w", kind, err)
	}
	slog.Debug("Notification sent",
		slog.String("kind", kind),
		slog.String("user_id", userID),
		slog.String("channel_id", d.channelID.String()))
	return nil
}
