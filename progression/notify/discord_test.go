package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

type recordingSender struct {
	channel  snowflake.ID
	messages []discord.MessageCreate
	err      error
}

func (s *recordingSender) CreateMessage(channelID snowflake.ID, m discord.MessageCreate, _ ...rest.RequestOpt) (*discord.Message, error) {
	s.channel = channelID
	s.messages = append(s.messages, m)
	if s.err != nil {
		return nil, s.err
	}
	return &discord.Message{}, nil
}

func TestDiscordNotifier(t *testing.T) {
	channel := snowflake.ID(1234)
	tests := []struct {
		name string
		send func(d *Discord) error
		want string
	}{
		{
			name: "level up",
			send: func(d *Discord) error { return d.LevelUp(context.Background(), "u1", 3) },
			want: "reached level **3**",
		},
		{
			name: "badge",
			send: func(d *Discord) error {
				return d.BadgeUnlocked(context.Background(), "u1", BadgeNotice{Key: "first_steps", Name: "First Steps", Tier: models.TierBronze, XPBonus: 25})
			},
			want: "First Steps",
		},
		{
			name: "maturity",
			send: func(d *Discord) error {
				return d.MaturityRankUp(context.Background(), "u1", "focus", models.MaturityDeveloping)
			},
			want: "DEVELOPING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{}
			d := NewDiscordWithSender(sender, channel)
			if err := tt.send(d); err != nil {
				t.Fatalf("send() error = %v", err)
			}
			if sender.channel != channel {
				t.Errorf("channel got = %v, want %v", sender.channel, channel)
			}
			if len(sender.messages) != 1 || len(sender.messages[0].Embeds) != 1 {
				t.Fatalf("expected one message with one embed, got %+v", sender.messages)
			}
			if !strings.Contains(sender.messages[0].Embeds[0].Description, tt.want) {
				t.Errorf("description %q does not contain %q", sender.messages[0].Embeds[0].Description, tt.want)
			}
		})
	}
}

func TestDiscordNotifierError(t *testing.T) {
	sender := &recordingSender{err: errors.New("rate limited")}
	d := NewDiscordWithSender(sender, snowflake.ID(1))
	if err := d.LevelUp(context.Background(), "u1", 2); err == nil {
		t.Errorf("LevelUp() expected error")
	}
}
