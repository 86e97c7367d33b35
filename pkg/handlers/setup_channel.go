package handlers

import (
	"alterra-bot/pkg/config"
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

func (h *Handler) HandleSetupChannel(event *handler.CommandEvent) error {
	guildID := event.GuildID()
	if guildID == nil {
		return event.CreateMessage(guildOnlyMessage())
	}
	messageCreate, err := h.setupChannel(event.Ctx, *guildID, event.Channel().ID())
	if err != nil {
		return err
	}
	return event.CreateMessage(messageCreate)
}

func (h *Handler) setupChannel(ctx context.Context, guildID snowflake.ID, channelID snowflake.ID) (discord.MessageCreate, error) {
	if err := h.Bot.Store.UpdateGuildConfig(ctx, guildID, func(cfg *config.Guild) {
		cfg.SetVerifyChannel(channelID)
	}); err != nil {
		return discord.MessageCreate{}, fmt.Errorf("error while saving the verification channel: %w", err)
	}
	return ephemeral().WithContentf("Verification channel set to: <#%s>", channelID), nil
}
