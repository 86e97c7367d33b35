package handlers

import (
	"alterra-bot/pkg/config"
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

func (h *Handler) HandleSetupRole(data discord.SlashCommandInteractionData, event *handler.CommandEvent) error {
	guildID := event.GuildID()
	if guildID == nil {
		return event.CreateMessage(guildOnlyMessage())
	}
	messageCreate, err := h.setupRole(event.Ctx, *guildID, data.Role("role"))
	if err != nil {
		return err
	}
	return event.CreateMessage(messageCreate)
}

// setupRole records the role only; verifying does not grant it.
func (h *Handler) setupRole(ctx context.Context, guildID snowflake.ID, role discord.Role) (discord.MessageCreate, error) {
	if err := h.Bot.Store.UpdateGuildConfig(ctx, guildID, func(cfg *config.Guild) {
		cfg.SetVerifyRole(role.ID)
	}); err != nil {
		return discord.MessageCreate{}, fmt.Errorf("error while saving the verification role: %w", err)
	}
	return ephemeral().WithContentf("Verification role set: `%s`", role.Name), nil
}
