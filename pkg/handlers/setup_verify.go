package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/lmittmann/tint"
)

const (
	verificationColor = 0xFFA500
)

type messageCreator interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

func (h *Handler) HandleSetupVerify(event *handler.CommandEvent) error {
	guildID := event.GuildID()
	if guildID == nil {
		return event.CreateMessage(guildOnlyMessage())
	}
	creator := h.creator
	if creator == nil {
		creator = event.Client().Rest
	}
	messageCreate, err := h.setupVerify(event.Ctx, creator, *guildID)
	if err != nil {
		return err
	}
	return event.CreateMessage(messageCreate)
}

// setupVerify posts the verification message into the configured verification channel.
func (h *Handler) setupVerify(ctx context.Context, creator messageCreator, guildID snowflake.ID) (discord.MessageCreate, error) {
	cfg, err := h.Bot.Store.GetGuildConfig(ctx, guildID)
	if err != nil {
		return discord.MessageCreate{}, fmt.Errorf("error while getting the guild configuration: %w", err)
	}
	channelID, ok := cfg.VerifyChannelID()
	if !ok {
		return ephemeral().WithContent("You must run /setup_channel first."), nil
	}
	if _, err := creator.CreateMessage(channelID, verificationMessage()); err != nil {
		slog.Warn("alterra: error while creating the verification message",
			slog.Any("guild.id", guildID),
			slog.Any("channel.id", channelID),
			tint.Err(err))
		return ephemeral().WithContentf("Failed to create the verification message in <#%s>. Check that I can send messages there.", channelID), nil
	}
	return ephemeral().WithContent("Verification message created."), nil
}

func verificationMessage() discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle("Alterra Verification").
		SetDescription("Please complete this verification to access the server systems.").
		SetColor(verificationColor).
		Build()
	return discord.NewMessageCreate().
		WithEmbeds(embed).
		AddActionRow(discord.NewPrimaryButton("Verify", VerifyButtonID))
}
