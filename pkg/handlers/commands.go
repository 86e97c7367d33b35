package handlers

import (
	"alterra-bot/pkg"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/handler"
	"github.com/lmittmann/tint"
)

var guildContexts = []discord.InteractionContextType{discord.InteractionContextTypeGuild}

var Commands = []discord.ApplicationCommandCreate{
	discord.SlashCommandCreate{
		Name:        "setup_channel",
		Description: "Set the current channel as the verification channel.",
		Contexts:    guildContexts,
	},
	discord.SlashCommandCreate{
		Name:        "setup_role",
		Description: "Select the role users will receive after verification.",
		Contexts:    guildContexts,
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionRole{
				Name:        "role",
				Description: "Choose a role",
				Required:    true,
			},
		},
	},
	discord.SlashCommandCreate{
		Name:        "setup_verify",
		Description: "Create the verification message.",
		Contexts:    guildContexts,
	},
}

func NewHandler(b *pkg.Bot) *Handler {
	mux := handler.New()
	mux.Error(func(e *handler.InteractionEvent, err error) {
		attrs := []any{tint.Err(err)}
		switch i := e.Interaction.(type) {
		case discord.ApplicationCommandInteraction:
			attrs = append(attrs, slog.String("command.name", i.Data.CommandName()))
		case discord.ComponentInteraction:
			attrs = append(attrs, slog.String("component.id", i.Data.CustomID()))
		}
		if guildID := e.GuildID(); guildID != nil {
			attrs = append(attrs, slog.Any("guild.id", *guildID))
		}
		slog.Error("alterra: error while handling an interaction", attrs...)
		_ = e.Respond(discord.InteractionResponseTypeCreateMessage, discord.NewMessageCreate().
			WithContentf("There was an error while handling the command: %v", err).
			WithEphemeral(true))
	})
	handlers := &Handler{
		Bot:    b,
		Router: mux,
	}
	handlers.Group(func(r handler.Router) {
		r.Command("/setup_channel", handlers.HandleSetupChannel)
		r.SlashCommand("/setup_role", handlers.HandleSetupRole)
		r.Command("/setup_verify", handlers.HandleSetupVerify)
	})
	handlers.Component(VerifyButtonID, handlers.HandleVerify)
	return handlers
}

type Handler struct {
	Bot *pkg.Bot
	handler.Router

	// creator posts channel messages; nil means the client's rest API.
	creator messageCreator
}

// OnEvent answers clicks on buttons carrying the unprefixed legacy id, which the router never
// matches, and hands every other event to the router.
func (h *Handler) OnEvent(event bot.Event) {
	if e, ok := event.(*events.InteractionCreate); ok {
		if i, ok := e.Interaction.(discord.ComponentInteraction); ok && i.Data.CustomID() == legacyVerifyButtonID {
			if err := e.Respond(discord.InteractionResponseTypeCreateMessage, verifiedMessage()); err != nil {
				slog.Error("alterra: error while answering a legacy verification button", slog.String("component.id", legacyVerifyButtonID), tint.Err(err))
			}
			return
		}
	}
	h.Router.OnEvent(event)
}

func ephemeral() discord.MessageCreate {
	return discord.NewMessageCreate().WithEphemeral(true)
}

func guildOnlyMessage() discord.MessageCreate {
	return ephemeral().WithContent("This command can only be used in a server.")
}
