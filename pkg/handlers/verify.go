package handlers

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// VerifyButtonID is the custom id of the verification button. It is static so messages
// posted before a restart keep working.
const VerifyButtonID = "/alterra_verify"

// legacyVerifyButtonID is the id carried by verification messages posted before the router prefix.
const legacyVerifyButtonID = "alterra_verify"

// HandleVerify acknowledges the clicking user. It neither reads the guild configuration nor grants the role.
func (h *Handler) HandleVerify(event *handler.ComponentEvent) error {
	return event.CreateMessage(verifiedMessage())
}

func verifiedMessage() discord.MessageCreate {
	return ephemeral().WithContent("Well done.")
}
