package pkg

import (
	"alterra-bot/pkg/db"
)

type Bot struct {
	Store db.GuildStore
}
