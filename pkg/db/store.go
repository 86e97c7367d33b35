package db

import (
	"alterra-bot/pkg/config"
	"context"

	"github.com/disgoorg/snowflake/v2"
)

type GuildStore interface {
	GetGuildConfig(ctx context.Context, guildID snowflake.ID) (config.Guild, error)
	// UpdateGuildConfig creates the guild entry if needed, applies update and persists the result.
	UpdateGuildConfig(ctx context.Context, guildID snowflake.ID, update func(cfg *config.Guild)) error
}
