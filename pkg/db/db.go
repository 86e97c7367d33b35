package db

import (
	"alterra-bot/pkg/config"
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableQuery     = "CREATE TABLE IF NOT EXISTS verify_config (guild_id BIGINT PRIMARY KEY, verify_channel BIGINT, verify_role BIGINT);"
	selectQuery          = "SELECT verify_channel, verify_role FROM verify_config WHERE guild_id = $1;"
	selectForUpdateQuery = "SELECT verify_channel, verify_role FROM verify_config WHERE guild_id = $1 FOR UPDATE;"
	upsertQuery          = "INSERT INTO verify_config (guild_id, verify_channel, verify_role) VALUES ($1, $2, $3) ON CONFLICT(guild_id) DO UPDATE SET verify_channel=excluded.verify_channel, verify_role=excluded.verify_role;"
)

// DB is a GuildStore backed by PostgreSQL.
type DB struct {
	pool *pgxpool.Pool
}

func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, createTableQuery)
	return err
}

func (db *DB) GetGuildConfig(ctx context.Context, guildID snowflake.ID) (config.Guild, error) {
	rows, _ := db.pool.Query(ctx, selectQuery, int64(guildID))
	return collectGuild(rows)
}

func (db *DB) UpdateGuildConfig(ctx context.Context, guildID snowflake.ID, update func(cfg *config.Guild)) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		rows, _ := tx.Query(ctx, selectForUpdateQuery, int64(guildID))
		cfg, err := collectGuild(rows)
		if err != nil {
			return err
		}
		update(&cfg)
		_, err = tx.Exec(ctx, upsertQuery, int64(guildID), toColumn(cfg.VerifyChannel), toColumn(cfg.VerifyRole))
		return err
	})
}

type guildRow struct {
	VerifyChannel *int64 `db:"verify_channel"`
	VerifyRole    *int64 `db:"verify_role"`
}

func collectGuild(rows pgx.Rows) (cfg config.Guild, err error) {
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[guildRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
		}
		return
	}
	cfg.VerifyChannel = fromColumn(row.VerifyChannel)
	cfg.VerifyRole = fromColumn(row.VerifyRole)
	return
}

func toColumn(s *config.Snowflake) *int64 {
	if s == nil {
		return nil
	}
	v := int64(*s)
	return &v
}

func fromColumn(v *int64) *config.Snowflake {
	if v == nil {
		return nil
	}
	s := config.Snowflake(*v)
	return &s
}
