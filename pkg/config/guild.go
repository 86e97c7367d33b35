package config

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
)

type Guild struct {
	VerifyChannel *Snowflake `json:"verify_channel,omitempty"`
	VerifyRole    *Snowflake `json:"verify_role,omitempty"`
}

func (g *Guild) SetVerifyChannel(id snowflake.ID) {
	s := Snowflake(id)
	g.VerifyChannel = &s
}

func (g *Guild) SetVerifyRole(id snowflake.ID) {
	s := Snowflake(id)
	g.VerifyRole = &s
}

func (g Guild) VerifyChannelID() (snowflake.ID, bool) {
	if g.VerifyChannel == nil {
		return 0, false
	}
	return g.VerifyChannel.ID(), true
}

func (g Guild) VerifyRoleID() (snowflake.ID, bool) {
	if g.VerifyRole == nil {
		return 0, false
	}
	return g.VerifyRole.ID(), true
}

// Snowflake is a snowflake.ID stored as a bare JSON number. Quoted ids are accepted on read.
type Snowflake snowflake.ID

func (s Snowflake) ID() snowflake.ID {
	return snowflake.ID(s)
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(s), 10), nil
}

func (s *Snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	id, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid snowflake %q: %w", data, err)
	}
	*s = Snowflake(id)
	return nil
}
