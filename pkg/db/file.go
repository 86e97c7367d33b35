package db

import (
	"alterra-bot/pkg/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
)

const defaultFileMode fs.FileMode = 0o644

var ErrCorruptState = errors.New("guild state file is corrupt")

// Guilds maps a decimal guild id to its configuration.
type Guilds map[string]config.Guild

// Load reads the state file at path. A missing or empty file yields an empty mapping.
func Load(path string) (Guilds, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Guilds{}, nil
		}
		return nil, fmt.Errorf("error while reading guild state: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return Guilds{}, nil
	}
	var guilds Guilds
	if err := json.Unmarshal(b, &guilds); err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrCorruptState, path, err)
	}
	if guilds == nil {
		guilds = Guilds{}
	}
	return guilds, nil
}

// Save replaces the state file at path with guilds. The file is written to a temporary
// sibling first and renamed over the old one, keeping the old file's permissions.
func Save(path string, guilds Guilds) error {
	b, err := json.Marshal(guilds)
	if err != nil {
		return fmt.Errorf("error while encoding guild state: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "    "); err != nil {
		return fmt.Errorf("error while indenting guild state: %w", err)
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return fmt.Errorf("error while creating temporary state file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("error while setting guild state permissions: %w", err)
	}

	if _, err := tmp.Write(out.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("error while writing guild state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error while syncing guild state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error while closing guild state: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error while replacing guild state: %w", err)
	}
	return nil
}

// FileStore keeps every guild in memory and rewrites the whole state file on each update.
type FileStore struct {
	path string

	mu     sync.Mutex
	guilds Guilds
}

func OpenFile(path string) (*FileStore, error) {
	guilds, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{
		path:   path,
		guilds: guilds,
	}, nil
}

func (s *FileStore) GetGuildConfig(_ context.Context, guildID snowflake.ID) (config.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guilds[guildID.String()], nil
}

func (s *FileStore) UpdateGuildConfig(_ context.Context, guildID snowflake.ID, update func(cfg *config.Guild)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := guildID.String()
	prev, existed := s.guilds[key]
	cfg := prev
	update(&cfg)
	s.guilds[key] = cfg

	if err := Save(s.path, s.guilds); err != nil {
		if existed {
			s.guilds[key] = prev
		} else {
			delete(s.guilds, key)
		}
		return err
	}
	return nil
}

// Guilds returns a copy of the in-memory mapping.
func (s *FileStore) Guilds() Guilds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.guilds)
}
