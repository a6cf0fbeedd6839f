package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SessionBackend selects where the session key/value pairs are kept.
type SessionBackend string

const (
	// SessionBackendSQLite keeps the session in a local database file.
	SessionBackendSQLite SessionBackend = "sqlite"
	// SessionBackendRedis shares the session through Redis.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory keeps the session for the life of the process only.
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch SessionBackend(v) {
	case SessionBackendSQLite, SessionBackendRedis, SessionBackendMemory:
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: sqlite, redis, memory)", v)
	}
}

// SessionConfig groups session persistence settings.
type SessionConfig struct {
	Backend SessionBackend `env:"BALLOT_SESSION_BACKEND" envDefault:"sqlite"`
	// Path is the SQLite file. Empty means the user config directory.
	Path string `env:"BALLOT_SESSION_PATH"`
	// KeyPrefix namespaces session keys in Redis. It is stored as a hash tag
	// so the keys share one cluster slot.
	KeyPrefix string `env:"BALLOT_SESSION_KEY_PREFIX" envDefault:"ballot:session:"`

	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize resolves the default SQLite path and trims Redis settings.
func (c *SessionConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = SessionBackendSQLite
	}
	c.Path = strings.TrimSpace(c.Path)
	if c.Path == "" {
		c.Path = DefaultSessionPath()
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		c.KeyPrefix = "ballot:session:"
	}
	c.Redis.Sanitize()
}

// DefaultSessionPath places the session file under the user config directory,
// falling back to the working directory.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".ballot", "session.db")
	}
	return filepath.Join(dir, "ballot", "session.db")
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize trims addresses and drops empty node entries.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	c.SentinelNodes = trimNodes(c.SentinelNodes)
	c.ClusterNodes = trimNodes(c.ClusterNodes)
	if c.DB < 0 {
		c.DB = 0
	}
}

func trimNodes(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
