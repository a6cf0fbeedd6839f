package bootstrap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vinothdevgit/voting-client/config"
	"github.com/Vinothdevgit/voting-client/internal/adapters/memory"
	redisadapter "github.com/Vinothdevgit/voting-client/internal/adapters/redis"
	"github.com/Vinothdevgit/voting-client/internal/adapters/sqlite"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

const redisPingTimeout = 5 * time.Second

// SessionKV is a key/value backend plus the function that releases it.
type SessionKV struct {
	Store   ports.KeyValueStore
	Backend config.SessionBackend
	close   func() error
}

// Close releases the backend. Safe on a zero SessionKV.
func (s SessionKV) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenSessionKV opens the configured session backend.
func OpenSessionKV(ctx context.Context, cfg config.SessionConfig, logger *slog.Logger) (SessionKV, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case config.SessionBackendMemory:
		logger.Debug("session backend ready", "backend", cfg.Backend)
		return SessionKV{Store: memory.NewKVStore(), Backend: cfg.Backend}, nil

	case config.SessionBackendRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return SessionKV{}, err
		}
		return SessionKV{
			Store:   redisadapter.NewKVStoreWithPrefix(client, cfg.KeyPrefix),
			Backend: cfg.Backend,
			close:   client.Close,
		}, nil

	case config.SessionBackendSQLite, "":
		path := cfg.Path
		if path == "" {
			path = config.DefaultSessionPath()
		}
		kv, err := sqlite.Open(path)
		if err != nil {
			return SessionKV{}, fmt.Errorf("open session file: %w", err)
		}
		logger.Debug("session backend ready", "backend", config.SessionBackendSQLite, "path", path)
		return SessionKV{Store: kv, Backend: config.SessionBackendSQLite, close: kv.Close}, nil

	default:
		return SessionKV{}, fmt.Errorf("unsupported session backend %q", cfg.Backend)
	}
}

// ConnectRedis establishes a connection to Redis.
//
//nolint:ireturn // returning redis.UniversalClient lets us pick single, sentinel, or cluster clients at runtime.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	var (
		client   redis.UniversalClient
		addrDesc string
		err      error
	)

	switch {
	case cfg.UseCluster:
		client, addrDesc, err = newClusterClient(cfg)
	case cfg.UseSentinel:
		client, addrDesc, err = newSentinelClient(cfg)
	default:
		client, addrDesc, err = newDirectClient(cfg)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		logger.Debug("redis connected", "addr", redactAddr(addrDesc))
	}
	return client, nil
}

// redactAddr strips credentials from an address before it is logged.
func redactAddr(addr string) string {
	if u, err := url.Parse(addr); err == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if i := strings.LastIndex(addr, "@"); i > -1 {
		return addr[i+1:]
	}
	return addr
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newClusterClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	addrs := cfg.ClusterNodes
	password := cfg.Password
	username := ""
	var tlsConfig *tls.Config

	if len(addrs) == 0 {
		addr, parsedUsername, parsedPassword, parsedTLS, err := clusterFallbackFromURI(cfg.URI, password)
		if err != nil {
			return nil, "", err
		}
		if addr != "" {
			addrs = []string{addr}
			username = parsedUsername
			password = parsedPassword
			tlsConfig = parsedTLS
		}
	}

	if len(addrs) == 0 {
		return nil, "", errors.New("redis cluster configuration requires at least one address")
	}

	client := redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:     addrs,
		Username:  username,
		Password:  password,
		TLSConfig: tlsConfig,
	})
	return client, "cluster:" + strings.Join(addrs, ","), nil
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newSentinelClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	if len(cfg.SentinelNodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}

	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    cfg.SentinelNodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DB:               cfg.DB,
	})
	return client, "sentinel:" + cfg.SentinelMasterName, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newDirectClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if isRedisURL(uri) {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), opt.Addr, nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), uri, nil
}

func clusterFallbackFromURI(uri, defaultPassword string) (string, string, string, *tls.Config, error) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return "", "", defaultPassword, nil, nil
	}
	if !isRedisURL(trimmed) {
		return trimmed, "", defaultPassword, nil, nil
	}

	opt, err := redis.ParseURL(trimmed)
	if err != nil {
		return "", "", defaultPassword, nil, fmt.Errorf("parse redis cluster url: %w", err)
	}

	password := defaultPassword
	if opt.Password != "" {
		password = opt.Password
	}
	return opt.Addr, opt.Username, password, opt.TLSConfig, nil
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}
