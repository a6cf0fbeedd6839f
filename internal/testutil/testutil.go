// Package testutil provides testing utilities and helpers for the voting client.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is an interface that covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Skipf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// TempDirTB is a TestingTB that can also hand out temporary directories.
type TempDirTB interface {
	TestingTB
	TempDir() string
}

// SQLitePath returns a session file path inside a per-test temporary directory.
func SQLitePath(t TempDirTB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.db")
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envBool parses common truthy values from env vars.
func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// Redis test utilities

// defaultTestRedisDB is flushed before each Redis-backed test. It is kept off
// DB 0, which the bootstrap tests share under per-test key prefixes.
const defaultTestRedisDB = 9

// redisCandidates lists the addresses tried for a test Redis, in order.
func redisCandidates() []string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return []string{addr}
	}
	return []string{"localhost:6379", "redis:6379", getEnvOrDefault("TEST_REDIS_LOCAL_ADDR", "localhost:56379")}
}

// GetTestRedisAddr returns the first reachable test Redis address.
func GetTestRedisAddr(t TestingTB) (string, bool) {
	t.Helper()
	candidates := redisCandidates()
	for _, addr := range candidates {
		if err := pingRedis(addr); err == nil {
			return addr, true
		}
	}
	t.Logf("Redis not reachable at %s", strings.Join(candidates, ", "))
	return candidates[0], false
}

func pingRedis(addr string) error {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

// testRedisDB honours TEST_REDIS_DB, falling back to defaultTestRedisDB.
func testRedisDB(t TestingTB) int {
	v := os.Getenv("TEST_REDIS_DB")
	if v == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(v)
	if err != nil || db < 0 {
		t.Fatalf("invalid TEST_REDIS_DB=%q", v)
	}
	return db
}

// SetupTestRedis returns a client on a freshly flushed test database. The
// test is skipped when Redis is unreachable unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr, ok := GetTestRedisAddr(t)
	if !ok {
		if requireRedis() {
			t.Fatal("Redis not available for testing")
		}
		t.Skip("Redis not available for testing")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: testRedisDB(t)})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("flush test redis db at %s: %v", addr, err)
	}
	return client
}
