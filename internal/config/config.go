package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultScanInterval matches the remote service's recommended poll rate.
const DefaultScanInterval = 60 * time.Second

// Account is one tracked account-context (user-cluster relation).
type Account struct {
	UCR  string `yaml:"ucr"`
	Name string `yaml:"name"`
}

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	AccessKey    string        // remote API credential (required)
	BaseURL      string        // override for the remote API base URL (optional)
	Accounts     []Account     // account-contexts to poll, one coordinator each
	AccountsFile string        // optional YAML file overriding the env account list
	ScanInterval time.Duration // refresh interval per account-context (default: 60s)
	HTTPTimeout  time.Duration // timeout for each remote request (default: 30s)
	Timezone     string        // IANA zone for all epoch conversions (default: UTC)

	// Redis (optional warm cache for the latest snapshots)
	RedisEnabled        bool
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
	SnapshotTTL         time.Duration // TTL for cached snapshots (default: 24h)
}

func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ALARMBRIDGE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ALARMBRIDGE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ALARMBRIDGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ALARMBRIDGE_PRETTY_LOG", false),

		// Remote service
		AccessKey:    requireEnv("ALARMBRIDGE_ACCESS_KEY"),
		BaseURL:      getenv("ALARMBRIDGE_BASE_URL", ""),
		AccountsFile: getenv("ALARMBRIDGE_ACCOUNTS_FILE", ""),
		ScanInterval: mustDuration("ALARMBRIDGE_SCAN_INTERVAL", DefaultScanInterval),
		HTTPTimeout:  mustDuration("ALARMBRIDGE_HTTP_TIMEOUT", 30*time.Second),
		Timezone:     getenv("ALARMBRIDGE_TIMEZONE", "UTC"),

		// Redis
		RedisEnabled:        mustBool("ALARMBRIDGE_REDIS_ENABLED", false),
		RedisAddr:           getenv("ALARMBRIDGE_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("ALARMBRIDGE_REDIS_USER", ""),
		RedisPassword:       getenv("ALARMBRIDGE_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ALARMBRIDGE_REDIS_DB", 0),
		RedisDT:             mustDuration("ALARMBRIDGE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("ALARMBRIDGE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("ALARMBRIDGE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("ALARMBRIDGE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("ALARMBRIDGE_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("ALARMBRIDGE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("ALARMBRIDGE_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("ALARMBRIDGE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("ALARMBRIDGE_REDIS_WARN_THRESHOLD", 3),
		SnapshotTTL:         mustDuration("ALARMBRIDGE_SNAPSHOT_TTL", 24*time.Hour),
	}

	for _, ucr := range splitAndTrim(getenv("ALARMBRIDGE_UCR_IDS", "")) {
		cfg.Accounts = append(cfg.Accounts, Account{UCR: ucr, Name: ucr})
	}

	if cfg.AccountsFile != "" {
		accounts, err := LoadAccounts(cfg.AccountsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load accounts file: %w", err)
		}
		cfg.Accounts = accounts
	}

	// No explicit context: poll the credential's active context, which the
	// server selects when the ucr parameter is absent.
	if len(cfg.Accounts) == 0 {
		cfg.Accounts = []Account{{UCR: "", Name: "active"}}
	}

	return cfg, nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
