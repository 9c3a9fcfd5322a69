// Package config loads client configuration from the environment, with a
// best-effort .env file on top.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable the client and the stub server read.
type Config struct {
	APIBaseURL string
	AIBaseURL  string

	RequestTimeout time.Duration

	StatusInterval      time.Duration
	ChatListInterval    time.Duration
	MessageInterval     time.Duration
	RequirementInterval time.Duration

	MessageLimit int
	LogFile      string

	StubPort   string
	StubDBPath string
}

// Load reads the configuration. A missing .env file is not an error;
// real environment variables always win.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return Config{
		APIBaseURL:          getEnv("CHATDASH_API_URL", "http://localhost:3001"),
		AIBaseURL:           getEnv("CHATDASH_AI_URL", "http://localhost:11434"),
		RequestTimeout:      getDuration("CHATDASH_REQUEST_TIMEOUT", 10*time.Second),
		StatusInterval:      getDuration("CHATDASH_STATUS_INTERVAL", 5*time.Second),
		ChatListInterval:    getDuration("CHATDASH_CHATS_INTERVAL", 5*time.Second),
		MessageInterval:     getDuration("CHATDASH_MESSAGES_INTERVAL", 3*time.Second),
		RequirementInterval: getDuration("CHATDASH_REQUIREMENTS_INTERVAL", 10*time.Second),
		MessageLimit:        getInt("CHATDASH_MESSAGE_LIMIT", 100),
		LogFile:             getEnv("CHATDASH_LOG_FILE", "chatdash.log"),
		StubPort:            getEnv("CHATDASH_STUB_PORT", "3001"),
		StubDBPath:          getEnv("CHATDASH_STUB_DB", "chatdash-stub.db"),
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("invalid %s=%q, using %v: %v", key, val, fallback, err)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("invalid %s=%q, using %d: %v", key, val, fallback, err)
		return fallback
	}
	return n
}
