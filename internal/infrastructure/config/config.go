package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr            string
	LogLevel        string
	CORSAllowOrigin string
	// Capacity of the in-memory exchange store; oldest entries are evicted
	// past this point.
	MaxExchanges int
	// Default filter toggles for normal-mode runs; a run request body
	// overrides them.
	FilterPostOnly    bool
	FilterGetOnly     bool
	FilterNoStaticExt bool
}

func FromEnv() Config {
	cfg := Config{
		Addr:            getEnv("ADDR", ":9095"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
	}
	cfg.MaxExchanges = getEnvInt("MAX_EXCHANGES", 10000)
	cfg.FilterPostOnly = getEnvBool("FILTER_POST_ONLY", false)
	cfg.FilterGetOnly = getEnvBool("FILTER_GET_ONLY", false)
	cfg.FilterNoStaticExt = getEnvBool("FILTER_NO_STATIC_EXT", false)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	return def
}
