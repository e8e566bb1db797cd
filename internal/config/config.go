package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	CORSOrigins   string        // comma-separated allow-list, shared by every service
	FanoutTimeout time.Duration // per-category outbound call budget
	AggregatorURL string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "coursiva.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./coursiva.log"
	}
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		// One list for every service; per-service copies kept drifting apart.
		origins = "http://localhost:3000"
	}
	fanout := 8 * time.Second
	if v := os.Getenv("FANOUT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			fanout = time.Duration(n) * time.Second
		}
	}
	aggURL := os.Getenv("AGGREGATOR_URL")

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, CORSOrigins: origins, FanoutTimeout: fanout, AggregatorURL: aggURL}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CORS_ORIGINS=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CORSOrigins)
	return cfg
}

// Origins splits the allow-list for callers that want a slice.
func (c Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
