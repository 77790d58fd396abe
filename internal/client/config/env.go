package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/civigo/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "CIVIGO_"

// parseEnv overlays Config with CIVIGO_* environment variables. A dotenv
// file named by -env/-dotenv, or ./.env when present, is loaded first;
// variables already set in the process environment take precedence over
// the file.
func parseEnv(cfg *Config) {
	path := flagx.EnvFileFlags()
	switch {
	case path != "":
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	default:
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return
		}
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
			return
		}
		secs, err := strconv.Atoi(v)
		if err != nil {
			panic("invalid duration in " + envPrefix + name + ": " + v)
		}
		*dst = time.Duration(secs) * time.Second
	}

	str("SERVER_URL", &cfg.ServerBaseURL)
	dur("ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval)
	dur("SYNC_INTERVAL", &cfg.SyncInterval)
	dur("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	str("DATABASE_PATH", &cfg.DatabasePath)
	str("LOG_FILE", &cfg.LogFile)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("REPORT_DIR", &cfg.ReportDir)
	str("S3_ENDPOINT", &cfg.S3Endpoint)
	str("S3_REGION", &cfg.S3Region)
	str("S3_ACCESS_KEY", &cfg.S3AccessKey)
	str("S3_SECRET_KEY", &cfg.S3SecretKey)
	str("S3_BUCKET", &cfg.S3Bucket)
}
