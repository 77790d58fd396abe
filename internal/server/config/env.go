package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/civigo/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "CIVIGO_SERVER_"

// parseEnv overlays Config with CIVIGO_SERVER_* variables, after loading
// the dotenv file named by -env/-dotenv (or ./.env when it exists).
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envPrefix + "ADDRESS"); ok {
		cfg.EndpointAddr = v
	}
	if v, ok := os.LookupEnv(envPrefix + "DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envPrefix + "SECRET_KEY"); ok {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envPrefix + "CORS_ORIGINS"); ok {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			mins, convErr := strconv.Atoi(v)
			if convErr != nil {
				panic("invalid duration in " + envPrefix + "TOKEN_VALIDITY: " + v)
			}
			d = time.Duration(mins) * time.Minute
		}
		cfg.AccessTokenValidityDuration = d
	}
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
