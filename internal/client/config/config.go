package config

import "time"

// Config holds runtime settings for the civigo client.
type Config struct {
	ServerBaseURL       string
	OnlineCheckInterval time.Duration
	SyncInterval        time.Duration
	RequestTimeout      time.Duration

	DatabasePath string
	LogFile      string
	LogLevel     string
	ReportDir    string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncInterval = time.Minute
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "civigo.db"
	c.LogFile = ""
	c.LogLevel = "info"
	c.ReportDir = "."
	c.S3Region = "us-east-1"
}

// LoadConfig applies defaults, then the environment (optionally seeded from
// a dotenv file), then a JSON file, then flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
