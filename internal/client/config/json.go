package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/civigo/internal/flagx"
	"github.com/dmitrijs2005/civigo/internal/timex"
)

// JsonConfig is the on-disk shape. Intervals accept "3s" or nanoseconds.
// Only fields present in the file override the current Config.
type JsonConfig struct {
	ServerBaseURL       *string         `json:"server_base_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	SyncInterval        *timex.Duration `json:"sync_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DatabasePath        *string         `json:"database_path"`
	LogFile             *string         `json:"log_file"`
	LogLevel            *string         `json:"log_level"`
	ReportDir           *string         `json:"report_dir"`
	S3Endpoint          *string         `json:"s3_endpoint"`
	S3Region            *string         `json:"s3_region"`
	S3AccessKey         *string         `json:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key"`
	S3Bucket            *string         `json:"s3_bucket"`
}

// parseJson overlays Config with the JSON file passed via -c or -config.
// It panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	str := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}
	dur := func(src *timex.Duration, dst *time.Duration) {
		if src != nil {
			*dst = src.Duration
		}
	}

	str(jc.ServerBaseURL, &cfg.ServerBaseURL)
	dur(jc.OnlineCheckInterval, &cfg.OnlineCheckInterval)
	dur(jc.SyncInterval, &cfg.SyncInterval)
	dur(jc.RequestTimeout, &cfg.RequestTimeout)
	str(jc.DatabasePath, &cfg.DatabasePath)
	str(jc.LogFile, &cfg.LogFile)
	str(jc.LogLevel, &cfg.LogLevel)
	str(jc.ReportDir, &cfg.ReportDir)
	str(jc.S3Endpoint, &cfg.S3Endpoint)
	str(jc.S3Region, &cfg.S3Region)
	str(jc.S3AccessKey, &cfg.S3AccessKey)
	str(jc.S3SecretKey, &cfg.S3SecretKey)
	str(jc.S3Bucket, &cfg.S3Bucket)
}
