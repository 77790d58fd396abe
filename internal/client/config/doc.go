// Package config loads runtime configuration for the civigo client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. CIVIGO_* environment variables, optionally seeded from a dotenv file
//     given with -env or -dotenv (./.env otherwise).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags (see parseFlags).
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:8080",
//	  "online_check_interval": "3s",
//	  "sync_interval": "1m",
//	  "database_path": "civigo.db",
//	  "s3_bucket": "reports"
//	}
package config
