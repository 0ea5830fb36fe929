// Package config loads runtime configuration for the DevPulse CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string    path of the local SQLite database file
//	-r string    Postgres DSN of the remote mirror
//	-i int       online status check interval (seconds)
//	-provision   create the remote schema and exit
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "local_db_path": "devpulse.db",
//	  "remote_dsn": "postgres://localhost:5432/devpulse",
//	  "online_check_interval": "3s",
//	  "probe_timeout": "2s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
