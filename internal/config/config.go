package config

import "time"

// Config holds runtime settings for the DevPulse CLI.
//
// Fields:
//   - LocalDBPath: path of the local SQLite database file.
//   - RemoteDSN: Postgres DSN of the remote mirror; empty disables mirroring.
//   - OnlineCheckInterval: how often the client probes remote reachability.
//   - ProbeTimeout: per-probe dial timeout.
type Config struct {
	LocalDBPath         string
	RemoteDSN           string
	OnlineCheckInterval time.Duration
	ProbeTimeout        time.Duration
	Provision           bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.LocalDBPath = "devpulse.db"
	c.RemoteDSN = ""
	c.OnlineCheckInterval = 3 * time.Second
	c.ProbeTimeout = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
