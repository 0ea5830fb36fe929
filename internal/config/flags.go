package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string    path of the local SQLite database (default from Config)
//	-r string    Postgres DSN of the remote mirror (default from Config)
//	-i int       online check interval in seconds (default from Config)
//	-provision   create the remote schema and exit
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-i", "-provision"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path of the local database file")
	fs.StringVar(&cfg.RemoteDSN, "r", cfg.RemoteDSN, "postgres DSN of the remote mirror")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.Provision, "provision", false, "create the remote schema and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
