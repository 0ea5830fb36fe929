package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK",
			args: []string{"cmd", "-d", "/tmp/pulse.db", "-r", "postgres://localhost/devpulse", "-i", "10"},
			expected: &Config{
				LocalDBPath:         "/tmp/pulse.db",
				RemoteDSN:           "postgres://localhost/devpulse",
				OnlineCheckInterval: 10 * time.Second,
			}},
		{name: "Test2 provision flag",
			args: []string{"cmd", "-provision", "-r", "postgres://localhost/devpulse"},
			expected: &Config{
				RemoteDSN: "postgres://localhost/devpulse",
				Provision: true,
			}},
		{name: "Test3 incorrect check interval",
			args:        []string{"cmd", "-i", "abc"},
			expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
