package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate flag and value",
			args:    []string{"-d", "local.db", "-x", "noise"},
			allowed: []string{"-d"},
			want:    []string{"-d", "local.db"},
		},
		{
			name:    "flag=value form",
			args:    []string{"--config=conf.json", "-r=postgres://h/db"},
			allowed: []string{"--config", "-r"},
			want:    []string{"--config=conf.json", "-r=postgres://h/db"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-d", "-r", "dsn"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: []string{"-z"},
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-d"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"devpulse", "-c", "conf.json", "-d", "local.db"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"devpulse", "-config=other.json"}
	assert.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"devpulse", "-d", "local.db"}
	assert.Equal(t, "", JsonConfigFlags())
}
