package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{name: "default", level: "", want: zerolog.WarnLevel},
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "upper case", level: "INFO", want: zerolog.InfoLevel},
		{name: "disabled", level: "disabled", want: zerolog.Disabled},
		{name: "invalid", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&bytes.Buffer{}, tt.level, FormatJSON)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(&buf, "info", FormatAuto)
	require.NoError(t, err)

	l.Info().Str("worktree", "/tmp/r").Msg("created")
	l.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "/tmp/r", entry["worktree"])
	assert.Equal(t, "created", entry["message"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(&buf, "warn", FormatConsole)
	require.NoError(t, err)

	l.Warn().Msg("registry unavailable")
	assert.Contains(t, buf.String(), "registry unavailable")
	assert.Contains(t, buf.String(), "WRN")
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestInstall(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer

	l, err := New(&buf, "debug", FormatJSON)
	require.NoError(t, err)

	Install(l)
	log.Debug().Msg("through global")

	assert.Contains(t, buf.String(), "through global")
}
