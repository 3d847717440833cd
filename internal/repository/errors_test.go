package repository

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "not a directory",
			err:      &NotADirectoryError{Path: "/tmp/file"},
			expected: "not a directory: /tmp/file",
		},
		{
			name:     "already initialized",
			err:      &AlreadyInitializedError{Path: "/tmp/r/.nexus"},
			expected: "repository already initialized: /tmp/r/.nexus is not empty",
		},
		{
			name:     "missing config",
			err:      &MissingConfigError{Path: "/tmp/r/.nexus/config", Err: fs.ErrNotExist},
			expected: "configuration file missing or invalid: /tmp/r/.nexus/config: file does not exist",
		},
		{
			name:     "format version",
			err:      &FormatVersionError{Version: "1"},
			expected: "unsupported repositoryformatversion: 1",
		},
		{
			name:     "format version unset",
			err:      &FormatVersionError{},
			expected: "unsupported repositoryformatversion: not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorSentinels(t *testing.T) {
	assert.ErrorIs(t, &NotADirectoryError{Path: "x"}, ErrNotADirectory)
	assert.ErrorIs(t, &AlreadyInitializedError{Path: "x"}, ErrAlreadyInitialized)
	assert.ErrorIs(t, &MissingConfigError{Path: "x", Err: fs.ErrNotExist}, ErrMissingConfig)
	assert.ErrorIs(t, &FormatVersionError{Version: "2"}, ErrUnsupportedFormatVersion)

	assert.False(t, errors.Is(&FormatVersionError{Version: "2"}, ErrMissingConfig))
	assert.False(t, errors.Is(&NotADirectoryError{Path: "x"}, ErrNotARepository))
}

func TestMissingConfigError_Unwrap(t *testing.T) {
	err := &MissingConfigError{Path: "x", Err: fs.ErrNotExist}

	assert.ErrorIs(t, err, fs.ErrNotExist)
}
