package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xyproto/ylex/internal/arena"
	"github.com/xyproto/ylex/internal/stream"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("YLEX_BUFFER_SIZE", "128")
	t.Setenv("YLEX_BLOCK_SIZE", "1024")
	t.Setenv("YLEX_MAX_ERRORS", "5")
	t.Setenv("YLEX_VERBOSE", "true")
	t.Setenv("NO_COLOR", "1")

	cfg := ConfigFromEnv()
	assert.Equal(t, 128, cfg.BufferSize)
	assert.Equal(t, 1024, cfg.BlockSize)
	assert.Equal(t, 5, cfg.MaxErrors)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Comments)
	assert.True(t, cfg.NoColor)
	assert.NoError(t, cfg.Validate())
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("YLEX_BUFFER_SIZE", "")
	t.Setenv("YLEX_BLOCK_SIZE", "")
	cfg := ConfigFromEnv()
	assert.Equal(t, stream.DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, arena.DefaultBlockSize, cfg.BlockSize)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{BufferSize: 4096, BlockSize: 65536}, false},
		{"one byte buffer", Config{BufferSize: 1, BlockSize: arena.MinBlockSize}, false},
		{"zero buffer", Config{BufferSize: 0, BlockSize: 65536}, true},
		{"huge buffer", Config{BufferSize: stream.MaxBufferSize + 1, BlockSize: 65536}, true},
		{"tiny block", Config{BufferSize: 4096, BlockSize: arena.MinBlockSize - 1}, true},
		{"huge block", Config{BufferSize: 4096, BlockSize: arena.MaxBlockSize + 1}, true},
		{"negative max errors", Config{BufferSize: 4096, BlockSize: 65536, MaxErrors: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
