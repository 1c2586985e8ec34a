// Completion: 100% - Configuration complete

package main

import (
	"fmt"

	"github.com/xyproto/env/v2"

	"github.com/xyproto/ylex/internal/arena"
	"github.com/xyproto/ylex/internal/stream"
)

// Config holds the settings for one lexing session
type Config struct {
	BufferSize int  // stream reader window in bytes
	BlockSize  int  // arena block size in bytes
	MaxErrors  int  // stop after this many lexical errors, 0 for no limit
	Verbose    bool // progress messages on stderr
	Comments   bool // skip "//" line comments
	Stats      bool // print session statistics on stderr
	Watch      bool // lex again whenever the file changes
	Color      bool // ANSI colour in diagnostics
	NoColor    bool // NO_COLOR is set
}

// ConfigFromEnv reads the defaults from the environment.
// Command-line flags are parsed on top of these values.
func ConfigFromEnv() Config {
	return Config{
		BufferSize: env.Int("YLEX_BUFFER_SIZE", stream.DefaultBufferSize),
		BlockSize:  env.Int("YLEX_BLOCK_SIZE", arena.DefaultBlockSize),
		MaxErrors:  env.Int("YLEX_MAX_ERRORS", 0),
		Verbose:    env.Bool("YLEX_VERBOSE"),
		Comments:   env.Bool("YLEX_COMMENTS"),
		NoColor:    env.Has("NO_COLOR"),
	}
}

// Validate checks that the sizes are usable
func (c Config) Validate() error {
	if c.BufferSize < 1 || c.BufferSize > stream.MaxBufferSize {
		return fmt.Errorf("buffer size %d out of range (1..%d)", c.BufferSize, stream.MaxBufferSize)
	}
	if c.BlockSize < arena.MinBlockSize || c.BlockSize > arena.MaxBlockSize {
		return fmt.Errorf("block size %d out of range (%d..%d)", c.BlockSize, arena.MinBlockSize, arena.MaxBlockSize)
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("max errors can not be negative: %d", c.MaxErrors)
	}
	return nil
}
