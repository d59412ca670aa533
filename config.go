// Completion: 100% - Configuration module complete
package main

import (
	"github.com/xyproto/env/v2"
)

// A tiny JIT compiler for Brainfuck, targeting x86_64 Linux

const versionString = "jitbf 1.0.0"

// Default capacities, overridable through the environment
const (
	defaultCodeSize   = 1 << 20 // 1 MiB code buffer
	defaultTapeSize   = 1 << 16 // 64 KiB tape (65536 cells)
	defaultMaxNesting = 256     // maximum [ ] nesting depth
)

// VerboseMode makes every emitter echo mnemonics and hex bytes to stderr
var VerboseMode = env.Bool("BFJIT_VERBOSE")

// Config holds the per-run settings for the compile pipeline.
// The in/out file descriptors are baked into the emitted I/O thunks,
// so two compilations with the same Config produce identical code.
type Config struct {
	CodeSize   int // capacity of the executable code buffer
	TapeSize   int // number of tape cells
	MaxNesting int // bound for the fixup stack, shared with the validator
	InFD       int // file descriptor read by ','
	OutFD      int // file descriptor written by '.'
}

// NewConfig returns the defaults, with BFJIT_* environment overrides applied.
func NewConfig() *Config {
	return &Config{
		CodeSize:   env.Int("BFJIT_CODE_SIZE", defaultCodeSize),
		TapeSize:   env.Int("BFJIT_TAPE_SIZE", defaultTapeSize),
		MaxNesting: env.Int("BFJIT_MAX_NESTING", defaultMaxNesting),
		InFD:       0,
		OutFD:      1,
	}
}
