// Completion: 100% - W^X buffer management complete
//go:build linux

package main

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// CodeBuffer is the staging area for generated code. It is mapped
// writable and non-executable, filled by the emitter, then sealed with a
// one-way transition to read+execute before control is transferred into
// it. The region is never writable and executable at the same time.
type CodeBuffer struct {
	mem    []byte
	sealed bool
}

// NewCodeBuffer maps a writable, non-executable region of the given
// capacity.
func NewCodeBuffer(capacity int) (*CodeBuffer, error) {
	mem, err := unix.Mmap(-1, 0, capacity,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("code buffer allocation failed: %w", err)
	}
	return &CodeBuffer{mem: mem}, nil
}

// Writable returns the staging region for the emitter. Panics once the
// buffer has been sealed: the pages are read-only by then and a write
// would fault the process.
func (cb *CodeBuffer) Writable() []byte {
	if cb.sealed {
		panic("CodeBuffer: write access after Finalize")
	}
	return cb.mem
}

// Bytes returns the region contents. Valid before and after sealing.
func (cb *CodeBuffer) Bytes() []byte {
	return cb.mem
}

// Addr returns the base address, which is also the entry point of the
// compiled function.
func (cb *CodeBuffer) Addr() uintptr {
	return uintptr(unsafe.Pointer(&cb.mem[0]))
}

// Finalize flips the region from read+write to read+execute. One-way: no
// further writes are possible, enforced by the page protection.
func (cb *CodeBuffer) Finalize() error {
	if cb.sealed {
		return nil
	}
	if err := unix.Mprotect(cb.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("permission transition to executable failed: %w", err)
	}
	cb.sealed = true
	return nil
}

// Release returns the region to the platform. Safe to call twice.
func (cb *CodeBuffer) Release() {
	if cb.mem == nil {
		return
	}
	unix.Munmap(cb.mem)
	cb.mem = nil
}

// Tape is the compiled program's memory: a fixed, zero-initialized byte
// region addressed by the r13 offset. The generated code does not bounds
// check it; out-of-range offsets are the language's own undefined
// behavior.
type Tape struct {
	mem []byte
}

// NewTape maps a zero-initialized tape of the given size.
func NewTape(size int) (*Tape, error) {
	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("tape allocation failed: %w", err)
	}
	return &Tape{mem: mem}, nil
}

// Bytes returns the tape cells.
func (t *Tape) Bytes() []byte {
	return t.mem
}

// Addr returns the tape base address, passed to the compiled function.
func (t *Tape) Addr() uintptr {
	return uintptr(unsafe.Pointer(&t.mem[0]))
}

// Release returns the tape to the platform. Safe to call twice.
func (t *Tape) Release() {
	if t.mem == nil {
		return
	}
	unix.Munmap(t.mem)
	t.mem = nil
}
