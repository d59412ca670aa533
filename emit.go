// Completion: 100% - Emitter primitives complete
package main

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Out appends encoded instructions to a fixed-capacity code region and
// tracks the current write cursor. Exceeding the capacity is terminal:
// the error sticks, later writes become no-ops, and the compiler aborts.
type Out struct {
	code []byte     // the whole writable region
	len  int        // bytes emitted so far
	err  error      // sticky, set on overflow
	log  *DisasmLog // nil unless verbose diagnostics were requested
}

// NewOut wraps a writable code region. log may be nil.
func NewOut(code []byte, log *DisasmLog) *Out {
	return &Out{code: code, log: log}
}

// Len returns the number of bytes emitted so far.
func (o *Out) Len() int {
	return o.len
}

// Bytes returns the emitted code.
func (o *Out) Bytes() []byte {
	return o.code[:o.len]
}

// Err returns the sticky overflow error, if any.
func (o *Out) Err() error {
	return o.err
}

func (o *Out) checkSpace(need int) bool {
	if o.err != nil {
		return false
	}
	if o.len+need > len(o.code) {
		o.err = fmt.Errorf("%w (%d bytes used, need %d more)",
			ErrCodeBufferOverflow, o.len, need)
		return false
	}
	return true
}

// Write emits a single byte at the cursor.
func (o *Out) Write(b byte) {
	if !o.checkSpace(1) {
		return
	}
	o.code[o.len] = b
	o.len++
	if VerboseMode {
		fmt.Fprintf(os.Stderr, " %02x", b)
	}
}

// WriteBytes emits a byte sequence at the cursor.
func (o *Out) WriteBytes(bs []byte) {
	if !o.checkSpace(len(bs)) {
		return
	}
	copy(o.code[o.len:], bs)
	o.len += len(bs)
	if VerboseMode {
		for _, b := range bs {
			fmt.Fprintf(os.Stderr, " %02x", b)
		}
	}
}

// WriteU32 emits a 32-bit value, little-endian.
func (o *Out) WriteU32(v uint32) {
	if !o.checkSpace(4) {
		return
	}
	binary.LittleEndian.PutUint32(o.code[o.len:], v)
	o.len += 4
	if VerboseMode {
		fmt.Fprintf(os.Stderr, " %02x %02x %02x %02x",
			byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
}

// Patch32 overwrites a previously emitted 4-byte slot without moving the
// cursor. Used only to resolve jump displacements.
func (o *Out) Patch32(offset int, v uint32) {
	if o.err != nil {
		return
	}
	binary.LittleEndian.PutUint32(o.code[offset:offset+4], v)
}

// ins starts the verbose line for one instruction.
func (o *Out) ins(desc string) {
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "%s:", desc)
	}
}

// note ends the verbose line and records the emitted range in the log.
func (o *Out) note(start int, desc string) {
	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}
	if o.log != nil && o.err == nil {
		o.log.add(start, o.len-start, desc)
	}
}
