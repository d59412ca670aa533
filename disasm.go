// Completion: 100% - Diagnostic logger complete
package main

import (
	"fmt"
	"io"
	"iter"
)

// DisasmLog is the verbose-mode record of what was emitted where. It is a
// passive observer: the compiler appends to it and never reads it back.
type DisasmLog struct {
	entries []logEntry
}

type logEntry struct {
	offset int
	length int
	desc   string
}

func (l *DisasmLog) add(offset, length int, desc string) {
	l.entries = append(l.entries, logEntry{offset: offset, length: length, desc: desc})
}

// Len returns the number of recorded entries.
func (l *DisasmLog) Len() int {
	return len(l.entries)
}

// DisasmLine is one displayable entry: a byte range of the finished code
// buffer and its mnemonic description.
type DisasmLine struct {
	Offset int
	Bytes  []byte
	Desc   string
}

// Lines returns a lazy sequence over the recorded entries, resolved
// against the finished code. Ranging over it twice replays it from the
// start.
func (l *DisasmLog) Lines(code []byte) iter.Seq[DisasmLine] {
	return func(yield func(DisasmLine) bool) {
		for _, e := range l.entries {
			line := DisasmLine{
				Offset: e.offset,
				Bytes:  code[e.offset : e.offset+e.length],
				Desc:   e.desc,
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Fprint renders the disassembly table: offset, up to 16 hex bytes padded
// for alignment, then the mnemonic.
func (l *DisasmLog) Fprint(w io.Writer, code []byte) {
	fmt.Fprintf(w, "--- disassembly (%d bytes) ---\n", len(code))
	for line := range l.Lines(code) {
		fmt.Fprintf(w, "  %04x: ", line.Offset)
		n := len(line.Bytes)
		if n > 16 {
			n = 16
		}
		for _, b := range line.Bytes[:n] {
			fmt.Fprintf(w, "%02x ", b)
		}
		for j := n; j < 16; j++ {
			fmt.Fprint(w, "   ")
		}
		fmt.Fprintf(w, " %s\n", line.Desc)
	}
	fmt.Fprintf(w, "--- end disassembly ---\n\n")
}
