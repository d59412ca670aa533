package main

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestLoopOpenEncoding(t *testing.T) {
	out := NewOut(make([]byte, 64), nil)
	fixup := out.LoopOpen()

	// cmp byte [r12+r13], 0 ; je rel32 (placeholder)
	want := []byte{0x43, 0x80, 0x3C, 0x2C, 0x00, 0x0F, 0x84, 0x00, 0x00, 0x00, 0x00}
	if got := out.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("LoopOpen = % x, want % x", got, want)
	}
	if fixup != 7 {
		t.Errorf("fixup offset = %d, want 7 (first rel32 byte)", fixup)
	}
}

func TestLoopCloseDisplacements(t *testing.T) {
	out := NewOut(make([]byte, 64), nil)
	fixup := out.LoopOpen()
	out.AddCell(-1) // 4-byte loop body
	out.LoopClose(fixup)

	code := out.Bytes()
	// open 0..11, body 11..15, close 15..26
	if len(code) != 26 {
		t.Fatalf("emitted %d bytes, want 26", len(code))
	}

	// Forward: je lands just past the close block, at offset 26.
	// rel32 is relative to the end of its own field (offset 11).
	fwd := int32(binary.LittleEndian.Uint32(code[7:]))
	if want := int32(26 - 11); fwd != want {
		t.Errorf("forward displacement %d, want %d", fwd, want)
	}

	// Backward: jne lands on the open's cmp at offset 0.
	// The jne rel32 field occupies 22..26.
	back := int32(binary.LittleEndian.Uint32(code[22:]))
	if want := int32(0 - 26); back != want {
		t.Errorf("backward displacement %d, want %d", back, want)
	}

	// Close block is cmp + jne.
	if !bytes.Equal(code[15:22], []byte{0x43, 0x80, 0x3C, 0x2C, 0x00, 0x0F, 0x85}) {
		t.Errorf("close block = % x", code[15:22])
	}
}

func TestJumpConditionMnemonics(t *testing.T) {
	if JumpEqual.String() != "je" || JumpEqual.opcode() != 0x84 {
		t.Errorf("JumpEqual = %s/%#x", JumpEqual, JumpEqual.opcode())
	}
	if JumpNotEqual.String() != "jne" || JumpNotEqual.opcode() != 0x85 {
		t.Errorf("JumpNotEqual = %s/%#x", JumpNotEqual, JumpNotEqual.opcode())
	}
}
