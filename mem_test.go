//go:build linux

package main

import (
	"testing"
)

func TestCodeBufferLifecycle(t *testing.T) {
	cb, err := NewCodeBuffer(4096)
	if err != nil {
		t.Fatalf("NewCodeBuffer: %v", err)
	}
	defer cb.Release()

	region := cb.Writable()
	if len(region) != 4096 {
		t.Fatalf("capacity %d, want 4096", len(region))
	}
	region[0] = 0xC3

	if err := cb.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cb.Bytes()[0] != 0xC3 {
		t.Error("contents not readable after Finalize")
	}
	// Finalize is one-way and idempotent.
	if err := cb.Finalize(); err != nil {
		t.Errorf("second Finalize: %v", err)
	}
}

func TestCodeBufferWritableAfterSealPanics(t *testing.T) {
	cb, err := NewCodeBuffer(4096)
	if err != nil {
		t.Fatalf("NewCodeBuffer: %v", err)
	}
	defer cb.Release()
	if err := cb.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Writable after Finalize did not panic")
		}
	}()
	cb.Writable()
}

func TestCodeBufferReleaseIsIdempotent(t *testing.T) {
	cb, err := NewCodeBuffer(4096)
	if err != nil {
		t.Fatalf("NewCodeBuffer: %v", err)
	}
	cb.Release()
	cb.Release()
}

func TestTapeZeroInitialized(t *testing.T) {
	tape, err := NewTape(1 << 12)
	if err != nil {
		t.Fatalf("NewTape: %v", err)
	}
	defer tape.Release()

	for i, b := range tape.Bytes() {
		if b != 0 {
			t.Fatalf("cell %d = %d, want 0", i, b)
		}
	}
	tape.Release()
	tape.Release()
}
