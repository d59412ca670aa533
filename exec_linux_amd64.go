// Completion: 100% - Execution harness complete
package main

import (
	"runtime"
)

// jitcall enters the generated code with the tape base in rdi, as the
// System V AMD64 convention requires for a one-argument function.
// Implemented in jitcall_linux_amd64.s.
func jitcall(entry, tape uintptr)

// Run seals the code buffer and executes it against the tape. The call
// blocks until the generated code returns; input instructions may block
// it indefinitely. The OS thread is pinned for the duration since the
// generated code runs outside the Go scheduler's view.
func Run(code *CodeBuffer, tape *Tape) error {
	if err := code.Finalize(); err != nil {
		return err
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	jitcall(code.Addr(), tape.Addr())
	return nil
}
