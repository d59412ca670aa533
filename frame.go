// Completion: 100% - Instruction implementation complete
package main

// Function frame of the generated code.
//
// The code is entered as  func(tape uintptr)  with the tape base in rdi
// per the System V AMD64 convention. The prologue parks it in r12 and
// zeroes the cell offset in r13; both are callee-saved, so they survive
// the thunk calls the body makes. After the three pushes rsp is 16-byte
// aligned again, which keeps every call site in the body ABI-correct.

// Prologue emits the entry frame.
//
//	push rbp           55
//	mov  rbp, rsp      48 89 e5
//	push r12           41 54
//	push r13           41 55
//	mov  r12, rdi      49 89 fc
//	xor  r13d, r13d    45 31 ed
func (o *Out) Prologue() {
	start := o.len
	desc := "push rbp; mov rbp, rsp; push r12; push r13; mov r12, rdi; xor r13d, r13d"
	o.ins(desc)
	o.WriteBytes([]byte{
		0x55,
		0x48, 0x89, 0xE5,
		0x41, 0x54,
		0x41, 0x55,
		0x49, 0x89, 0xFC,
		0x45, 0x31, 0xED,
	})
	o.note(start, desc)
}

// Epilogue restores the frame and returns to the harness.
//
//	pop r13    41 5d
//	pop r12    41 5c
//	pop rbp    5d
//	ret        c3
func (o *Out) Epilogue() {
	start := o.len
	desc := "pop r13; pop r12; pop rbp; ret"
	o.ins(desc)
	o.WriteBytes([]byte{0x41, 0x5D, 0x41, 0x5C, 0x5D, 0xC3})
	o.note(start, desc)
}
