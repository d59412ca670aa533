// Completion: 100% - Syscall-based character I/O thunks complete
package main

import (
	"encoding/binary"
	"fmt"
)

// Character I/O for the generated code.
//
// The compiled program cannot call into Go, and embedding absolute host
// addresses would make the emitted bytes depend on where the process
// happens to be loaded. Instead the buffer starts with two small thunks
// built on the raw Linux write/read syscalls, reached with rel32 calls.
// A 2-byte jump at offset 0 skips them, so the buffer base stays the
// entry point. All offsets below are fixed, which makes compilation of
// the same source byte-identical across runs.
//
// The thunks take the character argument in edi and return in al, the
// same shape as putchar/getchar under the System V convention. They do
// not touch r12/r13, and syscalls clobber only rax, rcx and r11.
const (
	entryJumpSize   = 2
	putcharThunkOff = entryJumpSize
	putcharThunkLen = 23
	getcharThunkOff = putcharThunkOff + putcharThunkLen
	getcharThunkLen = 21
	entryOff        = getcharThunkOff + getcharThunkLen
)

// Prelude emits the entry jump and both I/O thunks at the start of the
// code buffer. Must be the first emission of a compilation.
func (o *Out) Prelude(infd, outfd int) {
	start := o.len
	desc := "jmp <entry>"
	o.ins(desc)
	o.Write(0xEB)
	o.Write(byte(entryOff - entryJumpSize)) // rel8 from the next instruction
	o.note(start, desc)

	o.emitPutcharThunk(outfd)
	o.emitGetcharThunk(infd)
}

// putchar thunk: write(outfd, rsp, 1) with the byte parked on the stack.
//
//	push rdi           57
//	mov  eax, 1        b8 01 00 00 00    sys_write
//	mov  edi, outfd    bf NN NN NN NN
//	mov  rsi, rsp      48 89 e6
//	mov  edx, 1        ba 01 00 00 00
//	syscall            0f 05
//	pop  rdi           5f
//	ret                c3
func (o *Out) emitPutcharThunk(outfd int) {
	start := o.len
	desc := fmt.Sprintf("putchar thunk: write(%d, rsp, 1)", outfd)
	o.ins(desc)
	enc := []byte{
		0x57,
		0xB8, 0x01, 0x00, 0x00, 0x00,
		0xBF, 0x00, 0x00, 0x00, 0x00,
		0x48, 0x89, 0xE6,
		0xBA, 0x01, 0x00, 0x00, 0x00,
		0x0F, 0x05,
		0x5F,
		0xC3,
	}
	binary.LittleEndian.PutUint32(enc[7:], uint32(outfd))
	o.WriteBytes(enc)
	o.note(start, desc)
}

// getchar thunk: read(infd, rsp, 1) into a stack slot pre-seeded with -1,
// so a read that returns no bytes (EOF) leaves 0xff in al, matching what
// getchar's -1 return looks like through an 8-bit store.
//
//	push -1            6a ff
//	xor  eax, eax      31 c0             sys_read
//	mov  edi, infd     bf NN NN NN NN
//	mov  rsi, rsp      48 89 e6
//	mov  edx, 1        ba 01 00 00 00
//	syscall            0f 05
//	pop  rax           58
//	ret                c3
func (o *Out) emitGetcharThunk(infd int) {
	start := o.len
	desc := fmt.Sprintf("getchar thunk: read(%d, rsp, 1)", infd)
	o.ins(desc)
	enc := []byte{
		0x6A, 0xFF,
		0x31, 0xC0,
		0xBF, 0x00, 0x00, 0x00, 0x00,
		0x48, 0x89, 0xE6,
		0xBA, 0x01, 0x00, 0x00, 0x00,
		0x0F, 0x05,
		0x58,
		0xC3,
	}
	binary.LittleEndian.PutUint32(enc[5:], uint32(infd))
	o.WriteBytes(enc)
	o.note(start, desc)
}

// EmitOutput compiles '.': pass the current cell to the putchar thunk.
//
//	movzx edi, byte [r12+r13]    43 0f b6 3c 2c
//	call  <putchar>              e8 NN NN NN NN
func (o *Out) EmitOutput() {
	start := o.len
	desc := "movzx edi, byte [r12+r13]; call <putchar>"
	o.ins(desc)
	o.loadCellIntoArg()
	o.Write(0xE8)
	o.WriteU32(uint32(int32(putcharThunkOff - (o.len + 4))))
	o.note(start, desc)
}

// EmitInput compiles ',': call the getchar thunk, store the result.
//
//	call <getchar>              e8 NN NN NN NN
//	mov  byte [r12+r13], al     43 88 04 2c
func (o *Out) EmitInput() {
	start := o.len
	desc := "call <getchar>; mov byte [r12+r13], al"
	o.ins(desc)
	o.Write(0xE8)
	o.WriteU32(uint32(int32(getcharThunkOff - (o.len + 4))))
	o.storeRetIntoCell()
	o.note(start, desc)
}
