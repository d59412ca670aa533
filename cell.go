// Completion: 100% - Instruction implementation complete
package main

import (
	"fmt"
)

// Cell arithmetic and cell access for the generated code.
//
// Register allocation, fixed for the whole program:
//   r12 = tape base pointer  (callee-saved)
//   r13 = current cell offset (callee-saved, unsigned 64-bit)
//
// [r12+r13] addressing needs a SIB byte; with both index and base in the
// r8-r15 range the REX prefix is 0x43 (REX.XB).

// AddCell adds n to the current cell. n must already be reduced to the
// signed byte range; the cell is one byte and wraps mod 256.
//
//	inc byte [r12+r13]       43 fe 04 2c
//	dec byte [r12+r13]       43 fe 0c 2c
//	add byte [r12+r13], n    43 80 04 2c NN
//	sub byte [r12+r13], n    43 80 2c 2c NN
func (o *Out) AddCell(n int) {
	start := o.len
	var desc string
	switch {
	case n == 1:
		desc = "inc byte [r12+r13]"
		o.ins(desc)
		o.WriteBytes([]byte{0x43, 0xFE, 0x04, 0x2C})
	case n == -1:
		desc = "dec byte [r12+r13]"
		o.ins(desc)
		o.WriteBytes([]byte{0x43, 0xFE, 0x0C, 0x2C})
	case n > 0:
		desc = fmt.Sprintf("add byte [r12+r13], %d", n)
		o.ins(desc)
		o.WriteBytes([]byte{0x43, 0x80, 0x04, 0x2C, byte(n)})
	default:
		desc = fmt.Sprintf("sub byte [r12+r13], %d", -n)
		o.ins(desc)
		o.WriteBytes([]byte{0x43, 0x80, 0x2C, 0x2C, byte(-n)})
	}
	o.note(start, desc)
}

// cmpCellZero emits the shared loop condition test.
//
//	cmp byte [r12+r13], 0    43 80 3c 2c 00
func (o *Out) cmpCellZero() {
	o.WriteBytes([]byte{0x43, 0x80, 0x3C, 0x2C, 0x00})
}

// loadCellIntoArg zero-extends the current cell into the first argument
// register for a thunk call.
//
//	movzx edi, byte [r12+r13]    43 0f b6 3c 2c
func (o *Out) loadCellIntoArg() {
	o.WriteBytes([]byte{0x43, 0x0F, 0xB6, 0x3C, 0x2C})
}

// storeRetIntoCell stores a thunk's return value into the current cell.
//
//	mov byte [r12+r13], al    43 88 04 2c
func (o *Out) storeRetIntoCell() {
	o.WriteBytes([]byte{0x43, 0x88, 0x04, 0x2C})
}
