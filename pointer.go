// Completion: 100% - Instruction implementation complete
package main

import (
	"fmt"
)

// MovePtr adds n to the cell offset register r13. Pointer arithmetic is
// full-width, no modular reduction; the immediate encoding is sized to
// the magnitude of n.
//
//	inc r13            49 ff c5
//	dec r13            49 ff cd
//	add r13, imm8      49 83 c5 NN
//	sub r13, imm8      49 83 ed NN
//	add r13, imm32     49 81 c5 NN NN NN NN
//	sub r13, imm32     49 81 ed NN NN NN NN
func (o *Out) MovePtr(n int) {
	start := o.len
	var desc string
	switch {
	case n == 1:
		desc = "inc r13"
		o.ins(desc)
		o.WriteBytes([]byte{0x49, 0xFF, 0xC5})
	case n == -1:
		desc = "dec r13"
		o.ins(desc)
		o.WriteBytes([]byte{0x49, 0xFF, 0xCD})
	case n > 0 && n <= 127:
		desc = fmt.Sprintf("add r13, %d", n)
		o.ins(desc)
		o.WriteBytes([]byte{0x49, 0x83, 0xC5, byte(n)})
	case n < 0 && n >= -127:
		desc = fmt.Sprintf("sub r13, %d", -n)
		o.ins(desc)
		o.WriteBytes([]byte{0x49, 0x83, 0xED, byte(-n)})
	case n > 0:
		desc = fmt.Sprintf("add r13, %d", n)
		o.ins(desc)
		o.WriteBytes([]byte{0x49, 0x81, 0xC5})
		o.WriteU32(uint32(n))
	default:
		desc = fmt.Sprintf("sub r13, %d", -n)
		o.ins(desc)
		o.WriteBytes([]byte{0x49, 0x81, 0xED})
		o.WriteU32(uint32(-n))
	}
	o.note(start, desc)
}
