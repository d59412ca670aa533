// Completion: 100% - Instruction implementation complete
package main

// Conditional jumps for loop control flow.
//
// Both ends of a loop test the current cell, so the back edge is a single
// test-and-branch and entry costs no extra unconditional jump. The forward
// displacement of '[' is unknown when it is emitted; LoopOpen leaves a
// 4-byte placeholder and returns its offset for later patching.

// JumpCondition selects the condition code of a near jump
type JumpCondition int

const (
	JumpEqual    JumpCondition = iota // JE/JZ
	JumpNotEqual                      // JNE/JNZ
)

func (c JumpCondition) opcode() byte {
	if c == JumpEqual {
		return 0x84
	}
	return 0x85
}

func (c JumpCondition) String() string {
	if c == JumpEqual {
		return "je"
	}
	return "jne"
}

// Layout of a '[' block: cmp (5 bytes) + je opcode (2 bytes) + rel32
// (4 bytes). The returned fixup offset points at the rel32, so the block
// starts at fixup-7 and ends at fixup+4.
const openBlockHead = 7

// LoopOpen compiles '[': test the cell, jump forward past the matching
// ']' when it is zero. Returns the offset of the unresolved rel32 slot.
func (o *Out) LoopOpen() int {
	start := o.len
	desc := "cmp byte [r12+r13], 0; je <forward>"
	o.ins(desc)
	o.cmpCellZero()
	o.Write(0x0F)
	o.Write(JumpEqual.opcode())
	fixup := o.len
	o.WriteU32(0) // placeholder
	o.note(start, desc)
	return fixup
}

// LoopClose compiles ']': test the cell, jump back to the matching '['
// test when it is nonzero, then patch the '[' displacement to land just
// past this block. Displacements are relative to the end of their own
// rel32 field.
func (o *Out) LoopClose(openFixup int) {
	start := o.len
	desc := "cmp byte [r12+r13], 0; jne <back>"
	o.ins(desc)
	o.cmpCellZero()
	o.Write(0x0F)
	o.Write(JumpNotEqual.opcode())
	back := int32((openFixup - openBlockHead) - (o.len + 4))
	o.WriteU32(uint32(back))
	fwd := int32(o.len - (openFixup + 4))
	o.Patch32(openFixup, uint32(fwd))
	o.note(start, desc)
}
