// Completion: 100% - Compiler and backpatcher complete
package main

import (
	"fmt"
)

// Compile translates Brainfuck source into x86_64 machine code, one
// forward pass with no backtracking. Runs of +/- and of >/< are folded
// into single instructions carrying their net delta. Loops are linked in
// two phases: '[' leaves a placeholder displacement and pushes its offset
// on a bounded fixup stack, ']' pops it and patches both directions.
//
// The caller owns the code region behind out and discards its partial
// contents if an error is returned.
func Compile(src []byte, out *Out, cfg *Config) error {
	fixups := make([]int, cfg.MaxNesting)
	depth := 0

	out.Prelude(cfg.InFD, cfg.OutFD)
	out.Prologue()

	for i := 0; i < len(src); {
		switch src[i] {
		case '+', '-':
			delta := 0
			for i < len(src) && (src[i] == '+' || src[i] == '-') {
				if src[i] == '+' {
					delta++
				} else {
					delta--
				}
				i++
			}
			// The cell is one byte: reduce mod 256, then pick the
			// shorter of add/sub so the immediate stays in imm8 range.
			delta = ((delta % 256) + 256) % 256
			if delta == 0 {
				break
			}
			if delta <= 128 {
				out.AddCell(delta)
			} else {
				out.AddCell(delta - 256)
			}

		case '>', '<':
			delta := 0
			for i < len(src) && (src[i] == '>' || src[i] == '<') {
				if src[i] == '>' {
					delta++
				} else {
					delta--
				}
				i++
			}
			if delta == 0 {
				break
			}
			out.MovePtr(delta)

		case '.':
			out.EmitOutput()
			i++

		case ',':
			out.EmitInput()
			i++

		case '[':
			if depth == cfg.MaxNesting {
				// Excluded by ValidateLoops; re-checked so a caller
				// skipping validation cannot overrun the stack.
				return &SourceError{
					Pos: i,
					Msg: fmt.Sprintf("nesting depth exceeds maximum %d", cfg.MaxNesting),
				}
			}
			fixups[depth] = out.LoopOpen()
			depth++
			i++

		case ']':
			if depth == 0 {
				// Excluded by ValidateLoops; defensive re-check.
				return &SourceError{Pos: i, Msg: "unmatched ']' during compilation"}
			}
			depth--
			out.LoopClose(fixups[depth])
			i++

		default:
			// Anything else is comment text.
			i++
		}
	}

	out.Epilogue()
	return out.Err()
}
