// Completion: 100% - Loop validation complete
package main

import (
	"fmt"
)

// ValidateLoops scans the source once and checks that every ']' has a
// matching '[', that no '[' is left open at end of input, and that the
// maximum simultaneous nesting depth stays within maxNesting. The depth
// bound must agree with the compiler's fixup stack size.
//
// On success the source is guaranteed to compile without bracket errors.
func ValidateLoops(src []byte, maxNesting int) error {
	depth := 0
	firstOpen := 0

	for i, c := range src {
		switch c {
		case '[':
			if depth == 0 {
				firstOpen = i
			}
			depth++
			if depth > maxNesting {
				return &SourceError{
					Pos: i,
					Msg: fmt.Sprintf("nesting depth %d exceeds maximum %d", depth, maxNesting),
				}
			}
		case ']':
			if depth == 0 {
				return &SourceError{Pos: i, Msg: "unmatched ']'"}
			}
			depth--
		}
	}
	if depth != 0 {
		return &SourceError{
			Pos: firstOpen,
			Msg: fmt.Sprintf("unmatched '[' (%d unclosed)", depth),
		}
	}
	return nil
}
