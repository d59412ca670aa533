//go:build linux && amd64

package main

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

// execProgram validates, compiles and runs src with the thunks pointed at
// pipes, returning the program's output and a snapshot of the tape.
func execProgram(t *testing.T, src string, input []byte) (output, tape []byte) {
	t.Helper()

	cfg := testConfig()
	cfg.CodeSize = 1 << 16
	cfg.TapeSize = 1 << 12

	if err := ValidateLoops([]byte(src), cfg.MaxNesting); err != nil {
		t.Fatalf("ValidateLoops(%q): %v", src, err)
	}

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer inR.Close()
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer outR.Close()

	if _, err := inW.Write(input); err != nil {
		t.Fatal(err)
	}
	inW.Close()

	cfg.InFD = int(inR.Fd())
	cfg.OutFD = int(outW.Fd())

	code, err := NewCodeBuffer(cfg.CodeSize)
	if err != nil {
		t.Fatal(err)
	}
	defer code.Release()
	tp, err := NewTape(cfg.TapeSize)
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Release()

	out := NewOut(code.Writable(), nil)
	if err := Compile([]byte(src), out, cfg); err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}

	if err := Run(code, tp); err != nil {
		t.Fatalf("Run: %v", err)
	}
	runtime.KeepAlive(inR)
	outW.Close()

	output, err = io.ReadAll(outR)
	if err != nil {
		t.Fatal(err)
	}
	tape = append([]byte(nil), tp.Bytes()...)
	return output, tape
}

func TestExecPrintsA(t *testing.T) {
	// 8*8+1 = 65 = 'A'
	output, _ := execProgram(t, "++++++++[>++++++++<-]>+.", nil)
	if !bytes.Equal(output, []byte{0x41}) {
		t.Errorf("output = % x, want 41", output)
	}
}

func TestExecHelloWorld(t *testing.T) {
	src := "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++" +
		"..+++.>>.<-.<.+++.------.--------.>>+.>++."
	output, _ := execProgram(t, src, nil)
	if string(output) != "Hello World!\n" {
		t.Errorf("output = %q, want %q", output, "Hello World!\n")
	}
}

func TestExecInputOutputRoundTrip(t *testing.T) {
	output, _ := execProgram(t, ",.", []byte{'Q'})
	if !bytes.Equal(output, []byte{'Q'}) {
		t.Errorf("output = % x, want 51", output)
	}

	output, _ = execProgram(t, ",.,.,.", []byte("xyz"))
	if string(output) != "xyz" {
		t.Errorf("output = %q, want %q", output, "xyz")
	}
}

func TestExecInputAtEOF(t *testing.T) {
	// A read that returns no bytes leaves the thunk's -1 seed in the cell.
	_, tape := execProgram(t, ",", nil)
	if tape[0] != 0xFF {
		t.Errorf("cell 0 = %d after EOF, want 255", tape[0])
	}
}

func TestExecCellWraparound(t *testing.T) {
	_, tape := execProgram(t, strings.Repeat("+", 300), nil)
	if tape[0] != 300%256 {
		t.Errorf("cell 0 = %d, want %d", tape[0], 300%256)
	}

	_, tape = execProgram(t, "-", nil)
	if tape[0] != 255 {
		t.Errorf("cell 0 = %d after underflow, want 255", tape[0])
	}
}

func TestExecPointerMoves(t *testing.T) {
	_, tape := execProgram(t, ">>>>>+", nil)
	if tape[5] != 1 {
		t.Errorf("cell 5 = %d, want 1", tape[5])
	}
	for i := 0; i < 5; i++ {
		if tape[i] != 0 {
			t.Errorf("cell %d = %d, want 0", i, tape[i])
		}
	}

	// A folded long run must land on the same cell as single steps.
	_, tape = execProgram(t, strings.Repeat(">", 200)+strings.Repeat("<", 58)+"+", nil)
	if tape[142] != 1 {
		t.Errorf("cell 142 = %d, want 1", tape[142])
	}
}

func TestExecLoopRunsKTimes(t *testing.T) {
	// [->+<] moves the initial cell value into cell 1, one unit per
	// iteration, so cell 1 counts the loop executions.
	for _, k := range []int{0, 1, 2, 5, 100, 255} {
		_, tape := execProgram(t, strings.Repeat("+", k)+"[->+<]", nil)
		if int(tape[1]) != k {
			t.Errorf("k=%d: cell 1 = %d, want %d", k, tape[1], k)
		}
		if tape[0] != 0 {
			t.Errorf("k=%d: cell 0 = %d, want 0", k, tape[0])
		}
	}
}

func TestExecNestedLoops(t *testing.T) {
	// 2 * 3 * 2 accumulated in cell 2.
	_, tape := execProgram(t, "++[>+++[>++<-]<-]", nil)
	if tape[2] != 12 {
		t.Errorf("cell 2 = %d, want 12", tape[2])
	}
	if tape[0] != 0 || tape[1] != 0 {
		t.Errorf("counters not drained: cell 0 = %d, cell 1 = %d", tape[0], tape[1])
	}
}

func TestExecDefaultStdout(t *testing.T) {
	// With the default config the output thunk writes to fd 1; swap the
	// real stdout for a pipe around the run.
	cfg := testConfig()
	cfg.CodeSize = 1 << 16
	cfg.TapeSize = 1 << 12

	code, err := NewCodeBuffer(cfg.CodeSize)
	if err != nil {
		t.Fatal(err)
	}
	defer code.Release()
	tape, err := NewTape(cfg.TapeSize)
	if err != nil {
		t.Fatal(err)
	}
	defer tape.Release()

	out := NewOut(code.Writable(), nil)
	if err := Compile([]byte("++++++++[>++++++++<-]>+."), out, cfg); err != nil {
		t.Fatal(err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	saved, err := unix.Dup(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := unix.Dup2(int(w.Fd()), 1); err != nil {
		unix.Close(saved)
		t.Fatal(err)
	}

	runErr := Run(code, tape)

	unix.Dup2(saved, 1)
	unix.Close(saved)
	w.Close()

	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	output, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(output, []byte{0x41}) {
		t.Errorf("stdout received % x, want 41", output)
	}
}
