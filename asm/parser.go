// Package asm parses the text assembly grammar of spec.md §6.2 into
// isa.Instruction values. Parsing is not part of the simulator core — the
// core only ever sees []isa.Instruction — but a complete program needs a
// way to get there from a file.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/pipesim/isa"
)

// Parse reads program text and returns the instructions it can recognize,
// in order. A line that fails to tokenize into a valid instruction is
// skipped silently, matching the lenient behavior of the original parser.
// Use ParseStrict to fail hard on the first bad line instead.
func Parse(r io.Reader) ([]isa.Instruction, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	instructions := make([]isa.Instruction, 0, len(lines))
	id := 1
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		inst, err := parseLine(id, text)
		if err != nil {
			continue
		}
		instructions = append(instructions, inst)
		id++
	}

	return instructions, nil
}

// ParseStrict is Parse's hard-failing counterpart: the first line that
// does not tokenize into a valid instruction aborts the parse with an
// error naming its 1-based line number.
func ParseStrict(r io.Reader) ([]isa.Instruction, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	instructions := make([]isa.Instruction, 0, len(lines))
	id := 1
	for lineNum, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		inst, err := parseLine(id, text)
		if err != nil {
			return nil, fmt.Errorf("asm: line %d: %w", lineNum+1, err)
		}
		instructions = append(instructions, inst)
		id++
	}

	return instructions, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("asm: read program: %w", err)
	}
	return lines, nil
}

// parseLine tokenizes one non-empty, non-comment line into an
// isa.Instruction, per the grammar in spec.md §6.2.
func parseLine(id int, text string) (isa.Instruction, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return isa.Instruction{}, fmt.Errorf("asm: empty line")
	}

	op, ok := isa.ParseOpcode(fields[0])
	if !ok {
		return isa.Instruction{}, fmt.Errorf("asm: unrecognized opcode %q", fields[0])
	}
	args := fields[1:]

	switch op {
	case isa.LOAD, isa.STORE:
		if len(args) != 2 {
			return isa.Instruction{}, fmt.Errorf("asm: %s wants 2 registers, got %d", op, len(args))
		}
		dest, err := parseRegister(args[0])
		if err != nil {
			return isa.Instruction{}, err
		}
		src1, err := parseRegister(args[1])
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.New(id, op, src1, isa.NoReg, dest, false, 0, text)

	case isa.BEQ, isa.BNE:
		if len(args) != 3 {
			return isa.Instruction{}, fmt.Errorf("asm: %s wants 2 registers and a target, got %d args", op, len(args))
		}
		src1, err := parseRegister(args[0])
		if err != nil {
			return isa.Instruction{}, err
		}
		src2, err := parseRegister(args[1])
		if err != nil {
			return isa.Instruction{}, err
		}
		target, err := strconv.Atoi(args[2])
		if err != nil {
			return isa.Instruction{}, fmt.Errorf("asm: bad branch target %q: %w", args[2], err)
		}
		return isa.New(id, op, src1, src2, isa.NoReg, true, target, text)

	case isa.JMP:
		if len(args) != 1 {
			return isa.Instruction{}, fmt.Errorf("asm: JMP wants 1 target, got %d args", len(args))
		}
		target, err := strconv.Atoi(args[0])
		if err != nil {
			return isa.Instruction{}, fmt.Errorf("asm: bad branch target %q: %w", args[0], err)
		}
		return isa.New(id, op, isa.NoReg, isa.NoReg, isa.NoReg, true, target, text)

	case isa.NOP:
		if len(args) != 0 {
			return isa.Instruction{}, fmt.Errorf("asm: NOP takes no operands, got %d", len(args))
		}
		return isa.New(id, op, isa.NoReg, isa.NoReg, isa.NoReg, false, 0, text)

	default: // ADD, SUB, MUL, DIV, FADD, FMUL, FDIV
		if len(args) != 3 {
			return isa.Instruction{}, fmt.Errorf("asm: %s wants 3 registers, got %d", op, len(args))
		}
		dest, err := parseRegister(args[0])
		if err != nil {
			return isa.Instruction{}, err
		}
		src1, err := parseRegister(args[1])
		if err != nil {
			return isa.Instruction{}, err
		}
		src2, err := parseRegister(args[2])
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.New(id, op, src1, src2, dest, false, 0, text)
	}
}

// parseRegister parses an "R<n>" token into a register index.
func parseRegister(tok string) (int, error) {
	if len(tok) < 2 || (tok[0] != 'R' && tok[0] != 'r') {
		return 0, fmt.Errorf("asm: not a register: %q", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, fmt.Errorf("asm: not a register: %q", tok)
	}
	return n, nil
}
