package cpu

import (
	"fmt"
	"strings"
)

// Trace formats the instruction at the current program counter in the
// nestest log style, e.g.
//
//	C72E  A9 00     LDA #$00        A:00 X:00 Y:00 P:26 SP:FB
//
// Memory operands only show their value when reading them is free of
// side effects (RAM or ROM).
func Trace(c *Cpu) string {
	pc := c.Rg.Pc
	opCode := c.bus.Read8(pc)
	ins := &c.ins[opCode]

	if ins.eval == nil {
		return fmt.Sprintf("%04X  %02X        ???             %s", pc, opCode, traceRegs(c))
	}

	raw := make([]uint8, ins.opLength)
	for i := range raw {
		raw[i] = c.bus.Read8(pc + uint16(i))
	}

	var rawStr strings.Builder
	for _, b := range raw {
		fmt.Fprintf(&rawStr, "%02X ", b)
	}

	return fmt.Sprintf("%04X  %-9s %s %-11s %s",
		pc, strings.TrimRight(rawStr.String(), " "), ins.opName, traceOperand(c, ins, raw), traceRegs(c))
}

func traceRegs(c *Cpu) string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.Rg.A, c.Rg.X, c.Rg.Y, uint8(c.Rg.P), c.Rg.Sp)
}

func traceOperand(c *Cpu, ins *Instruction, raw []uint8) string {
	var addr uint16
	if ins.opLength == 2 {
		addr = uint16(raw[1])
	} else if ins.opLength == 3 {
		addr = uint16(raw[1]) | uint16(raw[2])<<8
	}

	switch ins.addrMode {
	case modeImplied:
		return ""
	case modeAccumulator:
		return "A"
	case modeImmediate:
		return fmt.Sprintf("#$%02X", raw[1])
	case modeZeroPage:
		return fmt.Sprintf("$%02X = %02X", addr, c.peek(addr))
	case modeZeroPageX:
		return fmt.Sprintf("$%02X,X", addr)
	case modeZeroPageY:
		return fmt.Sprintf("$%02X,Y", addr)
	case modeAbsolute:
		if ins.opName == "JMP" || ins.opName == "JSR" {
			return fmt.Sprintf("$%04X", addr)
		}
		return fmt.Sprintf("$%04X = %02X", addr, c.peek(addr))
	case modeAbsoluteX:
		return fmt.Sprintf("$%04X,X", addr)
	case modeAbsoluteY:
		return fmt.Sprintf("$%04X,Y", addr)
	case modeIndirect:
		return fmt.Sprintf("($%04X)", addr)
	case modeIndirectX:
		return fmt.Sprintf("($%02X,X)", addr)
	case modeIndirectY:
		return fmt.Sprintf("($%02X),Y", addr)
	case modeRelative:
		target := c.Rg.Pc + 2 + uint16(int8(raw[1]))
		return fmt.Sprintf("$%04X", target)
	}
	return ""
}

// side effect free read for tracing, mapped registers show as 00
func (c *Cpu) peek(addr uint16) uint8 {
	if addr < 0x2000 || addr >= 0x8000 {
		return c.bus.Read8(addr)
	}
	return 0
}
