package cpu

import (
	"log"

	"github.com/talaendril/famigo/lib/bus"
	"github.com/talaendril/famigo/lib/common"
)

// addressing modes
const (
	modeImplied = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

type Instruction struct {
	opName       string
	addrMode     int
	opLength     uint8
	opCycles     int
	opPageCycles int

	eval func()
}

// operand of the instruction in flight
type context struct {
	ins     *Instruction
	opAddr  uint16
	pgCross bool
}

type Cpu struct {
	bus *bus.Bus

	Rg   Registers
	ins  [256]Instruction
	curr context

	halted      bool
	clock       uint64
	extraCycles int

	verbose bool
}

func (c *Cpu) Init(b *bus.Bus, verbose bool) {
	c.bus = b
	c.verbose = verbose
	c.setupIns()
	c.Reset()
}

func (c *Cpu) Reset() {
	c.Rg.Reset()
	c.Rg.Pc = c.bus.Read16(0xFFFC)
	c.halted = false
	c.clock = 0
	c.extraCycles = 0
}

func (c *Cpu) Halted() bool {
	return c.halted
}

func (c *Cpu) Clock() uint64 {
	return c.clock
}

// Step runs one instruction and returns the cpu cycles it consumed,
// having already ticked the bus by the same amount. Returns 0 once
// the cpu has halted.
func (c *Cpu) Step() int {
	if c.halted {
		return 0
	}

	if c.bus.PollNMI() {
		c.service(nmiInterrupt)
	}

	if c.verbose {
		log.Println(Trace(c))
	}

	opCode := c.bus.Read8(c.Rg.Pc)
	c.Rg.Pc++

	ins := &c.ins[opCode]
	if ins.eval == nil {
		log.Panicf("invalid opcode 0x%02x at 0x%04x", opCode, c.Rg.Pc-1)
	}

	c.curr = context{ins: ins}
	c.resolveOperand()
	c.extraCycles = 0

	pcSnapshot := c.Rg.Pc
	ins.eval()
	if c.Rg.Pc == pcSnapshot {
		c.Rg.Pc += uint16(ins.opLength) - 1
	}

	cycles := ins.opCycles + c.extraCycles
	if c.curr.pgCross {
		cycles += ins.opPageCycles
	}
	c.clock += uint64(cycles)
	c.bus.Tick(cycles)

	// the $4014 transfer stalls us after the triggering write
	if stall := c.bus.TakeStall(); stall > 0 {
		c.clock += uint64(stall)
		c.bus.Tick(stall)
		cycles += stall
	}

	return cycles
}

// Run executes until the cpu halts.
func (c *Cpu) Run() {
	c.RunWithCallback(nil)
}

// RunWithCallback executes until halt, firing the callback before
// each instruction fetch.
func (c *Cpu) RunWithCallback(callback func(*Cpu)) {
	for !c.halted {
		if callback != nil {
			callback(c)
		}
		c.Step()
	}
}

func (c *Cpu) resolveOperand() {
	pc := c.Rg.Pc
	switch c.curr.ins.addrMode {
	case modeImplied, modeAccumulator:
	case modeImmediate, modeRelative:
		c.curr.opAddr = pc
	case modeZeroPage:
		c.curr.opAddr = uint16(c.bus.Read8(pc))
	case modeZeroPageX:
		c.curr.opAddr = uint16(c.bus.Read8(pc) + c.Rg.X)
	case modeZeroPageY:
		c.curr.opAddr = uint16(c.bus.Read8(pc) + c.Rg.Y)
	case modeAbsolute:
		c.curr.opAddr = c.bus.Read16(pc)
	case modeAbsoluteX:
		base := c.bus.Read16(pc)
		c.curr.opAddr = base + uint16(c.Rg.X)
		c.curr.pgCross = pageCrossed(base, c.curr.opAddr)
	case modeAbsoluteY:
		base := c.bus.Read16(pc)
		c.curr.opAddr = base + uint16(c.Rg.Y)
		c.curr.pgCross = pageCrossed(base, c.curr.opAddr)
	case modeIndirect:
		c.curr.opAddr = c.read16Bug(c.bus.Read16(pc))
	case modeIndirectX:
		c.curr.opAddr = c.read16ZeroPage(c.bus.Read8(pc) + c.Rg.X)
	case modeIndirectY:
		base := c.read16ZeroPage(c.bus.Read8(pc))
		c.curr.opAddr = base + uint16(c.Rg.Y)
		c.curr.pgCross = pageCrossed(base, c.curr.opAddr)
	}
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// pointer arithmetic wraps within the zero page
func (c *Cpu) read16ZeroPage(ptr uint8) uint16 {
	lo := c.bus.Read8(uint16(ptr))
	hi := c.bus.Read8(uint16(ptr + 1))
	return uint16(lo) | uint16(hi)<<8
}

// JMP ($xxFF) fetches the high byte from the start of the same page
func (c *Cpu) read16Bug(ptr uint16) uint16 {
	lo := c.bus.Read8(ptr)
	hi := c.bus.Read8(ptr&0xFF00 | uint16(uint8(ptr)+1))
	return uint16(lo) | uint16(hi)<<8
}

func (c *Cpu) fetch() uint8 {
	if c.curr.ins.addrMode == modeAccumulator {
		return c.Rg.A
	}
	return c.bus.Read8(c.curr.opAddr)
}

func (c *Cpu) store(val uint8) {
	if c.curr.ins.addrMode == modeAccumulator {
		c.Rg.A = val
		return
	}
	c.bus.Write8(c.curr.opAddr, val)
}

// the stack lives in page 1 and wraps within it
func (c *Cpu) push8(val uint8) {
	c.bus.Write8(0x100|uint16(c.Rg.Sp), val)
	c.Rg.Sp--
}
func (c *Cpu) pull8() uint8 {
	c.Rg.Sp++
	return c.bus.Read8(0x100 | uint16(c.Rg.Sp))
}
func (c *Cpu) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}
func (c *Cpu) pull16() uint16 {
	lo := uint16(c.pull8())
	hi := uint16(c.pull8())
	return hi<<8 | lo
}

func (c *Cpu) Serialise(s common.Serialiser) error {
	return s.Serialise(c.Rg, c.halted, c.clock)
}
func (c *Cpu) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&c.Rg, &c.halted, &c.clock)
}
