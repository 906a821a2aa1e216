package ppu

import (
	"image/color"
	"log"

	"github.com/talaendril/famigo/lib/cartridge"
	"github.com/talaendril/famigo/lib/common"
)

const (
	PPUCTRL = iota
	PPUMASK
	PPUSTATUS
	OAMADDR
	OAMDATA
	PPUSCROLL
	PPUADDR
	PPUDATA
)

// PPUCTRL
const (
	ctrlNameTable   = 0x03
	ctrlVRAMInc     = 0x04
	ctrlSpriteTable = 0x08
	ctrlBackTable   = 0x10
	ctrlSpriteSize  = 0x20
	ctrlMasterSlave = 0x40
	ctrlNMIEnable   = 0x80
)

// PPUSTATUS
const (
	statusOverflow = 0x20
	statusSprite0  = 0x40
	statusVBlank   = 0x80
)

const (
	cyclesPerScanLine = 341
	vBlankScanLine    = 241
	scanLinesPerFrame = 262
)

// addrLatch is the two-write PPUADDR register, high byte first.
type addrLatch struct {
	Val    uint16
	HiNext bool
}

func (a *addrLatch) write(val uint8) {
	if a.HiNext {
		a.Val = a.Val&0x00FF | uint16(val)<<8
	} else {
		a.Val = a.Val&0xFF00 | uint16(val)
	}
	// mirrored down into the 14-bit space
	a.Val &= 0x3FFF
	a.HiNext = !a.HiNext
}

func (a *addrLatch) inc(step uint8) {
	a.Val = (a.Val + uint16(step)) & 0x3FFF
}

func (a *addrLatch) reset() {
	a.HiNext = true
}

// scrollLatch takes the vertical offset first, then the horizontal one.
type scrollLatch struct {
	X, Y  uint8
	YNext bool
}

func (s *scrollLatch) write(val uint8) {
	if s.YNext {
		s.Y = val
	} else {
		s.X = val
	}
	s.YNext = !s.YNext
}

func (s *scrollLatch) reset() {
	s.YNext = true
}

type Ppu struct {
	regs [8]common.Register

	oam     common.Ram
	palette Palette
	tables  NameTables
	cart    *cartridge.Cartridge

	addr    addrLatch
	scroll  scrollLatch
	readBuf uint8

	cycle    int
	scanLine int
	frames   int

	nmiPending bool
	ctrlPrev   uint8

	verbose bool
}

func (p *Ppu) Init(cart *cartridge.Cartridge, verbose bool) {
	p.cart = cart
	p.verbose = verbose

	p.oam.Init(256)
	p.palette.init()
	p.tables.Init(cart.Mirroring())
	p.initRegisters()

	p.Reset()
}

func (p *Ppu) initRegisters() {
	p.regs[PPUCTRL].Initx("ppuCtrl", 0, p.writeControl, nil)
	p.regs[PPUMASK].Init("ppuMask", 0)
	p.regs[PPUSTATUS].Initx("ppuStatus", 0, nil, p.readStatus)
	p.regs[OAMADDR].Init("oamAddr", 0)
	p.regs[OAMDATA].Initx("oamData", 0, p.writeOAMData, p.readOAMData)
	p.regs[PPUSCROLL].Initx("ppuScroll", 0, p.writeScroll, nil)
	p.regs[PPUADDR].Initx("ppuAddr", 0, p.writeAddr, nil)
	p.regs[PPUDATA].Initx("ppuData", 0, p.writeData, p.readData)
}

func (p *Ppu) Reset() {
	for i := range p.regs {
		p.regs[i].Val = 0
	}
	p.addr = addrLatch{}
	p.addr.reset()
	p.scroll = scrollLatch{}
	p.scroll.reset()
	p.readBuf = 0
	p.cycle = 0
	p.scanLine = 0
	p.nmiPending = false
	p.ctrlPrev = 0
}

// Ticks advances the dot clock, reporting whether a frame completed.
func (p *Ppu) Ticks(nTicks int) bool {
	frame := false
	p.cycle += nTicks
	for p.cycle >= cyclesPerScanLine {
		p.cycle -= cyclesPerScanLine
		p.scanLine++

		if p.scanLine == vBlankScanLine {
			p.regs[PPUSTATUS].Set(statusVBlank)
			if p.regs[PPUCTRL].Val&ctrlNMIEnable != 0 {
				p.nmiPending = true
			}
		}
		if p.scanLine >= scanLinesPerFrame {
			p.scanLine = 0
			p.regs[PPUSTATUS].Clr(statusVBlank | statusSprite0)
			p.nmiPending = false
			p.frames++
			frame = true
		}
	}
	return frame
}

// PollNMI drains the pending interrupt, the cpu polls it every step.
func (p *Ppu) PollNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// BusInt
// register decode, $2000-$2007 (the bus strips the mirrors)
func (p *Ppu) Read8(addr uint16) uint8 {
	reg := addr & 7
	switch reg {
	case PPUSTATUS, OAMDATA, PPUDATA:
		return p.regs[reg].Read()
	}
	log.Panicf("read from write-only PPU register 0x%04x", addr)
	return 0
}

func (p *Ppu) Write8(addr uint16, val uint8) {
	reg := addr & 7
	if reg == PPUSTATUS {
		log.Panicf("write to read-only PPU register 0x%04x", addr)
	}
	p.regs[reg].Write(val)
}

// WriteOAMByte is the $4014 DMA path, one byte at the cursor.
func (p *Ppu) WriteOAMByte(val uint8) {
	p.regs[OAMDATA].Write(val)
}

func (p *Ppu) writeControl() {
	val := p.regs[PPUCTRL].Val
	// raising NMI-enable mid vblank fires straight away
	if val&ctrlNMIEnable != 0 && p.ctrlPrev&ctrlNMIEnable == 0 &&
		p.regs[PPUSTATUS].Val&statusVBlank != 0 {
		p.nmiPending = true
	}
	p.ctrlPrev = val
}

func (p *Ppu) readStatus() uint8 {
	val := p.regs[PPUSTATUS].Val
	p.regs[PPUSTATUS].Clr(statusVBlank)
	p.addr.reset()
	p.scroll.reset()
	return val
}

func (p *Ppu) writeOAMData() {
	cursor := &p.regs[OAMADDR]
	p.oam.Write8(uint16(cursor.Val), p.regs[OAMDATA].Val)
	cursor.Val++
}

// reads do not move the cursor
func (p *Ppu) readOAMData() uint8 {
	return p.oam.Read8(uint16(p.regs[OAMADDR].Val))
}

func (p *Ppu) writeScroll() {
	p.scroll.write(p.regs[PPUSCROLL].Val)
}

func (p *Ppu) writeAddr() {
	p.addr.write(p.regs[PPUADDR].Val)
}

func (p *Ppu) vramInc() uint8 {
	if p.regs[PPUCTRL].Val&ctrlVRAMInc != 0 {
		return 32
	}
	return 1
}

func (p *Ppu) writeData() {
	addr := p.addr.Val
	p.addr.inc(p.vramInc())
	p.writeMem(addr, p.regs[PPUDATA].Val)
}

// reads below the palette go through the one byte buffer
func (p *Ppu) readData() uint8 {
	addr := p.addr.Val
	p.addr.inc(p.vramInc())
	if addr >= 0x3F00 {
		return p.palette.Read8(addr)
	}
	val := p.readBuf
	p.readBuf = p.readMem(addr)
	return val
}

// PPU memory map
// -------------------------------------
// $0000-$1FFF  pattern tables (CHR)
// $2000-$2FFF  nametables
// $3000-$3EFF  mirrors of $2000-$2EFF
// $3F00-$3FFF  palette RAM
func (p *Ppu) readMem(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.ReadChr(addr)
	case addr < 0x3F00:
		return p.tables.Read8(addr)
	default:
		return p.palette.Read8(addr)
	}
}

func (p *Ppu) writeMem(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.WriteChr(addr, val)
	case addr < 0x3F00:
		p.tables.Write8(addr, val)
	default:
		p.palette.Write8(addr, val)
	}
}

// read-only views for the renderer

func (p *Ppu) VRAM(addr uint16) uint8 {
	return p.tables.Read8(addr)
}
func (p *Ppu) OAM() []byte {
	return p.oam.Data()
}
func (p *Ppu) Chr(addr uint16) uint8 {
	return p.cart.ReadChr(addr)
}
func (p *Ppu) PaletteIndex(addr uint16) uint8 {
	return p.palette.Read8(addr)
}
func (p *Ppu) Color(index uint8) color.RGBA {
	return p.palette.Color(index)
}
func (p *Ppu) BackgroundTable() uint16 {
	if p.regs[PPUCTRL].Val&ctrlBackTable != 0 {
		return 0x1000
	}
	return 0
}
func (p *Ppu) SpriteTable() uint16 {
	if p.regs[PPUCTRL].Val&ctrlSpriteTable != 0 {
		return 0x1000
	}
	return 0
}
func (p *Ppu) Frames() int {
	return p.frames
}

func (p *Ppu) Serialise(s common.Serialiser) error {
	return s.Serialise(
		p.regs, &p.oam, &p.palette, &p.tables,
		p.addr, p.scroll, p.readBuf,
		p.cycle, p.scanLine, p.frames, p.nmiPending, p.ctrlPrev,
	)
}
func (p *Ppu) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(
		&p.regs, &p.oam, &p.palette, &p.tables,
		&p.addr, &p.scroll, &p.readBuf,
		&p.cycle, &p.scanLine, &p.frames, &p.nmiPending, &p.ctrlPrev,
	)
}
