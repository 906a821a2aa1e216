package bus

import (
	"log"

	"github.com/talaendril/famigo/lib/cartridge"
	"github.com/talaendril/famigo/lib/common"
	"github.com/talaendril/famigo/lib/ppu"
)

// Bus owns everything the cpu can see: RAM, the PPU, the joypads and
// the cartridge PRG window. Ownership is one way, components never
// call back into the cpu.
type Bus struct {
	ram  common.Ram
	cart *cartridge.Cartridge
	ppu  ppu.Ppu
	ctrl common.Controllers

	// cpu cycles ticked so far, drives the DMA stall parity
	clock uint64
	stall int
	frame bool

	verbose bool
}

func (b *Bus) Init(cart *cartridge.Cartridge, verbose bool) {
	b.cart = cart
	b.verbose = verbose

	b.ram.Init(0x800)
	b.ctrl.Init()
	b.ppu.Init(cart, verbose)
}

func (b *Bus) Reset() {
	b.ppu.Reset()
	b.ctrl.Reset()
	b.clock = 0
	b.stall = 0
	b.frame = false
}

// CPU memory map
// -------------------------------------
// $0000-$07FF  2KiB internal RAM
// $0800-$1FFF  mirrors of $0000-$07FF
// $2000-$2007  PPU registers
// $2008-$3FFF  mirrors of $2000-$2007
// $4014        OAM DMA
// $4016-$4017  joypads
// $4000-$401F  APU and IO, not mapped
// $4020-$7FFF  cartridge expansion, not mapped
// $8000-$FFFF  PRG ROM
func (b *Bus) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram.Read8(addr & 0x07FF)
	case addr < 0x4000:
		return b.ppu.Read8(addr & 0x2007)
	case addr == 0x4014:
		log.Panicf("read from write-only register 0x4014")
	case addr == 0x4016 || addr == 0x4017:
		return b.ctrl.Read8(addr)
	case addr >= 0x8000:
		return b.cart.ReadPrg(addr)
	}
	if b.verbose {
		log.Printf("ignoring read from unmapped address 0x%04x", addr)
	}
	return 0
}

func (b *Bus) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram.Write8(addr&0x07FF, val)
	case addr < 0x4000:
		b.ppu.Write8(addr&0x2007, val)
	case addr == 0x4014:
		b.dmaTransfer(val)
	case addr == 0x4016 || addr == 0x4017:
		b.ctrl.Write8(addr, val)
	case addr >= 0x8000:
		log.Panicf("write of 0x%02x to ROM address 0x%04x", val, addr)
	default:
		if b.verbose {
			log.Printf("ignoring write of 0x%02x to unmapped address 0x%04x", val, addr)
		}
	}
}

// little endian
func (b *Bus) Read16(addr uint16) uint16 {
	return uint16(b.Read8(addr)) | uint16(b.Read8(addr+1))<<8
}
func (b *Bus) Write16(addr uint16, val uint16) {
	b.Write8(addr, uint8(val&0xFF))
	b.Write8(addr+1, uint8((val&0xFF00)>>8))
}

// copies one page into OAM and stalls the cpu for 513 cycles,
// 514 when the transfer starts on an odd cycle
func (b *Bus) dmaTransfer(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMByte(b.Read8(base + uint16(i)))
	}
	b.stall += 513
	if b.clock&1 == 1 {
		b.stall++
	}
}

// Tick advances the rest of the machine, 3 ppu dots per cpu cycle.
func (b *Bus) Tick(cpuCycles int) {
	b.clock += uint64(cpuCycles)
	if b.ppu.Ticks(3 * cpuCycles) {
		b.frame = true
	}
}

// FrameReady reports, once, that the ppu finished a frame.
func (b *Bus) FrameReady() bool {
	frame := b.frame
	b.frame = false
	return frame
}

func (b *Bus) PollNMI() bool {
	return b.ppu.PollNMI()
}

// TakeStall drains the DMA stall cycles the cpu still owes.
func (b *Bus) TakeStall() int {
	stall := b.stall
	b.stall = 0
	return stall
}

func (b *Bus) PPU() *ppu.Ppu {
	return &b.ppu
}

func (b *Bus) Poke(controllerId uint8, button uint8, pressed bool) {
	b.ctrl.Poke(controllerId, button, pressed)
}

func (b *Bus) Serialise(s common.Serialiser) error {
	return s.Serialise(&b.ram, &b.ppu, &b.ctrl, b.clock, b.stall, b.frame)
}
func (b *Bus) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&b.ram, &b.ppu, &b.ctrl, &b.clock, &b.stall, &b.frame)
}
