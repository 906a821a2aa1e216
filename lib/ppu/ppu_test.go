package ppu

import (
	"testing"

	"github.com/talaendril/famigo/lib/cartridge"
)

func newTestPpu(t *testing.T, mirroring cartridge.Mirroring) *Ppu {
	t.Helper()

	cart := &cartridge.Cartridge{}
	if err := cart.Init(""); err != nil {
		t.Fatalf("failed to init a blank cartridge: %v", err)
	}
	p := &Ppu{}
	p.Init(cart, false)
	p.tables.mirroring = mirroring
	return p
}

// points the vram cursor through the two-write address latch
func setAddr(p *Ppu, addr uint16) {
	p.Write8(0x2006, uint8(addr>>8))
	p.Write8(0x2006, uint8(addr))
}

func TestAddrLatchDoubleWrite(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Write8(0x2006, 0x23)
	p.Write8(0x2006, 0x05)
	if p.addr.Val != 0x2305 {
		t.Errorf("address latch: got 0x%04x, want 0x2305", p.addr.Val)
	}
}

func TestAddrLatchMasksTo14Bits(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	setAddr(p, 0xFF05)
	if p.addr.Val != 0x3F05 {
		t.Errorf("address latch mask: got 0x%04x, want 0x3f05", p.addr.Val)
	}
}

func TestDataReadIsBuffered(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.writeMem(0x2305, 0x66)
	setAddr(p, 0x2305)

	if got := p.Read8(0x2007); got == 0x66 {
		t.Errorf("first data read must lag a cycle behind, got 0x%02x", got)
	}
	if got := p.Read8(0x2007); got != 0x66 {
		t.Errorf("second data read: got 0x%02x, want 0x66", got)
	}
}

func TestDataReadBypassesBufferForPalette(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Write8(0x2000, 0x00)
	setAddr(p, 0x3F01)
	p.Write8(0x2007, 0x16)

	setAddr(p, 0x3F01)
	if got := p.Read8(0x2007); got != 0x16 {
		t.Errorf("palette read should not be buffered: got 0x%02x, want 0x16", got)
	}
}

func TestDataAccessIncrement(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	setAddr(p, 0x2000)
	p.Write8(0x2007, 0x11)
	p.Write8(0x2007, 0x22)
	if got := p.tables.Read8(0x2001); got != 0x22 {
		t.Errorf("increment by 1: got 0x%02x at $2001, want 0x22", got)
	}

	p.Write8(0x2000, 0x04) // 32 byte stride
	setAddr(p, 0x2000)
	p.Write8(0x2007, 0x33)
	p.Write8(0x2007, 0x44)
	if got := p.tables.Read8(0x2020); got != 0x44 {
		t.Errorf("increment by 32: got 0x%02x at $2020, want 0x44", got)
	}
}

func TestPaletteMirrors(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.palette.Write8(0x3F10, 0x2A)
	if got := p.palette.Read8(0x3F00); got != 0x2A {
		t.Errorf("$3F10 should fold onto $3F00: got 0x%02x", got)
	}
	p.palette.Write8(0x3F04, 0x15)
	if got := p.palette.Read8(0x3F14); got != 0x15 {
		t.Errorf("$3F14 should fold onto $3F04: got 0x%02x", got)
	}
}

func TestNameTableMirroring(t *testing.T) {
	h := newTestPpu(t, cartridge.MirrorHorizontal)
	h.tables.Write8(0x2005, 0xAB)
	if got := h.tables.Read8(0x2405); got != 0xAB {
		t.Errorf("horizontal: $2405 should mirror $2005, got 0x%02x", got)
	}
	if got := h.tables.Read8(0x2805); got == 0xAB {
		t.Errorf("horizontal: $2805 must not mirror $2005")
	}

	v := newTestPpu(t, cartridge.MirrorVertical)
	v.tables.Write8(0x2005, 0xCD)
	if got := v.tables.Read8(0x2805); got != 0xCD {
		t.Errorf("vertical: $2805 should mirror $2005, got 0x%02x", got)
	}
	if got := v.tables.Read8(0x2405); got == 0xCD {
		t.Errorf("vertical: $2405 must not mirror $2005")
	}
}

func TestVRamTopMirror(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.tables.Write8(0x2005, 0x99)
	if got := p.tables.Read8(0x3005); got != 0x99 {
		t.Errorf("$3005 should mirror $2005: got 0x%02x", got)
	}
}

func TestVBlankCadence(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	if frame := p.Ticks(341 * 241); frame {
		t.Errorf("no frame should complete at the vblank line")
	}
	if p.regs[PPUSTATUS].Val&statusVBlank == 0 {
		t.Errorf("vblank flag not set at scanline 241")
	}

	if frame := p.Ticks(341 * 21); !frame {
		t.Errorf("frame should complete at scanline 262")
	}
	if p.regs[PPUSTATUS].Val&statusVBlank != 0 {
		t.Errorf("vblank flag not cleared at frame wrap")
	}
	if p.frames != 1 {
		t.Errorf("frame counter: got %d, want 1", p.frames)
	}
}

func TestNMIOnVBlank(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Write8(0x2000, 0x80)
	p.Ticks(341 * 241)
	if !p.PollNMI() {
		t.Errorf("NMI should be pending at vblank start")
	}
	if p.PollNMI() {
		t.Errorf("PollNMI must drain the flag")
	}
}

func TestNMINotRaisedWhenDisabled(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Ticks(341 * 241)
	if p.PollNMI() {
		t.Errorf("NMI pending with the enable bit clear")
	}
}

func TestNMIEdgeOnEnableDuringVBlank(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Ticks(341 * 241)
	p.Write8(0x2000, 0x80)
	if !p.PollNMI() {
		t.Errorf("enabling NMI mid vblank should raise it immediately")
	}

	// writing the same value again is not an edge
	p.Write8(0x2000, 0x80)
	if p.PollNMI() {
		t.Errorf("re-writing the enable bit must not re-raise NMI")
	}
}

func TestStatusReadClearsVBlankAndLatches(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Write8(0x2006, 0x23) // leave the latch half written
	p.Ticks(341 * 241)

	if got := p.Read8(0x2002); got&statusVBlank == 0 {
		t.Errorf("status read should return the vblank snapshot")
	}
	if got := p.Read8(0x2002); got&statusVBlank != 0 {
		t.Errorf("second status read should see vblank cleared")
	}
	if !p.addr.HiNext {
		t.Errorf("status read should reset the address latch")
	}
	if !p.scroll.YNext {
		t.Errorf("status read should reset the scroll latch")
	}
}

func TestOAMAccess(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Write8(0x2003, 0x10)
	p.Write8(0x2004, 0xAA)
	if got := p.oam.Read8(0x10); got != 0xAA {
		t.Errorf("OAM write: got 0x%02x, want 0xaa", got)
	}
	if p.regs[OAMADDR].Val != 0x11 {
		t.Errorf("OAM write should advance the cursor: got 0x%02x", p.regs[OAMADDR].Val)
	}

	p.oam.Write8(0x11, 0xBB)
	if got := p.Read8(0x2004); got != 0xBB {
		t.Errorf("OAM read: got 0x%02x, want 0xbb", got)
	}
	if p.regs[OAMADDR].Val != 0x11 {
		t.Errorf("OAM read must not advance the cursor")
	}
}

func TestScrollLatchOrder(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	p.Write8(0x2005, 0x21)
	p.Write8(0x2005, 0x10)
	if p.scroll.Y != 0x21 || p.scroll.X != 0x10 {
		t.Errorf("scroll latch: got X=0x%02x Y=0x%02x, want X=0x10 Y=0x21", p.scroll.X, p.scroll.Y)
	}
}

func TestWriteOnlyRegisterReadPanics(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	defer func() {
		if recover() == nil {
			t.Errorf("reading $2000 should panic")
		}
	}()
	p.Read8(0x2000)
}

func TestReadOnlyRegisterWritePanics(t *testing.T) {
	p := newTestPpu(t, cartridge.MirrorHorizontal)

	defer func() {
		if recover() == nil {
			t.Errorf("writing $2002 should panic")
		}
	}()
	p.Write8(0x2002, 0x00)
}
