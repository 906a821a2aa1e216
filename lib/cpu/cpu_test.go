package cpu

import (
	"strings"
	"testing"

	"github.com/talaendril/famigo/lib/bus"
	"github.com/talaendril/famigo/lib/cartridge"
)

func newTestCpu(t *testing.T) (*Cpu, *cartridge.Cartridge) {
	t.Helper()

	cart := &cartridge.Cartridge{}
	if err := cart.Init(""); err != nil {
		t.Fatalf("failed to init a blank cartridge: %v", err)
	}
	b := &bus.Bus{}
	b.Init(cart, false)
	c := &Cpu{}
	c.Init(b, false)
	return c, cart
}

// plants code at org, points the reset vector at it and resets
func loadProgram(c *Cpu, cart *cartridge.Cartridge, org uint16, code []uint8) {
	for i, b := range code {
		c.bus.Write8(org+uint16(i), b)
	}
	cart.WriteRom16(0xFFFC, org)
	c.Reset()
}

func TestResetState(t *testing.T) {
	c, cart := newTestCpu(t)
	cart.WriteRom16(0xFFFC, 0x1234)
	c.Reset()

	if c.Rg.A != 0 || c.Rg.X != 0 || c.Rg.Y != 0 {
		t.Errorf("A/X/Y not cleared on reset: %s", c.Rg)
	}
	if c.Rg.Sp != 0xFD {
		t.Errorf("Sp after reset: got 0x%02x, want 0xfd", c.Rg.Sp)
	}
	if uint8(c.Rg.P) != I|E {
		t.Errorf("P after reset: got 0x%02x, want 0x%02x", uint8(c.Rg.P), I|E)
	}
	if c.Rg.Pc != 0x1234 {
		t.Errorf("Pc not loaded from the reset vector: got 0x%04x", c.Rg.Pc)
	}
}

// every a, b and carry-in combination against an independent model
func TestAdcExhaustive(t *testing.T) {
	c, _ := newTestCpu(t)

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for cin := 0; cin < 2; cin++ {
				c.Rg.A = uint8(a)
				c.Rg.P = 0
				c.Rg.P.set(C, cin == 1)
				c.addToA(uint8(b))

				sum := a + b + cin
				res := uint8(sum)
				if c.Rg.A != res {
					t.Fatalf("ADC %02x+%02x+%d: got 0x%02x, want 0x%02x", a, b, cin, c.Rg.A, res)
				}
				if c.Rg.P.has(C) != (sum > 0xFF) {
					t.Fatalf("ADC %02x+%02x+%d: carry wrong", a, b, cin)
				}
				if c.Rg.P.has(V) != ((uint8(a)^res)&(uint8(b)^res)&0x80 != 0) {
					t.Fatalf("ADC %02x+%02x+%d: overflow wrong", a, b, cin)
				}
				if c.Rg.P.has(Z) != (res == 0) || c.Rg.P.has(N) != (res&0x80 != 0) {
					t.Fatalf("ADC %02x+%02x+%d: Z/N wrong", a, b, cin)
				}
			}
		}
	}
}

func TestSbcExhaustive(t *testing.T) {
	c, _ := newTestCpu(t)

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for cin := 0; cin < 2; cin++ {
				c.Rg.A = uint8(a)
				c.Rg.P = 0
				c.Rg.P.set(C, cin == 1)
				// SBC is ADC of the complement
				c.addToA(^uint8(b))

				diff := a - b - (1 - cin)
				res := uint8(diff)
				if c.Rg.A != res {
					t.Fatalf("SBC %02x-%02x-%d: got 0x%02x, want 0x%02x", a, b, 1-cin, c.Rg.A, res)
				}
				if c.Rg.P.has(C) != (diff >= 0) {
					t.Fatalf("SBC %02x-%02x-%d: borrow wrong", a, b, 1-cin)
				}
				if c.Rg.P.has(V) != ((uint8(a)^uint8(b))&0x80 != 0 && (uint8(a)^res)&0x80 != 0) {
					t.Fatalf("SBC %02x-%02x-%d: overflow wrong", a, b, 1-cin)
				}
			}
		}
	}
}

func TestStackRoundTrip(t *testing.T) {
	c, _ := newTestCpu(t)

	sp := c.Rg.Sp
	c.push16(0xBEEF)
	if got := c.pull16(); got != 0xBEEF {
		t.Errorf("16-bit stack round trip: got 0x%04x", got)
	}
	if c.Rg.Sp != sp {
		t.Errorf("Sp not balanced: got 0x%02x, want 0x%02x", c.Rg.Sp, sp)
	}
}

func TestStackWraps(t *testing.T) {
	c, _ := newTestCpu(t)

	c.Rg.Sp = 0x00
	c.push8(0x42)
	if c.Rg.Sp != 0xFF {
		t.Errorf("Sp did not wrap: got 0x%02x", c.Rg.Sp)
	}
	if got := c.bus.Read8(0x0100); got != 0x42 {
		t.Errorf("push at Sp=0 landed wrong: got 0x%02x", got)
	}
}

func TestPhpPlpBreakBits(t *testing.T) {
	c, _ := newTestCpu(t)

	c.Rg.P = Flags(C | N)
	c.php()
	if got := c.bus.Read8(0x0100 | uint16(c.Rg.Sp+1)); got != C|N|B|E {
		t.Errorf("PHP pushed 0x%02x, want 0x%02x", got, C|N|B|E)
	}

	c.Rg.P = 0
	c.plp()
	if c.Rg.P.has(B) {
		t.Errorf("PLP loaded the break bit")
	}
	if !c.Rg.P.has(E) {
		t.Errorf("PLP dropped the expansion bit")
	}
	if !c.Rg.P.has(C) || !c.Rg.P.has(N) {
		t.Errorf("PLP lost flags: %s", c.Rg)
	}
}

func TestJmpIndirectPageWrap(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0x6C, 0xFF, 0x02})
	c.bus.Write8(0x02FF, 0x34)
	c.bus.Write8(0x0200, 0x12) // high byte comes from the page start
	c.bus.Write8(0x0300, 0x77) // and not from the next page

	c.Step()
	if c.Rg.Pc != 0x1234 {
		t.Errorf("JMP ($02FF): got Pc 0x%04x, want 0x1234", c.Rg.Pc)
	}
}

func TestBranchCycles(t *testing.T) {
	c, cart := newTestCpu(t)

	// not taken
	loadProgram(c, cart, 0x0600, []uint8{0xD0, 0x10})
	c.Rg.P.set(Z, true)
	if got := c.Step(); got != 2 {
		t.Errorf("branch not taken: got %d cycles, want 2", got)
	}

	// taken, same page
	loadProgram(c, cart, 0x0600, []uint8{0xD0, 0x10})
	if got := c.Step(); got != 3 {
		t.Errorf("branch taken: got %d cycles, want 3", got)
	}
	if c.Rg.Pc != 0x0612 {
		t.Errorf("branch target: got 0x%04x, want 0x0612", c.Rg.Pc)
	}

	// taken, page crossed
	loadProgram(c, cart, 0x06F0, []uint8{0xD0, 0x20})
	if got := c.Step(); got != 4 {
		t.Errorf("branch across page: got %d cycles, want 4", got)
	}
	if c.Rg.Pc != 0x0712 {
		t.Errorf("branch target across page: got 0x%04x, want 0x0712", c.Rg.Pc)
	}
}

func TestPageCrossPenalty(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0xBD, 0xFF, 0x06}) // LDA $06FF,X
	if got := c.Step(); got != 4 {
		t.Errorf("LDA abs,X same page: got %d cycles, want 4", got)
	}

	loadProgram(c, cart, 0x0600, []uint8{0xBD, 0xFF, 0x06})
	c.Rg.X = 1
	if got := c.Step(); got != 5 {
		t.Errorf("LDA abs,X across page: got %d cycles, want 5", got)
	}

	// stores pay the worst case up front, no penalty
	loadProgram(c, cart, 0x0600, []uint8{0x9D, 0xFF, 0x06}) // STA $06FF,X
	c.Rg.X = 1
	if got := c.Step(); got != 5 {
		t.Errorf("STA abs,X across page: got %d cycles, want 5", got)
	}
}

func TestJsrRtsRoundTrip(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0x20, 0x40, 0x06, 0x02}) // JSR $0640, KIL
	c.bus.Write8(0x0640, 0x60)                                    // RTS

	c.Step()
	if c.Rg.Pc != 0x0640 {
		t.Fatalf("JSR: got Pc 0x%04x, want 0x0640", c.Rg.Pc)
	}
	c.Step()
	if c.Rg.Pc != 0x0603 {
		t.Fatalf("RTS: got Pc 0x%04x, want 0x0603", c.Rg.Pc)
	}
	if c.Rg.Sp != 0xFD {
		t.Errorf("Sp not balanced after JSR/RTS: got 0x%02x", c.Rg.Sp)
	}

	c.Step()
	if !c.Halted() {
		t.Errorf("expected the KIL sentinel to halt")
	}
}

func TestBrkWithInterruptsDisabledHalts(t *testing.T) {
	c, cart := newTestCpu(t)

	// reset leaves I set, so BRK has nowhere to go
	loadProgram(c, cart, 0x0600, []uint8{0x00})
	c.Step()
	if !c.Halted() {
		t.Errorf("BRK with I set should halt")
	}
	if got := c.Step(); got != 0 {
		t.Errorf("halted Step: got %d cycles, want 0", got)
	}
}

func TestBrkVectorsWhenEnabled(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0x58, 0x00}) // CLI, BRK
	cart.WriteRom16(0xFFFE, 0x0700)
	c.bus.Write8(0x0700, 0x02) // KIL

	c.Step()
	c.Step()
	if c.Rg.Pc != 0x0700 {
		t.Fatalf("BRK: got Pc 0x%04x, want 0x0700", c.Rg.Pc)
	}
	if !c.Rg.P.has(I) {
		t.Errorf("BRK should set the interrupt disable flag")
	}
	// the pushed status carries both break bits
	if got := c.bus.Read8(0x0100 | uint16(c.Rg.Sp+1)); got&(B|E) != B|E {
		t.Errorf("BRK pushed status 0x%02x, want the break bits set", got)
	}
}

func TestKilHalts(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0x02})
	c.Step()
	if !c.Halted() {
		t.Errorf("KIL should halt")
	}
}

func TestUnofficialLax(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0xA7, 0x10})
	c.bus.Write8(0x0010, 0x55)
	c.Step()
	if c.Rg.A != 0x55 || c.Rg.X != 0x55 {
		t.Errorf("LAX: got A=0x%02x X=0x%02x, want both 0x55", c.Rg.A, c.Rg.X)
	}
}

func TestUnofficialAax(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0x87, 0x20})
	c.Rg.A = 0xCC
	c.Rg.X = 0x0F
	flags := c.Rg.P
	c.Step()
	if got := c.bus.Read8(0x0020); got != 0x0C {
		t.Errorf("AAX: got 0x%02x, want 0x0c", got)
	}
	if c.Rg.P != flags {
		t.Errorf("AAX must not touch flags")
	}
}

func TestUnofficialDcp(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0xC7, 0x30})
	c.bus.Write8(0x0030, 0x11)
	c.Rg.A = 0x10
	c.Step()
	if got := c.bus.Read8(0x0030); got != 0x10 {
		t.Errorf("DCP: memory got 0x%02x, want 0x10", got)
	}
	if !c.Rg.P.has(Z) || !c.Rg.P.has(C) {
		t.Errorf("DCP compare flags wrong: %s", c.Rg)
	}
}

func TestInvalidOpcodePanics(t *testing.T) {
	c, cart := newTestCpu(t)

	// 0x02 rows are KIL, table holes only exist if the table is broken,
	// so fake one
	c.ins[0x02] = Instruction{}
	loadProgram(c, cart, 0x0600, []uint8{0x02})

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic on a table hole")
		}
	}()
	c.Step()
}

func TestTraceFormat(t *testing.T) {
	c, cart := newTestCpu(t)

	loadProgram(c, cart, 0x0600, []uint8{0xA9, 0xC0})
	line := Trace(c)
	if !strings.HasPrefix(line, "0600  A9 C0") {
		t.Errorf("trace prefix wrong: %q", line)
	}
	if !strings.Contains(line, "LDA #$C0") {
		t.Errorf("trace operand wrong: %q", line)
	}
	if !strings.Contains(line, "SP:FD") {
		t.Errorf("trace registers wrong: %q", line)
	}
}
