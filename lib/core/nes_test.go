package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/talaendril/famigo/lib/common"
	"github.com/talaendril/famigo/lib/cpu"
)

func newTestNes(t *testing.T) *nes {
	t.Helper()

	n := &nes{}
	if err := n.init(); err != nil {
		t.Fatalf("failed to init the machine: %v", err)
	}
	return n
}

// loads an easy6502 hex dump and restarts through its reset vector
func loadAndReset(n *nes, code string) {
	n.loadEasyCode(code)
	n.cpu.Reset()
}

func TestEasyCodeProgram(t *testing.T) {
	n := newTestNes(t)

	// LDA #$C0, TAX, INX, BRK
	loadAndReset(n, "0600: a9 c0 aa e8 00")
	n.Test()

	if !n.cpu.Halted() {
		t.Fatalf("the machine should halt on BRK with interrupts disabled")
	}
	if n.cpu.Rg.X != 0xC1 {
		t.Errorf("X: got 0x%02x, want 0xc1", n.cpu.Rg.X)
	}
	if uint8(n.cpu.Rg.P)&cpu.N == 0 {
		t.Errorf("N should be set after INX to 0xc1")
	}
	if uint8(n.cpu.Rg.P)&cpu.Z != 0 {
		t.Errorf("Z should be clear after INX to 0xc1")
	}
}

func TestStackedLoadsAndStores(t *testing.T) {
	n := newTestNes(t)

	// LDA #$01, STA $02, LDA $02, TAY, BRK
	loadAndReset(n, "0600: a9 01 85 02 a5 02 a8 00")
	n.Test()

	if n.cpu.Rg.Y != 0x01 {
		t.Errorf("Y: got 0x%02x, want 0x01", n.cpu.Rg.Y)
	}
	if got := n.bus.Read8(0x0002); got != 0x01 {
		t.Errorf("$0002: got 0x%02x, want 0x01", got)
	}
}

func TestNMIDelivery(t *testing.T) {
	n := newTestNes(t)

	// LDA #$80, STA $2000, then spin until vblank raises the NMI
	n.loadEasyCode("0600: a9 80 8d 00 20 4c 05 06")
	n.cart.WriteRom16(0xFFFA, 0x0700)
	n.bus.Write8(0x0700, 0x02) // KIL as the NMI handler
	n.cpu.Reset()

	n.Test()

	if !n.cpu.Halted() {
		t.Fatalf("the NMI handler should have halted the machine")
	}
	if n.cpu.Rg.Pc != 0x0701 {
		t.Errorf("Pc: got 0x%04x, want 0x0701 inside the NMI handler", n.cpu.Rg.Pc)
	}
	if uint8(n.cpu.Rg.P)&cpu.I == 0 {
		t.Errorf("I should be set while servicing the NMI")
	}
}

func TestFramesRenderWhileRunning(t *testing.T) {
	n := newTestNes(t)

	// spin forever, Step paces itself off the wall clock slice
	loadAndReset(n, "0600: 4c 00 06")
	n.Step(0.1) // ~6 frames worth of cycles

	if n.screen.Framebuffer.Frames == 0 {
		t.Errorf("no frames rendered after 100ms worth of cycles")
	}
}

func TestStopRequest(t *testing.T) {
	n := newTestNes(t)

	loadAndReset(n, "0600: 4c 00 06")
	n.Stop()
	n.Step(0.001)

	if !n.stopped {
		t.Errorf("the stop request was not honoured")
	}
}

func TestResetRequest(t *testing.T) {
	n := newTestNes(t)

	loadAndReset(n, "0600: a9 c0 00")
	n.Test()
	if !n.cpu.Halted() {
		t.Fatalf("program did not run to the halt")
	}

	n.Reset()
	n.Step(0.001)

	if n.cpu.Rg.Pc != 0x0600 {
		t.Errorf("Pc after reset: got 0x%04x, want the reset vector 0x0600", n.cpu.Rg.Pc)
	}

	// internal RAM survives the reset, the program runs again
	n.Test()
	if n.cpu.Rg.A != 0xC0 {
		t.Errorf("A after the rerun: got 0x%02x, want 0xc0", n.cpu.Rg.A)
	}
}

func TestSerialiseRoundTrip(t *testing.T) {
	n := newTestNes(t)

	loadAndReset(n, "0600: a9 c0 aa e8 00")
	n.Test()

	path := filepath.Join(t.TempDir(), "state")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create the state file: %v", err)
	}
	defer file.Close()

	if err := n.Serialise(common.NewSerialiser(file)); err != nil {
		t.Fatalf("failed to serialise: %v", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		t.Fatalf("failed to rewind the state file: %v", err)
	}

	m := newTestNes(t)
	if err := m.DeSerialise(common.NewSerialiser(file)); err != nil {
		t.Fatalf("failed to deserialise: %v", err)
	}

	if m.cpu.Rg != n.cpu.Rg {
		t.Errorf("registers: got %v, want %v", m.cpu.Rg, n.cpu.Rg)
	}
	if m.cpu.Clock() != n.cpu.Clock() {
		t.Errorf("cpu clock: got %d, want %d", m.cpu.Clock(), n.cpu.Clock())
	}
	if got := m.bus.Read8(0x0600); got != 0xA9 {
		t.Errorf("RAM did not round trip: got 0x%02x at $0600, want 0xa9", got)
	}
}
