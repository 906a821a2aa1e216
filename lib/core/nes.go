package core

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/talaendril/famigo/lib/bus"
	"github.com/talaendril/famigo/lib/cartridge"
	"github.com/talaendril/famigo/lib/common"
	"github.com/talaendril/famigo/lib/cpu"
	"github.com/talaendril/famigo/lib/render"
	"github.com/talaendril/famigo/lib/ui"
)

const NesBaseFrequency = 1789773 // NTSC

// FamiGo wraps the machine for the public facade.
type FamiGo struct {
	nes *nes
}

func NewCore() *FamiGo {
	return &FamiGo{&nes{}}
}
func (g *FamiGo) Init() error {
	return g.nes.init()
}
func (g *FamiGo) Nes() *nes {
	return g.nes
}

type nes struct {
	cart cartridge.Cartridge
	bus  bus.Bus
	cpu  cpu.Cpu

	screen ui.Screen

	opRequests int
	stopped    bool

	// Options
	verbose  bool
	cartPath string
	freeRun  bool
}

func (n *nes) init() error {
	if err := n.cart.Init(n.cartPath); err != nil {
		return fmt.Errorf("failed to initialise the cartridge: %w", err)
	}

	n.bus.Init(&n.cart, n.verbose)
	n.cpu.Init(&n.bus, n.verbose)
	n.screen.Init(n)

	return nil
}

func (n *nes) Run() {
	n.screen.Run()

	if n.freeRun {
		for !n.done() {
			n.Step(time.Second.Seconds())
		}
		return
	}

	tmr := time.Tick(time.Second / 240)
	for !n.done() {
		n.Step((time.Second / 240).Seconds())
		<-tmr
	}
}

func (n *nes) done() bool {
	return n.stopped || n.cpu.Halted()
}

// Step runs the machine for the given wall clock slice, the cpu is
// the tick master and drags the bus (and so the ppu) along.
func (n *nes) Step(seconds float64) {
	runCycles := int(float64(NesBaseFrequency) * seconds)

	for runCycles > 0 {
		ticks := n.cpu.Step()
		if ticks == 0 {
			break
		}

		if n.bus.FrameReady() {
			n.renderFrame()
		}

		runCycles -= ticks
	}

	n.processOpRequest()
}

// Test runs the machine until the cpu halts, no pacing.
func (n *nes) Test() {
	for n.cpu.Step() != 0 {
		if n.bus.FrameReady() {
			n.renderFrame()
		}
	}
}

func (n *nes) renderFrame() {
	render.Frame(n.bus.PPU(), &n.screen.Framebuffer)
	n.screen.Framebuffer.Flip()

	// never block on the window, it might not even exist
	select {
	case n.screen.Framebuffer.FrameUpdated <- true:
	default:
	}
}

func (n *nes) Request(request common.NesOpRequest) {
	n.opRequests |= 1 << request
}
func (n *nes) Reset() {
	n.Request(common.ResetRequest)
}
func (n *nes) Save() {
	n.Request(common.SaveRequest)
}
func (n *nes) Load() {
	n.Request(common.LoadRequest)
}
func (n *nes) Stop() {
	n.Request(common.StopRequest)
}

func (n *nes) Poke(controllerId uint8, button uint8, pressed bool) {
	n.bus.Poke(controllerId, button, pressed)
}

func (n *nes) processOpRequest() {
	switch {
	case n.opRequests&(1<<common.ResetRequest) != 0:
		n.reset()
	case n.opRequests&(1<<common.SaveRequest) != 0:
		n.save()
	case n.opRequests&(1<<common.LoadRequest) != 0:
		n.load()
	case n.opRequests&(1<<common.StopRequest) != 0:
		n.stopped = true
	}
}

func (n *nes) reset() {
	n.bus.Reset()
	n.cpu.Reset()

	n.opRequests &= ^(1 << common.ResetRequest)
}

func (n *nes) save() {
	if err := n.Serialise(common.NewSerialiser(n.cart.GetStateSaveFile())); err != nil {
		log.Printf("failed to save state: %v", err)
	}
	n.opRequests &= ^(1 << common.SaveRequest)
}

func (n *nes) load() {
	// reset first, otherwise the gob decoder merges into stale state
	n.reset()
	if err := n.DeSerialise(common.NewSerialiser(n.cart.GetStateSaveFile())); err != nil {
		log.Printf("failed to load state: %v", err)
	}
	n.opRequests &= ^(1 << common.LoadRequest)
}

func (n *nes) Serialise(s common.Serialiser) error {
	return s.Serialise(&n.cpu, &n.bus, &n.cart, n.opRequests)
}
func (n *nes) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&n.cpu, &n.bus, &n.cart, &n.opRequests)
}

// DumpState writes a dot graph of the machine state, handy to eyeball
// the wiring when debugging.
func (n *nes) DumpState(w io.Writer) error {
	memviz.Map(w, n)
	return nil
}

// loadEasyCode loads hex dumps in the https://skilldrick.github.io/easy6502/
// format, e.g.
//
//	`0600: a9 01 85 02 a9 cc 8d 00 01 a9 01 a a1 00 00 00
//	 0610: a9 05 a 8e 00 02 a9 05 8d 01 02 a9 08 8d 02 02`
//
// The first line's address becomes the reset vector.
func (n *nes) loadEasyCode(code string) {
	for i, line := range strings.Split(strings.TrimSuffix(code, "\n"), "\n") {
		addr := 0
		var bt [16]int
		ns, err := fmt.Sscanf(line, "%X: %X %X %X %X %X %X %X %X %X %X %X %X %X %X %X %X ",
			&addr, &bt[0], &bt[1], &bt[2], &bt[3], &bt[4], &bt[5], &bt[6], &bt[7],
			&bt[8], &bt[9], &bt[10], &bt[11], &bt[12], &bt[13], &bt[14], &bt[15])
		if err != nil && err != io.EOF {
			log.Printf("error scanning easyCode line, ns: %X, error: %v", ns, err)
		}

		if i == 0 {
			n.cart.WriteRom16(0xFFFC, uint16(addr))
		}

		for j := 0; j < ns-1; j++ {
			n.bus.Write8(uint16(addr+j), uint8(bt[j]))
		}
	}
}
