package lib

import (
	"io"

	"github.com/talaendril/famigo/lib/core"
)

type Console interface {
	// Runs the emulator (blocking)
	Run()
	// Requests to...
	Stop()
	Reset()
	// Save/Load the full state of the emulator
	Save()
	Load()
	// Writes a dot graph of the machine state for debugging
	DumpState(w io.Writer) error
}

func CartPath(path string) func(g *core.FamiGo) error {
	return core.CartPath(path)
}

func Verbose(verbose bool) func(g *core.FamiGo) error {
	return core.Verbose(verbose)
}

func FreeRun(freeRun bool) func(g *core.FamiGo) error {
	return core.FreeRun(freeRun)
}

// Example usage:
//
//	console, err := lib.NewConsole(
//		lib.CartPath("rom.nes"),
//		lib.Verbose(false),
//	)
func NewConsole(options ...func(g *core.FamiGo) error) (Console, error) {
	famigo := core.NewCore()

	if err := famigo.SetOptions(options...); err != nil {
		return nil, err
	}
	if err := famigo.Init(); err != nil {
		return nil, err
	}
	return famigo.Nes(), nil
}
