package core

import (
	"fmt"
)

func (g *FamiGo) SetCart(path string) error {
	g.nes.cartPath = path
	return nil
}
func (g *FamiGo) SetVerbose(verbose bool) error {
	g.nes.verbose = verbose
	return nil
}
func (g *FamiGo) SetFreeRun(freeRun bool) error {
	g.nes.freeRun = freeRun
	return nil
}

func (g *FamiGo) SetOptions(options ...func(*FamiGo) error) error {
	for i, option := range options {
		if err := option(g); err != nil {
			return fmt.Errorf("failed to set option index %d, err=%v", i, err)
		}
	}
	return nil
}

func CartPath(path string) func(g *FamiGo) error {
	return func(g *FamiGo) error {
		return g.SetCart(path)
	}
}

func Verbose(verbose bool) func(g *FamiGo) error {
	return func(g *FamiGo) error {
		return g.SetVerbose(verbose)
	}
}

func FreeRun(freeRun bool) func(g *FamiGo) error {
	return func(g *FamiGo) error {
		return g.SetFreeRun(freeRun)
	}
}
