package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/talaendril/famigo/lib"
)

func validRomPath(romPath string) error {
	stat, err := os.Stat(romPath)
	if err != nil {
		return fmt.Errorf("iNes rom file path (%q) does not exist or is not valid", romPath)
	} else if stat.IsDir() {
		return fmt.Errorf("iNes rom file path (%q) points to a directory", romPath)
	}
	return nil
}

func main() {
	romPath := flag.String("rom", "", "path to the iNes rom file to run")
	verbose := flag.Bool("verbose", false, "log every instruction and unmapped bus access")
	freeRun := flag.Bool("free-run", false, "run as fast as the host allows")
	dumpState := flag.String("dump-state", "", "write a dot graph of the machine state to this file and exit")
	flag.Parse()

	if err := validRomPath(*romPath); err != nil {
		fmt.Printf("failed to start FamiGo, err=%v\n", err)
		os.Exit(1)
	}

	console, err := lib.NewConsole(
		lib.CartPath(*romPath),
		lib.Verbose(*verbose),
		lib.FreeRun(*freeRun),
	)
	if err != nil {
		fmt.Printf("failed to start FamiGo, err=%v\n", err)
		os.Exit(1)
	}

	if *dumpState != "" {
		file, err := os.Create(*dumpState)
		if err != nil {
			fmt.Printf("failed to create the state dump file, err=%v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		if err := console.DumpState(file); err != nil {
			fmt.Printf("failed to dump the machine state, err=%v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("starting FamiGo with iNes rom file: %s\n", *romPath)
	console.Run()
}
