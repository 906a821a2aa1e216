package ppu

import (
	"log"

	"github.com/talaendril/famigo/lib/cartridge"
	"github.com/talaendril/famigo/lib/common"
)

// NameTables is the 2KiB of internal VRAM behind the cartridge's
// mirroring fold.
type NameTables struct {
	vRam common.Ram

	mirroring cartridge.Mirroring
}

func (n *NameTables) Init(mirroring cartridge.Mirroring) {
	n.vRam.Init(0x800)
	n.mirroring = mirroring
}

// BusInt
func (n *NameTables) Read8(addr uint16) uint8 {
	return n.vRam.Read8(n.decode(addr))
}
func (n *NameTables) Write8(addr uint16, val uint8) {
	n.vRam.Write8(n.decode(addr), val)
}

func (n *NameTables) decode(addr uint16) uint16 {
	// $3000-$3EFF mirrors $2000-$2EFF
	addr &= 0x2FFF
	addr -= 0x2000
	table := addr / 0x400
	addr = addr % 0x400
	switch n.mirroring {
	case cartridge.MirrorHorizontal:
		// $2000 equals $2400 and $2800 equals $2C00
		switch table {
		case 0, 1:
			table = 0
		case 2, 3:
			table = 1
		}
	case cartridge.MirrorVertical:
		// $2000 equals $2800 and $2400 equals $2C00
		switch table {
		case 0, 2:
			table = 0
		case 1, 3:
			table = 1
		}
	case cartridge.MirrorFourScreen:
		// needs cartridge VRAM which NROM boards don't carry
		log.Panicf("four screen mirroring is not supported")
	}
	return table*0x400 + addr
}

func (n *NameTables) Serialise(s common.Serialiser) error {
	return s.Serialise(&n.vRam, n.mirroring)
}
func (n *NameTables) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&n.vRam, &n.mirroring)
}
