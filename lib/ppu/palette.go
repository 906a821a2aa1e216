package ppu

import (
	"image/color"

	"github.com/talaendril/famigo/lib/common"
)

// Palette is the 32 bytes of palette RAM plus the fixed master palette.
type Palette struct {
	nesPalette [64]color.RGBA

	// 4 background palettes followed by 4 sprite palettes
	indexes [32]uint8
}

func (p *Palette) init() {
	// converted from FCEUX.pal
	fceuxPalette := []uint32{
		0x747474, 0x24188c, 0x0000a8, 0x44009c, 0x8c0074, 0xa80010, 0xa40000, 0x7c0800,
		0x402c00, 0x004400, 0x005000, 0x003c14, 0x183c5c, 0x000000, 0x000000, 0x000000,
		0xbcbcbc, 0x0070ec, 0x2038ec, 0x8000f0, 0xbc00bc, 0xe40058, 0xd82800, 0xc84c0c,
		0x887000, 0x009400, 0x00a800, 0x009038, 0x008088, 0x000000, 0x000000, 0x000000,
		0xfcfcfc, 0x3cbcfc, 0x5c94fc, 0xcc88fc, 0xf478fc, 0xfc74b4, 0xfc7460, 0xfc9838,
		0xf0bc3c, 0x80d010, 0x4cdc48, 0x58f898, 0x00e8d8, 0x787878, 0x000000, 0x000000,
		0xfcfcfc, 0xa8e4fc, 0xc4d4fc, 0xd4c8fc, 0xfcc4fc, 0xfcc4d8, 0xfcbcb0, 0xfcd8a8,
		0xfce4a0, 0xe0fca0, 0xa8f0bc, 0xb0fccc, 0x9cfcf0, 0xc4c4c4, 0x000000, 0x000000,
	}

	for i, c := range fceuxPalette {
		r := byte(c >> 16)
		g := byte(c >> 8)
		b := byte(c)
		p.nesPalette[i] = color.RGBA{r, g, b, 0xFF}
	}
}

// Color maps a palette RAM entry onto the master palette.
func (p *Palette) Color(index uint8) color.RGBA {
	return p.nesPalette[index&0x3F]
}

// $3F10/$3F14/$3F18/$3F1C are mirrors of $3F00/$3F04/$3F08/$3F0C
func decodePaletteAddr(addr uint16) uint16 {
	addr &= 0x1F
	if addr >= 16 && addr%4 == 0 {
		addr -= 16
	}
	return addr
}

// BusInt
func (p *Palette) Read8(addr uint16) uint8 {
	return p.indexes[decodePaletteAddr(addr)]
}
func (p *Palette) Write8(addr uint16, val uint8) {
	// some games write values above 0x3F, cap them
	p.indexes[decodePaletteAddr(addr)] = val & 0x3F
}

func (p *Palette) Serialise(s common.Serialiser) error {
	return s.Serialise(p.indexes)
}
func (p *Palette) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&p.indexes)
}
