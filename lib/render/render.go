package render

import (
	"image/color"

	"github.com/talaendril/famigo/lib/common"
	"github.com/talaendril/famigo/lib/ppu"
)

// Frame draws nametable 0 and the OAM sprites into the framebuffer's
// back buffer. It only reads PPU memory, mid frame tricks (scroll
// splits and the like) are not reproduced.
func Frame(p *ppu.Ppu, fb *common.Framebuffer) {
	buffer := fb.BackBuffer()
	drawBackground(p, buffer)
	drawSprites(p, buffer)
}

func setPixel(buffer []color.RGBA, x, y int, c color.RGBA) {
	if x < 0 || x >= common.FrameXWidth || y < 0 || y >= common.FrameYHeight {
		return
	}
	buffer[y*common.FrameXWidth+x] = c
}

func drawBackground(p *ppu.Ppu, buffer []color.RGBA) {
	bank := p.BackgroundTable()

	// 32x30 tiles followed by the 64 byte attribute table
	for i := 0; i < 0x3C0; i++ {
		tile := uint16(p.VRAM(0x2000 + uint16(i)))
		tileCol := i % 32
		tileRow := i / 32
		palette := bgPalette(p, tileCol, tileRow)

		for y := 0; y < 8; y++ {
			lo := p.Chr(bank + tile*16 + uint16(y))
			hi := p.Chr(bank + tile*16 + uint16(y) + 8)

			for x := 7; x >= 0; x-- {
				index := (hi&1)<<1 | lo&1
				hi >>= 1
				lo >>= 1
				setPixel(buffer, tileCol*8+x, tileRow*8+y, palette[index])
			}
		}
	}
}

// one attribute byte covers a 4x4 tile block, two bits per 2x2 corner
func bgPalette(p *ppu.Ppu, tileCol, tileRow int) [4]color.RGBA {
	attr := p.VRAM(0x23C0 + uint16(tileRow/4*8+tileCol/4))
	shift := uint((tileRow%4/2)*4 + (tileCol%4/2)*2)
	start := uint16(1 + 4*uint16((attr>>shift)&0x3))

	return [4]color.RGBA{
		p.Color(p.PaletteIndex(0x3F00)),
		p.Color(p.PaletteIndex(0x3F00 + start)),
		p.Color(p.PaletteIndex(0x3F00 + start + 1)),
		p.Color(p.PaletteIndex(0x3F00 + start + 2)),
	}
}

func spritePalette(p *ppu.Ppu, palette uint8) [4]color.RGBA {
	start := 0x3F11 + uint16(palette)*4
	return [4]color.RGBA{
		{}, // colour 0 is transparent
		p.Color(p.PaletteIndex(start)),
		p.Color(p.PaletteIndex(start + 1)),
		p.Color(p.PaletteIndex(start + 2)),
	}
}

// OAM entries are [y, tile, attributes, x], drawn back to front so
// lower entries win overlaps
func drawSprites(p *ppu.Ppu, buffer []color.RGBA) {
	bank := p.SpriteTable()
	oam := p.OAM()
	backdrop := p.Color(p.PaletteIndex(0x3F00))

	for i := len(oam) - 4; i >= 0; i -= 4 {
		tileY := int(oam[i])
		tile := uint16(oam[i+1])
		attr := oam[i+2]
		tileX := int(oam[i+3])

		flipV := attr&0x80 != 0
		flipH := attr&0x40 != 0
		behind := attr&0x20 != 0
		palette := spritePalette(p, attr&0x3)

		for y := 0; y < 8; y++ {
			lo := p.Chr(bank + tile*16 + uint16(y))
			hi := p.Chr(bank + tile*16 + uint16(y) + 8)

			for x := 7; x >= 0; x-- {
				index := (hi&1)<<1 | lo&1
				hi >>= 1
				lo >>= 1
				if index == 0 {
					continue
				}

				px, py := x, y
				if flipH {
					px = 7 - x
				}
				if flipV {
					py = 7 - y
				}
				px += tileX
				py += tileY

				// behind-background sprites only show over the backdrop
				if behind && px >= 0 && px < common.FrameXWidth &&
					py >= 0 && py < common.FrameYHeight &&
					buffer[py*common.FrameXWidth+px] != backdrop {
					continue
				}
				setPixel(buffer, px, py, palette[index])
			}
		}
	}
}
