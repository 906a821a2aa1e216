package common

import "image/color"

const (
	FrameXWidth  = 256
	FrameYHeight = 240
)

// BusInt is the 8-bit bus interface every memory mapped component speaks.
type BusInt interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

type NesOpRequest int

const (
	ResetRequest NesOpRequest = iota
	SaveRequest
	LoadRequest
	StopRequest
)

type Framebuffer struct {
	Buffer0 []color.RGBA
	Buffer1 []color.RGBA

	// which buffer the emulation is currently drawing into
	FrameIndex   int
	FrameUpdated chan bool

	// number of completed frames
	Frames int
}

// BackBuffer is the buffer the emulation may draw into, the other one
// belongs to the screen until the next Flip.
func (f *Framebuffer) BackBuffer() []color.RGBA {
	if f.FrameIndex == 0 {
		return f.Buffer0
	}
	return f.Buffer1
}

func (f *Framebuffer) Flip() {
	f.FrameIndex ^= 1
	f.Frames++
}
