package ui

import (
	"fmt"
	"image/color"
	"os"
	"runtime"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/talaendril/famigo/lib/common"
)

const (
	screenFrameRatio = 3
	screenXWidth     = common.FrameXWidth * screenFrameRatio
	screenYHeight    = common.FrameYHeight * screenFrameRatio
)

// Console is what the window layer needs from the machine: somewhere
// to poke key state and a way to queue operations.
type Console interface {
	Poke(controllerId uint8, button uint8, pressed bool)
	Request(request common.NesOpRequest)
}

type Screen struct {
	nes Console

	window *pixelgl.Window

	// front and back buffers backing the frame sprite
	buffer0 *pixel.PictureData
	buffer1 *pixel.PictureData
	sprite  *pixel.Sprite

	Framebuffer common.Framebuffer

	// FPS stats
	fpsChannel   <-chan time.Time
	fpsLastFrame int
}

func (s *Screen) Init(nes Console) {
	s.nes = nes
	s.setSprite()
}

func (s *Screen) Run() {
	go func() {
		runtime.LockOSThread()
		pixelgl.Run(s.runThread)
		os.Exit(0)
	}()
}

func (s *Screen) runThread() {
	cfg := pixelgl.WindowConfig{
		Title:  "FamiGo",
		Bounds: pixel.R(0, 0, screenXWidth, screenYHeight),
		VSync:  true,
	}
	window, err := pixelgl.NewWindow(cfg)
	if err != nil {
		panic(err)
	}
	window.Clear(colornames.Black)

	s.window = window
	s.fpsChannel = time.Tick(time.Second)
	s.fpsLastFrame = 0

	s.runner()
}

func (s *Screen) runner() {
	lastLoopFrames := 0
	for !s.window.Closed() {

		<-s.Framebuffer.FrameUpdated

		frameDiff := s.Framebuffer.Frames - lastLoopFrames
		if frameDiff > 0 {
			if frameDiff > 1 {
				fmt.Printf("oops, skipped %v frames!\n", frameDiff)
			}

			s.draw()
			s.window.Update()
			lastLoopFrames = s.Framebuffer.Frames
		}

		s.updateFpsTitle()
		s.updateControllers()
	}
	s.nes.Request(common.StopRequest)
}

var buttons = [8]struct {
	id  uint8
	key pixelgl.Button
}{
	{common.BitA, pixelgl.KeyS},
	{common.BitB, pixelgl.KeyA},
	{common.BitSelect, pixelgl.KeyLeftShift},
	{common.BitStart, pixelgl.KeyEnter},
	{common.BitUp, pixelgl.KeyUp},
	{common.BitDown, pixelgl.KeyDown},
	{common.BitLeft, pixelgl.KeyLeft},
	{common.BitRight, pixelgl.KeyRight},
}

func (s *Screen) updateControllers() {
	onePressed := false
	for _, button := range buttons {
		pressed := s.window.Pressed(button.key)
		s.nes.Poke(0, button.id, pressed)
		if pressed {
			onePressed = true
		}
	}

	if s.window.Pressed(pixelgl.KeyLeftControl) && s.window.JustPressed(pixelgl.KeyR) {
		s.nes.Request(common.ResetRequest)
		onePressed = true
	}
	if s.window.Pressed(pixelgl.KeyLeftControl) && s.window.JustPressed(pixelgl.KeyS) {
		s.nes.Request(common.SaveRequest)
		onePressed = true
	}
	if s.window.Pressed(pixelgl.KeyLeftControl) && s.window.JustPressed(pixelgl.KeyL) {
		s.nes.Request(common.LoadRequest)
		onePressed = true
	}

	if onePressed {
		s.window.UpdateInput()
	}
}

func (s *Screen) updateFpsTitle() {
	select {
	case <-s.fpsChannel:
		frames := s.Framebuffer.Frames - s.fpsLastFrame
		s.fpsLastFrame = s.Framebuffer.Frames

		s.window.SetTitle(fmt.Sprintf("FamiGo | FPS: %d", frames))
	default:
	}
}

func (s *Screen) draw() {
	s.updateSprite()

	s.sprite.Draw(s.window,
		pixel.IM.Moved(s.window.Bounds().Center()).
			ScaledXY(s.window.Bounds().Center(), pixel.V(screenFrameRatio, screenFrameRatio)))
}

func (s *Screen) updateSprite() {
	// the emulation draws into the back buffer, the other one is stable
	if s.Framebuffer.FrameIndex == 1 {
		s.sprite = pixel.NewSprite(s.buffer0, pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight))
	} else {
		s.sprite = pixel.NewSprite(s.buffer1, pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight))
	}
}

func (s *Screen) setSprite() {
	s.buffer0 = &pixel.PictureData{
		Pix:    make([]color.RGBA, common.FrameXWidth*common.FrameYHeight),
		Stride: common.FrameXWidth,
		Rect:   pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight),
	}
	s.buffer1 = &pixel.PictureData{
		Pix:    make([]color.RGBA, common.FrameXWidth*common.FrameYHeight),
		Stride: common.FrameXWidth,
		Rect:   pixel.R(0, 0, common.FrameXWidth, common.FrameYHeight),
	}

	s.Framebuffer = common.Framebuffer{
		Buffer0:      s.buffer0.Pix,
		Buffer1:      s.buffer1.Pix,
		FrameIndex:   0,
		FrameUpdated: make(chan bool, 1),
		Frames:       0,
	}

	s.updateSprite()
}
