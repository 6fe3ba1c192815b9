// Package sdl is a desktop frontend: an SDL2 window that presents the
// emulator's framebuffer and reads keyboard input back into joypad
// button events.
package sdl

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.design/x/clipboard"
	xdraw "golang.org/x/image/draw"

	"github.com/thelolagemann/go-gameboy/internal/joypad"
	"github.com/thelolagemann/go-gameboy/internal/ppu"
	"github.com/thelolagemann/go-gameboy/pkg/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenshotHotkey = sdl.SCANCODE_F2
	defaultScale     = 4
)

// keymap maps SDL scancodes to joypad button bits.
var keymap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_RIGHT:  joypad.Right,
	sdl.SCANCODE_LEFT:   joypad.Left,
	sdl.SCANCODE_UP:     joypad.Up,
	sdl.SCANCODE_DOWN:   joypad.Down,
	sdl.SCANCODE_X:      joypad.A,
	sdl.SCANCODE_Z:      joypad.B,
	sdl.SCANCODE_RSHIFT: joypad.Select,
	sdl.SCANCODE_RETURN: joypad.Start,
}

// Frontend owns the SDL window, renderer, and streaming texture used
// to present frames, plus a clipboard-backed screenshot hotkey.
type Frontend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	log log.Logger

	lastFrame [ppu.ScreenHeight][ppu.ScreenWidth]ppu.Colour
	closed    bool
}

// New opens an SDL2 window sized to the Game Boy's screen scaled by
// defaultScale, and initialises the OS clipboard for the screenshot
// hotkey.
func New(title string) (*Frontend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		ppu.ScreenWidth*defaultScale, ppu.ScreenHeight*defaultScale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return nil, fmt.Errorf("sdl: create texture: %w", err)
	}

	if err := clipboard.Init(); err != nil {
		// the clipboard is a nice-to-have screenshot feature, not core
		// functionality; log and continue without it.
		logger := log.New()
		logger.Errorf("sdl: clipboard unavailable: %v", err)
	}

	return &Frontend{window: window, renderer: renderer, texture: texture, log: log.New()}, nil
}

// Present implements the FrameSink interface: it blits frame onto the
// window through a streaming texture that the SDL renderer stretches
// to the window size.
func (f *Frontend) Present(frame [ppu.ScreenHeight][ppu.ScreenWidth]ppu.Colour) {
	f.lastFrame = frame

	pixels, _, err := f.texture.Lock(nil)
	if err != nil {
		f.log.Errorf("sdl: lock texture: %v", err)
		return
	}
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			c := frame[y][x]
			i := (y*ppu.ScreenWidth + x) * 3
			pixels[i] = c[0]
			pixels[i+1] = c[1]
			pixels[i+2] = c[2]
		}
	}
	f.texture.Unlock()

	f.renderer.Clear()
	f.renderer.Copy(f.texture, nil, nil)
	f.renderer.Present()
}

// Poll implements the InputSource interface: it drains pending SDL
// events, mapping key down/up events through keymap, closing the
// window on a quit event, and taking a clipboard screenshot on F2.
func (f *Frontend) Poll() (pressed, released []uint8) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			f.closed = true
		case *sdl.KeyboardEvent:
			if e.Keysym.Scancode == screenshotHotkey && e.State == sdl.PRESSED {
				f.screenshot()
				continue
			}
			button, ok := keymap[e.Keysym.Scancode]
			if !ok {
				continue
			}
			if e.State == sdl.PRESSED {
				pressed = append(pressed, button)
			} else {
				released = append(released, button)
			}
		}
	}
	return pressed, released
}

// Closed reports whether the user has requested the window close.
func (f *Frontend) Closed() bool { return f.closed }

// SetTitle updates the window title, e.g. with an FPS counter.
func (f *Frontend) SetTitle(title string) { f.window.SetTitle(title) }

// Close releases the SDL window, renderer, and texture.
func (f *Frontend) Close() {
	f.texture.Destroy()
	f.renderer.Destroy()
	f.window.Destroy()
	sdl.Quit()
}

// screenshot encodes the last presented frame as a PNG and copies it
// to the OS clipboard.
func (f *Frontend) screenshot() {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			c := f.lastFrame[y][x]
			img.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF})
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*defaultScale, ppu.ScreenHeight*defaultScale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		f.log.Errorf("sdl: encode screenshot: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
}
