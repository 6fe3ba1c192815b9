// Package ppu implements the Game Boy's pixel processing unit: the
// LCD mode state machine and the scanline-based background/window/
// sprite rasteriser.
package ppu

import "github.com/thelolagemann/go-gameboy/internal/interrupts"

const (
	// ScreenWidth and ScreenHeight are the framebuffer dimensions.
	ScreenWidth  = 160
	ScreenHeight = 144

	cyclesPerScanline = 456
)

const (
	addrLCDC = 0xFF40
	addrSTAT = 0xFF41
	addrSCY  = 0xFF42
	addrSCX  = 0xFF43
	addrLY   = 0xFF44
	addrLYC  = 0xFF45
	addrBGP  = 0xFF47
	addrOBP0 = 0xFF48
	addrOBP1 = 0xFF49
	addrWY   = 0xFF4A
	addrWX   = 0xFF4B
)

const (
	modeHBlank = 0
	modeVBlank = 1
	modeOAM    = 2
	modeTransfer = 3
)

// Colour is one grayscale (R,G,B) pixel.
type Colour = [3]uint8

// grayscale is the fixed four-entry palette.
var grayscale = [4]Colour{
	{255, 255, 255},
	{0xCC, 0xCC, 0xCC},
	{0x77, 0x77, 0x77},
	{0, 0, 0},
}

// bus is the minimal register/memory surface the PPU needs from the
// MMU: VRAM, OAM, and the LCD register block all live in its backing
// array, so the PPU reaches them through the same Read/Write the CPU
// uses, plus a raw LY setter that bypasses the program-write-resets-LY
// rule.
type bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	SetLY(value uint8)
}

type irqRequester interface {
	Request(flag uint8)
}

// PPU renders the 160x144 framebuffer one scanline at a time,
// advancing an LCD mode state machine from the shared T-cycle clock.
type PPU struct {
	bus bus
	irq irqRequester

	scanlineCounter int
	Frame           [ScreenHeight][ScreenWidth]Colour

	// frameReady is set when LY enters 144 (V-Blank), i.e. all 144
	// visible lines have been rendered; the frame driver polls and
	// clears it.
	frameReady bool
}

// New returns a PPU bound to bus for its memory/register access and
// irq to request VBlank/LCD STAT interrupts.
func New(bus bus, irq irqRequester) *PPU {
	return &PPU{bus: bus, irq: irq, scanlineCounter: cyclesPerScanline}
}

// HasFrame reports whether a full frame has completed since the last
// call to ClearFrame.
func (p *PPU) HasFrame() bool { return p.frameReady }

// ClearFrame resets the frame-ready flag; call after consuming Frame.
func (p *PPU) ClearFrame() { p.frameReady = false }

func (p *PPU) lcdEnabled() bool {
	return p.bus.Read(addrLCDC)&0x80 != 0
}

// Step advances the PPU by cycles T-cycles.
func (p *PPU) Step(cycles uint8) {
	if !p.lcdEnabled() {
		p.setMode(modeVBlank)
		p.scanlineCounter = cyclesPerScanline
		p.bus.SetLY(0)
		return
	}

	p.scanlineCounter -= int(cycles)
	p.updateMode()

	for p.scanlineCounter <= 0 {
		p.scanlineCounter += cyclesPerScanline
		p.advanceScanline()
	}
}

// updateMode sets STAT's mode bits for the current position within
// the active scanline, requesting the LCD interrupt on any new-mode
// transition whose STAT enable bit is set.
func (p *PPU) updateMode() {
	ly := p.bus.Read(addrLY)
	if ly >= ScreenHeight {
		p.setMode(modeVBlank)
		return
	}

	elapsed := cyclesPerScanline - p.scanlineCounter
	switch {
	case elapsed < 80:
		p.setMode(modeOAM)
	case elapsed < 80+172:
		p.setMode(modeTransfer)
	default:
		p.setMode(modeHBlank)
	}
}

var statInterruptBit = map[uint8]uint8{
	modeHBlank: 0x08,
	modeVBlank: 0x10,
	modeOAM:    0x20,
}

// setMode writes STAT's mode bits and, on a transition into a new
// mode, requests the LCD interrupt if that mode's STAT enable bit is
// set. Mode 3 never raises.
func (p *PPU) setMode(mode uint8) {
	stat := p.bus.Read(addrSTAT)
	if stat&0x03 == mode {
		return
	}
	p.bus.Write(addrSTAT, (stat&^0x03)|mode)

	if bit, ok := statInterruptBit[mode]; ok && stat&bit != 0 {
		p.irq.Request(interrupts.LCD)
	}
}

// advanceScanline increments LY, renders it if visible, and requests
// VBlank on entry to line 144.
func (p *PPU) advanceScanline() {
	ly := p.bus.Read(addrLY) + 1
	if ly > 153 {
		ly = 0
	}
	p.bus.SetLY(ly)
	p.checkCoincidence(ly)

	switch {
	case ly <= 143:
		p.renderScanline(ly)
	case ly == 144:
		p.irq.Request(interrupts.VBlank)
		p.frameReady = true
	}
}

// checkCoincidence implements the LY==LYC STAT bit 2 and its optional
// interrupt.
func (p *PPU) checkCoincidence(ly uint8) {
	stat := p.bus.Read(addrSTAT)
	lyc := p.bus.Read(addrLYC)

	if ly == lyc {
		p.bus.Write(addrSTAT, stat|0x04)
		if stat&0x40 != 0 {
			p.irq.Request(interrupts.LCD)
		}
	} else {
		p.bus.Write(addrSTAT, stat&^0x04)
	}
}
