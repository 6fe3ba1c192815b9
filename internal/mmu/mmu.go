// Package mmu provides the Game Boy's memory management unit: address
// decoding, cartridge bank switching, memory-mapped I/O side effects,
// and OAM DMA.
package mmu

import (
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/go-gameboy/internal/cartridge"
	"github.com/thelolagemann/go-gameboy/internal/joypad"
)

const (
	addrP1  = 0xFF00
	addrDIV = 0xFF04
	addrLY  = 0xFF44
	addrDMA = 0xFF46
)

// MMU owns the Game Boy's 64KiB logical address space and
// dispatches reads/writes to the cartridge, the joypad register, and
// the flat backing array that everything else (VRAM, OAM, WRAM,
// HRAM, the bulk of I/O) lives in.
type MMU struct {
	raw [0x10000]uint8

	Cart   cartridge.Cartridge
	Joypad *joypad.State

	Log *logrus.Logger
}

// New returns an MMU over cart. Joypad is nil until SetJoypad is
// called, which breaks the joypad/interrupt-controller/MMU
// construction cycle: the interrupt controller needs a
// bus before the joypad can be built, and the joypad needs the
// interrupt controller before the MMU can be built.
func New(cart cartridge.Cartridge, pad *joypad.State) *MMU {
	m := &MMU{
		Cart:   cart,
		Joypad: pad,
		Log:    logrus.New(),
	}
	m.Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return m
}

// SetJoypad attaches the joypad after construction, for callers that
// must resolve the MMU/interrupts/joypad cycle via New(cart, nil)
// followed by SetJoypad.
func (m *MMU) SetJoypad(pad *joypad.State) {
	m.Joypad = pad
}

// Read returns the byte addressed, decoding the region table.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.Cart.Read(address)
	case address >= 0xA000 && address < 0xC000:
		return m.Cart.Read(address)
	case address == addrP1:
		return m.Joypad.Read()
	default:
		return m.raw[address]
	}
}

// Write dispatches addr.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		// bank-control command; never touches RAM.
		m.Cart.Write(address, value)
	case address >= 0xA000 && address < 0xC000:
		m.Cart.Write(address, value)
	case address == addrP1:
		m.Joypad.WriteSelect(value)
	case address == addrDIV:
		m.raw[addrDIV] = 0
	case address == addrLY:
		m.raw[addrLY] = 0
	case address == addrDMA:
		m.raw[addrDMA] = value
		m.performDMA(value)
	case address >= 0xFEA0 && address <= 0xFEFF:
		// unusable region; writes dropped.
	case address >= 0xE000 && address <= 0xFDFF:
		m.raw[address] = value
		m.raw[address-0x2000] = value
	default:
		m.raw[address] = value
	}
}

// performDMA copies 0xA0 bytes from (src<<8) into OAM (0xFE00-0xFE9F)
// by recursive writes through the MMU.
func (m *MMU) performDMA(src uint8) {
	base := uint16(src) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xFE00+i, m.Read(base+i))
	}
}

// SetDIV bypasses the program-write-always-resets-DIV rule; only the
// timer's own internal increments use it.
func (m *MMU) SetDIV(value uint8) {
	m.raw[addrDIV] = value
}

// SetLY bypasses the program-write-always-resets-LY rule; only the
// PPU's own scanline advance uses it.
func (m *MMU) SetLY(value uint8) {
	m.raw[addrLY] = value
}
