// Package cartridge parses a Game Boy ROM image and implements the
// bank-switching behaviour of its memory bank controller (MBC1, MBC2,
// or none). Unsupported controllers (MBC3/5/6/7, MMM01, HuC1/3, ...)
// are rejected at load time.
package cartridge

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Cartridge is a loaded Game Boy ROM image together with whatever
// bank-switching state its controller requires.
type Cartridge interface {
	// Read returns the byte addressed within the ROM/external-RAM
	// window (0x0000-0x7FFF, 0xA000-0xBFFF).
	Read(address uint16) uint8
	// Write dispatches a bank-controller command (0x0000-0x7FFF) or
	// an external-RAM write (0xA000-0xBFFF, only when enabled).
	Write(address uint16, value uint8)

	Header() Header
}

// New parses rom and returns a Cartridge configured for its header's
// bank controller. It is the only load-time error surface of the
// emulator: a truncated image or an unsupported
// controller is rejected here, before emulation starts.
func New(rom []byte) (Cartridge, error) {
	if len(rom) < 0x8000 {
		return nil, fmt.Errorf("cartridge: image too short (%d bytes, minimum 0x8000)", len(rom))
	}

	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	if !header.CartridgeType.supported() {
		return nil, fmt.Errorf("cartridge: unsupported cartridge type %s", header.CartridgeType)
	}
	if !header.ChecksumValid() {
		logrus.Warnf("cartridge: header checksum mismatch for %q (stored 0x%02X, computed 0x%02X)",
			header.Title, header.HeaderChecksum, header.computedSum)
	}

	switch {
	case header.CartridgeType.hasMBC1():
		return newMBC1(rom, header), nil
	case header.CartridgeType.hasMBC2():
		return newMBC2(rom, header), nil
	default:
		return newROMOnly(rom, header), nil
	}
}

// romOnly is a cartridge with no bank controller: a fixed 32KiB image
// and no external RAM.
type romOnly struct {
	rom    []byte
	header Header
}

func newROMOnly(rom []byte, header Header) *romOnly {
	return &romOnly{rom: rom, header: header}
}

func (c *romOnly) Header() Header { return c.header }

func (c *romOnly) Read(address uint16) uint8 {
	if int(address) < len(c.rom) {
		return c.rom[address]
	}
	return 0xFF
}

func (c *romOnly) Write(address uint16, value uint8) {}
