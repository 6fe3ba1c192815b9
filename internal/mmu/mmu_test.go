package mmu

import (
	"testing"

	"github.com/thelolagemann/go-gameboy/internal/cartridge"
	"github.com/thelolagemann/go-gameboy/internal/joypad"
)

type noopIRQ struct{}

func (noopIRQ) Request(uint8) {}

func newTestMMU(t *testing.T) *MMU {
	t.Helper()
	rom := make([]byte, 0x8000)
	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatalf("failed to build cartridge: %v", err)
	}
	return New(cart, joypad.New(noopIRQ{}))
}

func TestDIV_ResetsOnWrite(t *testing.T) {
	m := newTestMMU(t)
	m.SetDIV(0x42)
	m.Write(addrDIV, 0x99)
	if got := m.Read(addrDIV); got != 0 {
		t.Errorf("expected DIV to reset to 0 on any write, got 0x%02X", got)
	}
}

func TestLY_ResetsOnWrite(t *testing.T) {
	m := newTestMMU(t)
	m.SetLY(100)
	m.Write(addrLY, 5)
	if got := m.Read(addrLY); got != 0 {
		t.Errorf("expected LY to reset to 0 on any write, got %d", got)
	}
}

func TestEchoRAM_Mirrors(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xE005, 0x77)
	if got := m.Read(0xC005); got != 0x77 {
		t.Errorf("expected echo write to mirror to 0xC005, got 0x%02X", got)
	}
	m.Write(0xC010, 0x55)
	// C000-DFFF isn't mirrored on write from the low side in this
	// implementation; verify the documented direction only (E000-FDFF -> -0x2000).
}

func TestUnusableRegion_DropsWrites(t *testing.T) {
	m := newTestMMU(t)
	m.raw[0xFEA5] = 0x11
	m.Write(0xFEA5, 0x99)
	if got := m.raw[0xFEA5]; got != 0x11 {
		t.Errorf("expected write to 0xFEA0-0xFEFF to be dropped, got 0x%02X", got)
	}
}

func TestROMWrites_NeverModifyBackingArray(t *testing.T) {
	m := newTestMMU(t)
	before := m.Cart.Read(0x0150)
	m.Write(0x0150, 0xFF) // interpreted as a (no-op for ROM-only) bank command
	if after := m.Cart.Read(0x0150); after != before {
		t.Errorf("expected ROM-region write to leave cartridge bytes unchanged, got 0x%02X want 0x%02X", after, before)
	}
}

func TestOAMDMA_CopiesOneHundredSixtyBytes(t *testing.T) {
	m := newTestMMU(t)
	for i := uint16(0); i < 0xA0; i++ {
		m.raw[0x8000+i] = uint8(i)
	}
	m.Write(addrDMA, 0x80)

	for i := uint16(0); i < 0xA0; i++ {
		if got := m.Read(0xFE00 + i); got != uint8(i) {
			t.Fatalf("OAM byte %d: expected %d, got %d", i, uint8(i), got)
		}
	}
}
