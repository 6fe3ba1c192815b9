package cartridge

import "testing"

func makeROM(size int, cartType byte, romSizeByte byte, ramSizeByte byte) []byte {
	rom := make([]byte, size)
	rom[0x147] = cartType
	rom[0x148] = romSizeByte
	rom[0x149] = ramSizeByte
	return rom
}

func TestNew_RejectsShortImage(t *testing.T) {
	if _, err := New(make([]byte, 0x1000)); err == nil {
		t.Fatal("expected an error for an image shorter than 0x8000 bytes")
	}
}

func TestNew_RejectsUnsupportedController(t *testing.T) {
	rom := makeROM(0x8000, 0x11, 0, 0) // MBC3
	if _, err := New(rom); err == nil {
		t.Fatal("expected an error for an unsupported cartridge type (MBC3)")
	}
}

func TestNew_ROMOnly(t *testing.T) {
	rom := makeROM(0x8000, 0x00, 0, 0)
	c, err := New(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Read(0x4000) != rom[0x4000] {
		t.Errorf("expected the unbanked ROM byte at 0x4000 to be readable")
	}
}

func TestMBC1_BankSwitch(t *testing.T) {
	rom := makeROM(0x4000*8, 0x01, 0x02, 0) // MBC1, 8 banks
	rom[5*0x4000] = 0x42                    // marker byte in bank 5
	c, err := New(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Write(0x2100, 0x05)
	if got := c.Read(0x4000); got != 0x42 {
		t.Errorf("expected bank 5 data (0x42) at 0x4000, got 0x%02X", got)
	}

	// writing 0 to the bank-select register must force bank 1, never 0.
	c.Write(0x2100, 0x00)
	if got := c.Read(0x4000); got != rom[0x4000] {
		t.Errorf("expected bank 1 data at 0x4000 after writing bank 0, got 0x%02X", got)
	}
}

func TestMBC1_ExternalRAM(t *testing.T) {
	rom := makeROM(0x4000*4, 0x03, 0x01, 0x03) // MBC1+RAM+BATT, 4 RAM banks
	c, err := New(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// RAM reads are unspecified until enabled; writes must be dropped.
	c.Write(0xA000, 0x99)

	c.Write(0x0000, 0x0A) // enable RAM
	c.Write(0xA000, 0x77)
	if got := c.Read(0xA000); got != 0x77 {
		t.Errorf("expected 0x77 from enabled external RAM, got 0x%02X", got)
	}

	c.Write(0x0000, 0x00) // disable RAM
	if got := c.Read(0xA000); got == 0x77 {
		t.Errorf("did not expect enabled-RAM value %#x to be observable once RAM is disabled", got)
	}
}

func TestMBC2_BuiltinRAM(t *testing.T) {
	rom := makeROM(0x4000*2, 0x06, 0, 0) // MBC2+BATTERY
	c, err := New(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Write(0x0000, 0x0A) // enable RAM (bit 4 of address is 0)
	c.Write(0xA010, 0xF5)
	if got := c.Read(0xA010); got != 0xF5 {
		t.Errorf("expected the stored low nibble 0x5 with the high nibble read as 0xF (0xF5), got 0x%02X", got)
	}
}
