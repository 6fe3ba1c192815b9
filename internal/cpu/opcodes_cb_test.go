package cpu

import "testing"

func TestRLC_RotatesThroughBit7(t *testing.T) {
	c, _ := newCPU()
	result := c.rlc(0x80)
	if result != 0x01 {
		t.Fatalf("expected 0x01, got %02X", result)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatalf("expected carry set from vacated bit 7")
	}
}

func TestSRA_PreservesSignBit(t *testing.T) {
	c, _ := newCPU()
	result := c.sra(0x80)
	if result != 0xC0 {
		t.Fatalf("expected 0xC0 (arithmetic shift preserves bit 7), got %02X", result)
	}
}

func TestSwap_SwapsNibbles(t *testing.T) {
	c, _ := newCPU()
	result := c.swap(0xAB)
	if result != 0xBA {
		t.Fatalf("expected 0xBA, got %02X", result)
	}
	if c.isFlagSet(FlagCarry) {
		t.Fatalf("expected SWAP to clear carry")
	}
}

func TestBIT_SetsZeroWhenBitClear(t *testing.T) {
	bus := &memBus{}
	bus.load(0x0100, 0xCB, 0x7F) // BIT 7, A
	c := New(bus, &fakeIRQ{})
	c.A = 0x7F // bit 7 clear

	c.Step()
	if !c.isFlagSet(FlagZero) {
		t.Fatalf("expected Z set since bit 7 of 0x7F is clear")
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatalf("expected H always set by BIT")
	}
}

func TestRES_SET_OnMemoryOperand(t *testing.T) {
	bus := &memBus{}
	bus.load(0x0100, 0xCB, 0x86, 0xCB, 0xC6) // RES 0,(HL) ; SET 0,(HL)
	c := New(bus, &fakeIRQ{})
	c.setHL(0xC000)
	bus.Write(0xC000, 0xFF)

	c.Step()
	if bus.Read(0xC000) != 0xFE {
		t.Fatalf("expected bit 0 cleared, got %02X", bus.Read(0xC000))
	}
	c.Step()
	if bus.Read(0xC000) != 0xFF {
		t.Fatalf("expected bit 0 set back, got %02X", bus.Read(0xC000))
	}
}
