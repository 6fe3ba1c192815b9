package interrupts

import "testing"

type fakeBus struct {
	mem map[uint16]uint8
}

func newFakeBus() *fakeBus { return &fakeBus{mem: map[uint16]uint8{}} }

func (b *fakeBus) Read(addr uint16) uint8  { return b.mem[addr] }
func (b *fakeBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func TestRequestAndService_Priority(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.IME = true
	bus.Write(addrIE, Timer|Joypad)

	c.Request(Joypad)
	c.Request(Timer)

	if !c.Pending() {
		t.Fatal("expected a pending interrupt")
	}

	vector := c.Service()
	if vector != 0x0050 {
		t.Errorf("expected Timer (0x0050) to win priority over Joypad, got 0x%04X", vector)
	}
	if bus.Read(addrIF)&Timer != 0 {
		t.Errorf("expected Timer bit to be cleared from IF after service")
	}
	if c.IME {
		t.Errorf("expected IME to be cleared after service")
	}
}

func TestEIDelay_TwoSteps(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)

	c.ArmEnable()
	c.Advance() // step 1: armed, not yet applied
	if c.IME {
		t.Fatal("IME should not be set after only one Advance following EI")
	}
	c.Advance() // step 2: applies
	if !c.IME {
		t.Fatal("IME should be set after the second Advance following EI")
	}
}

func TestDIDelay_TwoSteps(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.IME = true

	c.ArmDisable()
	c.Advance()
	if !c.IME {
		t.Fatal("IME should not be cleared after only one Advance following DI")
	}
	c.Advance()
	if c.IME {
		t.Fatal("IME should be cleared after the second Advance following DI")
	}
}
