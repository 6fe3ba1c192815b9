package timer

import "testing"

type memBus struct {
	mem map[uint16]uint8
}

func newMemBus() *memBus { return &memBus{mem: map[uint16]uint8{}} }

func (b *memBus) Read(addr uint16) uint8     { return b.mem[addr] }
func (b *memBus) Write(addr uint16, v uint8) { b.mem[addr] = v }
func (b *memBus) SetDIV(v uint8)             { b.mem[addrDIV] = v }

type fakeIRQ struct {
	requested []uint8
}

func (f *fakeIRQ) Request(flag uint8) { f.requested = append(f.requested, flag) }

func TestDIV_IncrementsEvery256Cycles(t *testing.T) {
	bus := newMemBus()
	c := New(bus, &fakeIRQ{})

	c.Step(255)
	if bus.Read(addrDIV) != 0 {
		t.Fatalf("expected DIV unchanged after 255 cycles, got %d", bus.Read(addrDIV))
	}
	c.Step(1)
	if bus.Read(addrDIV) != 1 {
		t.Fatalf("expected DIV to be 1 after 256 cycles, got %d", bus.Read(addrDIV))
	}
}

func TestDIV_IncrementsRegardlessOfTAC(t *testing.T) {
	bus := newMemBus()
	c := New(bus, &fakeIRQ{})
	bus.Write(addrTAC, 0x00) // timer disabled

	c.Step(128)
	c.Step(128)
	if bus.Read(addrDIV) != 1 {
		t.Fatalf("expected DIV to run unconditionally, got %d", bus.Read(addrDIV))
	}
}

// TestTimerInterrupt_Scenario checks that with TAC=0x05 (enabled,
// period 16), TIMA=0xFF, TMA=0xAA, after >=16 cycles TIMA reloads to
// 0xAA and the Timer interrupt is requested.
func TestTimerInterrupt_Scenario(t *testing.T) {
	bus := newMemBus()
	irq := &fakeIRQ{}
	c := New(bus, irq)

	bus.Write(addrTAC, 0x05)
	bus.Write(addrTIMA, 0xFF)
	bus.Write(addrTMA, 0xAA)

	c.Step(16)

	if bus.Read(addrTIMA) != 0xAA {
		t.Fatalf("expected TIMA to reload to TMA (0xAA), got 0x%02X", bus.Read(addrTIMA))
	}
	if len(irq.requested) != 1 || irq.requested[0] != 4 {
		t.Fatalf("expected exactly one Timer interrupt request, got %v", irq.requested)
	}
}

func TestTIMA_DisabledDoesNotCount(t *testing.T) {
	bus := newMemBus()
	c := New(bus, &fakeIRQ{})
	bus.Write(addrTAC, 0x00)
	bus.Write(addrTIMA, 0x00)

	for i := 0; i < 40; i++ {
		c.Step(250) // 40 x 250 = 10000 cycles
	}
	if bus.Read(addrTIMA) != 0 {
		t.Fatalf("expected TIMA to stay 0 while disabled, got %d", bus.Read(addrTIMA))
	}
}
