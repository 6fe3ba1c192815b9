package gameboy

import "testing"

func newTestGameBoy(t *testing.T) *GameBoy {
	t.Helper()
	rom := make([]byte, 0x8000)
	g, err := New(rom)
	if err != nil {
		t.Fatalf("failed to construct GameBoy: %v", err)
	}
	return g
}

func TestNew_ColdResetState(t *testing.T) {
	g := newTestGameBoy(t)
	if g.CPU.PC != 0x0100 {
		t.Fatalf("expected PC == 0x0100, got %04X", g.CPU.PC)
	}
	if g.CPU.A != 0x01 || g.CPU.F != 0xB0 {
		t.Fatalf("unexpected post-reset AF: A=%02X F=%02X", g.CPU.A, g.CPU.F)
	}
}

// TestStep_JPImmediate checks that a ROM consisting solely of JP
// 0x0150 at 0x0100 moves PC there in one step and reports 16 cycles.
func TestStep_JPImmediate(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0100] = 0xC3
	rom[0x0101] = 0x50
	rom[0x0102] = 0x01
	g, err := New(rom)
	if err != nil {
		t.Fatalf("failed to construct GameBoy: %v", err)
	}

	cycles := g.Step()
	if g.CPU.PC != 0x0150 {
		t.Fatalf("expected PC == 0x0150, got %04X", g.CPU.PC)
	}
	if cycles != 16 {
		t.Fatalf("expected 16 T-cycles, got %d", cycles)
	}
}

// TestFrame_CompletesAfterVBlank checks that an idle program (all
// NOPs) run for a full frame's worth of T-cycles reaches V-Blank and
// Frame returns.
func TestFrame_CompletesAfterVBlank(t *testing.T) {
	rom := make([]byte, 0x8000)
	// leave all zero (0x00 == NOP); CPU free-runs NOPs through ROM.
	rom[0x0147] = 0x00 // ROM ONLY
	g, err := New(rom)
	if err != nil {
		t.Fatalf("failed to construct GameBoy: %v", err)
	}
	g.MMU.Write(0xFF40, 0x91) // LCD + BG enabled

	frame := g.Frame()
	if len(frame) == 0 {
		t.Fatalf("expected a non-empty framebuffer")
	}
}

// TestFrame_AbortsWhileStopped checks that Frame returns immediately,
// without advancing the Timer or PPU, once the CPU enters STOP.
func TestFrame_AbortsWhileStopped(t *testing.T) {
	g := newTestGameBoy(t)
	g.MMU.Write(0xFF40, 0x91) // LCD + BG enabled
	g.CPU.Stopped = true

	divBefore := g.MMU.Read(0xFF04)
	lyBefore := g.MMU.Read(0xFF44)

	g.Frame()

	if !g.CPU.Stopped {
		t.Fatalf("expected Stopped to remain set with no pending interrupt")
	}
	if g.MMU.Read(0xFF04) != divBefore {
		t.Fatalf("expected DIV unchanged while stopped, got %02X, was %02X", g.MMU.Read(0xFF04), divBefore)
	}
	if g.MMU.Read(0xFF44) != lyBefore {
		t.Fatalf("expected LY unchanged while stopped, got %d, was %d", g.MMU.Read(0xFF44), lyBefore)
	}
}

func TestProcessInputs_WakesFromStop(t *testing.T) {
	g := newTestGameBoy(t)
	g.CPU.Stopped = true

	g.ProcessInputs([]uint8{0}, nil)
	if g.CPU.Stopped {
		t.Fatalf("expected a button press to clear the stop flag")
	}
}

func TestProcessInputs_PressRequestsJoypadInterrupt(t *testing.T) {
	g := newTestGameBoy(t)
	g.MMU.Write(0xFFFF, 0x10) // enable Joypad interrupt in IE
	g.MMU.Write(0xFF00, 0x20) // select direction keys (bit 4 low)

	g.ProcessInputs([]uint8{0}, nil) // press Right
	if g.MMU.Read(0xFF0F)&0x10 == 0 {
		t.Fatalf("expected IF bit 4 (Joypad) to be set after a button press")
	}
}
