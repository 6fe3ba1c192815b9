// Package gameboy wires the CPU, MMU, timer, PPU, interrupt
// controller, and joypad into a single emulation unit and drives them
// frame by frame.
package gameboy

import (
	"github.com/thelolagemann/go-gameboy/internal/cartridge"
	"github.com/thelolagemann/go-gameboy/internal/cpu"
	"github.com/thelolagemann/go-gameboy/internal/interrupts"
	"github.com/thelolagemann/go-gameboy/internal/joypad"
	"github.com/thelolagemann/go-gameboy/internal/mmu"
	"github.com/thelolagemann/go-gameboy/internal/ppu"
	"github.com/thelolagemann/go-gameboy/internal/timer"
	"github.com/thelolagemann/go-gameboy/pkg/log"
)

const (
	// ClockSpeed is the Game Boy's master clock, in Hz.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of T-cycles the driver runs per
	// rendered frame (154 scanlines of 456 T-cycles, about
	// ClockSpeed / 59.7).
	CyclesPerFrame = 70224
)

// GameBoy owns one complete, independent emulation: a cartridge and
// the five core components bound together, driven one frame at a
// time by Frame.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Timer      *timer.Controller
	Interrupts *interrupts.Controller
	Joypad     *joypad.State

	log log.Logger
}

// Option configures a GameBoy at construction time.
type Option func(*GameBoy)

// WithLogger overrides the default logger.
func WithLogger(l log.Logger) Option {
	return func(g *GameBoy) { g.log = l }
}

// New loads rom into a cartridge and wires a complete GameBoy around
// it. It returns an error only for load-time cartridge problems
// the running core itself has no internal error path.
func New(rom []byte, opts ...Option) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	// The MMU needs a joypad, the joypad needs the interrupt
	// controller, and the interrupt controller needs the MMU as its
	// register bus. Break the cycle with SetJoypad.
	bus := mmu.New(cart, nil)
	irq := interrupts.New(bus)
	pad := joypad.New(irq)
	bus.SetJoypad(pad)

	tim := timer.New(bus, irq)
	video := ppu.New(bus, irq)
	core := cpu.New(bus, irq)

	g := &GameBoy{
		CPU:        core,
		MMU:        bus,
		PPU:        video,
		Timer:      tim,
		Interrupts: irq,
		Joypad:     pad,
		log:        log.New(),
	}

	for _, opt := range opts {
		opt(g)
	}
	core.SetLogger(g.log)

	g.log.Infof("loaded %s", bus.Cart.Header().Title)
	return g, nil
}

// Step executes one CPU instruction (or idle step) and advances the
// timer and PPU by the same T-cycle count, in that order, per the
// step ordering guarantee. While the CPU is stopped, the LCD is
// suspended along with it: Timer and PPU are not advanced, so the
// screen holds its last frame until a button press clears Stopped.
func (g *GameBoy) Step() uint8 {
	cycles := g.CPU.Step()
	if g.CPU.Stopped {
		return cycles
	}
	g.Timer.Step(cycles)
	g.PPU.Step(cycles)
	return cycles
}

// Frame runs the emulation until the PPU reports a completed frame,
// then returns the rendered 160x144 framebuffer. If the CPU enters
// STOP mid-frame, the frame is aborted immediately and the
// last-rendered framebuffer is returned instead of waiting for
// VBlank, since the LCD itself is suspended while stopped.
func (g *GameBoy) Frame() [ppu.ScreenHeight][ppu.ScreenWidth]ppu.Colour {
	g.PPU.ClearFrame()
	for !g.PPU.HasFrame() {
		g.Step()
		if g.CPU.Stopped {
			break
		}
	}
	return g.PPU.Frame
}

// ProcessInputs applies a batch of button press/release events to the
// joypad, waking the CPU from STOP on any press.
func (g *GameBoy) ProcessInputs(pressed, released []uint8) {
	for _, button := range pressed {
		g.Joypad.Press(button)
		g.CPU.Stopped = false
	}
	for _, button := range released {
		g.Joypad.Release(button)
	}
}
