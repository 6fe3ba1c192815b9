// Package timer implements the Game Boy's divider/TIMA timer unit:
// DIV always runs at 16384Hz, TIMA runs at a
// TAC-selected frequency and requests an interrupt on overflow.
package timer

import "github.com/thelolagemann/go-gameboy/internal/interrupts"

const (
	addrDIV  = 0xFF04
	addrTIMA = 0xFF05
	addrTMA  = 0xFF06
	addrTAC  = 0xFF07
)

// bus is the minimal register surface the timer needs from the MMU.
// SetDIV bypasses the MMU's program-write-always-resets-DIV-to-0 rule,
// which only applies to writes originating from the
// running program, not the timer's own internal increments.
type bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	SetDIV(value uint8)
}

// irqRequester is satisfied by *interrupts.Controller; kept as its own
// interface as the resolution of the Timer/MMU/CPU cyclic
// dependency.
type irqRequester interface {
	Request(flag uint8)
}

// periods maps TAC bits 0-1 to the T-cycle period between TIMA
// increments.
var periods = [4]uint16{1024, 16, 64, 256}

// Controller drives DIV and TIMA from the shared T-cycle clock.
type Controller struct {
	bus bus
	irq irqRequester

	timaRemainder int32
	divRemainder  uint16
	lastTAC       uint8
}

// New returns a Controller bound to bus (for DIV/TIMA/TMA/TAC) and irq
// (to request interrupts.Timer on overflow).
func New(bus bus, irq irqRequester) *Controller {
	return &Controller{bus: bus, irq: irq, timaRemainder: int32(periods[0])}
}

// Step advances the timer by the given number of T-cycles: the count
// the CPU's last executed instruction reported.
func (c *Controller) Step(cycles uint8) {
	c.stepDivider(cycles)
	c.stepTIMA(cycles)
}

// stepDivider increments DIV every 256 T-cycles, unconditionally.
func (c *Controller) stepDivider(cycles uint8) {
	c.divRemainder += uint16(cycles)
	for c.divRemainder >= 256 {
		c.divRemainder -= 256
		c.bus.SetDIV(c.bus.Read(addrDIV) + 1)
	}
}

// resyncIfChanged resets timaRemainder to the period TAC's frequency
// bits currently select whenever TAC has changed since the last
// observed value (an enable, a disable, or a frequency switch). This
// keeps a timer just enabled (or retuned) by the running program from
// ticking out the stale period that was active before the write.
func (c *Controller) resyncIfChanged(tac uint8) {
	if tac == c.lastTAC {
		return
	}
	c.lastTAC = tac
	c.timaRemainder = int32(periods[tac&0x03])
}

// stepTIMA increments TIMA at the TAC-selected frequency, reloading
// from TMA and requesting interrupts.Timer on overflow.
func (c *Controller) stepTIMA(cycles uint8) {
	tac := c.bus.Read(addrTAC)
	c.resyncIfChanged(tac)
	if tac&0x04 == 0 {
		return
	}

	remaining := c.timaRemainder - int32(cycles)
	for remaining <= 0 {
		period := periods[tac&0x03]
		remaining += int32(period)

		tima := c.bus.Read(addrTIMA)
		if tima == 0xFF {
			c.bus.Write(addrTIMA, c.bus.Read(addrTMA))
			c.irq.Request(interrupts.Timer)
		} else {
			c.bus.Write(addrTIMA, tima+1)
		}

		// the program may have rewritten TAC from within this very
		// overflow; re-read it so a write takes effect immediately.
		tac = c.bus.Read(addrTAC)
		if tac != c.lastTAC {
			c.resyncIfChanged(tac)
			remaining = c.timaRemainder
		}
		if tac&0x04 == 0 {
			return
		}
	}
	c.timaRemainder = remaining
}
