// Package cpu implements the Game Boy's SM83 CPU core: registers,
// the primary and 0xCB-prefixed opcode tables, and the fetch/dispatch/
// interrupt-service loop.
package cpu

import "github.com/thelolagemann/go-gameboy/pkg/log"

// bus is the memory surface the CPU reads/writes through.
type bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// irq is the interrupt controller surface the CPU drives: Pending
// reports whether an interrupt is pending regardless of IME (used to
// wake from HALT), Service performs the full vector dispatch and
// returns the destination PC, ArmEnable/ArmDisable arm the delayed
// EI/DI semantics, and Advance steps that delay counter once per CPU
// step.
type irq interface {
	Pending() bool
	Service() uint16
	ArmEnable()
	ArmDisable()
	Advance()
	Enabled() bool
}

// Instruction is one entry of an opcode table: a name for
// diagnostics, and the handler that executes it and returns the
// T-cycle count it took.
type Instruction struct {
	name string
	fn   func(*CPU) uint8
}

// InstructionSet and InstructionSetCB are the primary and
// 0xCB-prefixed opcode tables, populated by the init() functions in
// opcodes.go and opcodes_cb.go.
var InstructionSet [256]Instruction
var InstructionSetCB [256]Instruction

// CPU holds the SM83 register file and executes instructions against
// a bus and an interrupt controller.
type CPU struct {
	A, B, C, D, E, H, L uint8
	F                   uint8
	SP, PC              uint16

	Halted bool
	Stopped bool

	bus bus
	irq irq
	log log.Logger
}

// New returns a CPU with registers at their post-boot-ROM values
// and PC at the cartridge entry point, 0x0100.
func New(bus bus, irq irq) *CPU {
	return &CPU{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		SP: 0xFFFE, PC: 0x0100,
		bus: bus, irq: irq,
		log: log.New(),
	}
}

// SetLogger overrides the CPU's logger, used to report undefined
// opcodes encountered during execution.
func (c *CPU) SetLogger(l log.Logger) { c.log = l }

// Step executes one instruction (or idles if halted/stopped), then
// services a pending interrupt if one exists and IME is set, then
// advances the delayed EI/DI counters. It returns the number of
// T-cycles consumed, for the frame driver to feed to the timer and
// PPU.
func (c *CPU) Step() uint8 {
	var cycles uint8

	switch {
	case c.Stopped:
		if c.irq.Pending() {
			c.Stopped = false
		}
		cycles = 4
	case c.Halted:
		if c.irq.Pending() {
			c.Halted = false
		}
		cycles = 4
	default:
		cycles = c.runOne()
	}

	if c.irq.Pending() && c.irq.Enabled() {
		dest := c.irq.Service()
		c.pushStack(c.PC)
		c.PC = dest
		cycles += 20
	}

	c.irq.Advance()
	return cycles
}

// runOne fetches one opcode at PC (consuming the 0xCB prefix byte
// transparently) and dispatches it.
func (c *CPU) runOne() uint8 {
	opcode := c.bus.Read(c.PC)
	c.PC++

	if opcode == 0xCB {
		cb := c.bus.Read(c.PC)
		c.PC++
		return InstructionSetCB[cb].fn(c)
	}
	return InstructionSet[opcode].fn(c)
}

// fetch8 reads the immediate byte following the opcode.
func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

// fetch16 reads the immediate little-endian word following the opcode.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

// pushStack implements the PUSH stack discipline: high byte at
// SP-1, low byte at SP-2.
func (c *CPU) pushStack(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// popStack implements the POP stack discipline, the reverse of push.
func (c *CPU) popStack() uint16 {
	lo := c.bus.Read(c.SP)
	c.SP++
	hi := c.bus.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}
