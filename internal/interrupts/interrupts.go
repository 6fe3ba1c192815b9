// Package interrupts implements the Game Boy interrupt controller: the
// IME master-enable flag and the priority dispatch over the IF/IE
// register pair.
package interrupts

// Flag bits within IF (0xFF0F) and IE (0xFFFF), in hardware priority
// order. Bit 3 (serial) exists in the real registers but this core
// never requests it (serial link is a Non-goal).
const (
	VBlank uint8 = 1 << 0
	LCD    uint8 = 1 << 1
	Timer  uint8 = 1 << 2
	Serial uint8 = 1 << 3
	Joypad uint8 = 1 << 4
)

// priority lists the bits Service considers, lowest (highest
// priority) first. Bit 3 (serial) is intentionally absent.
var priority = [4]uint8{VBlank, LCD, Timer, Joypad}

// vectors maps a priority index to its interrupt vector address.
var vectors = [4]uint16{0x0040, 0x0048, 0x0050, 0x0060}

// Bus is the minimal register surface a Controller needs from the
// MMU: IF and IE live in the ordinary backing array (there is no
// special-cased behaviour for them), so the controller reads
// and writes them like any other byte.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

const (
	addrIF = 0xFF0F
	addrIE = 0xFFFF
)

// Controller is the interrupt controller: IME plus the deferred EI/DI
// machinery.
type Controller struct {
	IME bool

	// eiStage/diStage are 0 when not armed. ArmEnable/ArmDisable set
	// them to 1 and each Advance increments them; the effect applies,
	// and the stage disarms, on the second Advance after arming (when
	// the counter reaches 3).
	eiStage uint8
	diStage uint8

	bus Bus
}

// New returns a new Controller that reads/writes IF and IE through bus.
func New(bus Bus) *Controller {
	return &Controller{bus: bus}
}

// Request sets the given flag bit in IF.
func (c *Controller) Request(flag uint8) {
	c.bus.Write(addrIF, c.bus.Read(addrIF)|flag)
}

// Pending reports whether any requested interrupt is also enabled.
func (c *Controller) Pending() bool {
	return c.bus.Read(addrIE)&c.bus.Read(addrIF)&0x1F != 0
}

// Enabled reports whether IME is currently set.
func (c *Controller) Enabled() bool { return c.IME }

// ArmEnable begins the two-step delayed IME set triggered by EI.
func (c *Controller) ArmEnable() {
	c.eiStage = 1
	c.diStage = 0
}

// ArmDisable begins the two-step delayed IME clear triggered by DI.
func (c *Controller) ArmDisable() {
	c.diStage = 1
	c.eiStage = 0
}

// Advance steps the deferred EI/DI counters; call once per CPU step.
func (c *Controller) Advance() {
	if c.eiStage != 0 {
		c.eiStage++
		if c.eiStage == 3 {
			c.IME = true
			c.eiStage = 0
		}
	}
	if c.diStage != 0 {
		c.diStage++
		if c.diStage == 3 {
			c.IME = false
			c.diStage = 0
		}
	}
}

// Service picks the highest-priority requested-and-enabled interrupt,
// clears it in IF, clears IME, and returns its vector. The caller
// (the CPU) is responsible for pushing PC and jumping. Service must
// only be called when IME is true and Pending() is true.
func (c *Controller) Service() uint16 {
	flags := c.bus.Read(addrIF)
	enable := c.bus.Read(addrIE)

	for i, bit := range priority {
		if flags&enable&bit != 0 {
			c.bus.Write(addrIF, flags&^bit)
			c.IME = false
			return vectors[i]
		}
	}
	return 0
}
