package cpu

// Flag is a bit position within the F register. Only the top four
// bits are meaningful; the bottom four always read as zero.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

func (c *CPU) setFlag(flag Flag)   { c.F |= 1 << flag }
func (c *CPU) clearFlag(flag Flag) { c.F &^= 1 << flag }

func (c *CPU) setFlagTo(flag Flag, v bool) {
	if v {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

func (c *CPU) isFlagSet(flag Flag) bool { return c.F&(1<<flag) != 0 }

// setZ sets FlagZero according to value.
func (c *CPU) setZ(value uint8) { c.setFlagTo(FlagZero, value == 0) }
