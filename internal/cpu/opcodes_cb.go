package cpu

func defineCB(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// rlc/rrc/rl/rr/sla/sra/swap/srl implement the CB-table rotate/shift
// operations: Z from result, N and H cleared, C set as defined.

func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | v>>7
	c.finishShift(result, carry)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v<<7
	c.finishShift(result, carry)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	var cin uint8
	if c.isFlagSet(FlagCarry) {
		cin = 1
	}
	carry := v&0x80 != 0
	result := v<<1 | cin
	c.finishShift(result, carry)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	var cin uint8
	if c.isFlagSet(FlagCarry) {
		cin = 0x80
	}
	carry := v&0x01 != 0
	result := v>>1 | cin
	c.finishShift(result, carry)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.finishShift(result, carry)
	return result
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v&0x80 | v>>1
	c.finishShift(result, carry)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.finishShift(result, carry)
	return result
}

func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.setZ(result)
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagHalfCarry)
	c.clearFlag(FlagCarry)
	return result
}

func (c *CPU) finishShift(result uint8, carry bool) {
	c.setZ(result)
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagHalfCarry)
	c.setFlagTo(FlagCarry, carry)
}

func init() {
	shiftOps := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}
	for i, op := range shiftOps {
		base := uint8(i) * 8
		fn := op
		for r := uint8(0); r < 8; r++ {
			reg := r
			defineCB(base+reg, "shift r", func(c *CPU) uint8 {
				if reg == 6 {
					c.bus.Write(c.hl(), fn(c, c.bus.Read(c.hl())))
					return 16
				}
				p := c.reg8(reg)
				*p = fn(c, *p)
				return 8
			})
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		b := bit
		biBase := 0x40 + b*8
		resBase := 0x80 + b*8
		setBase := 0xC0 + b*8
		for r := uint8(0); r < 8; r++ {
			reg := r
			defineCB(biBase+reg, "BIT b,r", func(c *CPU) uint8 {
				var v uint8
				cycles := uint8(8)
				if reg == 6 {
					v = c.bus.Read(c.hl())
					cycles = 12
				} else {
					v = *c.reg8(reg)
				}
				c.setFlagTo(FlagZero, v&(1<<b) == 0)
				c.clearFlag(FlagSubtract)
				c.setFlag(FlagHalfCarry)
				return cycles
			})
			defineCB(resBase+reg, "RES b,r", func(c *CPU) uint8 {
				if reg == 6 {
					c.bus.Write(c.hl(), c.bus.Read(c.hl())&^(1<<b))
					return 16
				}
				p := c.reg8(reg)
				*p &^= 1 << b
				return 8
			})
			defineCB(setBase+reg, "SET b,r", func(c *CPU) uint8 {
				if reg == 6 {
					c.bus.Write(c.hl(), c.bus.Read(c.hl())|1<<b)
					return 16
				}
				p := c.reg8(reg)
				*p |= 1 << b
				return 8
			})
		}
	}
}
