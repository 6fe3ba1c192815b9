package cpu

// define registers InstructionSet[opcode] with a name (for
// diagnostics) and a handler that returns its T-cycle cost.
func define(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// reg8 returns a pointer to one of the eight 8-bit operand locations
// used throughout the primary and CB tables, in the standard encoding
// order: B, C, D, E, H, L, (HL) [nil; callers special-case it], A.
func (c *CPU) reg8(index uint8) *uint8 {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	return nil
}

func init() {
	registerLoads8()
	registerLoads16()
	registerALU()
	registerIncDec()
	registerRotatesA()
	registerControl()
	registerMisc()
}

// registerLoads8 wires the 8-bit load grid (0x40-0x7F, LD r,r'/(HL)),
// plus the immediate/indirect 8-bit load forms.
func registerLoads8() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue // HALT occupies the LD (HL),(HL) slot
			}
			d, s := dst, src
			define(opcode, "LD r,r'", func(c *CPU) uint8 {
				var value uint8
				if s == 6 {
					value = c.bus.Read(c.hl())
				} else {
					value = *c.reg8(s)
				}
				if d == 6 {
					c.bus.Write(c.hl(), value)
					return 8
				}
				*c.reg8(d) = value
				if s == 6 {
					return 8
				}
				return 4
			})
		}
	}

	// LD r, d8
	immOpcodes := [8]uint8{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0, 0x3E}
	for r := uint8(0); r < 8; r++ {
		if r == 6 {
			continue
		}
		reg := r
		define(immOpcodes[r], "LD r,d8", func(c *CPU) uint8 {
			*c.reg8(reg) = c.fetch8()
			return 8
		})
	}
	define(0x36, "LD (HL),d8", func(c *CPU) uint8 {
		c.bus.Write(c.hl(), c.fetch8())
		return 12
	})

	define(0x02, "LD (BC),A", func(c *CPU) uint8 { c.bus.Write(c.bc(), c.A); return 8 })
	define(0x12, "LD (DE),A", func(c *CPU) uint8 { c.bus.Write(c.de(), c.A); return 8 })
	define(0x0A, "LD A,(BC)", func(c *CPU) uint8 { c.A = c.bus.Read(c.bc()); return 8 })
	define(0x1A, "LD A,(DE)", func(c *CPU) uint8 { c.A = c.bus.Read(c.de()); return 8 })

	define(0x22, "LD (HL+),A", func(c *CPU) uint8 {
		c.bus.Write(c.hl(), c.A)
		c.setHL(c.hl() + 1)
		return 8
	})
	define(0x2A, "LD A,(HL+)", func(c *CPU) uint8 {
		c.A = c.bus.Read(c.hl())
		c.setHL(c.hl() + 1)
		return 8
	})
	define(0x32, "LD (HL-),A", func(c *CPU) uint8 {
		c.bus.Write(c.hl(), c.A)
		c.setHL(c.hl() - 1)
		return 8
	})
	define(0x3A, "LD A,(HL-)", func(c *CPU) uint8 {
		c.A = c.bus.Read(c.hl())
		c.setHL(c.hl() - 1)
		return 8
	})

	define(0xEA, "LD (a16),A", func(c *CPU) uint8 { c.bus.Write(c.fetch16(), c.A); return 16 })
	define(0xFA, "LD A,(a16)", func(c *CPU) uint8 { c.A = c.bus.Read(c.fetch16()); return 16 })
	define(0xE0, "LDH (a8),A", func(c *CPU) uint8 {
		c.bus.Write(0xFF00+uint16(c.fetch8()), c.A)
		return 12
	})
	define(0xF0, "LDH A,(a8)", func(c *CPU) uint8 {
		c.A = c.bus.Read(0xFF00 + uint16(c.fetch8()))
		return 12
	})
	define(0xE2, "LD (C),A", func(c *CPU) uint8 { c.bus.Write(0xFF00+uint16(c.C), c.A); return 8 })
	define(0xF2, "LD A,(C)", func(c *CPU) uint8 { c.A = c.bus.Read(0xFF00 + uint16(c.C)); return 8 })
}

// registerLoads16 wires 16-bit loads, (a16)<-SP, SP<-HL, HL<-SP+r8,
// and PUSH/POP.
func registerLoads16() {
	define(0x01, "LD BC,d16", func(c *CPU) uint8 { c.setBC(c.fetch16()); return 12 })
	define(0x11, "LD DE,d16", func(c *CPU) uint8 { c.setDE(c.fetch16()); return 12 })
	define(0x21, "LD HL,d16", func(c *CPU) uint8 { c.setHL(c.fetch16()); return 12 })
	define(0x31, "LD SP,d16", func(c *CPU) uint8 { c.SP = c.fetch16(); return 12 })

	define(0x08, "LD (a16),SP", func(c *CPU) uint8 {
		addr := c.fetch16()
		c.bus.Write(addr, uint8(c.SP))
		c.bus.Write(addr+1, uint8(c.SP>>8))
		return 20
	})
	define(0xF9, "LD SP,HL", func(c *CPU) uint8 { c.SP = c.hl(); return 8 })
	define(0xF8, "LD HL,SP+r8", func(c *CPU) uint8 {
		c.setHL(c.addSPSigned(c.fetch8()))
		return 12
	})

	push := func(get func(*CPU) uint16) func(*CPU) uint8 {
		return func(c *CPU) uint8 { c.pushStack(get(c)); return 16 }
	}
	pop := func(set func(*CPU, uint16)) func(*CPU) uint8 {
		return func(c *CPU) uint8 { set(c, c.popStack()); return 12 }
	}
	define(0xC5, "PUSH BC", push(func(c *CPU) uint16 { return c.bc() }))
	define(0xD5, "PUSH DE", push(func(c *CPU) uint16 { return c.de() }))
	define(0xE5, "PUSH HL", push(func(c *CPU) uint16 { return c.hl() }))
	define(0xF5, "PUSH AF", push(func(c *CPU) uint16 { return c.af() }))
	define(0xC1, "POP BC", pop(func(c *CPU, v uint16) { c.setBC(v) }))
	define(0xD1, "POP DE", pop(func(c *CPU, v uint16) { c.setDE(v) }))
	define(0xE1, "POP HL", pop(func(c *CPU, v uint16) { c.setHL(v) }))
	define(0xF1, "POP AF", pop(func(c *CPU, v uint16) { c.setAF(v) }))
}

// registerALU wires the 8-bit ALU grid (0x80-0xBF) and its d8 forms.
func registerALU() {
	type op struct {
		base uint8
		imm  uint8
		fn   func(c *CPU, b uint8) uint8
	}
	ops := [8]op{
		{0x80, 0xC6, func(c *CPU, b uint8) uint8 { return c.add8(c.A, b, false) }},
		{0x88, 0xCE, func(c *CPU, b uint8) uint8 { return c.add8(c.A, b, c.isFlagSet(FlagCarry)) }},
		{0x90, 0xD6, func(c *CPU, b uint8) uint8 { return c.sub8(c.A, b, false) }},
		{0x98, 0xDE, func(c *CPU, b uint8) uint8 { return c.sub8(c.A, b, c.isFlagSet(FlagCarry)) }},
		{0xA0, 0xE6, func(c *CPU, b uint8) uint8 { return c.and8(c.A, b) }},
		{0xA8, 0xEE, func(c *CPU, b uint8) uint8 { return c.xor8(c.A, b) }},
		{0xB0, 0xF6, func(c *CPU, b uint8) uint8 { return c.or8(c.A, b) }},
		{0xB8, 0xFE, func(c *CPU, b uint8) uint8 { return c.sub8(c.A, b, false) }}, // CP
	}
	for i, o := range ops {
		isCP := i == 7
		op := o
		for src := uint8(0); src < 8; src++ {
			s := src
			opcode := op.base + s
			define(opcode, "ALU r", func(c *CPU) uint8 {
				var b uint8
				cycles := uint8(4)
				if s == 6 {
					b = c.bus.Read(c.hl())
					cycles = 8
				} else {
					b = *c.reg8(s)
				}
				result := op.fn(c, b)
				if !isCP {
					c.A = result
				}
				return cycles
			})
		}
		define(op.imm, "ALU d8", func(c *CPU) uint8 {
			result := op.fn(c, c.fetch8())
			if !isCP {
				c.A = result
			}
			return 8
		})
	}

	define(0x09, "ADD HL,BC", func(c *CPU) uint8 { c.addHL(c.bc()); return 8 })
	define(0x19, "ADD HL,DE", func(c *CPU) uint8 { c.addHL(c.de()); return 8 })
	define(0x29, "ADD HL,HL", func(c *CPU) uint8 { c.addHL(c.hl()); return 8 })
	define(0x39, "ADD HL,SP", func(c *CPU) uint8 { c.addHL(c.SP); return 8 })
	define(0xE8, "ADD SP,r8", func(c *CPU) uint8 { c.SP = c.addSPSigned(c.fetch8()); return 16 })
}

// registerIncDec wires 8-bit and 16-bit INC/DEC.
func registerIncDec() {
	inc16 := func(get func(*CPU) uint16, set func(*CPU, uint16)) func(*CPU) uint8 {
		return func(c *CPU) uint8 { set(c, get(c)+1); return 8 }
	}
	dec16 := func(get func(*CPU) uint16, set func(*CPU, uint16)) func(*CPU) uint8 {
		return func(c *CPU) uint8 { set(c, get(c)-1); return 8 }
	}
	define(0x03, "INC BC", inc16(func(c *CPU) uint16 { return c.bc() }, func(c *CPU, v uint16) { c.setBC(v) }))
	define(0x13, "INC DE", inc16(func(c *CPU) uint16 { return c.de() }, func(c *CPU, v uint16) { c.setDE(v) }))
	define(0x23, "INC HL", inc16(func(c *CPU) uint16 { return c.hl() }, func(c *CPU, v uint16) { c.setHL(v) }))
	define(0x33, "INC SP", func(c *CPU) uint8 { c.SP++; return 8 })
	define(0x0B, "DEC BC", dec16(func(c *CPU) uint16 { return c.bc() }, func(c *CPU, v uint16) { c.setBC(v) }))
	define(0x1B, "DEC DE", dec16(func(c *CPU) uint16 { return c.de() }, func(c *CPU, v uint16) { c.setDE(v) }))
	define(0x2B, "DEC HL", dec16(func(c *CPU) uint16 { return c.hl() }, func(c *CPU, v uint16) { c.setHL(v) }))
	define(0x3B, "DEC SP", func(c *CPU) uint8 { c.SP--; return 8 })

	incOpcodes := [8]uint8{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C}
	decOpcodes := [8]uint8{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D}
	for r := uint8(0); r < 8; r++ {
		reg := r
		define(incOpcodes[r], "INC r", func(c *CPU) uint8 {
			if reg == 6 {
				c.bus.Write(c.hl(), c.inc8(c.bus.Read(c.hl())))
				return 12
			}
			p := c.reg8(reg)
			*p = c.inc8(*p)
			return 4
		})
		define(decOpcodes[r], "DEC r", func(c *CPU) uint8 {
			if reg == 6 {
				c.bus.Write(c.hl(), c.dec8(c.bus.Read(c.hl())))
				return 12
			}
			p := c.reg8(reg)
			*p = c.dec8(*p)
			return 4
		})
	}
}

// registerRotatesA wires the non-prefixed accumulator rotates.
func registerRotatesA() {
	define(0x07, "RLCA", func(c *CPU) uint8 {
		c.A = c.rlc(c.A)
		c.clearFlag(FlagZero)
		return 4
	})
	define(0x0F, "RRCA", func(c *CPU) uint8 {
		c.A = c.rrc(c.A)
		c.clearFlag(FlagZero)
		return 4
	})
	define(0x17, "RLA", func(c *CPU) uint8 {
		c.A = c.rl(c.A)
		c.clearFlag(FlagZero)
		return 4
	})
	define(0x1F, "RRA", func(c *CPU) uint8 {
		c.A = c.rr(c.A)
		c.clearFlag(FlagZero)
		return 4
	})
}

func cond(c *CPU, cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	case 3:
		return c.isFlagSet(FlagCarry)
	}
	return false
}

// registerControl wires jumps, calls, returns, and RST.
func registerControl() {
	define(0xC3, "JP a16", func(c *CPU) uint8 { c.PC = c.fetch16(); return 16 })
	define(0xE9, "JP (HL)", func(c *CPU) uint8 { c.PC = c.hl(); return 4 })
	jpcc := [4]uint8{0xC2, 0xCA, 0xD2, 0xDA}
	for i, op := range jpcc {
		cc := uint8(i)
		define(op, "JP cc,a16", func(c *CPU) uint8 {
			dest := c.fetch16()
			if cond(c, cc) {
				c.PC = dest
				return 16
			}
			return 12
		})
	}

	define(0x18, "JR r8", func(c *CPU) uint8 {
		offset := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(offset))
		return 12
	})
	jrcc := [4]uint8{0x20, 0x28, 0x30, 0x38}
	for i, op := range jrcc {
		cc := uint8(i)
		define(op, "JR cc,r8", func(c *CPU) uint8 {
			offset := int8(c.fetch8())
			if cond(c, cc) {
				c.PC = uint16(int32(c.PC) + int32(offset))
				return 12
			}
			return 8
		})
	}

	define(0xCD, "CALL a16", func(c *CPU) uint8 {
		dest := c.fetch16()
		c.pushStack(c.PC)
		c.PC = dest
		return 24
	})
	callcc := [4]uint8{0xC4, 0xCC, 0xD4, 0xDC}
	for i, op := range callcc {
		cc := uint8(i)
		define(op, "CALL cc,a16", func(c *CPU) uint8 {
			dest := c.fetch16()
			if cond(c, cc) {
				c.pushStack(c.PC)
				c.PC = dest
				return 24
			}
			return 12
		})
	}

	define(0xC9, "RET", func(c *CPU) uint8 { c.PC = c.popStack(); return 16 })
	define(0xD9, "RETI", func(c *CPU) uint8 {
		c.PC = c.popStack()
		c.irq.ArmEnable()
		return 16
	})
	retcc := [4]uint8{0xC0, 0xC8, 0xD0, 0xD8}
	for i, op := range retcc {
		cc := uint8(i)
		define(op, "RET cc", func(c *CPU) uint8 {
			if cond(c, cc) {
				c.PC = c.popStack()
				return 20
			}
			return 8
		})
	}

	rstTargets := [8]uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	rstOpcodes := [8]uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF}
	for i, op := range rstOpcodes {
		dest := rstTargets[i]
		define(op, "RST t", func(c *CPU) uint8 {
			c.pushStack(c.PC)
			c.PC = dest
			return 16
		})
	}
}

// registerMisc wires NOP, STOP, HALT, DI, EI, DAA, CPL, SCF, CCF, and
// the disallowed opcodes.
func registerMisc() {
	define(0x00, "NOP", func(c *CPU) uint8 { return 4 })
	define(0x10, "STOP", func(c *CPU) uint8 {
		c.Stopped = true
		c.PC++ // STOP is encoded as two bytes; the second is conventionally 0x00.
		return 4
	})
	define(0x76, "HALT", func(c *CPU) uint8 {
		c.Halted = true
		return 4
	})
	define(0xF3, "DI", func(c *CPU) uint8 { c.irq.ArmDisable(); return 4 })
	define(0xFB, "EI", func(c *CPU) uint8 { c.irq.ArmEnable(); return 4 })
	define(0x27, "DAA", func(c *CPU) uint8 { c.daa(); return 4 })
	define(0x2F, "CPL", func(c *CPU) uint8 {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
		return 4
	})
	define(0x37, "SCF", func(c *CPU) uint8 {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		return 4
	})
	define(0x3F, "CCF", func(c *CPU) uint8 {
		c.setFlagTo(FlagCarry, !c.isFlagSet(FlagCarry))
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		return 4
	})

	disallowed := []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}
	for _, op := range disallowed {
		code := op
		define(op, "disallowed", func(c *CPU) uint8 {
			c.log.Errorf("undefined opcode 0x%02X at PC=0x%04X", code, c.PC-1)
			return 0
		})
	}
}
