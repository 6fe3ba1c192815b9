package cpu

// register pair accessors. BC/DE/HL/AF are not stored as separate
// fields; they are composed from the eight 8-bit registers on demand,
// mirroring how the hardware addresses them.

func (c *CPU) bc() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) de() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) hl() uint16 { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) af() uint16 { return uint16(c.A)<<8 | uint16(c.F&0xF0) }

func (c *CPU) setBC(v uint16) { c.B = uint8(v >> 8); c.C = uint8(v) }
func (c *CPU) setDE(v uint16) { c.D = uint8(v >> 8); c.E = uint8(v) }
func (c *CPU) setHL(v uint16) { c.H = uint8(v >> 8); c.L = uint8(v) }
func (c *CPU) setAF(v uint16) { c.A = uint8(v >> 8); c.F = uint8(v) & 0xF0 }
