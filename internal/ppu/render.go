package ppu

import "github.com/thelolagemann/go-gameboy/pkg/bits"

// renderScanline draws one visible row (ly in 0..143) of background,
// window, and sprites into Frame.
func (p *PPU) renderScanline(ly uint8) {
	lcdc := p.bus.Read(addrLCDC)

	bgLine := [ScreenWidth]uint8{}
	if bits.Test(lcdc, 0) {
		p.renderBackground(ly, lcdc, &bgLine)
	}
	if bits.Test(lcdc, 5) {
		p.renderWindow(ly, lcdc, &bgLine)
	}

	bgp := p.bus.Read(addrBGP)
	for x := 0; x < ScreenWidth; x++ {
		p.Frame[ly][x] = grayscale[palette(bgp, bgLine[x])]
	}

	if bits.Test(lcdc, 1) {
		p.renderSprites(ly, lcdc)
	}
}

// palette translates a 2-bit color index through a BGP/OBPx register.
func palette(reg uint8, index uint8) uint8 {
	return (reg >> (index * 2)) & 0x03
}

// tileDataAddr returns the VRAM address of the given tile's row, given
// the LCDC.4 addressing mode selection.
func tileDataAddr(lcdc uint8, tile uint8, row uint8) uint16 {
	var base uint16
	if bits.Test(lcdc, 4) {
		base = 0x8000 + uint16(tile)*16
	} else {
		base = 0x9000 + uint16(int8(tile))*16
	}
	return base + uint16(row)*2
}

// tileRowIndices decodes one 8-pixel row of a tile into 2-bit color
// indices, MSB (leftmost pixel) first.
func (p *PPU) tileRowIndices(addr uint16) [8]uint8 {
	lo := p.bus.Read(addr)
	hi := p.bus.Read(addr + 1)
	var row [8]uint8
	for bit := 0; bit < 8; bit++ {
		shift := uint(7 - bit)
		lb := (lo >> shift) & 1
		hb := (hi >> shift) & 1
		row[bit] = (hb << 1) | lb
	}
	return row
}

func (p *PPU) renderBackground(ly uint8, lcdc uint8, out *[ScreenWidth]uint8) {
	scy := p.bus.Read(addrSCY)
	scx := p.bus.Read(addrSCX)

	var mapBase uint16 = 0x9800
	if bits.Test(lcdc, 3) {
		mapBase = 0x9C00
	}

	y := ly + scy
	tileRow := uint16(y / 8)
	rowInTile := y % 8

	for x := 0; x < ScreenWidth; x++ {
		bx := uint8(x) + scx
		tileCol := uint16(bx / 8)
		colInTile := bx % 8

		mapAddr := mapBase + tileRow*32 + tileCol
		tile := p.bus.Read(mapAddr)

		row := p.tileRowIndices(tileDataAddr(lcdc, tile, rowInTile))
		out[x] = row[colInTile]
	}
}

func (p *PPU) renderWindow(ly uint8, lcdc uint8, out *[ScreenWidth]uint8) {
	wy := p.bus.Read(addrWY)
	wx := p.bus.Read(addrWX)
	if ly < wy || wx > 166 {
		return
	}

	var mapBase uint16 = 0x9800
	if bits.Test(lcdc, 6) {
		mapBase = 0x9C00
	}

	windowY := ly - wy
	tileRow := uint16(windowY / 8)
	rowInTile := windowY % 8

	startX := int(wx) - 7
	for x := 0; x < ScreenWidth; x++ {
		if x < startX {
			continue
		}
		wxPixel := uint16(x - startX)
		tileCol := wxPixel / 8
		colInTile := uint8(wxPixel % 8)

		mapAddr := mapBase + tileRow*32 + tileCol
		tile := p.bus.Read(mapAddr)

		row := p.tileRowIndices(tileDataAddr(lcdc, tile, rowInTile))
		out[x] = row[colInTile]
	}
}

type spriteAttr struct {
	y, x, tile, flags uint8
}

// renderSprites overlays the first 10 OAM entries (in OAM order) that
// intersect ly. Sprites are drawn in OAM order, so where two overlap
// the one with the higher OAM index covers the other; sprites are not
// ordered by x. Color index 0 is the only transparency rule; the
// background/sprite priority attribute bit is not honored.
func (p *PPU) renderSprites(ly uint8, lcdc uint8) {
	height := uint8(8)
	if bits.Test(lcdc, 2) {
		height = 16
	}

	var visible []spriteAttr
	for i := uint16(0); i < 40 && len(visible) < 10; i++ {
		base := 0xFE00 + i*4
		attr := spriteAttr{
			y:     p.bus.Read(base) - 16,
			x:     p.bus.Read(base+1) - 8,
			tile:  p.bus.Read(base + 2),
			flags: p.bus.Read(base + 3),
		}
		if ly-attr.y < height {
			visible = append(visible, attr)
		}
	}

	for _, s := range visible {
		row := ly - s.y
		if bits.Test(s.flags, 6) {
			row = height - 1 - row
		}

		tile := s.tile
		if height == 16 {
			tile = bits.Reset(tile, 0)
		}

		pixels := p.tileRowIndices(0x8000 + uint16(tile)*16 + uint16(row)*2)
		if bits.Test(s.flags, 5) {
			pixels[0], pixels[7] = pixels[7], pixels[0]
			pixels[1], pixels[6] = pixels[6], pixels[1]
			pixels[2], pixels[5] = pixels[5], pixels[2]
			pixels[3], pixels[4] = pixels[4], pixels[3]
		}

		obp := p.bus.Read(addrOBP0)
		if bits.Test(s.flags, 4) {
			obp = p.bus.Read(addrOBP1)
		}

		for col := 0; col < 8; col++ {
			x := int(s.x) + col
			if x < 0 || x >= ScreenWidth {
				continue
			}
			index := pixels[col]
			if index == 0 {
				continue
			}
			p.Frame[ly][x] = grayscale[palette(obp, index)]
		}
	}
}
