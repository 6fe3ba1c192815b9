package cartridge

import (
	"fmt"
	"strings"
)

// Type identifies the memory bank controller a cartridge expects,
// taken from header byte 0x0147.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBATT:
		return "MBC1+RAM+BATTERY"
	case MBC2:
		return "MBC2"
	case MBC2BATT:
		return "MBC2+BATTERY"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
	}
}

// hasMBC1 and hasMBC2 report which bank controller (if either) the
// cartridge uses. At most one of the two is ever true.
func (t Type) hasMBC1() bool {
	switch t {
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return true
	default:
		return false
	}
}

func (t Type) hasMBC2() bool {
	switch t {
	case MBC2, MBC2BATT:
		return true
	default:
		return false
	}
}

// supported reports whether this cartridge type is implemented. Every
// other MBC family (MBC3/5/6/7, MMM01, HuC1/3, ...) is an unsupported
// header and is a load-time error.
func (t Type) supported() bool {
	switch t {
	case ROM, MBC1, MBC1RAM, MBC1RAMBATT, MBC2, MBC2BATT:
		return true
	default:
		return false
	}
}

// ramBankSizes maps header byte 0x0149 to a count of 8KiB external-RAM
// banks.
var ramBankSizes = map[uint8]int{
	0x00: 0,
	0x01: 1, // unofficial; some tooling emits a single partial bank here
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

// Header is the parsed cartridge header at 0x0100-0x014F.
type Header struct {
	Title           string
	CartridgeType   Type
	ROMBanks        int // 16KiB banks, including the fixed bank 0
	RAMBanks        int // 8KiB external-RAM banks
	HeaderChecksum  uint8
	computedSum     uint8
}

func (h Header) String() string {
	return fmt.Sprintf("%s [%s] romBanks=%d ramBanks=%d", h.Title, h.CartridgeType, h.ROMBanks, h.RAMBanks)
}

// ChecksumValid reports whether the header checksum byte (0x014D)
// matches the bytes it covers. Real hardware never enforces this; a
// mismatch is logged, not rejected.
func (h Header) ChecksumValid() bool {
	return h.HeaderChecksum == h.computedSum
}

// parseHeader parses the 0x0100-0x014F header block out of rom.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("cartridge: image too short to contain a header (%d bytes)", len(rom))
	}

	h := Header{
		Title:         strings.TrimRight(string(rom[0x134:0x144]), "\x00"),
		CartridgeType: Type(rom[0x147]),
		ROMBanks:      2 << rom[0x148],
	}

	if banks, ok := ramBankSizes[rom[0x149]]; ok {
		h.RAMBanks = banks
	}

	var sum uint8
	for addr := 0x134; addr <= 0x14C; addr++ {
		sum = sum - rom[addr] - 1
	}
	h.computedSum = sum
	h.HeaderChecksum = rom[0x14D]

	return h, nil
}
