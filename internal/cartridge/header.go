package cartridge

import "fmt"

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

// Type is the cartridge type byte at 0x0147. Only ROM is
// emulated; the others are recognised so they can be reported.
type Type uint8

const (
	ROM        Type = 0x00
	MBC1       Type = 0x01
	MBC1RAM    Type = 0x02
	ROMRAM     Type = 0x08
	ROMRAMBATT Type = 0x09
	MBC3       Type = 0x11
	MBC5       Type = 0x19
)

var typeNames = map[Type]string{
	ROM:        "ROM ONLY",
	MBC1:       "MBC1",
	MBC1RAM:    "MBC1+RAM",
	ROMRAM:     "ROM+RAM",
	ROMRAMBATT: "ROM+RAM+BATTERY",
	MBC3:       "MBC3",
	MBC5:       "MBC5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, located at
// 0x0100-0x014F. It describes the cartridge and the hardware
// it expects to run on.
type Header struct {
	// 0x0100-0x0103 - entry point, usually NOP; JP 0x0150
	EntryPoint [4]byte

	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0143 - In older cartridges this byte was part of the
	// title; later models use it to flag CGB compatibility.
	CartridgeGBMode Flag

	CartridgeType  Type
	ROMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16

	raw [0x50]byte
}

// parseHeader parses the header of the given ROM and returns a Header.
func parseHeader(header []byte) Header {
	h := Header{}
	copy(h.raw[:], header)
	copy(h.EntryPoint[:], header[0x00:0x04])

	// parse the mode of the cartridge and parse the header accordingly
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = string(header[0x34:0x44])
	} else {
		h.Title = string(header[0x34:0x43])
	}

	h.CartridgeType = Type(header[0x47])

	// ROM size is 32kB x (1 << n)
	h.ROMSize = (32 * 1024) * (1 << (header[0x48] & 0xF))

	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// ComputeChecksum calculates the header checksum over
// 0x0134-0x014C the way the boot ROM does.
func (h *Header) ComputeChecksum() uint8 {
	var x uint8
	for _, b := range h.raw[0x34:0x4D] {
		x = x - b - 1
	}
	return x
}

// Valid reports whether the stored header checksum matches. The
// boot ROM locks up on a mismatch.
func (h *Header) Valid() bool {
	return h.ComputeChecksum() == h.HeaderChecksum
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024)
}
