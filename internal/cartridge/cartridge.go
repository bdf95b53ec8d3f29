// Package cartridge provides the flat ROM cartridge. The cartridge
// image is loaded once and never modified; bank switching
// controllers are not emulated, so the whole image is visible
// from 0x0000 upwards.
package cartridge

import "strings"

// OpenBus is the value read from addresses past the end of the
// loaded image.
const OpenBus = 0xFF

// Cartridge represents a ROM-only game cartridge.
type Cartridge struct {
	rom    []byte
	header *Header
}

// NewCartridge copies rom into a new Cartridge and parses its
// header, if the image is large enough to contain one.
func NewCartridge(rom []byte) *Cartridge {
	c := &Cartridge{
		rom: append([]byte(nil), rom...),
	}

	// parse the cartridge header (0x0100 - 0x014F)
	if len(c.rom) >= headerEnd {
		h := parseHeader(c.rom[headerStart:headerEnd])
		c.header = &h
	}

	return c
}

// NewEmptyCartridge returns a cartridge with no image, reading
// OpenBus everywhere.
func NewEmptyCartridge() *Cartridge {
	return &Cartridge{}
}

// Read returns the value at the given address.
func (c *Cartridge) Read(address uint16) uint8 {
	if int(address) >= len(c.rom) {
		return OpenBus
	}
	return c.rom[address]
}

// Len returns the size of the loaded image.
func (c *Cartridge) Len() int {
	return len(c.rom)
}

// Header returns the parsed header, or nil if the image is too
// small to carry one.
func (c *Cartridge) Header() *Header {
	return c.header
}

// Title returns the trimmed cartridge title.
func (c *Cartridge) Title() string {
	if c.header == nil {
		return ""
	}
	return strings.TrimRight(c.header.Title, "\x00 ")
}
