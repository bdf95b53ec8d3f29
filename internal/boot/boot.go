// Package boot provides the boot overlay image. Whilst the boot
// overlay is not strictly required to run a cartridge, it can
// be used to emulate the power-on sequence of the console.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the length of a boot overlay image in bytes.
const Size = 0x100

// ROM represents a boot overlay image. When the console first
// powers on, the boot ROM is mapped over 0x0000 - 0x00FF.
//
// The boot ROM initialises the hardware, sets the stack pointer,
// scrolls the logo and checks the cartridge header. Once done, it
// unmaps itself by writing to types.BDIS, which maps the cartridge
// over the same range and starts cartridge execution at 0x0100.
type ROM struct {
	raw      [Size]byte // the raw boot rom
	checksum string     // the MD5 checksum of the boot rom
}

// InvalidLengthError is returned when a boot image is not
// exactly Size bytes long.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("boot: invalid boot rom length: %d (expected %d)", e.Length, Size)
}

// LoadBootROM copies b into a new ROM and calculates its MD5
// checksum.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, &InvalidLengthError{Length: len(b)}
	}

	r := &ROM{}
	copy(r.raw[:], b)

	bootChecksum := md5.Sum(b)
	r.checksum = hex.EncodeToString(bootChecksum[:])

	return r, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr&0xFF]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums maps the checksums of known 256 byte
// boot roms to the model they shipped in.
var knownBootROMChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the early DMG boot ROM, only sold in Japan. On a
	// boot failure it flashes the screen rather than hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the boot ROM of the original DMG-01.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by a single byte, loading 0xFF into
	// A rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB hands the cartridge header to the SNES instead of
	// showing the logo animation.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs from SGB the same way MGB differs from DMG.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
