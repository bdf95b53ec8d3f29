package cheats

import (
	"strconv"
	"strings"
)

// GameGenie patches bytes read from the cartridge ROM.
type GameGenie struct {
	Codes []GameGenieCode
}

// A GameGenieCode consists of nine hex digits, formatted as
// ABC-DEF-GHI. AB is the new data, FCDE is the memory address
// XORed by 0xF000 and GI is the old data XORed by 0xBA and
// rotated left by 2. H is unknown (possibly a checksum).
//
// The six digit form ABC-DEF has no old data and replaces the
// byte unconditionally.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	// Compare is set when the code carries old data.
	Compare bool

	Name    string
	Enabled bool
	rawCode string
}

// String returns the code as it was provided.
func (c GameGenieCode) String() string {
	return c.rawCode
}

// ParseGameGenie decodes a Game Genie code. The hyphens are
// optional.
func ParseGameGenie(code string) (GameGenieCode, error) {
	digits := strings.ReplaceAll(strings.TrimSpace(code), "-", "")
	if len(digits) != 6 && len(digits) != 9 {
		return GameGenieCode{}, &InvalidCodeError{Code: code, Reason: "expected 6 or 9 hex digits"}
	}
	value, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return GameGenieCode{}, &InvalidCodeError{Code: code, Reason: "not hexadecimal"}
	}

	// work from the left so both lengths share the same offsets
	digit := func(i int) uint16 {
		return uint16(value>>(4*(len(digits)-1-i))) & 0xF
	}

	c := GameGenieCode{
		NewData: uint8(digit(0)<<4 | digit(1)),
		Address: (digit(5)<<12 | digit(2)<<8 | digit(3)<<4 | digit(4)) ^ 0xF000,
		rawCode: code,
		Enabled: true,
	}
	if len(digits) == 9 {
		gi := uint8(digit(6)<<4 | digit(8))
		c.OldData = (gi>>2 | gi<<6) ^ 0xBA
		c.Compare = true
	}
	if c.Address > 0x7FFF {
		return GameGenieCode{}, &InvalidCodeError{Code: code, Reason: "address outside of the cartridge ROM"}
	}

	return c, nil
}

// NewGameGenie creates a new GameGenie.
func NewGameGenie() *GameGenie {
	return &GameGenie{}
}

// Load parses code and adds it to the GameGenie under name. The
// code is enabled.
func (g *GameGenie) Load(code, name string) error {
	c, err := ParseGameGenie(code)
	if err != nil {
		return err
	}
	c.Name = name
	g.Codes = append(g.Codes, c)
	return nil
}

// Patch returns the value the CPU observes when reading value
// from address. The first enabled code matching the address
// wins.
func (g *GameGenie) Patch(address uint16, value uint8) uint8 {
	for _, c := range g.Codes {
		if !c.Enabled || c.Address != address {
			continue
		}
		if c.Compare && c.OldData != value {
			continue
		}
		return c.NewData
	}

	return value
}

// Enable enables every code loaded under name.
func (g *GameGenie) Enable(name string) {
	g.setEnabled(name, true)
}

// Disable disables every code loaded under name.
func (g *GameGenie) Disable(name string) {
	g.setEnabled(name, false)
}

func (g *GameGenie) setEnabled(name string, enabled bool) {
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
		}
	}
}
