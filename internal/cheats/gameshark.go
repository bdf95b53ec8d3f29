package cheats

import (
	"errors"
	"strconv"
	"strings"
)

// GameShark rewrites memory between instructions.
type GameShark struct {
	Codes []GameSharkCode
}

// A GameSharkCode consists of eight hex digits, formatted as
// ABCDEFGH. AB is the external RAM bank, CD is the new data and
// GHEF is the memory address.
type GameSharkCode struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8

	Name    string
	Enabled bool
	rawCode string
}

// String returns the code as it was provided.
func (c GameSharkCode) String() string {
	return c.rawCode
}

// ParseGameShark decodes a GameShark code.
func ParseGameShark(code string) (GameSharkCode, error) {
	digits := strings.TrimSpace(code)
	if len(digits) != 8 {
		return GameSharkCode{}, &InvalidCodeError{Code: code, Reason: "expected 8 hex digits"}
	}
	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return GameSharkCode{}, &InvalidCodeError{Code: code, Reason: "not hexadecimal"}
	}

	return GameSharkCode{
		ExternalRAMBank: uint8(value >> 24),
		NewData:         uint8(value >> 16),
		// address is stored little endian
		Address: uint16(value&0xFF)<<8 | uint16(value>>8)&0xFF,
		rawCode: code,
		Enabled: true,
	}, nil
}

// NewGameShark creates a new GameShark.
func NewGameShark() *GameShark {
	return &GameShark{}
}

// Load parses code and adds it to the GameShark under name. The
// code is enabled.
func (g *GameShark) Load(code, name string) error {
	c, err := ParseGameShark(code)
	if err != nil {
		return err
	}
	c.Name = name
	g.Codes = append(g.Codes, c)
	return nil
}

// Apply writes the data of every enabled code using write. Every
// code is attempted, the returned error joins those that failed.
func (g *GameShark) Apply(write func(address uint16, value uint8) error) error {
	var errs []error
	for _, c := range g.Codes {
		if !c.Enabled {
			continue
		}
		if err := write(c.Address, c.NewData); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Enable enables every code loaded under name.
func (g *GameShark) Enable(name string) {
	g.setEnabled(name, true)
}

// Disable disables every code loaded under name.
func (g *GameShark) Disable(name string) {
	g.setEnabled(name, false)
}

func (g *GameShark) setEnabled(name string, enabled bool) {
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
		}
	}
}
