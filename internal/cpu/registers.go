package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Register represents an 8-bit register.
type Register = uint8

// RegisterPair represents a pair of Registers which is used to hold
// a 16-bit value. The first named register holds the high byte.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Flags holds the four condition flags. They are kept as
// independent booleans, and packed into the F register layout
// only when needed (PUSH AF / POP AF, snapshots and tracing).
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// bit positions within the packed F register
const (
	flagZero      = types.Bit7
	flagSubtract  = types.Bit6
	flagHalfCarry = types.Bit5
	flagCarry     = types.Bit4
)

// F returns the flags packed into the F register layout. The
// lower nibble is always 0.
func (f Flags) F() uint8 {
	var v uint8
	if f.Zero {
		v |= flagZero
	}
	if f.Subtract {
		v |= flagSubtract
	}
	if f.HalfCarry {
		v |= flagHalfCarry
	}
	if f.Carry {
		v |= flagCarry
	}
	return v
}

// SetF unpacks v into the flags. The lower nibble is ignored.
func (f *Flags) SetF(v uint8) {
	f.Zero = v&flagZero != 0
	f.Subtract = v&flagSubtract != 0
	f.HalfCarry = v&flagHalfCarry != 0
	f.Carry = v&flagCarry != 0
}

// String renders the flags as "ZNHC", with '-' for cleared flags.
func (f Flags) String() string {
	b := []byte("----")
	if f.Zero {
		b[0] = 'Z'
	}
	if f.Subtract {
		b[1] = 'N'
	}
	if f.HalfCarry {
		b[2] = 'H'
	}
	if f.Carry {
		b[3] = 'C'
	}
	return string(b)
}

// Registers is the register file of the CPU.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	Flags

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16

	// IME is the interrupt master enable flag. Only DI and EI
	// touch it; interrupts are never serviced.
	IME bool
}

// BC returns the BC register pair.
func (r *Registers) BC() RegisterPair {
	return RegisterPair{&r.B, &r.C}
}

// DE returns the DE register pair.
func (r *Registers) DE() RegisterPair {
	return RegisterPair{&r.D, &r.E}
}

// HL returns the HL register pair.
func (r *Registers) HL() RegisterPair {
	return RegisterPair{&r.H, &r.L}
}

// AF returns A and the packed flags as a 16-bit value.
func (r *Registers) AF() uint16 {
	return uint16(r.A)<<8 | uint16(r.F())
}

// SetAF sets A and the flags from a 16-bit value.
func (r *Registers) SetAF(value uint16) {
	r.A = uint8(value >> 8)
	r.SetF(uint8(value))
}

// setFlags sets all four flags at once.
func (r *Registers) setFlags(zero, subtract, halfCarry, carry bool) {
	r.Zero = zero
	r.Subtract = subtract
	r.HalfCarry = halfCarry
	r.Carry = carry
}

func (r Registers) String() string {
	return fmt.Sprintf("A: %02x F: %02x (%s) B: %02x C: %02x D: %02x E: %02x H: %02x L: %02x SP: %04x PC: %04x IME: %t",
		r.A, r.F(), r.Flags, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.IME)
}

var _ types.Stater = (*Registers)(nil)

func (r *Registers) Load(s *types.State) {
	r.A = s.Read8()
	r.SetF(s.Read8())
	r.B = s.Read8()
	r.C = s.Read8()
	r.D = s.Read8()
	r.E = s.Read8()
	r.H = s.Read8()
	r.L = s.Read8()
	r.SP = s.Read16()
	r.PC = s.Read16()
	r.IME = s.ReadBool()
}

func (r *Registers) Save(s *types.State) {
	s.Write8(r.A)
	s.Write8(r.F())
	s.Write8(r.B)
	s.Write8(r.C)
	s.Write8(r.D)
	s.Write8(r.E)
	s.Write8(r.H)
	s.Write8(r.L)
	s.Write16(r.SP)
	s.Write16(r.PC)
	s.WriteBool(r.IME)
}
