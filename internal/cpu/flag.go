package cpu

// Flag identifies one of the four condition flags.
type Flag = uint8

const (
	FlagZero Flag = iota
	FlagSubtract
	FlagHalfCarry
	FlagCarry
)

var flagNames = [...]string{"Z", "N", "H", "C"}

// flag returns a pointer to the given flag.
func (r *Registers) flag(f Flag) *bool {
	switch f {
	case FlagZero:
		return &r.Zero
	case FlagSubtract:
		return &r.Subtract
	case FlagHalfCarry:
		return &r.HalfCarry
	default:
		return &r.Carry
	}
}

// setFlag sets the given flag.
func (r *Registers) setFlag(f Flag) {
	*r.flag(f) = true
}

// clearFlag clears the given flag.
func (r *Registers) clearFlag(f Flag) {
	*r.flag(f) = false
}

// isFlagSet returns true if the given flag is set.
func (r *Registers) isFlagSet(f Flag) bool {
	return *r.flag(f)
}
