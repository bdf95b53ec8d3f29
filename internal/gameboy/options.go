package gameboy

import (
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/trace"
)

// Opt is a function that modifies a GameBoy
// instance before it is assembled.
type Opt func(gb *GameBoy)

// WithBootROM maps the 256 byte boot image over the start of the
// cartridge. Execution then starts at 0x0000.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.boot = rom
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		if log != nil {
			gb.Logger = log
		}
	}
}

// WithTracer attaches a trace sink receiving a record for every
// executed instruction.
func WithTracer(t trace.Tracer) Opt {
	return func(gb *GameBoy) {
		gb.tracer = t
	}
}

// Strict halts the machine on a write to a read-only region. This
// is the default.
func Strict() Opt {
	return func(gb *GameBoy) {
		gb.policy = cpu.Strict
	}
}

// Permissive discards writes to read-only regions.
func Permissive() Opt {
	return func(gb *GameBoy) {
		gb.policy = cpu.Permissive
	}
}

// WithCheats patches cartridge reads with the codes of genie and
// rewrites memory with the codes of shark after every executed
// instruction, including the one that halts or faults. Either may
// be nil.
func WithCheats(genie *cheats.GameGenie, shark *cheats.GameShark) Opt {
	return func(gb *GameBoy) {
		gb.genie = genie
		gb.shark = shark
	}
}
