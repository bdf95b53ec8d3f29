// Package gameboy assembles the address space and the processor
// into a machine that can be run, inspected and snapshotted.
package gameboy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/trace"
)

// snapshotMagic prefixes every uncompressed snapshot.
const snapshotMagic = "GBC1"

// maxStateSize bounds the decompressed size of a snapshot. A
// state is about 80 KiB of memory plus the registers.
const maxStateSize = 0x20000

// GameBoy represents a Game Boy. It owns the MMU and the CPU
// executing against it.
type GameBoy struct {
	CPU *cpu.CPU
	MMU *mmu.MMU

	log.Logger

	boot   []byte
	tracer trace.Tracer
	policy cpu.WritePolicy

	genie *cheats.GameGenie
	shark *cheats.GameShark
}

// StopReason describes why Run returned.
type StopReason uint8

const (
	// StopLimit is returned when the step limit was reached.
	StopLimit StopReason = iota
	// StopHalt is returned when the CPU executed HALT.
	StopHalt
	// StopFault is returned when the CPU halted on an error.
	StopFault
	// StopCancelled is returned when the context was done.
	StopCancelled
)

var stopReasonNames = [...]string{"limit", "halt", "fault", "cancelled"}

func (r StopReason) String() string {
	if int(r) < len(stopReasonNames) {
		return stopReasonNames[r]
	}
	return fmt.Sprintf("StopReason(%d)", uint8(r))
}

// Result is the outcome of a call to Run.
type Result struct {
	// Steps is the number of instructions executed by this run.
	Steps  uint64
	Reason StopReason
	// Err is the fault that halted the CPU, or the context error.
	Err error
}

// NewGameBoy returns a new GameBoy with rom loaded as the
// cartridge. The CPU is reset according to whether a boot
// overlay was provided with WithBootROM.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.MMU = mmu.NewMMU(g.Logger)
	if err := g.MMU.LoadImage(mmu.RegionCartridge, rom); err != nil {
		return nil, err
	}
	if g.boot != nil {
		if err := g.MMU.LoadImage(mmu.RegionBoot, g.boot); err != nil {
			return nil, err
		}
	}

	if g.genie != nil {
		g.MMU.SetPatcher(g.genie)
	}

	g.CPU = cpu.NewCPU(g.MMU, g.Logger)
	g.CPU.WritePolicy = g.policy
	g.CPU.SetTracer(g.tracer)
	g.CPU.Reset(g.MMU.BootEnabled())

	if h := g.MMU.Cart.Header(); h != nil {
		g.Debugf("created machine for %s", h.String())
	}
	return g, nil
}

// Run steps the CPU until it halts, limit instructions have been
// executed or ctx is done. A limit of 0 runs until the CPU halts.
// The context is only consulted between steps.
func (g *GameBoy) Run(ctx context.Context, limit uint64) Result {
	start := g.CPU.Steps()
	res := Result{Reason: StopLimit}
	for limit == 0 || g.CPU.Steps()-start < limit {
		select {
		case <-ctx.Done():
			res.Reason = StopCancelled
			res.Err = ctx.Err()
		default:
		}
		if res.Err != nil {
			break
		}

		err := g.CPU.Step()
		if !errors.Is(err, cpu.ErrHalted) {
			g.applyGameShark()
		}
		if err == nil && !g.CPU.Halted() {
			continue
		}
		if errors.Is(err, cpu.ErrHalted) {
			err = g.CPU.Err()
		}
		if err != nil {
			res.Reason = StopFault
			res.Err = err
			g.Warnf("halted: %v", err)
		} else {
			res.Reason = StopHalt
		}
		break
	}
	res.Steps = g.CPU.Steps() - start
	return res
}

// applyGameShark writes the enabled GameShark codes. Codes that
// target a read-only region are ignored.
func (g *GameBoy) applyGameShark() {
	if g.shark == nil {
		return
	}
	if err := g.shark.Apply(g.MMU.Write); err != nil {
		g.Debugf("gameshark: %v", err)
	}
}

// state serializes the CPU and the MMU.
func (g *GameBoy) state() []byte {
	s := types.NewState()
	s.WriteData([]byte(snapshotMagic))
	g.CPU.Save(s)
	g.MMU.Save(s)
	return s.Bytes()
}

// Snapshot returns the brotli compressed state of the machine.
// The boot and cartridge images are not included, a snapshot can
// only be restored onto a machine created with the same images.
func (g *GameBoy) Snapshot() ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(g.state()); err != nil {
		return nil, fmt.Errorf("gameboy: compressing snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gameboy: compressing snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Restore replaces the state of the machine with a snapshot
// previously returned by Snapshot. The machine is left untouched
// if the snapshot cannot be decoded.
func (g *GameBoy) Restore(snapshot []byte) error {
	raw, err := io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(snapshot)), maxStateSize+1))
	if err != nil {
		return fmt.Errorf("gameboy: decompressing snapshot: %w", err)
	}
	if len(raw) > maxStateSize {
		return fmt.Errorf("gameboy: %w: larger than %d bytes", ErrInvalidSnapshot, maxStateSize)
	}

	// decode into scratch components first
	s := types.StateFromBytes(raw)
	magic := make([]byte, len(snapshotMagic))
	s.ReadData(magic)
	if string(magic) != snapshotMagic {
		return fmt.Errorf("gameboy: %w: bad magic %q", ErrInvalidSnapshot, magic)
	}
	c := cpu.NewCPU(g.MMU, g.Logger)
	c.Load(s)
	m := mmu.NewMMU(g.Logger)
	m.Load(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("gameboy: %w: %v", ErrInvalidSnapshot, err)
	}
	if n := s.Remaining(); n != 0 {
		return fmt.Errorf("gameboy: %w: %d trailing bytes", ErrInvalidSnapshot, n)
	}

	// then apply onto the live machine
	s = types.StateFromBytes(raw)
	s.ReadData(magic)
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.Debugf("restored snapshot at step %d | %s", g.CPU.Steps(), &g.CPU.Registers)
	return nil
}

// ErrInvalidSnapshot is returned by Restore for a snapshot that
// does not decode into a machine state.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Fingerprint returns a hash of the machine state, equal for two
// machines that would behave identically from here on.
func (g *GameBoy) Fingerprint() uint64 {
	return xxhash.Sum64(g.state())
}
