// Package cpu provides the fetch-decode-execute engine. The CPU
// owns the register file and drives every access to the bus.
package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/trace"
)

// Bus is the address space the CPU executes against.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8) error
}

type mode = uint8

const (
	// ModeNormal is the running CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered on HALT or on a fault. It is terminal,
	// as no interrupt can ever wake the CPU.
	ModeHalt
)

// WritePolicy decides what happens when an instruction writes to
// a read-only region.
type WritePolicy uint8

const (
	// Strict halts the CPU with the *mmu.ReadOnlyError.
	Strict WritePolicy = iota
	// Permissive discards the write and continues.
	Permissive
)

// post-boot register values of the DMG, used when execution
// starts at the cartridge entry point
const (
	postBootAF = 0x01B0
	postBootBC = 0x0013
	postBootDE = 0x00D8
	postBootHL = 0x014D

	// EntryPoint is where cartridge execution begins.
	EntryPoint = 0x0100
	// StackTop is the initial stack pointer.
	StackTop = 0xFFFE
)

// CPU represents the processor. It is responsible for executing
// instructions.
type CPU struct {
	// Registers contains the 8-bit registers, flags, SP and PC.
	Registers

	b      Bus
	log    log.Logger
	tracer trace.Tracer

	WritePolicy WritePolicy

	mode  mode
	err   error // error that halted the CPU
	fault error // write fault raised by the current instruction
	steps uint64

	operands [2]byte
}

// NewCPU creates a new CPU executing against the given bus. The
// registers are zeroed; call Reset before stepping.
func NewCPU(b Bus, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &CPU{
		b:   b,
		log: logger,
	}
}

// Reset puts the CPU back into the running state with the reset
// register values. With a boot overlay execution starts at
// 0x0000 from zeroed registers, otherwise at 0x0100 with the
// values the boot ROM would have left behind.
func (c *CPU) Reset(bootOverlay bool) {
	c.Registers = Registers{SP: StackTop}
	if !bootOverlay {
		c.SetAF(postBootAF)
		c.BC().SetUint16(postBootBC)
		c.DE().SetUint16(postBootDE)
		c.HL().SetUint16(postBootHL)
		c.PC = EntryPoint
	}
	c.mode = ModeNormal
	c.err = nil
	c.fault = nil
	c.steps = 0
}

// SetTracer attaches a trace sink, or detaches it if t is nil.
func (c *CPU) SetTracer(t trace.Tracer) {
	c.tracer = t
}

// Halted reports whether the CPU has stopped executing.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt
}

// Err returns the error that halted the CPU, or nil if it is
// running or halted on a HALT instruction.
func (c *CPU) Err() error {
	return c.err
}

// Steps returns the number of instructions executed since the
// last Reset.
func (c *CPU) Steps() uint64 {
	return c.steps
}

// Step fetches, decodes and executes a single instruction.
//
// A decode miss or a strict write fault halts the CPU and is
// returned. Once halted, Step returns ErrHalted.
func (c *CPU) Step() error {
	if c.mode == ModeHalt {
		return ErrHalted
	}

	address := c.PC
	opcode := c.readInstruction()

	instruction := InstructionSet[opcode]
	prefixed := false
	if opcode == prefixCB {
		opcode = c.readInstruction()
		instruction = InstructionSetCB[opcode]
		prefixed = true
		if instruction == nil {
			return c.halt(&UnimplementedExtendedOpcodeError{Opcode: opcode, Address: address})
		}
	} else if instruction == nil {
		return c.halt(&UnimplementedOpcodeError{Opcode: opcode, Address: address})
	}

	operands := Operands(c.operands[:instruction.length])
	for i := range operands {
		operands[i] = c.readInstruction()
	}

	// PC now points at the next instruction, control transfers
	// overwrite it
	instruction.fn(c, operands)

	if c.tracer != nil {
		c.tracer.Trace(trace.Record{
			Step:     c.steps,
			Address:  address,
			Opcode:   opcode,
			Prefixed: prefixed,
			Name:     instruction.name,
			Operands: append([]byte(nil), operands...),
			After:    c.Snapshot(),
		})
	}
	c.steps++

	if c.fault != nil {
		fault := c.fault
		c.fault = nil
		return c.halt(fault)
	}

	return nil
}

// halt moves the CPU into ModeHalt, recording err as the reason.
func (c *CPU) halt(err error) error {
	c.mode = ModeHalt
	c.err = err
	if err != nil {
		c.log.Debugf("halted: %v | %s", err, &c.Registers)
	}
	return err
}

// Snapshot returns a copy of the register file.
func (c *CPU) Snapshot() trace.Registers {
	return trace.Registers{
		A:   c.A,
		F:   c.F(),
		B:   c.B,
		C:   c.C,
		D:   c.D,
		E:   c.E,
		H:   c.H,
		L:   c.L,
		SP:  c.SP,
		PC:  c.PC,
		IME: c.IME,
	}
}

// readInstruction reads the byte at PC and advances PC.
func (c *CPU) readInstruction() uint8 {
	value := c.b.Read(c.PC)
	c.PC++
	return value
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.b.Read(addr)
}

// writeByte writes the given value to the given address. A write
// to a read-only region is either recorded as the fault of the
// current instruction, or discarded, depending on WritePolicy.
func (c *CPU) writeByte(addr uint16, val uint8) {
	err := c.b.Write(addr, val)
	if err == nil {
		return
	}
	if c.WritePolicy == Permissive && errors.Is(err, mmu.ErrReadOnly) {
		c.log.Debugf("ignored %v", err)
		return
	}
	if c.fault == nil {
		c.fault = err
	}
}

var _ types.Stater = (*CPU)(nil)

// Load restores the register file, the mode and the step
// counter. The error that halted the CPU is not part of the
// state, a halted CPU is restored as halted on HALT.
func (c *CPU) Load(s *types.State) {
	c.Registers.Load(s)
	c.mode = s.Read8()
	if c.mode > ModeHalt {
		s.Invalidate(fmt.Errorf("cpu: invalid mode %d", c.mode))
		c.mode = ModeHalt
	}
	c.steps = uint64(s.Read16())<<48 | uint64(s.Read16())<<32 | uint64(s.Read16())<<16 | uint64(s.Read16())
	c.err = nil
	c.fault = nil
}

func (c *CPU) Save(s *types.State) {
	c.Registers.Save(s)
	s.Write8(c.mode)
	for shift := 48; shift >= 0; shift -= 16 {
		s.Write16(uint16(c.steps >> shift))
	}
}
