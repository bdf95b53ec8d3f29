// Package trace provides the structured step records emitted by
// the CPU, and a few sinks to collect them.
package trace

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Registers is a copy of the register file taken after an
// instruction has executed.
type Registers struct {
	A   uint8  `json:"a"`
	F   uint8  `json:"f"`
	B   uint8  `json:"b"`
	C   uint8  `json:"c"`
	D   uint8  `json:"d"`
	E   uint8  `json:"e"`
	H   uint8  `json:"h"`
	L   uint8  `json:"l"`
	SP  uint16 `json:"sp"`
	PC  uint16 `json:"pc"`
	IME bool   `json:"ime"`
}

func (r Registers) String() string {
	return fmt.Sprintf("A: %02x F: %02x B: %02x C: %02x D: %02x E: %02x H: %02x L: %02x SP: %04x PC: %04x IME: %t",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.IME)
}

// Record describes a single executed instruction.
type Record struct {
	// Step is the index of the instruction within the run,
	// starting at 0.
	Step uint64 `json:"step"`
	// Address is the address the opcode was fetched from.
	Address uint16 `json:"address"`
	// Opcode is the primary opcode, or the secondary opcode
	// when Prefixed is set.
	Opcode   uint8     `json:"opcode"`
	Prefixed bool      `json:"prefixed"`
	Name     string    `json:"name"`
	Operands []byte    `json:"operands,omitempty"`
	After    Registers `json:"after"`
}

// Key returns the opcode keyed the way the decode tables are,
// 0xCBxx for extended opcodes.
func (r Record) Key() uint16 {
	if r.Prefixed {
		return 0xCB00 | uint16(r.Opcode)
	}
	return uint16(r.Opcode)
}

// Port returns the 0xFF00-0xFF7F register accessed by an LDH or
// LD (C) instruction.
func (r Record) Port() (types.HardwareAddress, bool) {
	if r.Prefixed {
		return 0, false
	}
	switch r.Opcode {
	case 0xE0, 0xF0:
		if len(r.Operands) == 1 {
			return 0xFF00 | types.HardwareAddress(r.Operands[0]), true
		}
	case 0xE2, 0xF2:
		return 0xFF00 | types.HardwareAddress(r.After.C), true
	}
	return 0, false
}

// Tracer receives a Record for every executed instruction.
type Tracer interface {
	Trace(r Record)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(r Record)

func (f TracerFunc) Trace(r Record) {
	f(r)
}

// Recorder keeps every record it receives, optionally bounded
// to the most recent Limit records.
type Recorder struct {
	Limit int

	mu      sync.Mutex
	records []Record
}

func (rec *Recorder) Trace(r Record) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.records = append(rec.records, r)
	if rec.Limit > 0 && len(rec.records) > rec.Limit {
		rec.records = rec.records[len(rec.records)-rec.Limit:]
	}
}

// Records returns a copy of the collected records.
func (rec *Recorder) Records() []Record {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Record(nil), rec.records...)
}

// multi fans a record out to several tracers.
type multi []Tracer

func (m multi) Trace(r Record) {
	for _, t := range m {
		t.Trace(r)
	}
}

// Multi returns a Tracer that forwards to every non-nil tracer.
func Multi(tracers ...Tracer) Tracer {
	var m multi
	for _, t := range tracers {
		if t != nil {
			m = append(m, t)
		}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

// logTracer writes each record as a structured debug entry.
type logTracer struct {
	l logrus.FieldLogger
}

// NewLogTracer returns a Tracer logging each record at debug
// level through l.
func NewLogTracer(l logrus.FieldLogger) Tracer {
	return &logTracer{l: l}
}

func (t *logTracer) Trace(r Record) {
	fields := logrus.Fields{
		"step":     r.Step,
		"address":  fmt.Sprintf("0x%04X", r.Address),
		"opcode":   fmt.Sprintf("0x%02X", r.Opcode),
		"prefixed": r.Prefixed,
		"operands": fmt.Sprintf("% X", r.Operands),
	}
	if port, ok := r.Port(); ok {
		fields["port"] = types.HardwareName(port)
	}
	t.l.WithFields(fields).Debugf("%s | %s", r.Name, r.After)
}
