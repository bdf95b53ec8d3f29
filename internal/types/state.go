package types

import "errors"

// ErrShortState is returned when a State runs out of data
// before a read completes.
var ErrShortState = errors.New("state: unexpected end of data")

// State is a flat little-endian byte stream used to snapshot
// and restore the machine between runs.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x4000),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes, or nil and records
// ErrShortState if fewer remain.
func (s *State) take(n int) []byte {
	if s.err != nil || s.readPosition+n > len(s.raw) {
		s.err = ErrShortState
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	if b := s.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (s *State) Read16() uint16 {
	if b := s.take(2); b != nil {
		return uint16(b[0]) | uint16(b[1])<<8
	}
	return 0
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if b := s.take(len(p)); b != nil {
		copy(p, b)
	}
}

// Remaining returns the number of bytes not yet read.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

// Invalidate records err as the error of the State, unless an
// earlier error is already recorded. Loaders use it to reject
// values that decode but can not be restored.
func (s *State) Invalidate(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// Bytes returns the raw state data.
func (s *State) Bytes() []byte {
	return s.raw
}
