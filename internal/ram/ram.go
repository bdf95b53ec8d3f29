// Package ram provides a basic fixed-size RAM implementation.
package ram

import "github.com/thelolagemann/gbcore/internal/types"

// RAM represents a zero-initialised block of RAM. Addresses
// are offsets from the start of the block, and wrap around
// its size.
type RAM struct {
	data []byte
}

// NewRAM returns a new RAM of the given size in bytes.
func NewRAM(size uint32) *RAM {
	return &RAM{
		data: make([]byte, size),
	}
}

// Read returns the value at the given offset.
func (r *RAM) Read(offset uint16) uint8 {
	return r.data[int(offset)%len(r.data)]
}

// Write writes the value to the given offset.
func (r *RAM) Write(offset uint16, value uint8) {
	r.data[int(offset)%len(r.data)] = value
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

var _ types.Stater = (*RAM)(nil)

func (r *RAM) Load(s *types.State) {
	s.ReadData(r.data)
}

func (r *RAM) Save(s *types.State) {
	s.WriteData(r.data)
}
