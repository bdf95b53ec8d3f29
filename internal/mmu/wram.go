package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// WRAM is the 8kB of work RAM, split into two fixed 4kB banks:
// bank 0 at 0xC000 - 0xCFFF and bank 1 at 0xD000 - 0xDFFF.
type WRAM struct {
	raw [2][0x1000]uint8
}

// NewWRAM returns a zero-initialised WRAM.
func NewWRAM() *WRAM {
	return &WRAM{}
}

// bank returns the bank index an address belongs to.
func (w *WRAM) bank(addr uint16) int {
	if addr < 0xD000 {
		return 0
	}
	return 1
}

func (w *WRAM) Read(addr uint16) uint8 {
	return w.raw[w.bank(addr)][addr&0xFFF]
}

func (w *WRAM) Write(addr uint16, v uint8) {
	w.raw[w.bank(addr)][addr&0xFFF] = v
}

var _ types.Stater = (*WRAM)(nil)

func (w *WRAM) Load(s *types.State) {
	s.ReadData(w.raw[0][:])
	s.ReadData(w.raw[1][:])
}

func (w *WRAM) Save(s *types.State) {
	s.WriteData(w.raw[0][:])
	s.WriteData(w.raw[1][:])
}
