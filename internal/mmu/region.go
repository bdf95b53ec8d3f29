package mmu

// Region identifies the backing store an address is routed to.
type Region uint8

const (
	// RegionBoot is the 256 byte boot overlay at 0x0000 - 0x00FF.
	RegionBoot Region = iota
	// RegionCartridge is the flat cartridge image at 0x0000 - 0x7FFF.
	RegionCartridge
	// RegionVRAM is video RAM at 0x8000 - 0x9FFF.
	RegionVRAM
	// RegionWRAM0 is work RAM bank 0 at 0xC000 - 0xCFFF.
	RegionWRAM0
	// RegionWRAM1 is work RAM bank 1 at 0xD000 - 0xDFFF.
	RegionWRAM1
	// RegionIO is the I/O register block at 0xFF00 - 0xFF7F,
	// excluding 0xFF50.
	RegionIO
	// RegionBootControl is the boot overlay control register 0xFF50.
	RegionBootControl
	// RegionHRAM is high RAM at 0xFF80 - 0xFFFE.
	RegionHRAM
	// RegionIE is the interrupt enable register at 0xFFFF.
	RegionIE
	// RegionScratch backs every address not claimed by another
	// region (external RAM, echo RAM, OAM and the unusable area).
	RegionScratch
)

var regionNames = [...]string{
	RegionBoot:        "boot overlay",
	RegionCartridge:   "cartridge ROM",
	RegionVRAM:        "video RAM",
	RegionWRAM0:       "work RAM bank 0",
	RegionWRAM1:       "work RAM bank 1",
	RegionIO:          "I/O registers",
	RegionBootControl: "boot control",
	RegionHRAM:        "high RAM",
	RegionIE:          "interrupt enable",
	RegionScratch:     "scratch",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "unknown"
}

// ReadOnly reports whether writes to the region are rejected.
func (r Region) ReadOnly() bool {
	return r == RegionBoot || r == RegionCartridge
}

// overlay is the routing tag for 0x0000 - 0x00FF.
type overlay uint8

const (
	overlayCartridge overlay = iota
	overlayBoot
)
