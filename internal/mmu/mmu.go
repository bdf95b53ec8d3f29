// Package mmu provides the address space of the console. The MMU
// routes every 16-bit address to exactly one backing region and
// is the only path the CPU has to memory.
package mmu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/ram"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// bank is a contiguous run of addresses served by the same
// read and write functions.
type bank struct {
	region Region
	// Read is called with the absolute address being read.
	Read func(address uint16) uint8
	// Write is called with the absolute address being written.
	Write func(address uint16, value uint8) error
}

// MMU is the memory management unit. It handles all reads and
// writes to the 64kB address space.
type MMU struct {
	// 64kB address space
	raw [0x10000]*bank

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM *boot.ROM
	overlay overlay

	// 0x0000 - 0x7FFF - ROM (32kB)
	Cart *cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM *ram.RAM

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	wRAM *WRAM

	// 0xFF00 - 0xFF7F - I/O Registers
	io *ram.RAM

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	// 0xFFFF - interrupt enable register
	ie uint8

	// everything else
	scratch        *ram.RAM
	scratchTouched bool

	patcher Patcher

	Log log.Logger
}

// NewMMU returns a new MMU with an empty cartridge and no boot
// overlay. Images are supplied afterwards with LoadImage.
func NewMMU(logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	m := &MMU{
		Cart:    cartridge.NewEmptyCartridge(),
		vRAM:    ram.NewRAM(0x2000),
		wRAM:    NewWRAM(),
		io:      ram.NewRAM(0x80),
		zRAM:    ram.NewRAM(0x80),
		scratch: ram.NewRAM(0x10000),
		Log:     logger,
	}

	m.init()

	return m
}

func (m *MMU) init() {
	low := &bank{region: RegionBoot, Read: m.readLow, Write: m.writeROM}
	rom := &bank{region: RegionCartridge, Read: m.readCart, Write: m.writeROM}
	vram := &bank{region: RegionVRAM, Read: readOffset(m.vRAM.Read, 0x8000), Write: writeOffset(m.vRAM.Write, 0x8000)}
	wram0 := &bank{region: RegionWRAM0, Read: m.wRAM.Read, Write: writeOffset(m.wRAM.Write, 0)}
	wram1 := &bank{region: RegionWRAM1, Read: m.wRAM.Read, Write: writeOffset(m.wRAM.Write, 0)}
	io := &bank{region: RegionIO, Read: readOffset(m.io.Read, 0xFF00), Write: writeOffset(m.io.Write, 0xFF00)}
	bootControl := &bank{region: RegionBootControl, Read: m.readBootControl, Write: m.writeBootControl}
	hram := &bank{region: RegionHRAM, Read: readOffset(m.zRAM.Read, 0xFF80), Write: writeOffset(m.zRAM.Write, 0xFF80)}
	ie := &bank{region: RegionIE, Read: m.readIE, Write: m.writeIE}
	scratch := &bank{region: RegionScratch, Read: m.readScratch, Write: m.writeScratch}

	m.mapRange(0x0000, 0x00FF, low)
	m.mapRange(0x0100, 0x7FFF, rom)
	m.mapRange(0x8000, 0x9FFF, vram)
	m.mapRange(0xA000, 0xBFFF, scratch) // external RAM (not emulated)
	m.mapRange(0xC000, 0xCFFF, wram0)
	m.mapRange(0xD000, 0xDFFF, wram1)
	m.mapRange(0xE000, 0xFEFF, scratch) // echo RAM, OAM, unusable
	m.mapRange(0xFF00, 0xFF7F, io)
	m.mapRange(types.BDIS, types.BDIS, bootControl)
	m.mapRange(0xFF80, 0xFFFE, hram)
	m.mapRange(types.IE, types.IE, ie)

	// the table must be total, a gap here is a defect
	for addr := range m.raw {
		if m.raw[addr] == nil {
			panic(&InvalidAddressError{Address: uint16(addr)})
		}
	}
}

// Patcher rewrites bytes read from the cartridge ROM.
type Patcher interface {
	Patch(address uint16, value uint8) uint8
}

// SetPatcher installs p on every cartridge ROM read. The boot
// overlay is never patched. A nil Patcher removes it.
func (m *MMU) SetPatcher(p Patcher) {
	m.patcher = p
}

// mapRange maps the inclusive range [start, end] to b.
func (m *MMU) mapRange(start, end uint16, b *bank) {
	for i := int(start); i <= int(end); i++ {
		m.raw[i] = b
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) error {
	return func(addr uint16, v uint8) error {
		write(addr-offset, v)
		return nil
	}
}

// LoadImage populates a read-only region. The boot overlay must
// be exactly 256 bytes and is enabled once loaded; the cartridge
// may be any length.
func (m *MMU) LoadImage(region Region, image []byte) error {
	switch region {
	case RegionBoot:
		rom, err := boot.LoadBootROM(image)
		if err != nil {
			return &ImageError{Region: region, Err: err}
		}
		m.bootROM = rom
		m.overlay = overlayBoot
		m.Log.Debugf("boot overlay loaded (%s, md5 %s)", rom.Model(), rom.Checksum())
	case RegionCartridge:
		m.Cart = cartridge.NewCartridge(image)
		if h := m.Cart.Header(); h != nil {
			m.Log.Debugf("cartridge loaded: %s", h.String())
			if !h.Valid() {
				m.Log.Warnf("cartridge header checksum mismatch: stored 0x%02X computed 0x%02X", h.HeaderChecksum, h.ComputeChecksum())
			}
		}
	default:
		return &ImageError{Region: region, Err: errors.New("region does not accept images")}
	}
	return nil
}

// BootEnabled reports whether the boot overlay is currently
// mapped over 0x0000 - 0x00FF.
func (m *MMU) BootEnabled() bool {
	return m.overlay == overlayBoot
}

// BootROM returns the loaded boot overlay, or nil.
func (m *MMU) BootROM() *boot.ROM {
	return m.bootROM
}

// Region returns the region the address is currently routed to.
func (m *MMU) Region(address uint16) Region {
	b := m.raw[address]
	if b.region == RegionBoot && !m.BootEnabled() {
		return RegionCartridge
	}
	return b.region
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the given address. Writes to the
// boot overlay or cartridge ROM are discarded and reported with
// a *ReadOnlyError.
func (m *MMU) Write(address uint16, value uint8) error {
	return m.raw[address].Write(address, value)
}

// InterruptEnable returns the interrupt enable register.
func (m *MMU) InterruptEnable() uint8 {
	return m.ie
}

func (m *MMU) readLow(address uint16) uint8 {
	if m.overlay == overlayBoot {
		return m.bootROM.Read(address)
	}
	return m.readCart(address)
}

func (m *MMU) readCart(address uint16) uint8 {
	if m.patcher != nil {
		return m.patcher.Patch(address, m.Cart.Read(address))
	}
	return m.Cart.Read(address)
}

func (m *MMU) writeROM(address uint16, value uint8) error {
	return &ReadOnlyError{Address: address, Value: value, Region: m.Region(address)}
}

func (m *MMU) readBootControl(uint16) uint8 {
	if m.BootEnabled() {
		return 1
	}
	return 0
}

// writeBootControl unmaps the boot overlay. It is assumed any
// write to this register disables the boot rom.
func (m *MMU) writeBootControl(_ uint16, v uint8) error {
	if m.overlay == overlayBoot {
		m.Log.Debugf("boot overlay disabled (wrote 0x%02X to %s)", v, types.HardwareName(types.BDIS))
	}
	m.overlay = overlayCartridge
	return nil
}

func (m *MMU) readIE(uint16) uint8 {
	return m.ie
}

func (m *MMU) writeIE(_ uint16, v uint8) error {
	m.ie = v
	return nil
}

func (m *MMU) touchScratch(address uint16) {
	if !m.scratchTouched {
		m.scratchTouched = true
		m.Log.Debugf("unmapped address 0x%04X routed to %s", address, RegionScratch)
	}
}

func (m *MMU) readScratch(address uint16) uint8 {
	m.touchScratch(address)
	return m.scratch.Read(address)
}

func (m *MMU) writeScratch(address uint16, v uint8) error {
	m.touchScratch(address)
	m.scratch.Write(address, v)
	return nil
}

// String describes the current routing of the low 256 bytes.
func (m *MMU) String() string {
	return fmt.Sprintf("MMU{overlay: %s, cartridge: %d bytes, IE: 0x%02X}", m.Region(0), m.Cart.Len(), m.ie)
}

var _ types.Stater = (*MMU)(nil)

// Load restores the writable regions and the overlay tag. The
// boot and cartridge images are not part of the state.
func (m *MMU) Load(s *types.State) {
	m.overlay = overlay(s.Read8())
	if m.overlay == overlayBoot && m.bootROM == nil {
		m.overlay = overlayCartridge
	}
	m.ie = s.Read8()
	m.vRAM.Load(s)
	m.wRAM.Load(s)
	m.io.Load(s)
	m.zRAM.Load(s)
	m.scratch.Load(s)
}

func (m *MMU) Save(s *types.State) {
	s.Write8(uint8(m.overlay))
	s.Write8(m.ie)
	m.vRAM.Save(s)
	m.wRAM.Save(s)
	m.io.Save(s)
	m.zRAM.Save(s)
	m.scratch.Save(s)
}
