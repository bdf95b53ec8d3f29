package types

import "fmt"

// HardwareAddress represents the address of a hardware
// register. The hardware IO are mapped to memory addresses
// 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects the joypad lines to be read.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being transferred over the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the divider register.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	TAC HardwareAddress = 0xFF07
	// IF is the interrupt request register.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// NR52 is the sound on/off register.
	NR52 HardwareAddress = 0xFF26
	// LCDC is the LCD control register. The graphics collaborator
	// reads it to decide what to render.
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register.
	STAT HardwareAddress = 0xFF41
	// SCY is the background scroll Y position.
	SCY HardwareAddress = 0xFF42
	// SCX is the background scroll X position.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM transfer on real hardware. It is only
	// stored here.
	DMA HardwareAddress = 0xFF46
	// BGP is the background palette.
	BGP HardwareAddress = 0xFF47
	// OBP0 is object palette 0.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is object palette 1.
	OBP1 HardwareAddress = 0xFF49
	// WY is the window Y position.
	WY HardwareAddress = 0xFF4A
	// WX is the window X position plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS is the boot overlay control register. Any write to
	// this register unmaps the boot overlay, and it can not be
	// mapped again until the machine is reset.
	BDIS HardwareAddress = 0xFF50
	// IE is the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)

var hardwareNames = map[HardwareAddress]string{
	P1:   "P1",
	SB:   "SB",
	SC:   "SC",
	DIV:  "DIV",
	TIMA: "TIMA",
	TMA:  "TMA",
	TAC:  "TAC",
	IF:   "IF",
	NR52: "NR52",
	LCDC: "LCDC",
	STAT: "STAT",
	SCY:  "SCY",
	SCX:  "SCX",
	LY:   "LY",
	LYC:  "LYC",
	DMA:  "DMA",
	BGP:  "BGP",
	OBP0: "OBP0",
	OBP1: "OBP1",
	WY:   "WY",
	WX:   "WX",
	BDIS: "BDIS",
	IE:   "IE",
}

// HardwareName returns the conventional name of the hardware
// register at address, or its hex address if it has none.
func HardwareName(address HardwareAddress) string {
	if name, ok := hardwareNames[address]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", address)
}
