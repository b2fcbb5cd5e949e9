package types

// HardwareAddress represents the address of a memory-mapped
// hardware register. The registers consumed by the CPU core
// live in the high page 0xFF00 - 0xFF7F, plus 0xFFFF.
type HardwareAddress = uint16

const (
	// HighPage is the base of the high memory page addressed
	// by the LDH (a8) and LD (C) instruction forms.
	HighPage HardwareAddress = 0xFF00
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request. Only the lower 5 bits are wired, the upper 3
	// bits always read as 1.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// IE is the address of the IE hardware register. The IE
	// hardware register is used to enable interrupts. Writing a 1
	// to a bit in IE enables the corresponding interrupt, and
	// writing a 0 disables it.
	IE HardwareAddress = 0xFFFF
)

// Address represents a memory address in the Game Boy's memory,
// which can be read from or written to. It is used to attach
// custom behaviour to a hardware register, such as bits that are
// not wired and always read back as 1.
type Address struct {
	// Read is a function that is called when the CPU reads from
	// the address.
	Read func(address uint16) uint8
	// Write is a function that is called when the CPU writes to
	// the address.
	Write func(address uint16, value uint8)
}
