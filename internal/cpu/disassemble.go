package cpu

import (
	"fmt"
	"strings"
)

// Disassemble returns the instruction at address, with its operands
// substituted from memory, and the length of the instruction in bytes.
func Disassemble(mem Memory, address uint16) (string, int) {
	opcode := mem.Read(address)
	if opcode == 0xCB {
		in := DecodePrefixed(mem.Read(address + 1))
		return in.name, int(in.length)
	}

	in := DecodeUnprefixed(opcode)
	text := in.name
	d8 := mem.Read(address + 1)
	d16 := uint16(mem.Read(address+2))<<8 | uint16(d8)

	switch {
	case strings.Contains(text, "SP+r8"):
		text = strings.Replace(text, "SP+r8", fmt.Sprintf("SP%+d", int8(d8)), 1)
	case strings.HasPrefix(text, "JR"):
		target := uint16(int32(address) + 2 + int32(int8(d8)))
		text = strings.Replace(text, "r8", fmt.Sprintf("$%04X", target), 1)
	case strings.Contains(text, "r8"):
		text = strings.Replace(text, "r8", fmt.Sprintf("%+d", int8(d8)), 1)
	case strings.Contains(text, "d16"), strings.Contains(text, "a16"):
		text = strings.NewReplacer("d16", fmt.Sprintf("$%04X", d16), "a16", fmt.Sprintf("$%04X", d16)).Replace(text)
	case strings.Contains(text, "(a8)"):
		text = strings.Replace(text, "(a8)", fmt.Sprintf("($FF%02X)", d8), 1)
	case strings.Contains(text, "d8"):
		text = strings.Replace(text, "d8", fmt.Sprintf("$%02X", d8), 1)
	}

	return text, int(in.length)
}
