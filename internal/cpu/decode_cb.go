package cpu

import "strconv"

var rotMnemonics = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// DecodePrefixed returns the instruction for the given opcode
// following the CB prefix.
func DecodePrefixed(opcode uint8) Instruction {
	x, y, z, _, _ := split(opcode)
	dst := r8[z]

	var in Instruction
	switch x {
	case 0:
		in = Instruction{name: operands(rotMnemonics[y], dst.String()), execute: rotate}
	case 1:
		in = Instruction{name: operands("BIT", strconv.Itoa(int(y)), dst.String()), execute: bit}
	case 2:
		in = Instruction{name: operands("RES", strconv.Itoa(int(y)), dst.String()), execute: res}
	case 3:
		in = Instruction{name: operands("SET", strconv.Itoa(int(y)), dst.String()), execute: set}
	}

	if in.execute == nil {
		return Unimplemented(opcode, true)
	}
	in.dst = dst
	in.n = y
	in.opcode = opcode
	in.prefixed = true
	in.length = 2
	return in
}
