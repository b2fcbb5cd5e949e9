package cpu

import "fmt"

// An opcode is split into the bitfields
//
//	 7 6   5 4 3   2 1 0
//	[ x ] [  y  ] [  z  ]
//	      [p ] q
//
// x selects one of four blocks, y and z usually select the
// destination and source operands.

var (
	// r8 is the 8-bit operand selected by y or z.
	r8 = [8]Target{RegB, RegC, RegD, RegE, RegH, RegL, IndHL, RegA}
	// rp is the register pair selected by p, for loads and arithmetic.
	rp = [4]Target{PairBC, PairDE, PairHL, PairSP}
	// rp2 is the register pair selected by p, for PUSH and POP.
	rp2 = [4]Target{PairBC, PairDE, PairHL, PairAF}
	// cc is the condition selected by y.
	cc = [4]Condition{NZ, Z, NC, CY}
	// indirect is the memory operand of LD (rr), A and LD A, (rr).
	indirect = [4]Target{IndBC, IndDE, IndHLInc, IndHLDec}

	aluMnemonics = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}
)

func split(opcode uint8) (x, y, z, p, q uint8) {
	x, y, z = opcode>>6, opcode>>3&7, opcode&7
	return x, y, z, y >> 1, y & 1
}

// DecodeUnprefixed returns the instruction for the given opcode.
func DecodeUnprefixed(opcode uint8) Instruction {
	x, y, z, p, q := split(opcode)

	var in Instruction
	switch x {
	case 0:
		in = decodeBlock0(y, z, p, q)
	case 1:
		if y == 6 && z == 6 {
			// LD (HL), (HL) is HALT
			in = Instruction{name: "HALT", execute: halt, selfFetch: true, length: 1}
		} else {
			in = instruction(operands("LD", r8[y].String(), r8[z].String()), ld, r8[y], r8[z])
		}
	case 2:
		in = aluInstruction(y, r8[z])
	case 3:
		in = decodeBlock3(opcode, y, z, p, q)
	}

	if in.execute == nil {
		return Unimplemented(opcode, false)
	}
	in.opcode = opcode
	return in
}

// decodeBlock0 decodes the miscellaneous instructions, 16-bit loads,
// 8-bit increments and decrements, and the accumulator operations.
func decodeBlock0(y, z, p, q uint8) Instruction {
	switch z {
	case 0:
		switch y {
		case 0:
			return instruction("NOP", nop, None, None)
		case 1:
			return instruction("LD (a16), SP", ldImm16SP, IndImm16, PairSP)
		case 2:
			return Instruction{name: "STOP", execute: stop, src: Imm8, selfFetch: true, length: 2}
		case 3:
			return Instruction{name: "JR r8", execute: jr, src: Imm8, selfFetch: true, length: 2}
		default:
			cond := cc[y-4]
			return Instruction{name: operands("JR", cond.String(), "r8"), execute: jr, src: Imm8, cond: cond, selfFetch: true, length: 2}
		}
	case 1:
		if q == 0 {
			return instruction(operands("LD", rp[p].String(), "d16"), ld, rp[p], Imm16)
		}
		return instruction(operands("ADD", "HL", rp[p].String()), addHL, PairHL, rp[p])
	case 2:
		if q == 0 {
			return instruction(operands("LD", indirect[p].String(), "A"), ld, indirect[p], RegA)
		}
		return instruction(operands("LD", "A", indirect[p].String()), ld, RegA, indirect[p])
	case 3:
		if q == 0 {
			return instruction(operands("INC", rp[p].String()), inc16, rp[p], None)
		}
		return instruction(operands("DEC", rp[p].String()), dec16, rp[p], None)
	case 4:
		return instruction(operands("INC", r8[y].String()), inc8, r8[y], None)
	case 5:
		return instruction(operands("DEC", r8[y].String()), dec8, r8[y], None)
	case 6:
		return instruction(operands("LD", r8[y].String(), "d8"), ld, r8[y], Imm8)
	case 7:
		switch y {
		case 0, 1, 2, 3:
			in := instruction([4]string{"RLCA", "RRCA", "RLA", "RRA"}[y], rotateA, RegA, None)
			in.n = y
			return in
		case 4:
			return instruction("DAA", daaA, RegA, None)
		case 5:
			return instruction("CPL", cplA, RegA, None)
		case 6:
			return instruction("SCF", scfOp, None, None)
		case 7:
			return instruction("CCF", ccfOp, None, None)
		}
	}
	return Instruction{}
}

// aluInstruction returns the ALU operation y on the accumulator and src.
func aluInstruction(y uint8, src Target) Instruction {
	in := instruction(aluMnemonics[y]+" "+src.String(), alu, RegA, src)
	in.n = y
	return in
}

// decodeBlock3 decodes the control flow, stack, and high memory
// instructions, and the ALU operations with an immediate operand.
func decodeBlock3(opcode, y, z, p, q uint8) Instruction {
	switch z {
	case 0:
		switch y {
		case 0, 1, 2, 3:
			return Instruction{name: operands("RET", cc[y].String()), execute: ret, cond: cc[y], selfFetch: true, length: 1}
		case 4:
			return instruction("LDH (a8), A", ld, HighImm8, RegA)
		case 5:
			return instruction("ADD SP, r8", addSP, PairSP, SPOffset)
		case 6:
			return instruction("LDH A, (a8)", ld, RegA, HighImm8)
		case 7:
			return instruction("LD HL, SP+r8", ldDelayed, PairHL, SPOffset)
		}
	case 1:
		if q == 0 {
			return instruction(operands("POP", rp2[p].String()), pop, rp2[p], None)
		}
		switch p {
		case 0:
			return Instruction{name: "RET", execute: ret, selfFetch: true, length: 1}
		case 1:
			return Instruction{name: "RETI", execute: reti, selfFetch: true, length: 1}
		case 2:
			return Instruction{name: "JP HL", execute: jpHL, src: PairHL, selfFetch: true, length: 1}
		case 3:
			return instruction("LD SP, HL", ldDelayed, PairSP, PairHL)
		}
	case 2:
		switch y {
		case 0, 1, 2, 3:
			return Instruction{name: operands("JP", cc[y].String(), "a16"), execute: jp, src: Imm16, cond: cc[y], selfFetch: true, length: 3}
		case 4:
			return instruction("LD (C), A", ld, HighC, RegA)
		case 5:
			return instruction("LD (a16), A", ld, IndImm16, RegA)
		case 6:
			return instruction("LD A, (C)", ld, RegA, HighC)
		case 7:
			return instruction("LD A, (a16)", ld, RegA, IndImm16)
		}
	case 3:
		switch y {
		case 0:
			return Instruction{name: "JP a16", execute: jp, src: Imm16, selfFetch: true, length: 3}
		case 1:
			return Instruction{name: "PREFIX CB", execute: prefix, selfFetch: true, length: 2}
		case 6:
			return instruction("DI", di, None, None)
		case 7:
			return instruction("EI", ei, None, None)
		}
		return illegalInstruction(opcode)
	case 4:
		if y < 4 {
			return Instruction{name: operands("CALL", cc[y].String(), "a16"), execute: call, src: Imm16, cond: cc[y], selfFetch: true, length: 3}
		}
		return illegalInstruction(opcode)
	case 5:
		if q == 0 {
			return instruction(operands("PUSH", rp2[p].String()), push, None, rp2[p])
		}
		if p == 0 {
			return Instruction{name: "CALL a16", execute: call, src: Imm16, selfFetch: true, length: 3}
		}
		return illegalInstruction(opcode)
	case 6:
		return aluInstruction(y, Imm8)
	case 7:
		return Instruction{name: fmt.Sprintf("RST %02XH", y*8), execute: rst, n: y * 8, selfFetch: true, length: 1}
	}
	return Instruction{}
}
