package cpu

import (
	"fmt"
	"testing"

	"github.com/go-test/deep"
)

// opcodes is the reference table of the unprefixed instructions. The
// regular blocks 0x40-0xBF are filled in by referenceTable.
var opcodes = map[uint8]string{
	0x00: "NOP", 0x01: "LD BC, d16", 0x02: "LD (BC), A", 0x03: "INC BC",
	0x04: "INC B", 0x05: "DEC B", 0x06: "LD B, d8", 0x07: "RLCA",
	0x08: "LD (a16), SP", 0x09: "ADD HL, BC", 0x0A: "LD A, (BC)", 0x0B: "DEC BC",
	0x0C: "INC C", 0x0D: "DEC C", 0x0E: "LD C, d8", 0x0F: "RRCA",

	0x10: "STOP", 0x11: "LD DE, d16", 0x12: "LD (DE), A", 0x13: "INC DE",
	0x14: "INC D", 0x15: "DEC D", 0x16: "LD D, d8", 0x17: "RLA",
	0x18: "JR r8", 0x19: "ADD HL, DE", 0x1A: "LD A, (DE)", 0x1B: "DEC DE",
	0x1C: "INC E", 0x1D: "DEC E", 0x1E: "LD E, d8", 0x1F: "RRA",

	0x20: "JR NZ, r8", 0x21: "LD HL, d16", 0x22: "LD (HL+), A", 0x23: "INC HL",
	0x24: "INC H", 0x25: "DEC H", 0x26: "LD H, d8", 0x27: "DAA",
	0x28: "JR Z, r8", 0x29: "ADD HL, HL", 0x2A: "LD A, (HL+)", 0x2B: "DEC HL",
	0x2C: "INC L", 0x2D: "DEC L", 0x2E: "LD L, d8", 0x2F: "CPL",

	0x30: "JR NC, r8", 0x31: "LD SP, d16", 0x32: "LD (HL-), A", 0x33: "INC SP",
	0x34: "INC (HL)", 0x35: "DEC (HL)", 0x36: "LD (HL), d8", 0x37: "SCF",
	0x38: "JR C, r8", 0x39: "ADD HL, SP", 0x3A: "LD A, (HL-)", 0x3B: "DEC SP",
	0x3C: "INC A", 0x3D: "DEC A", 0x3E: "LD A, d8", 0x3F: "CCF",

	0xC0: "RET NZ", 0xC1: "POP BC", 0xC2: "JP NZ, a16", 0xC3: "JP a16",
	0xC4: "CALL NZ, a16", 0xC5: "PUSH BC", 0xC6: "ADD A, d8", 0xC7: "RST 00H",
	0xC8: "RET Z", 0xC9: "RET", 0xCA: "JP Z, a16", 0xCB: "PREFIX CB",
	0xCC: "CALL Z, a16", 0xCD: "CALL a16", 0xCE: "ADC A, d8", 0xCF: "RST 08H",

	0xD0: "RET NC", 0xD1: "POP DE", 0xD2: "JP NC, a16", 0xD3: "ILLEGAL D3",
	0xD4: "CALL NC, a16", 0xD5: "PUSH DE", 0xD6: "SUB d8", 0xD7: "RST 10H",
	0xD8: "RET C", 0xD9: "RETI", 0xDA: "JP C, a16", 0xDB: "ILLEGAL DB",
	0xDC: "CALL C, a16", 0xDD: "ILLEGAL DD", 0xDE: "SBC A, d8", 0xDF: "RST 18H",

	0xE0: "LDH (a8), A", 0xE1: "POP HL", 0xE2: "LD (C), A", 0xE3: "ILLEGAL E3",
	0xE4: "ILLEGAL E4", 0xE5: "PUSH HL", 0xE6: "AND d8", 0xE7: "RST 20H",
	0xE8: "ADD SP, r8", 0xE9: "JP HL", 0xEA: "LD (a16), A", 0xEB: "ILLEGAL EB",
	0xEC: "ILLEGAL EC", 0xED: "ILLEGAL ED", 0xEE: "XOR d8", 0xEF: "RST 28H",

	0xF0: "LDH A, (a8)", 0xF1: "POP AF", 0xF2: "LD A, (C)", 0xF3: "DI",
	0xF4: "ILLEGAL F4", 0xF5: "PUSH AF", 0xF6: "OR d8", 0xF7: "RST 30H",
	0xF8: "LD HL, SP+r8", 0xF9: "LD SP, HL", 0xFA: "LD A, (a16)", 0xFB: "EI",
	0xFC: "ILLEGAL FC", 0xFD: "ILLEGAL FD", 0xFE: "CP d8", 0xFF: "RST 38H",
}

// lengths lists the instructions longer than a single byte.
var lengths = map[uint8]uint8{
	0x01: 3, 0x11: 3, 0x21: 3, 0x31: 3, 0x08: 3,
	0xC2: 3, 0xC3: 3, 0xC4: 3, 0xCA: 3, 0xCC: 3, 0xCD: 3,
	0xD2: 3, 0xD4: 3, 0xDA: 3, 0xDC: 3, 0xEA: 3, 0xFA: 3,

	0x06: 2, 0x0E: 2, 0x16: 2, 0x1E: 2, 0x26: 2, 0x2E: 2, 0x36: 2, 0x3E: 2,
	0x10: 2, 0x18: 2, 0x20: 2, 0x28: 2, 0x30: 2, 0x38: 2,
	0xC6: 2, 0xCE: 2, 0xD6: 2, 0xDE: 2, 0xE6: 2, 0xEE: 2, 0xF6: 2, 0xFE: 2,
	0xE0: 2, 0xF0: 2, 0xE8: 2, 0xF8: 2, 0xCB: 2,
}

var illegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func referenceTable() [256]string {
	var table [256]string
	regs := []string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	alu := []string{"ADD A, ", "ADC A, ", "SUB ", "SBC A, ", "AND ", "XOR ", "OR ", "CP "}

	for op, name := range opcodes {
		table[op] = name
	}
	for i := 0x40; i < 0x80; i++ {
		table[i] = fmt.Sprintf("LD %s, %s", regs[i>>3&7], regs[i&7])
	}
	table[0x76] = "HALT"
	for i := 0x80; i < 0xC0; i++ {
		table[i] = alu[i>>3&7] + regs[i&7]
	}
	return table
}

func TestDecodeUnprefixed(t *testing.T) {
	want := referenceTable()
	var got [256]string
	for i := 0; i < 256; i++ {
		in := DecodeUnprefixed(uint8(i))
		got[i] = in.Name()

		if in.Opcode() != uint8(i) {
			t.Errorf("%02X: decoded with opcode %02X", i, in.Opcode())
		}
		if in.Prefixed() {
			t.Errorf("%02X: expected unprefixed instruction", i)
		}

		length, ok := lengths[uint8(i)]
		if !ok {
			length = 1
		}
		if in.Length() != length {
			t.Errorf("%02X %s: expected length %d, got %d", i, in, length, in.Length())
		}
	}

	if diff := deep.Equal(got, want); diff != nil {
		for _, d := range diff {
			t.Error(d)
		}
	}
}

func TestDecodeUnprefixed_Illegal(t *testing.T) {
	illegal := map[uint8]bool{}
	for _, op := range illegalOpcodes {
		illegal[op] = true
	}

	for i := 0; i < 256; i++ {
		in := DecodeUnprefixed(uint8(i))
		if in.Illegal() != illegal[uint8(i)] {
			t.Errorf("%02X %s: expected illegal %t", i, in, illegal[uint8(i)])
		}
		if in.Implemented() == illegal[uint8(i)] {
			t.Errorf("%02X %s: expected implemented %t", i, in, !illegal[uint8(i)])
		}
	}
}

func TestDecodePrefixed(t *testing.T) {
	regs := []string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	rot := []string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

	for i := 0; i < 256; i++ {
		var want string
		switch {
		case i < 0x40:
			want = fmt.Sprintf("%s %s", rot[i>>3], regs[i&7])
		case i < 0x80:
			want = fmt.Sprintf("BIT %d, %s", i>>3&7, regs[i&7])
		case i < 0xC0:
			want = fmt.Sprintf("RES %d, %s", i>>3&7, regs[i&7])
		default:
			want = fmt.Sprintf("SET %d, %s", i>>3&7, regs[i&7])
		}

		in := DecodePrefixed(uint8(i))
		if in.Name() != want {
			t.Errorf("CB %02X: expected %q, got %q", i, want, in.Name())
		}
		if !in.Implemented() || !in.Prefixed() || in.Length() != 2 {
			t.Errorf("CB %02X: expected an implemented 2 byte prefixed instruction", i)
		}
	}
}

func TestDecode_SelfFetch(t *testing.T) {
	selfFetch := map[uint8]bool{
		0x10: true, 0x18: true, 0x20: true, 0x28: true, 0x30: true, 0x38: true,
		0x76: true, 0xC0: true, 0xC2: true, 0xC3: true, 0xC4: true, 0xC7: true,
		0xC8: true, 0xC9: true, 0xCA: true, 0xCB: true, 0xCC: true, 0xCD: true,
		0xCF: true, 0xD0: true, 0xD2: true, 0xD4: true, 0xD7: true, 0xD8: true,
		0xD9: true, 0xDA: true, 0xDC: true, 0xDF: true, 0xE7: true, 0xE9: true,
		0xEF: true, 0xF7: true, 0xFF: true,
	}
	for _, op := range illegalOpcodes {
		selfFetch[op] = true
	}

	for i := 0; i < 256; i++ {
		if got := DecodeUnprefixed(uint8(i)).SelfFetch(); got != selfFetch[uint8(i)] {
			t.Errorf("%02X: expected self fetch %t, got %t", i, selfFetch[uint8(i)], got)
		}
	}
}

func TestUnimplemented(t *testing.T) {
	in := Unimplemented(0x42, true)
	if in.Implemented() || in.Illegal() {
		t.Error("expected the sentinel to be neither implemented nor illegal")
	}
	if in.Name() != "UNIMPLEMENTED CB 42" {
		t.Errorf("unexpected name %q", in.Name())
	}
}
