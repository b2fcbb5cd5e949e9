package cpu

import (
	"fmt"
	"testing"

	"github.com/go-test/deep"
	"github.com/thelolagemann/sm83/internal/mmu"
)

func TestDisassemble(t *testing.T) {
	m := mmu.NewMMU()
	program := []byte{
		0x00,             // NOP
		0x31, 0xFE, 0xFF, // LD SP, FFFE
		0x3E, 0x42, //       LD A, 42
		0xE0, 0x80, //       LDH (FF80), A
		0x18, 0xFE, //       JR -2
		0xE8, 0xFC, //       ADD SP, -4
		0xF8, 0x05, //       LD HL, SP+5
		0xCD, 0x34, 0x12, // CALL 1234
		0xCB, 0x7E, //       BIT 7, (HL)
		0xFA, 0x00, 0xC0, // LD A, (C000)
		0xD3, // illegal
	}
	if err := m.Load(0x0100, program); err != nil {
		t.Fatal(err)
	}

	var got []string
	for address := uint16(0x0100); address < 0x0100+uint16(len(program)); {
		text, length := Disassemble(m, address)
		got = append(got, fmt.Sprintf("%04X %s", address, text))
		address += uint16(length)
	}

	want := []string{
		"0100 NOP",
		"0101 LD SP, $FFFE",
		"0104 LD A, $42",
		"0106 LDH ($FF80), A",
		"0108 JR $0108",
		"010A ADD SP, -4",
		"010C LD HL, SP+5",
		"010E CALL $1234",
		"0111 BIT 7, (HL)",
		"0113 LD A, ($C000)",
		"0116 ILLEGAL D3",
	}
	if diff := deep.Equal(got, want); diff != nil {
		for _, d := range diff {
			t.Error(d)
		}
	}
}
