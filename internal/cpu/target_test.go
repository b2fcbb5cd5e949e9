package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget_AutoIncrement(t *testing.T) {
	tests := []struct {
		target Target
		delta  uint16
	}{
		{IndHLInc, 1},
		{IndHLDec, 0xFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			c, m, clk := newTestCPU()

			c.SetHL(0xC000)
			m.Write(0xC000, 0x42)
			assert.Equal(t, uint16(0x42), c.get(tt.target))
			assert.Equal(t, 0xC000+tt.delta, c.HL(), "read must move HL")

			c.SetHL(0xC000)
			c.set(tt.target, 0x99)
			assert.Equal(t, uint8(0x99), m.Read(0xC000))
			assert.Equal(t, 0xC000+tt.delta, c.HL(), "write must move HL")

			assert.Equal(t, 2, clk.ticks)
		})
	}
}

func TestTarget_Ticks(t *testing.T) {
	tests := []struct {
		target Target
		ticks  int
	}{
		{RegA, 0},
		{RegL, 0},
		{PairHL, 0},
		{PairSP, 0},
		{IndBC, 1},
		{IndHL, 1},
		{IndSPInc, 1},
		{HighC, 1},
		{HighImm8, 2},
		{IndImm16, 3},
		{Imm8, 1},
		{Imm16, 2},
		{SPOffset, 1},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			c, _, clk := newTestCPU()
			c.PC = 0xC000
			c.get(tt.target)
			assert.Equal(t, tt.ticks, clk.ticks)
			assert.Equal(t, 0xC000+uint16(tt.target.Length()), c.PC)
		})
	}
}

func TestTarget_HighMemory(t *testing.T) {
	c, m, _ := newTestCPU()
	c.C = 0x80
	c.set(HighC, 0x12)
	assert.Equal(t, uint8(0x12), m.Read(0xFF80))

	c.PC = 0xC000
	m.Write(0xC000, 0x81)
	c.A = 0x34
	c.set(HighImm8, uint16(c.A))
	assert.Equal(t, uint8(0x34), m.Read(0xFF81))
}

func TestTarget_Stack(t *testing.T) {
	c, m, _ := newTestCPU()
	c.SP = 0xD000

	c.pushWord(0x1234)
	assert.Equal(t, uint16(0xCFFE), c.SP)
	assert.Equal(t, uint8(0x12), m.Read(0xCFFF))
	assert.Equal(t, uint8(0x34), m.Read(0xCFFE))

	assert.Equal(t, uint16(0x1234), c.popWord())
	assert.Equal(t, uint16(0xD000), c.SP)
}

func TestTarget_Immutable(t *testing.T) {
	c, _, _ := newTestCPU()
	for _, target := range []Target{Imm8, Imm16, SPOffset, None} {
		assert.Panics(t, func() { c.set(target, 0) }, "writing to %s", target)
	}
}
