package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/pkg/utils"
)

// Registers is the register file of the CPU. The 8-bit registers are
// paired into the 16-bit registers AF, BC, DE and HL, which share their
// storage with the halves.
type Registers struct {
	A, B, C, D, E, H, L uint8

	// f is unexported so that the lower nibble can't
	// be written to, it always reads 0
	f uint8

	SP uint16
	PC uint16

	// IR holds the opcode that was most recently fetched.
	IR uint8
	// IME is the interrupt master enable flag.
	IME bool
}

// F returns the flag register.
func (r *Registers) F() uint8 {
	return r.f
}

// SetF sets the flag register, the lower nibble is discarded.
func (r *Registers) SetF(v uint8) {
	r.f = v & 0xF0
}

// AF returns the AF register pair.
func (r *Registers) AF() uint16 {
	return utils.BytesToUint16(r.A, r.f)
}

// SetAF sets the AF register pair. The lower nibble of F is discarded.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.SetF(uint8(v))
}

// BC returns the BC register pair.
func (r *Registers) BC() uint16 {
	return utils.BytesToUint16(r.B, r.C)
}

// SetBC sets the BC register pair.
func (r *Registers) SetBC(v uint16) {
	r.B, r.C = utils.Uint16ToBytes(v)
}

// DE returns the DE register pair.
func (r *Registers) DE() uint16 {
	return utils.BytesToUint16(r.D, r.E)
}

// SetDE sets the DE register pair.
func (r *Registers) SetDE(v uint16) {
	r.D, r.E = utils.Uint16ToBytes(v)
}

// HL returns the HL register pair.
func (r *Registers) HL() uint16 {
	return utils.BytesToUint16(r.H, r.L)
}

// SetHL sets the HL register pair.
func (r *Registers) SetHL(v uint16) {
	r.H, r.L = utils.Uint16ToBytes(v)
}

// isFlagSet returns true if the given flag is set.
func (r *Registers) isFlagSet(f Flag) bool {
	return r.f&f.mask() != 0
}

// applyFlags applies the changeset to the flag register.
func (r *Registers) applyFlags(fc FlagChangeset) {
	r.f = fc.Apply(r.f) & 0xF0
}

// setRegisters loads the registers from the 8 values A F B C D E H L.
func (r *Registers) setRegisters(v [8]uint8) {
	r.A = v[0]
	r.SetF(v[1])
	r.B, r.C = v[2], v[3]
	r.D, r.E = v[4], v[5]
	r.H, r.L = v[6], v[7]
}

func (r *Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X IR=%02X IME=%t",
		r.AF(), r.BC(), r.DE(), r.HL(), r.SP, r.PC, r.IR, r.IME)
}
