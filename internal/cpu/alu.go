package cpu

import (
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/utils"
)

// The functions in this file make up the ALU. They are pure: each takes
// its operands (and the incoming carry where the instruction uses it)
// and returns the result along with the flags it defines.

// carries returns a vector with bit i set iff the addition a + b + cin
// carried out of bit i.
func carries(a, b uint8, cin uint16) (uint8, uint8) {
	sum := uint16(a) + uint16(b) + cin
	return uint8(sum), uint8((uint16(a) ^ uint16(b) ^ sum) >> 1)
}

// addWithCarry adds a, b and the incoming carry.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func addWithCarry(a, b uint8, carry bool) ArithmeticResult {
	var cin uint16
	if carry {
		cin = 1
	}
	sum, cv := carries(a, b, cin)
	return ArithmeticResult{sum, flags(sum == 0, false, cv&types.Bit3 != 0, cv&types.Bit7 != 0)}
}

// subWithCarry subtracts b and the incoming borrow from a. The
// subtraction is performed as the addition of the one's complement
// of b, with the borrow inverted, after which the carry vector is
// complemented to give the borrows.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func subWithCarry(a, b uint8, carry bool) ArithmeticResult {
	var cin uint16 = 1
	if carry {
		cin = 0
	}
	diff, cv := carries(a, ^b, cin)
	borrows := ^cv
	return ArithmeticResult{diff, flags(diff == 0, true, borrows&types.Bit3 != 0, borrows&types.Bit7 != 0)}
}

// add is ADD A, n.
func add(a, b uint8) ArithmeticResult {
	return addWithCarry(a, b, false)
}

// adc is ADC A, n.
func adc(a, b uint8, carry bool) ArithmeticResult {
	return addWithCarry(a, b, carry)
}

// sub is SUB n, and CP n when the value is discarded.
func sub(a, b uint8) ArithmeticResult {
	return subWithCarry(a, b, false)
}

// sbc is SBC A, n.
func sbc(a, b uint8, carry bool) ArithmeticResult {
	return subWithCarry(a, b, carry)
}

// inc increments n by 1. INC never affects the carry flag.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func inc(n uint8) ArithmeticResult {
	r := add(n, 1)
	r.Flags = r.Flags.Without(FlagCarry)
	return r
}

// dec decrements n by 1. DEC never affects the carry flag.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func dec(n uint8) ArithmeticResult {
	r := sub(n, 1)
	r.Flags = r.Flags.Without(FlagCarry)
	return r
}

// and performs a bitwise AND. Z is set if the result is zero, H is set,
// N and C are reset.
func and(a, b uint8) ArithmeticResult {
	v := a & b
	return ArithmeticResult{v, flags(v == 0, false, true, false)}
}

// or performs a bitwise OR. Z is set if the result is zero, the
// other flags are reset.
func or(a, b uint8) ArithmeticResult {
	v := a | b
	return ArithmeticResult{v, flags(v == 0, false, false, false)}
}

// xor performs a bitwise XOR. Z is set if the result is zero, the
// other flags are reset.
func xor(a, b uint8) ArithmeticResult {
	v := a ^ b
	return ArithmeticResult{v, flags(v == 0, false, false, false)}
}

// rlc rotates n left by 1 bit. The most significant bit is copied
// to both the carry flag and the least significant bit.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func rlc(n uint8) ArithmeticResult {
	v := n<<1 | n>>7
	return ArithmeticResult{v, flags(v == 0, false, false, n&types.Bit7 != 0)}
}

// rrc rotates n right by 1 bit. The least significant bit is copied
// to both the carry flag and the most significant bit.
func rrc(n uint8) ArithmeticResult {
	v := n>>1 | n<<7
	return ArithmeticResult{v, flags(v == 0, false, false, n&types.Bit0 != 0)}
}

// rl rotates n left through the carry flag.
func rl(n uint8, carry bool) ArithmeticResult {
	v := n << 1
	if carry {
		v |= types.Bit0
	}
	return ArithmeticResult{v, flags(v == 0, false, false, n&types.Bit7 != 0)}
}

// rr rotates n right through the carry flag.
func rr(n uint8, carry bool) ArithmeticResult {
	v := n >> 1
	if carry {
		v |= types.Bit7
	}
	return ArithmeticResult{v, flags(v == 0, false, false, n&types.Bit0 != 0)}
}

// sla shifts n left, bit 7 goes to the carry flag.
func sla(n uint8) ArithmeticResult {
	v := n << 1
	return ArithmeticResult{v, flags(v == 0, false, false, n&types.Bit7 != 0)}
}

// sra shifts n right, bit 0 goes to the carry flag and bit 7 is kept.
func sra(n uint8) ArithmeticResult {
	v := n>>1 | n&types.Bit7
	return ArithmeticResult{v, flags(v == 0, false, false, n&types.Bit0 != 0)}
}

// srl shifts n right, bit 0 goes to the carry flag.
func srl(n uint8) ArithmeticResult {
	v := n >> 1
	return ArithmeticResult{v, flags(v == 0, false, false, n&types.Bit0 != 0)}
}

// swap exchanges the upper and lower nibbles of n. Unlike the rotates
// and shifts, the carry flag is always reset.
func swap(n uint8) ArithmeticResult {
	v := n<<4 | n>>4
	return ArithmeticResult{v, flags(v == 0, false, false, false)}
}

// testBit tests bit b of n.
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func testBit(b, n uint8) ArithmeticResult {
	return ArithmeticResult{n, FlagBuilder{}.
		Set(FlagZero, !utils.TestBit(n, b)).
		Set(FlagSubtract, false).
		Set(FlagHalfCarry, true).
		Build()}
}

// cpl complements n. N and H are set, Z and C are not affected.
func cpl(n uint8) ArithmeticResult {
	return ArithmeticResult{^n, FlagBuilder{}.
		Set(FlagSubtract, true).
		Set(FlagHalfCarry, true).
		Build()}
}

// scf sets the carry flag, resetting N and H.
func scf() FlagChangeset {
	return FlagBuilder{}.All(false).Set(FlagCarry, true).Build().Without(FlagZero)
}

// ccf complements the carry flag, resetting N and H.
func ccf(carry bool) FlagChangeset {
	return FlagBuilder{}.All(false).Set(FlagCarry, !carry).Build().Without(FlagZero)
}

// daa adjusts a to a binary coded decimal, after an addition or
// subtraction of two BCD values. N is not affected, H is reset.
func daa(a uint8, subtract, halfCarry, carry bool) ArithmeticResult {
	if !subtract {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if halfCarry || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if halfCarry {
			a -= 0x06
		}
	}
	return ArithmeticResult{a, FlagBuilder{}.
		Set(FlagZero, a == 0).
		Set(FlagHalfCarry, false).
		Set(FlagCarry, carry).
		Build()}
}

// accumulator adapts a rotate for the RLCA, RRCA, RLA and RRA forms,
// which always reset the zero flag.
func accumulator(r ArithmeticResult) ArithmeticResult {
	r.Flags = FlagBuilder{fc: r.Flags}.Set(FlagZero, false).Build()
	return r
}

// add16 adds two 16-bit values for ADD HL, rr.
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func add16(a, b uint16) (uint16, FlagChangeset) {
	lo := add(uint8(a), uint8(b))
	hi := adc(uint8(a>>8), uint8(b>>8), lo.Flags.values&FlagCarry.mask() != 0)
	return uint16(hi.Value)<<8 | uint16(lo.Value), hi.Flags.Without(FlagZero)
}

// addSigned adds the signed offset e to sp, as performed by ADD SP, r8
// and LD HL, SP+r8. The flags come from the unsigned addition of the
// low byte, the carry or borrow of which is then propagated into the
// high byte.
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func addSigned(sp uint16, e uint8) (uint16, FlagChangeset) {
	lo := add(uint8(sp), e)
	carry, _ := lo.Flags.Get(FlagCarry)

	hi := uint8(sp >> 8)
	switch {
	case e&types.Bit7 != 0 && !carry:
		hi--
	case e&types.Bit7 == 0 && carry:
		hi++
	}

	fc := FlagBuilder{fc: lo.Flags}.Set(FlagZero, false).Set(FlagSubtract, false).Build()
	return uint16(hi)<<8 | uint16(lo.Value), fc
}
