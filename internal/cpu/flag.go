package cpu

// Flag is one of the four condition bits held in the upper
// nibble of the F register. The value is the bit position.
type Flag uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

func (f Flag) mask() uint8 {
	return 1 << f
}

func (f Flag) String() string {
	switch f {
	case FlagZero:
		return "Z"
	case FlagSubtract:
		return "N"
	case FlagHalfCarry:
		return "H"
	case FlagCarry:
		return "C"
	}
	return "?"
}

// FlagChangeset describes the flags an operation defines, and the
// value it defines them as. Flags that are not defined are left
// untouched when the changeset is applied.
type FlagChangeset struct {
	defined uint8 // mask of defined flags
	values  uint8 // values of the defined flags
}

// Has returns true if the changeset defines the flag.
func (fc FlagChangeset) Has(f Flag) bool {
	return fc.defined&f.mask() != 0
}

// Get returns the value the changeset defines for the flag, and
// whether the flag is defined at all.
func (fc FlagChangeset) Get(f Flag) (value, ok bool) {
	return fc.values&f.mask() != 0, fc.Has(f)
}

// Apply returns flags with every defined flag replaced.
func (fc FlagChangeset) Apply(flags uint8) uint8 {
	return flags&^fc.defined | fc.values&fc.defined
}

// Without returns a copy of the changeset that leaves f untouched.
func (fc FlagChangeset) Without(f Flag) FlagChangeset {
	fc.defined &^= f.mask()
	fc.values &^= f.mask()
	return fc
}

func (fc FlagChangeset) String() string {
	s := make([]byte, 0, 4)
	for _, f := range [4]Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		v, ok := fc.Get(f)
		switch {
		case !ok:
			s = append(s, '-')
		case v:
			s = append(s, f.String()[0])
		default:
			s = append(s, '0')
		}
	}
	return string(s)
}

// FlagBuilder builds a FlagChangeset. The zero value defines no flags.
type FlagBuilder struct {
	fc FlagChangeset
}

// Set defines the flag as v.
func (b FlagBuilder) Set(f Flag, v bool) FlagBuilder {
	b.fc.defined |= f.mask()
	if v {
		b.fc.values |= f.mask()
	} else {
		b.fc.values &^= f.mask()
	}
	return b
}

// All defines all four flags as v, for operations that unconditionally
// clear (or set) most flags and compute the rest.
func (b FlagBuilder) All(v bool) FlagBuilder {
	for _, f := range [4]Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		b = b.Set(f, v)
	}
	return b
}

// Build returns the changeset.
func (b FlagBuilder) Build() FlagChangeset {
	return b.fc
}

// flags is shorthand for a changeset defining all four flags.
func flags(z, n, h, c bool) FlagChangeset {
	return FlagBuilder{}.
		Set(FlagZero, z).
		Set(FlagSubtract, n).
		Set(FlagHalfCarry, h).
		Set(FlagCarry, c).
		Build()
}

// ArithmeticResult is the outcome of an ALU operation: the
// resulting byte and the flags the operation defines.
type ArithmeticResult struct {
	Value uint8
	Flags FlagChangeset
}
