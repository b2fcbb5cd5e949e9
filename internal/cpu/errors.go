package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrLocked is matched by the error returned from a locked CPU.
	ErrLocked = errors.New("cpu: locked")
	// ErrUnimplemented is matched by UnimplementedOpcodeError.
	ErrUnimplemented = errors.New("cpu: unimplemented opcode")
)

// IllegalOpcodeError is returned after the CPU executed one of the
// opcodes that lock up the hardware.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode %02X at %04X, CPU locked", e.Opcode, e.PC)
}

// Is reports the error as ErrLocked.
func (e *IllegalOpcodeError) Is(target error) bool {
	return target == ErrLocked
}

// UnimplementedOpcodeError is returned when the CPU decodes an opcode
// that has no instruction assigned.
type UnimplementedOpcodeError struct {
	Opcode   uint8
	Prefixed bool
}

func (e *UnimplementedOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: unimplemented opcode CB %02X", e.Opcode)
	}
	return fmt.Sprintf("cpu: unimplemented opcode %02X", e.Opcode)
}

// Is reports the error as ErrUnimplemented.
func (e *UnimplementedOpcodeError) Is(target error) bool {
	return target == ErrUnimplemented
}
