package elf

import (
	"github.com/pkg/errors"
	"github.com/skx/tinybasic/asm"
)

// regCode maps the asm package's named registers onto the 4-bit
// register field x86-64 encoding uses (the low 3 bits go in the
// ModRM/opcode byte, the 4th extends via REX).
func regCode(r asm.Register) (byte, error) {
	switch r {
	case asm.RAX:
		return 0, nil
	case asm.RCX:
		return 1, nil
	case asm.RDX:
		return 2, nil
	case asm.RBX:
		return 3, nil
	case asm.RSP:
		return 4, nil
	case asm.RBP:
		return 5, nil
	case asm.RSI:
		return 6, nil
	case asm.RDI:
		return 7, nil
	case asm.R8:
		return 8, nil
	case asm.R9:
		return 9, nil
	case asm.R14:
		return 14, nil
	case asm.R15:
		return 15, nil
	default:
		return 0, errors.Errorf("unencodable register %v", r)
	}
}

// rex builds a REX prefix byte. w selects 64-bit operand size; regExt
// and rmExt are set when the ModRM reg/rm field names R8-R15.
func rex(w, regExt, rmExt bool) byte {
	b := byte(0x40)
	if w {
		b |= 0x08
	}
	if regExt {
		b |= 0x04
	}
	if rmExt {
		b |= 0x01
	}
	return b
}

// modRM builds a ModRM byte for register-direct addressing (mod=11),
// the only addressing mode this compiler's IR ever needs - there is no
// [base+offset] operand, per the design note in package asm.
func modRM(reg, rm byte) byte {
	return 0xc0 | (reg&7)<<3 | (rm & 7)
}
