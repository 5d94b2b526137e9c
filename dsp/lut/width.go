package lut

import (
	"fmt"
	"strings"
)

// Width describes the fixed-width integer type of one table element.
type Width struct {
	Bits   int // 8, 16 or 32
	Signed bool
}

// Supported element widths.
var (
	Int8   = Width{Bits: 8, Signed: true}
	Uint8  = Width{Bits: 8}
	Int16  = Width{Bits: 16, Signed: true}
	Uint16 = Width{Bits: 16}
	Int32  = Width{Bits: 32, Signed: true}
	Uint32 = Width{Bits: 32}
)

// Widths lists every supported width in ascending size.
var Widths = []Width{Int8, Uint8, Int16, Uint16, Int32, Uint32}

// ParseWidth parses names such as "int8", "uint16" or "i32".
func ParseWidth(s string) (Width, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "_t")

	switch name {
	case "int8", "i8", "s8":
		return Int8, nil
	case "uint8", "u8", "byte":
		return Uint8, nil
	case "int16", "i16", "s16":
		return Int16, nil
	case "uint16", "u16":
		return Uint16, nil
	case "int32", "i32", "s32":
		return Int32, nil
	case "uint32", "u32":
		return Uint32, nil
	default:
		return Width{}, fmt.Errorf("%w: %q", ErrInvalidWidth, s)
	}
}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	return w.Bits == 8 || w.Bits == 16 || w.Bits == 32
}

// Size returns the element size in bytes.
func (w Width) Size() int { return w.Bits / 8 }

// Min returns the smallest representable value.
func (w Width) Min() int64 {
	if !w.Signed || !w.Valid() {
		return 0
	}

	return -(int64(1) << (w.Bits - 1))
}

// Max returns the largest representable value.
func (w Width) Max() int64 {
	if !w.Valid() {
		return 0
	}

	if w.Signed {
		return int64(1)<<(w.Bits-1) - 1
	}

	return int64(1)<<w.Bits - 1
}

// Contains reports whether v is exactly representable in w.
func (w Width) Contains(v int) bool {
	x := int64(v)
	return w.Valid() && x >= w.Min() && x <= w.Max()
}

// String returns the C-style type name, e.g. "int8" or "uint16".
func (w Width) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Width(%d bits)", w.Bits)
	}

	if w.Signed {
		return fmt.Sprintf("int%d", w.Bits)
	}

	return fmt.Sprintf("uint%d", w.Bits)
}
