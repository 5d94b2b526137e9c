package lut

import (
	"encoding/binary"
	"fmt"
)

// ByteOrder is the byte order of every multi-byte element.
var ByteOrder = binary.LittleEndian

// Encode packs values as consecutive w-sized little-endian integers.
// The first entry that w cannot hold is reported as a [*RangeError].
func Encode(values []int, w Width) ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidWidth, w.Bits)
	}

	for i, v := range values {
		if !w.Contains(v) {
			return nil, &RangeError{Index: i, Value: v, Width: w}
		}
	}

	out := make([]byte, 0, len(values)*w.Size())

	for _, v := range values {
		switch w.Bits {
		case 8:
			out = append(out, byte(v))
		case 16:
			out = ByteOrder.AppendUint16(out, uint16(v))
		case 32:
			out = ByteOrder.AppendUint32(out, uint32(v))
		}
	}

	return out, nil
}

// Decode unpacks data produced by [Encode] with the same width.
func Decode(data []byte, w Width) ([]int, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidWidth, w.Bits)
	}

	size := w.Size()
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrTruncatedData, len(data), size)
	}

	out := make([]int, len(data)/size)

	for i := range out {
		chunk := data[i*size : (i+1)*size]

		switch {
		case w.Bits == 8 && w.Signed:
			out[i] = int(int8(chunk[0]))
		case w.Bits == 8:
			out[i] = int(chunk[0])
		case w.Bits == 16 && w.Signed:
			out[i] = int(int16(ByteOrder.Uint16(chunk)))
		case w.Bits == 16:
			out[i] = int(ByteOrder.Uint16(chunk))
		case w.Signed:
			out[i] = int(int32(ByteOrder.Uint32(chunk)))
		default:
			out[i] = int(ByteOrder.Uint32(chunk))
		}
	}

	return out, nil
}
