// Package lut serializes integer lookup tables for firmware consumption.
//
// A table is written as a flat array of fixed-width integers in index order,
// little-endian, with no header, length prefix or padding. The element type
// is described by a [Width] such as [Int8] or [Uint16]:
//
//	data, err := lut.Encode([]int{0, 7200, 14400}, lut.Uint16)
//	path, err := lut.WriteFile("assets", lut.DefaultAssetName, data)
//
// Values that do not fit the width are rejected with [ErrValueOutOfRange];
// nothing is ever truncated or wrapped. [WriteFile] replaces the target
// atomically so a failed run never leaves a partial asset behind.
package lut
