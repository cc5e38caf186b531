// Package wire implements the compact binary numeric codec: zigzag
// transforms for signed integers, base-128 little-endian varints, and raw
// little-endian doubles.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// MaxVarintLen64 is the maximum byte length of a varint-encoded 64-bit
// value.
const MaxVarintLen64 = binary.MaxVarintLen64

var ErrOverflow = errors.New("varint overflows target type")

// ZigZagEncode64 maps signed integers to unsigned ones so that values of
// small magnitude, positive or negative, stay small under varint
// encoding.
func ZigZagEncode64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func ZigZagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

func ZigZagEncode32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

func ZigZagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// AppendUint64 appends v as a varint, seven payload bits per byte with a
// continuation flag.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// AppendInt64 appends v zigzag-transformed then varint-encoded.
func AppendInt64(dst []byte, v int64) []byte {
	return binary.AppendUvarint(dst, ZigZagEncode64(v))
}

// AppendInt32 appends v zigzag-transformed then varint-encoded. Used for
// binary string length prefixes.
func AppendInt32(dst []byte, v int32) []byte {
	return binary.AppendUvarint(dst, uint64(ZigZagEncode32(v)))
}

func ReadUint64(r io.ByteReader) (uint64, error) {
	return binary.ReadUvarint(r)
}

func ReadInt64(r io.ByteReader) (int64, error) {
	u, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	return ZigZagDecode64(u), nil
}

func ReadInt32(r io.ByteReader) (int32, error) {
	u, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, ErrOverflow
	}
	return ZigZagDecode32(uint32(u)), nil
}

// AppendDouble appends the raw IEEE-754 bits of v, little-endian.
func AppendDouble(dst []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

func ReadDouble(r io.ByteReader) (float64, error) {
	var b [8]byte
	for i := range b {
		c, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		b[i] = c
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}
