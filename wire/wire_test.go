package wire

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestZigZag64(t *testing.T) {
	cases := []struct {
		v int64
		u uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{math.MaxInt64, math.MaxUint64 - 1},
		{math.MinInt64, math.MaxUint64},
	}
	for _, c := range cases {
		if got := ZigZagEncode64(c.v); got != c.u {
			t.Errorf("encode %d: expected %d, got %d", c.v, c.u, got)
		}
		if got := ZigZagDecode64(c.u); got != c.v {
			t.Errorf("decode %d: expected %d, got %d", c.u, c.v, got)
		}
	}
}

func TestZigZag32(t *testing.T) {
	cases := []struct {
		v int32
		u uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{math.MaxInt32, math.MaxUint32 - 1},
		{math.MinInt32, math.MaxUint32},
	}
	for _, c := range cases {
		if got := ZigZagEncode32(c.v); got != c.u {
			t.Errorf("encode %d: expected %d, got %d", c.v, c.u, got)
		}
		if got := ZigZagDecode32(c.u); got != c.v {
			t.Errorf("decode %d: expected %d, got %d", c.u, c.v, got)
		}
	}
}

func TestVarintBytes(t *testing.T) {
	cases := []struct {
		v        int64
		expected []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x01}},
		{1, []byte{0x02}},
		{63, []byte{0x7E}},
		{64, []byte{0x80, 0x01}},
		{-64, []byte{0x7F}},
		{-65, []byte{0x81, 0x01}},
	}
	for _, c := range cases {
		if got := AppendInt64(nil, c.v); !bytes.Equal(got, c.expected) {
			t.Errorf("append %d: expected % x, got % x", c.v, c.expected, got)
		}
	}
}

func TestIntRoundTrip(t *testing.T) {
	vs := []int64{0, 1, -1, 127, 128, -128, 1 << 20, -(1 << 40), math.MaxInt64, math.MinInt64}
	for _, v := range vs {
		d := AppendInt64(nil, v)
		got, err := ReadInt64(bytes.NewReader(d))
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestUintRoundTrip(t *testing.T) {
	vs := []uint64{0, 1, 127, 128, 1 << 35, math.MaxUint64}
	for _, v := range vs {
		d := AppendUint64(nil, v)
		got, err := ReadUint64(bytes.NewReader(d))
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestInt32Overflow(t *testing.T) {
	d := AppendUint64(nil, math.MaxUint32+1)
	if _, err := ReadInt32(bytes.NewReader(d)); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected overflow error, got %v", err)
	}
}

func TestDoubleRoundTrip(t *testing.T) {
	vs := []float64{0, 1, -0.5, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1)}
	for _, v := range vs {
		d := AppendDouble(nil, v)
		if len(d) != 8 {
			t.Fatalf("double %v: expected 8 bytes, got %d", v, len(d))
		}
		got, err := ReadDouble(bytes.NewReader(d))
		if err != nil {
			t.Fatalf("read %v: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %v: got %v", v, got)
		}
	}
	// NaN survives by bit pattern
	d := AppendDouble(nil, math.NaN())
	got, err := ReadDouble(bytes.NewReader(d))
	if err != nil {
		t.Fatalf("read NaN: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}
}

func TestReadDoubleTruncated(t *testing.T) {
	if _, err := ReadDouble(bytes.NewReader(nil)); err != io.EOF {
		t.Errorf("expected EOF on empty input, got %v", err)
	}
	if _, err := ReadDouble(bytes.NewReader([]byte{1, 2, 3})); err != io.ErrUnexpectedEOF {
		t.Errorf("expected unexpected EOF, got %v", err)
	}
}
