package ir

import (
	"math/big"
	"testing"
)

func TestMaxMinInt(t *testing.T) {
	cases := []struct {
		width  uint64
		signed bool
		max    int64
		min    int64
	}{
		{8, true, 127, -128},
		{8, false, 255, 0},
		{16, true, 32767, -32768},
		{1, false, 1, 0},
	}
	for _, c := range cases {
		if got := MaxInt(c.width, c.signed); got.Int64() != c.max {
			t.Fatalf("max(%d, %v) = %v, want %d", c.width, c.signed, got, c.max)
		}
		if got := MinInt(c.width, c.signed); got.Int64() != c.min {
			t.Fatalf("min(%d, %v) = %v, want %d", c.width, c.signed, got, c.min)
		}
	}
}

func TestFitsInBits(t *testing.T) {
	if !FitsInBits(big.NewInt(-128), 8, true) {
		t.Fatalf("-128 fits in i8")
	}
	if FitsInBits(big.NewInt(-129), 8, true) {
		t.Fatalf("-129 does not fit in i8")
	}
	if FitsInBits(big.NewInt(-1), 8, false) {
		t.Fatalf("-1 does not fit in u8")
	}
	if !FitsInBits(big.NewInt(255), 8, false) {
		t.Fatalf("255 fits in u8")
	}
}

func TestTwoComplement(t *testing.T) {
	if got := TwoComplement(big.NewInt(-1), 8); got.Int64() != 255 {
		t.Fatalf("-1 as u8 = %v, want 255", got)
	}
	if got := TwoComplement(big.NewInt(-128), 8); got.Int64() != 128 {
		t.Fatalf("-128 as u8 = %v, want 128", got)
	}
	if got := TwoComplement(big.NewInt(42), 8); got.Int64() != 42 {
		t.Fatalf("positive values pass through, got %v", got)
	}
}

func TestBitPattern(t *testing.T) {
	cases := []struct {
		val    int64
		width  uint64
		signed bool
		want   string
	}{
		{-1, 32, true, "FFFFFFFF"},
		{255, 8, false, "FF"},
		{1, 16, false, "0001"},
		{-128, 8, true, "80"},
		{0, 64, false, "0000000000000000"},
	}
	for _, c := range cases {
		if got := BitPattern(big.NewInt(c.val), c.width, c.signed); got != c.want {
			t.Fatalf("bit pattern of %d in %d bits = %q, want %q", c.val, c.width, got, c.want)
		}
	}
}

func TestBitPatternRejectsOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("out-of-range value must panic")
		}
	}()
	BitPattern(big.NewInt(256), 8, false)
}
