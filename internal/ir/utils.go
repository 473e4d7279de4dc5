package ir

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// MaxInt is the largest value representable in width bits.
func MaxInt(width uint64, signed bool) *big.Int {
	bits := width
	if signed {
		bits--
	}
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return max.Sub(max, big.NewInt(1))
}

// MinInt is the smallest value representable in width bits.
func MinInt(width uint64, signed bool) *big.Int {
	if !signed {
		return big.NewInt(0)
	}
	min := MaxInt(width, true)
	min.Add(min, big.NewInt(1))
	return min.Neg(min)
}

// FitsInBits reports whether i is representable in width bits.
func FitsInBits(i *big.Int, width uint64, signed bool) bool {
	return MinInt(width, signed).Cmp(i) <= 0 && i.Cmp(MaxInt(width, signed)) <= 0
}

// TwoComplement maps i onto its unsigned two's complement bit pattern in
// width bits. Non-negative values are returned as-is.
func TwoComplement(i *big.Int, width uint64) *big.Int {
	if i.Sign() >= 0 {
		return new(big.Int).Set(i)
	}
	// max_unsigned - (|i| - 1)
	out := MaxInt(width, false)
	abs := new(big.Int).Abs(i)
	abs.Sub(abs, big.NewInt(1))
	return out.Sub(out, abs)
}

// BitPattern renders i as the uppercase hex two's complement pattern the
// wire format uses for integer constants, zero padded to width/4 digits.
func BitPattern(i *big.Int, width uint64, signed bool) string {
	if !FitsInBits(i, width, signed) {
		panic(fmt.Sprintf("ir: %v does not fit in %d bits", i, width))
	}
	hex := strings.ToUpper(TwoComplement(i, width).Text(16))
	digits := int(width / 4)
	if width%4 != 0 {
		digits++
	}
	if pad := digits - len(hex); pad > 0 {
		hex = strings.Repeat("0", pad) + hex
	}
	return hex
}

func fromBits32(bp uint32) float32 { return math.Float32frombits(bp) }
func fromBits64(bp uint64) float64 { return math.Float64frombits(bp) }

// ToBits32 and ToBits64 expose the raw encodings of float constants for the
// wire format.
func ToBits32(f float32) uint32 { return math.Float32bits(f) }
func ToBits64(f float64) uint64 { return math.Float64bits(f) }
