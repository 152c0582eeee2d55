// Package decimalutil holds the scale-insensitive comparison rules shared by
// the price and calculation packages.
//
// Two decimals are equal when they denote the same number regardless of how
// many fractional digits they carry ("1.2" equals "1.20"). Hashing does not
// follow the same rule exactly: values are first rounded half-up to
// HashScale digits, so numbers that differ only beyond that scale collide,
// and equal numbers always hash the same.
package decimalutil

import (
	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// HashScale is the number of fractional digits values are normalized to
// before hashing.
const HashScale int32 = 2

// Scale returns the number of fractional digits carried by d. It is negative
// for values with a positive exponent such as 1E+3.
func Scale(d decimal.Decimal) int32 {
	return -d.Exponent()
}

// EqualIgnoreScale compares two optional decimals. Two nil values are equal,
// a nil and a non-nil value are not.
func EqualIgnoreScale(a, b *decimal.Decimal) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return Equal(*a, *b)
}

// Equal reports whether a and b are equal after padding both to the larger
// of their two scales.
func Equal(a, b decimal.Decimal) bool {
	// Cmp rescales both operands to the smaller exponent before comparing
	// coefficients, which is exactly the padding rule.
	return a.Cmp(b) == 0
}

// HashIgnoreScale returns the hash of an optional decimal; nil hashes to 0.
func HashIgnoreScale(d *decimal.Decimal) uint64 {
	if d == nil {
		return 0
	}
	return Hash(*d)
}

// Hash rounds d half-up to HashScale digits and hashes the fixed-scale form.
func Hash(d decimal.Decimal) uint64 {
	return xxhash.Sum64String(d.Round(HashScale).StringFixed(HashScale))
}

// String renders d keeping its scale, so "0.10" stays "0.10" instead of the
// trimmed "0.1" decimal.Decimal.String produces.
func String(d decimal.Decimal) string {
	if scale := Scale(d); scale > 0 {
		return d.StringFixed(scale)
	}
	return d.String()
}

// Combine folds hashes the way composite values hash their fields.
func Combine(hashes ...uint64) uint64 {
	var h uint64 = 1
	for _, v := range hashes {
		h = 31*h + v
	}
	return h
}
