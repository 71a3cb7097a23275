package fuzzy

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Bits returns the exact bit pattern of v as a signed integer.
// Patterns of float32 values are sign-extended, so they keep the value
// a 32-bit signed reinterpretation would have. NaN payloads are preserved.
func Bits[F Float](v F) int64 {
	if is32[F]() {
		return int64(int32(math.Float32bits(float32(v))))
	}
	return int64(math.Float64bits(float64(v)))
}

// FromBits reinterprets a bit pattern as a value of type F.
// For float32 only the low 32 bits are used.
func FromBits[F Float](bits int64) F {
	if is32[F]() {
		return F(math.Float32frombits(uint32(bits)))
	}
	return F(math.Float64frombits(uint64(bits)))
}

// BitView exposes the IEEE 754 fields of a floating point value.
type BitView[F Float] struct {
	value F
	bits  int64
}

// NewBitView decomposes v.
func NewBitView[F Float](v F) BitView[F] {
	return BitView[F]{value: v, bits: Bits(v)}
}

// Value returns the viewed value.
func (b BitView[F]) Value() F {
	return b.value
}

// Bits returns the bit pattern of the value.
func (b BitView[F]) Bits() int64 {
	return b.bits
}

// IsNegative reports whether the sign bit is set.
// Unlike v < 0 this is true for -0.0 and for NaNs carrying a sign bit.
func (b BitView[F]) IsNegative() bool {
	return b.bits < 0
}

// Exponent returns the biased exponent field.
func (b BitView[F]) Exponent() int {
	l := LayoutOf[F]()
	return int((b.bits >> l.MantissaBits) & l.ExponentMask())
}

// Mantissa returns the stored mantissa field, without the implicit leading bit.
func (b BitView[F]) Mantissa() int64 {
	return b.bits & LayoutOf[F]().MantissaMask()
}

// PutBytes writes the little-endian encoding of the value into buf and
// returns the number of bytes written. It never allocates; a buffer shorter
// than the value width fails with ErrBufferTooSmall and is left untouched.
func (b BitView[F]) PutBytes(buf []byte) (int, error) {
	l := LayoutOf[F]()
	n := l.Bytes()
	if len(buf) < n {
		return 0, fmt.Errorf("%w: buffer holds %d bytes, a %s value needs %d", ErrBufferTooSmall, len(buf), l.Name, n)
	}
	if n == 4 {
		binary.LittleEndian.PutUint32(buf, uint32(b.bits))
	} else {
		binary.LittleEndian.PutUint64(buf, uint64(b.bits))
	}
	return n, nil
}

// AppendBytes appends the little-endian encoding of the value to dst.
func (b BitView[F]) AppendBytes(dst []byte) []byte {
	if is32[F]() {
		return binary.LittleEndian.AppendUint32(dst, uint32(b.bits))
	}
	return binary.LittleEndian.AppendUint64(dst, uint64(b.bits))
}

// String renders the fields in a compact form, e.g. "sign=0 exponent=1023 mantissa=0x0".
func (b BitView[F]) String() string {
	sign := 0
	if b.IsNegative() {
		sign = 1
	}
	return fmt.Sprintf("sign=%d exponent=%d mantissa=%#x", sign, b.Exponent(), b.Mantissa())
}

// PutBytes writes the little-endian encoding of v into buf.
// See BitView.PutBytes.
func PutBytes[F Float](buf []byte, v F) (int, error) {
	return NewBitView(v).PutBytes(buf)
}

// FromBytes decodes a little-endian encoded value produced by PutBytes.
func FromBytes[F Float](buf []byte) (F, error) {
	l := LayoutOf[F]()
	if len(buf) < l.Bytes() {
		return 0, fmt.Errorf("%w: buffer holds %d bytes, a %s value needs %d", ErrBufferTooSmall, len(buf), l.Name, l.Bytes())
	}
	if l.Bytes() == 4 {
		return FromBits[F](int64(binary.LittleEndian.Uint32(buf))), nil
	}
	return FromBits[F](int64(binary.LittleEndian.Uint64(buf))), nil
}

// abs clears the sign bit, so abs(-0.0) is +0.0 and NaN payloads are kept.
func abs[F Float](v F) F {
	return FromBits[F](Bits(v) & LayoutOf[F]().magnitudeMask())
}
