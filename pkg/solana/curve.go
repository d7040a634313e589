package solana

import (
	"bytes"
	"crypto/ed25519"

	"filippo.io/edwards25519/field"
)

// curveD is the edwards25519 constant d = -121665/121666 mod p.
var curveD = func() *field.Element {
	num := new(field.Element).Mult32(new(field.Element).One(), 121665)
	den := new(field.Element).Mult32(new(field.Element).One(), 121666)

	d := new(field.Element).Invert(den)
	d.Multiply(d, num)
	return d.Negate(d)
}()

// IsOnCurve reports whether b is the encoding of a point on the edwards25519
// curve.
//
// The encoding is the curve's standard one: the little-endian y coordinate with
// the sign of x in the top bit of the last byte. Non-canonical y values
// (y >= 2^255-19) are treated as off-curve, as is any input that isn't 32 bytes.
//
// The x coordinate is never recovered. A point exists for y iff
// x^2 = (y^2 - 1) / (d*y^2 + 1) is zero or a quadratic residue, which is decided
// with Euler's criterion.
func IsOnCurve(b []byte) bool {
	if len(b) != ed25519.PublicKeySize {
		return false
	}

	var encoded [ed25519.PublicKeySize]byte
	copy(encoded[:], b)
	encoded[31] &= 0x7f

	y, err := new(field.Element).SetBytes(encoded[:])
	if err != nil {
		return false
	}
	if !bytes.Equal(y.Bytes(), encoded[:]) {
		return false
	}

	one := new(field.Element).One()
	yy := new(field.Element).Square(y)

	u := new(field.Element).Subtract(yy, one)
	v := new(field.Element).Multiply(curveD, yy)
	v.Add(v, one)

	xx := new(field.Element).Invert(v)
	xx.Multiply(xx, u)

	if xx.Equal(new(field.Element).Zero()) == 1 {
		return true
	}

	return eulerCriterion(xx).Equal(one) == 1
}

// eulerCriterion returns a^((p-1)/2), which is 1 for non-zero quadratic
// residues and p-1 otherwise.
//
// (p-1)/2 = 2^254 - 10 = 4*(2^252 - 3) + 2
func eulerCriterion(a *field.Element) *field.Element {
	t := new(field.Element).Pow22523(a)
	t.Square(t)
	t.Square(t)

	aa := new(field.Element).Square(a)
	return t.Multiply(t, aa)
}
