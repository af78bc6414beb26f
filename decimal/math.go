/*
 * Copyright 2026 The mysql-server Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package decimal

import "math/big"

// alignedCoeffs returns the signed coefficients of a and b scaled to the
// common scale max(a.frac, b.frac), and that scale.
func alignedCoeffs(a, b *Decimal) (*big.Int, *big.Int, int) {
	ca := a.signedCoeff()
	cb := b.signedCoeff()
	frac := a.frac
	if b.frac > frac {
		frac = b.frac
	}
	if a.frac < frac {
		ca.Mul(ca, pow10(frac-a.frac))
	}
	if b.frac < frac {
		cb.Mul(cb, pow10(frac-b.frac))
	}
	return ca, cb, frac
}

// Add stores a + b into d. The result scale is max(scale(a), scale(b)).
func (d *Decimal) Add(a, b *Decimal) Status {
	ca, cb, frac := alignedCoeffs(a, b)
	return d.setCoeff(ca.Add(ca, cb), frac)
}

// Sub stores a - b into d. The result scale is max(scale(a), scale(b)).
func (d *Decimal) Sub(a, b *Decimal) Status {
	ca, cb, frac := alignedCoeffs(a, b)
	return d.setCoeff(ca.Sub(ca, cb), frac)
}

// Mul stores a * b into d. The result scale is scale(a) + scale(b), clamped
// to MaxScale with truncation.
func (d *Decimal) Mul(a, b *Decimal) Status {
	ca := a.signedCoeff()
	cb := b.signedCoeff()
	return d.setCoeff(ca.Mul(ca, cb), a.frac+b.frac)
}

// Div stores a / b into d. The result scale is scale(a) + fracIncr, the
// session's extra fractional digits for division, clamped to MaxScale.
// Remaining digits beyond that scale are truncated.
func (d *Decimal) Div(a, b *Decimal, fracIncr int) Status {
	if b.IsZero() {
		d.SetZero()
		return StatusDivisionByZero
	}
	frac := a.frac + fracIncr
	if frac > MaxScale {
		frac = MaxScale
	}
	// value = ca*10^-fa / (cb*10^-fb); at scale `frac` the coefficient is
	// trunc(ca * 10^(frac-fa+fb) / cb).
	ca := a.signedCoeff()
	cb := b.signedCoeff()
	ca.Mul(ca, pow10(frac-a.frac+b.frac))
	rem := new(big.Int)
	ca.QuoRem(ca, cb, rem)
	st := d.setCoeff(ca, frac)
	if st == StatusOK && rem.Sign() != 0 {
		st = StatusTruncated
	}
	return st
}

// Mod stores a % b into d. The sign follows the dividend and the result
// scale is max(scale(a), scale(b)).
func (d *Decimal) Mod(a, b *Decimal) Status {
	if b.IsZero() {
		d.SetZero()
		return StatusDivisionByZero
	}
	ca, cb, frac := alignedCoeffs(a, b)
	rem := new(big.Int)
	new(big.Int).QuoRem(ca, cb.Abs(cb), rem)
	return d.setCoeff(rem, frac)
}

// Round stores d rounded (half away from zero) or truncated to the given
// scale into res. A negative scale rounds to a power of ten left of the
// point; a scale beyond the current one pads with zeros up to MaxScale.
// Repeated rounding at the same scale is idempotent.
func (d *Decimal) Round(res *Decimal, scale int, truncate bool) Status {
	c := d.signedCoeff()
	if scale >= d.frac {
		pad := scale
		if pad > MaxScale {
			pad = MaxScale
		}
		c.Mul(c, pow10(pad-d.frac))
		return res.setCoeff(c, pad)
	}
	drop := d.frac - scale
	p := pow10(drop)
	rem := new(big.Int)
	c.QuoRem(c, p, rem)
	if !truncate && rem.Sign() != 0 {
		rem.Abs(rem)
		rem.Lsh(rem, 1) // 2*|rem|
		if rem.Cmp(p) >= 0 {
			if d.Negative() {
				c.Sub(c, big.NewInt(1))
			} else {
				c.Add(c, big.NewInt(1))
			}
		}
	}
	if scale < 0 {
		c.Mul(c, pow10(-scale))
		scale = 0
	}
	return res.setCoeff(c, scale)
}

// Ceiling stores the smallest integer value >= d into res.
func (d *Decimal) Ceiling(res *Decimal) Status {
	c := d.signedCoeff()
	rem := new(big.Int)
	c.QuoRem(c, pow10(d.frac), rem)
	if rem.Sign() > 0 {
		c.Add(c, big.NewInt(1))
	}
	return res.setCoeff(c, 0)
}

// Floor stores the largest integer value <= d into res.
func (d *Decimal) Floor(res *Decimal) Status {
	c := d.signedCoeff()
	rem := new(big.Int)
	c.QuoRem(c, pow10(d.frac), rem)
	if rem.Sign() < 0 {
		c.Sub(c, big.NewInt(1))
	}
	return res.setCoeff(c, 0)
}
