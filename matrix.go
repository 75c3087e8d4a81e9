package canopy

import (
	"errors"
	"math"

	"github.com/gogpu/gg"
)

// ErrSingularMatrix is returned by Matrix.Invert when the determinant is zero.
var ErrSingularMatrix = errors.New("canopy: matrix is not invertible")

// Matrix is a 2D affine transform stored as [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
//
// so that x' = a*x + c*y + e and y' = b*x + d*y + f.
//
// Matrix is a value type. Methods return new matrices.
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translation returns a matrix translating by (x, y).
func Translation(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotation returns a matrix rotating by angle radians.
func Rotation(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Compose builds T(px,py) · R(angle) · S(sx,sy) · T(-ox,-oy).
//
// Applied to a point the steps run right to left: the origin (ox, oy) is
// moved to zero, then the point is scaled, then rotated, then translated by
// (px, py). The origin is therefore the pivot for both scale and rotation.
func Compose(px, py, sx, sy, ox, oy, angle float64) Matrix {
	sin, cos := math.Sincos(angle)

	// S · T(-o)
	tx := -ox * sx
	ty := -oy * sy

	// R · S · T(-o), then + p
	return Matrix{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*tx - sin*ty + px,
		sin*tx + cos*ty + py,
	}
}

// Multiply returns m * o. Applied to a point, o runs first and m second.
func (m Matrix) Multiply(o Matrix) Matrix {
	return multiplyAffine(m, o)
}

// Premultiply returns o * m. Applied to a point, m runs first and o second.
// A node's global matrix is its local matrix premultiplied by the parent's
// global matrix.
func (m Matrix) Premultiply(o Matrix) Matrix {
	return multiplyAffine(o, m)
}

// Translate returns m * Translation(x, y).
func (m Matrix) Translate(x, y float64) Matrix {
	return multiplyAffine(m, Translation(x, y))
}

// Scale returns m * Scaling(sx, sy).
func (m Matrix) Scale(sx, sy float64) Matrix {
	return multiplyAffine(m, Scaling(sx, sy))
}

// Rotate returns m * Rotation(angle).
func (m Matrix) Rotate(angle float64) Matrix {
	return multiplyAffine(m, Rotation(angle))
}

// Determinant returns ad - bc.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invertible reports whether the matrix has a finite, non-zero determinant.
func (m Matrix) Invertible() bool {
	det := m.Determinant()
	return det != 0 && !math.IsNaN(det) && !math.IsInf(det, 0)
}

// Inverse returns the inverse of m.
//
// A singular matrix is not special-cased: the result contains non-finite
// entries and every point it transforms comes out non-finite. Hit-testing
// treats such points as outside every shape. Use Invert for an explicit error.
func (m Matrix) Inverse() Matrix {
	invDet := 1 / m.Determinant()
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Invert returns the inverse of m, or ErrSingularMatrix.
func (m Matrix) Invert() (Matrix, error) {
	if !m.Invertible() {
		return Identity(), ErrSingularMatrix
	}
	return m.Inverse(), nil
}

// TransformPoint applies m to p.
func (m Matrix) TransformPoint(p Vector2) Vector2 {
	return Vector2{
		m[0]*p.X + m[2]*p.Y + m[4],
		m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformVector applies the linear part of m to v, ignoring translation.
func (m Matrix) TransformVector(v Vector2) Vector2 {
	return Vector2{
		m[0]*v.X + m[2]*v.Y,
		m[1]*v.X + m[3]*v.Y,
	}
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsFinite reports whether every entry is finite.
func (m Matrix) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Equals reports whether every entry of m and o differs by at most eps.
func (m Matrix) Equals(o Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// GG converts m to the row-major layout used by gg.
func (m Matrix) GG() gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}

// multiplyAffine multiplies two affine matrices: result = p * c.
func multiplyAffine(p, c Matrix) Matrix {
	return Matrix{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}
