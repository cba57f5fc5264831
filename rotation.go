package aerso

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// DCMFromEuler returns the world to body direction cosine matrix for the
// 3-2-1 Euler sequence roll (φ), pitch (θ), yaw (ψ), i.e. R1(φ)R2(θ)R3(ψ).
func DCMFromEuler(roll, pitch, yaw float64) *mat64.Dense {
	var m, m2 mat64.Dense
	m.Mul(R2(pitch), R3(yaw))
	m2.Mul(R1(roll), &m)
	return &m2
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// MtxV33 multiplies the transpose of a matrix with a vector.
func MtxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m.T(), vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// Quaternion is a unit attitude quaternion rotating world frame vectors into
// the body frame. Components are stored in (i, j, k, w) order in state vectors.
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion returns the no-rotation quaternion.
func IdentityQuaternion() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternionFromEuler returns the attitude quaternion for the 3-2-1 Euler
// sequence roll (φ), pitch (θ), yaw (ψ), in radians.
func NewQuaternionFromEuler(roll, pitch, yaw float64) Quaternion {
	sφ, cφ := math.Sincos(roll / 2)
	sθ, cθ := math.Sincos(pitch / 2)
	sψ, cψ := math.Sincos(yaw / 2)
	return Quaternion{
		X: sφ*cθ*cψ - cφ*sθ*sψ,
		Y: cφ*sθ*cψ + sφ*cθ*sψ,
		Z: cφ*cθ*sψ - sφ*sθ*cψ,
		W: cφ*cθ*cψ + sφ*sθ*sψ,
	}
}

// Norm returns the quaternion norm.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Unit returns the normalized quaternion. The zero quaternion is returned unchanged.
func (q Quaternion) Unit() Quaternion {
	n := q.Norm()
	if n == 0 {
		return q
	}
	return Quaternion{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// DCM returns the direction cosine matrix rotating world frame vectors into
// the body frame for this attitude.
func (q Quaternion) DCM() *mat64.Dense {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return mat64.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y),
		2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x),
		2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y)})
}

// RatesDot returns the quaternion kinematics q̇ = ½ q ⊗ (0, ω) for the body
// axis rates ω = (p, q, r).
func (q Quaternion) RatesDot(rates []float64) Quaternion {
	p, qr, r := rates[0], rates[1], rates[2]
	return Quaternion{
		X: 0.5 * (q.W*p + q.Y*r - q.Z*qr),
		Y: 0.5 * (q.W*qr + q.Z*p - q.X*r),
		Z: 0.5 * (q.W*r + q.X*qr - q.Y*p),
		W: 0.5 * (-q.X*p - q.Y*qr - q.Z*r),
	}
}
