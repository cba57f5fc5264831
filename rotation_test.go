package aerso

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestR1R2R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r2 := R2(x)
	r3 := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r2.At(1, 1) || r1.At(0, 0) != r3.At(2, 2) || r3.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R2.At(1, 1) = R3.At(2, 2) = 1\n")
	}
	// Test R1.
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced\n")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced\n")
	}
	// Test R2.
	if r2.At(0, 0) != r2.At(2, 2) || r2.At(2, 2) != c {
		t.Fatal("expected R2 cosines misplaced\n")
	}
	if r2.At(2, 0) != -r2.At(0, 2) || r2.At(2, 0) != s {
		t.Fatal("expected R2 sines misplaced\n")
	}
	// Test R3.
	if r3.At(1, 1) != r3.At(0, 0) || r3.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced\n")
	}
	if r3.At(0, 1) != -r3.At(1, 0) || r3.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced\n")
	}
}

func TestQuaternionDCMMatchesEuler(t *testing.T) {
	roll := Deg2rad(10)
	pitch := Deg2rad(20)
	yaw := Deg2rad(30)
	qDCM := NewQuaternionFromEuler(roll, pitch, yaw).DCM()
	eDCM := DCMFromEuler(roll, pitch, yaw)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !floats.EqualWithinAbs(qDCM.At(i, j), eDCM.At(i, j), 1e-12) {
				t.Fatalf("DCM mismatch at (%d,%d): %f != %f", i, j, qDCM.At(i, j), eDCM.At(i, j))
			}
		}
	}
}

func TestIdentityQuaternion(t *testing.T) {
	dcm := IdentityQuaternion().DCM()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			expected := 0.0
			if i == j {
				expected = 1
			}
			if dcm.At(i, j) != expected {
				t.Fatal("identity quaternion DCM is not the identity matrix")
			}
		}
	}
}

func TestQuaternionUnit(t *testing.T) {
	q := Quaternion{1, 2, 3, 4}.Unit()
	if !floats.EqualWithinAbs(q.Norm(), 1, 1e-12) {
		t.Fatal("Unit did not normalize the quaternion")
	}
	z := Quaternion{0, 0, 0, 0}
	if z.Unit() != z {
		t.Fatal("Unit of the zero quaternion must be unchanged")
	}
}

func TestMxVRoundtrip(t *testing.T) {
	m := DCMFromEuler(0.3, -0.5, 1.2)
	v := []float64{1, -2, 3}
	// A rotation followed by its transpose must be the identity.
	if !vectorsEqual(MtxV33(m, MxV33(m, v)), v) {
		t.Fatal("MtxV33(M, MxV33(M, v)) != v")
	}
	if !floats.EqualWithinAbs(norm(MxV33(m, v)), norm(v), 1e-12) {
		t.Fatal("rotation changed the norm")
	}
}

func TestQuaternionRatesDot(t *testing.T) {
	// Pure yaw rate about the body z axis from identity attitude.
	qDot := IdentityQuaternion().RatesDot([]float64{0, 0, 0.2})
	if !floats.EqualWithinAbs(qDot.Z, 0.1, 1e-12) || qDot.X != 0 || qDot.Y != 0 || qDot.W != 0 {
		t.Fatalf("unexpected quaternion derivative: %+v", qDot)
	}
	var m mat64.Dense
	m.Sub(Quaternion{0, 0, 0.1, 1}.Unit().DCM(), R3(2*math.Atan(0.1)))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !floats.EqualWithinAbs(m.At(i, j), 0, 1e-12) {
				t.Fatal("pure yaw quaternion does not match R3")
			}
		}
	}
}
