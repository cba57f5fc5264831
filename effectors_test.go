package aerso

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func newTestVehicle(effectors ...AeroEffect) *AffectedBody {
	return NewAffectedBody("test", NewAeroBody(newRestingBody()), effectors...)
}

func TestEmptyEffectorsCoast(t *testing.T) {
	vehicle := newTestVehicle()
	before := vehicle.StateVector()
	for i := 0; i < 10; i++ {
		vehicle.Step(0.1, []float64{0.3, 0.1, 0, 0})
	}
	if !vectorsEqual(vehicle.StateVector(), before) {
		t.Fatal("with no effectors the body must coast unloaded")
	}
}

func TestConstantEffectStep(t *testing.T) {
	vehicle := newTestVehicle(ConstantEffect{F: Force{1, 0, 0}, T: Torque{0, 0, 0}})
	vehicle.Step(1, nil)
	if !vectorsEqual(vehicle.Velocity(), []float64{1, 0, 0}) {
		t.Fatalf("velocity = %+v, expected (1,0,0)", vehicle.Velocity())
	}
}

func TestEffectorAggregation(t *testing.T) {
	// Two cancelling forces must behave exactly like no load.
	vehicle := newTestVehicle(
		ConstantEffect{F: Force{2, -1, 0.5}, T: Torque{0, 0.2, 0}},
		ConstantEffect{F: Force{-2, 1, -0.5}, T: Torque{0, -0.2, 0}},
	)
	before := vehicle.StateVector()
	vehicle.Step(0.5, nil)
	if !vectorsEqual(vehicle.StateVector(), before) {
		t.Fatal("cancelling effectors must aggregate to zero")
	}
}

func TestEffectorOrderInvariance(t *testing.T) {
	a := ConstantEffect{F: Force{0.1, 0.2, 0.3}, T: Torque{0.01, 0, 0}}
	b := ConstantEffect{F: Force{-0.3, 0.1, 0.7}, T: Torque{0, 0.02, 0}}
	forward := newTestVehicle(a, b)
	reverse := newTestVehicle(b, a)
	for i := 0; i < 20; i++ {
		forward.Step(0.05, nil)
		reverse.Step(0.05, nil)
	}
	// Two effectors sum exactly regardless of order.
	fs := forward.StateVector()
	rs := reverse.StateVector()
	for i := range fs {
		if fs[i] != rs[i] {
			t.Fatalf("statevectors diverged at component %d: %v != %v", i, fs[i], rs[i])
		}
	}
}

func TestEffectorsShareSnapshot(t *testing.T) {
	// Every effector must see the same air state within one step.
	rec := &recordingEffect{}
	vehicle := NewAffectedBody("snapshot",
		NewAeroBodyWithWind(newRestingBody(), NewConstantWind([]float64{-5, 0, 0})),
		rec, rec, rec)
	vehicle.Step(0.1, nil)
	if len(rec.seen) != 3 {
		t.Fatalf("expected 3 effector calls, got %d", len(rec.seen))
	}
	if rec.seen[0] != rec.seen[1] || rec.seen[1] != rec.seen[2] {
		t.Fatal("effectors saw different air states within one step")
	}
}

// recordingEffect is a test-only effector recording the air states it was
// given. It applies no load.
type recordingEffect struct {
	seen []AirState
}

func (e *recordingEffect) GetEffect(airstate AirState, rates []float64, inputState []float64) (Force, Torque) {
	e.seen = append(e.seen, airstate)
	return Force{0, 0, 0}, Torque{0, 0, 0}
}

func TestSimpleDragOpposesRelativeWind(t *testing.T) {
	drag := SimpleDrag{S: 2, Cd: 0.5}
	// Headwind along body x: drag pushes backwards.
	airstate := AirState{Alpha: 0, Beta: 0, Airspeed: 10, Q: 0.5 * ISAStandardDensity * 100}
	f, tq := drag.GetEffect(airstate, []float64{0, 0, 0}, nil)
	expected := -airstate.Q * 2 * 0.5
	if !floats.EqualWithinAbs(f[0], expected, 1e-12) || f[1] != 0 || f[2] != 0 {
		t.Fatalf("drag force = %+v, expected (%f,0,0)", f, expected)
	}
	if !vectorsEqual(tq, []float64{0, 0, 0}) {
		t.Fatal("drag must produce no torque")
	}
	// Pure crosswind from the right: drag acts along -y.
	airstate = AirState{Alpha: 0, Beta: math.Pi / 2, Airspeed: 10, Q: 61.25}
	f, _ = drag.GetEffect(airstate, []float64{0, 0, 0}, nil)
	if !floats.EqualWithinAbs(f[1], -61.25, 1e-9) || !floats.EqualWithinAbs(f[0], 0, 1e-9) {
		t.Fatalf("crosswind drag force = %+v", f)
	}
}

func TestThrusterThrottle(t *testing.T) {
	thruster := NewThruster(100, []float64{1, 0, 0})
	f, tq := thruster.GetEffect(AirState{}, []float64{0, 0, 0}, []float64{0.5})
	if !vectorsEqual(f, []float64{50, 0, 0}) {
		t.Fatalf("thrust = %+v, expected (50,0,0)", f)
	}
	if !vectorsEqual(tq, []float64{0, 0, 0}) {
		t.Fatal("thrust must produce no torque")
	}
	// Throttle is clamped to [0,1].
	f, _ = thruster.GetEffect(AirState{}, []float64{0, 0, 0}, []float64{1.7})
	if !vectorsEqual(f, []float64{100, 0, 0}) {
		t.Fatalf("thrust = %+v, expected clamp at (100,0,0)", f)
	}
	f, _ = thruster.GetEffect(AirState{}, []float64{0, 0, 0}, []float64{-0.3})
	if !vectorsEqual(f, []float64{0, 0, 0}) {
		t.Fatalf("thrust = %+v, expected clamp at zero", f)
	}
	// No input channels means no thrust.
	f, _ = thruster.GetEffect(AirState{}, []float64{0, 0, 0}, nil)
	if !vectorsEqual(f, []float64{0, 0, 0}) {
		t.Fatal("missing input must give zero thrust")
	}
}
