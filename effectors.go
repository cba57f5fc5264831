package aerso

import (
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// AeroEffect is a single aerodynamic force and torque generator. GetEffect
// must be a pure function of its arguments: implementations may close over
// calibration constants but must not keep mutable state.
//
// The input state is a short numeric vector of actuator or control surface
// settings. Its shape and semantics belong to each concrete effector and are
// opaque to the composition layer.
type AeroEffect interface {
	GetEffect(airstate AirState, rates []float64, inputState []float64) (Force, Torque)
}

// AffectedBody composes an AeroBody with an ordered collection of effectors.
// The collection is fixed at construction: its order only matters for
// floating point summation reproducibility.
type AffectedBody struct {
	Body      *AeroBody
	Effectors []AeroEffect
	logger    kitlog.Logger
}

// NewAffectedBody returns an AffectedBody driving the given effectors.
func NewAffectedBody(name string, body *AeroBody, effectors ...AeroEffect) *AffectedBody {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "vehicle", name)
	return &AffectedBody{Body: body, Effectors: effectors, logger: klog}
}

// Step queries a single air state and rates snapshot, evaluates every
// effector in order against that snapshot, sums the forces and torques
// independently and advances the body by deltaT seconds. With no effectors
// the aggregates are zero and the body coasts.
func (a *AffectedBody) Step(deltaT float64, inputState []float64) {
	airstate := a.Body.GetAirState()
	rates := a.Body.Rates()

	force := Force{0, 0, 0}
	torque := Torque{0, 0, 0}
	for _, effector := range a.Effectors {
		f, t := effector.GetEffect(airstate, rates, inputState)
		addTo(force, f)
		addTo(torque, t)
	}

	a.Body.Step([]Force{force}, []Torque{torque}, deltaT)
}

// Position implements the StateView interface.
func (a *AffectedBody) Position() []float64 {
	return a.Body.Position()
}

// Velocity implements the StateView interface.
func (a *AffectedBody) Velocity() []float64 {
	return a.Body.Velocity()
}

// VelocityInFrame implements the StateView interface.
func (a *AffectedBody) VelocityInFrame(frame Frame) []float64 {
	return a.Body.VelocityInFrame(frame)
}

// Attitude implements the StateView interface.
func (a *AffectedBody) Attitude() Quaternion {
	return a.Body.Attitude()
}

// Rates implements the StateView interface.
func (a *AffectedBody) Rates() []float64 {
	return a.Body.Rates()
}

// RatesInFrame implements the StateView interface.
func (a *AffectedBody) RatesInFrame(frame Frame) []float64 {
	return a.Body.RatesInFrame(frame)
}

// StateVector implements the StateView interface.
func (a *AffectedBody) StateVector() StateVector {
	return a.Body.StateVector()
}

/* Built-in effectors */

// ConstantEffect applies a fixed force and torque regardless of air state,
// rates or input.
type ConstantEffect struct {
	F Force
	T Torque
}

// GetEffect implements the AeroEffect interface.
func (e ConstantEffect) GetEffect(airstate AirState, rates []float64, inputState []float64) (Force, Torque) {
	return Force{e.F[0], e.F[1], e.F[2]}, Torque{e.T[0], e.T[1], e.T[2]}
}

// SimpleDrag applies F = −q·S·Cd along the relative wind direction expressed
// in body axes, with zero torque.
type SimpleDrag struct {
	S  float64 // reference area (m²)
	Cd float64 // drag coefficient
}

// GetEffect implements the AeroEffect interface.
func (e SimpleDrag) GetEffect(airstate AirState, rates []float64, inputState []float64) (Force, Torque) {
	drag := airstate.Q * e.S * e.Cd
	sα, cα := math.Sincos(airstate.Alpha)
	sβ, cβ := math.Sincos(airstate.Beta)
	// Relative wind unit vector in body axes.
	return Force{-drag * cα * cβ, -drag * sβ, -drag * sα * cβ}, Torque{0, 0, 0}
}

// Thruster applies a body frame force along its axis, scaled by input channel
// 0 clamped to [0,1]. Torque is zero: the thrust line is through the centre
// of mass.
type Thruster struct {
	maxThrust float64
	axis      []float64
}

// NewThruster returns a Thruster producing up to maxThrust Newtons along the
// given body frame axis.
func NewThruster(maxThrust float64, axis []float64) *Thruster {
	return &Thruster{maxThrust: maxThrust, axis: unit(axis)}
}

// GetEffect implements the AeroEffect interface.
func (e *Thruster) GetEffect(airstate AirState, rates []float64, inputState []float64) (Force, Torque) {
	var throttle float64
	if len(inputState) > 0 {
		throttle = math.Min(math.Max(inputState[0], 0), 1)
	}
	thrust := throttle * e.maxThrust
	return Force{thrust * e.axis[0], thrust * e.axis[1], thrust * e.axis[2]}, Torque{0, 0, 0}
}
