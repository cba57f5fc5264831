package aerso

import (
	"fmt"

	"github.com/ChristopherRabotin/ode"
	"github.com/gonum/matrix/mat64"
)

// Frame defines the reference frame a vector is expressed in.
type Frame uint8

const (
	// FrameBody is the frame fixed to and rotating with the body.
	FrameBody Frame = iota
	// FrameWorld is the North-East-Down world frame.
	FrameWorld
)

func (f Frame) String() string {
	switch f {
	case FrameBody:
		return "body"
	case FrameWorld:
		return "world"
	}
	panic("cannot stringify unknown frame")
}

// Force is an instantaneous body frame force in Newtons.
type Force []float64

// Torque is an instantaneous body frame torque in Newton meters.
type Torque []float64

// StateVector is the flattened body state in the order:
// [position(world), velocity(body), attitude quaternion(i,j,k,w), axis rates(body)].
type StateVector []float64

// NewStateVector assembles a state vector from its components.
func NewStateVector(position, velocity []float64, attitude Quaternion, rates []float64) StateVector {
	return StateVector{
		position[0], position[1], position[2],
		velocity[0], velocity[1], velocity[2],
		attitude.X, attitude.Y, attitude.Z, attitude.W,
		rates[0], rates[1], rates[2]}
}

// Position returns the world frame position component.
func (s StateVector) Position() []float64 {
	return []float64{s[0], s[1], s[2]}
}

// Velocity returns the body frame velocity component.
func (s StateVector) Velocity() []float64 {
	return []float64{s[3], s[4], s[5]}
}

// Attitude returns the attitude quaternion component.
func (s StateVector) Attitude() Quaternion {
	return Quaternion{s[6], s[7], s[8], s[9]}
}

// Rates returns the body frame axis rate component.
func (s StateVector) Rates() []float64 {
	return []float64{s[10], s[11], s[12]}
}

// DCM returns the world to body direction cosine matrix for this state.
func (s StateVector) DCM() *mat64.Dense {
	return s.Attitude().Unit().DCM()
}

// StateView provides read access to the kinematic state of a body, with
// vectors optionally expressed in a requested frame.
type StateView interface {
	// Position returns the world frame position.
	Position() []float64
	// Velocity returns the body frame velocity.
	Velocity() []float64
	// VelocityInFrame returns the velocity in the requested frame.
	VelocityInFrame(frame Frame) []float64
	// Attitude returns the attitude quaternion.
	Attitude() Quaternion
	// Rates returns the body frame axis rates.
	Rates() []float64
	// RatesInFrame returns the axis rates in the requested frame.
	RatesInFrame(frame Frame) []float64
	// StateVector returns the full flattened state.
	StateVector() StateVector
}

// RigidBody is the kinematic collaborator driven by the aerodynamic
// composition layer. Body is the built-in implementation.
type RigidBody interface {
	StateView
	// Step advances the state by deltaT seconds under the given body frame
	// forces and torques.
	Step(forces []Force, torques []Torque, deltaT float64)
	// Acceleration returns the body frame linear acceleration at the start of
	// the previous step.
	Acceleration() []float64
	// SetState replaces the full state vector.
	SetState(newState StateVector)
}

// Body is a six degree of freedom rigid body. Stepping integrates the
// equations of motion with a fixed step RK4.
type Body struct {
	mass       float64
	inertia    *mat64.Dense
	inertiaInv *mat64.Dense
	state      StateVector
	accel      []float64
	force      []float64 // aggregate body frame force for the step in progress
	torque     []float64
	stepSize   float64
}

// NewBody returns a Body with the given mass (kg), inertia tensor (kg·m²) and
// initial state.
func NewBody(mass float64, inertia *mat64.Dense, position, velocity []float64, attitude Quaternion, rates []float64) *Body {
	var inv mat64.Dense
	if err := inv.Inverse(inertia); err != nil {
		panic(fmt.Errorf("singular inertia tensor: %s", err))
	}
	return &Body{
		mass:       mass,
		inertia:    inertia,
		inertiaInv: &inv,
		state:      NewStateVector(position, velocity, attitude.Unit(), rates),
		accel:      []float64{0, 0, 0},
	}
}

// Position implements the StateView interface.
func (b *Body) Position() []float64 {
	return b.state.Position()
}

// Velocity implements the StateView interface.
func (b *Body) Velocity() []float64 {
	return b.state.Velocity()
}

// VelocityInFrame implements the StateView interface.
func (b *Body) VelocityInFrame(frame Frame) []float64 {
	if frame == FrameWorld {
		return MtxV33(b.state.DCM(), b.state.Velocity())
	}
	return b.state.Velocity()
}

// Attitude implements the StateView interface.
func (b *Body) Attitude() Quaternion {
	return b.state.Attitude()
}

// Rates implements the StateView interface.
func (b *Body) Rates() []float64 {
	return b.state.Rates()
}

// RatesInFrame implements the StateView interface.
func (b *Body) RatesInFrame(frame Frame) []float64 {
	if frame == FrameWorld {
		return MtxV33(b.state.DCM(), b.state.Rates())
	}
	return b.state.Rates()
}

// StateVector implements the StateView interface.
func (b *Body) StateVector() StateVector {
	out := make(StateVector, len(b.state))
	copy(out, b.state)
	return out
}

// SetState replaces the state vector. The attitude quaternion is renormalized.
func (b *Body) SetState(newState StateVector) {
	b.state = make(StateVector, len(newState))
	copy(b.state, newState)
	b.normalizeAttitude()
}

// Acceleration returns the body frame linear acceleration computed at the
// start of the previous step. It is zero before the first step.
func (b *Body) Acceleration() []float64 {
	return []float64{b.accel[0], b.accel[1], b.accel[2]}
}

// Step sums the body frame forces and torques and advances the state by
// deltaT seconds.
func (b *Body) Step(forces []Force, torques []Torque, deltaT float64) {
	b.force = []float64{0, 0, 0}
	for _, f := range forces {
		addTo(b.force, f)
	}
	b.torque = []float64{0, 0, 0}
	for _, t := range torques {
		addTo(b.torque, t)
	}
	v := b.state.Velocity()
	ω := b.state.Rates()
	coriolis := cross(ω, v)
	for i := 0; i < 3; i++ {
		b.accel[i] = b.force[i]/b.mass - coriolis[i]
	}
	b.stepSize = deltaT
	ode.NewRK4(0, deltaT, bodyIntegration{b}).Solve()
}

// bodyIntegration adapts a Body to the integrator. The adapter is needed
// because the integrator and RigidBody both name a SetState method.
type bodyIntegration struct {
	b *Body
}

// GetState implements the ode.Integrable interface.
func (bi bodyIntegration) GetState() []float64 {
	s := make([]float64, len(bi.b.state))
	copy(s, bi.b.state)
	return s
}

// SetState implements the ode.Integrable interface.
func (bi bodyIntegration) SetState(t float64, s []float64) {
	copy(bi.b.state, s)
	bi.b.normalizeAttitude()
}

// Stop implements the stop call of the integrator. A step is a single RK4
// evaluation over the full deltaT.
func (bi bodyIntegration) Stop(t float64) bool {
	return t >= bi.b.stepSize-1e-12
}

// Func implements the integration function: ṗ = Cᵀv, v̇ = F/m − ω×v,
// q̇ = ½q⊗ω, ω̇ = J⁻¹(τ − ω×Jω).
func (bi bodyIntegration) Func(t float64, f []float64) (fDot []float64) {
	b := bi.b
	fDot = make([]float64, 13)
	v := []float64{f[3], f[4], f[5]}
	q := Quaternion{f[6], f[7], f[8], f[9]}.Unit()
	ω := []float64{f[10], f[11], f[12]}

	pDot := MtxV33(q.DCM(), v)
	coriolis := cross(ω, v)
	qDot := q.RatesDot(ω)
	Jω := MxV33(b.inertia, ω)
	gyro := cross(ω, Jω)
	ωDot := MxV33(b.inertiaInv, []float64{b.torque[0] - gyro[0], b.torque[1] - gyro[1], b.torque[2] - gyro[2]})

	for i := 0; i < 3; i++ {
		fDot[i] = pDot[i]
		fDot[i+3] = b.force[i]/b.mass - coriolis[i]
		fDot[i+10] = ωDot[i]
	}
	fDot[6] = qDot.X
	fDot[7] = qDot.Y
	fDot[8] = qDot.Z
	fDot[9] = qDot.W
	return
}

func (b *Body) normalizeAttitude() {
	q := b.state.Attitude().Unit()
	b.state[6] = q.X
	b.state[7] = q.Y
	b.state[8] = q.Z
	b.state[9] = q.W
}
