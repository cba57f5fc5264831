package aerso

import "math"

// WindModel samples the wind experienced by a body. Both the position argument
// and the returned wind vector are in the North-East-Down world frame, in m/s.
type WindModel interface {
	// GetWind returns the wind at the specified world frame position.
	GetWind(position []float64) []float64
	// Step advances any time dependence of the model by deltaT seconds. It is
	// a no-op for stationary fields.
	Step(deltaT float64)
}

// DensityModel samples air density at a world frame position, in kg·m⁻³.
type DensityModel interface {
	GetDensity(position []float64) float64
}

// ISAStandardDensity is the International Standard Atmosphere sea level air
// density in kg·m⁻³.
const ISAStandardDensity = 1.225

// StandardDensity is the built-in DensityModel for ISA standard density at
// sea level. It does not vary density with altitude.
type StandardDensity struct{}

// GetDensity implements the DensityModel interface.
func (d StandardDensity) GetDensity(position []float64) float64 {
	return ISAStandardDensity
}

// AirState represents the aerodynamic state of a body. It is recomputed fresh
// on every query and never stored.
type AirState struct {
	Alpha    float64 // Angle of attack (rad)
	Beta     float64 // Angle of sideslip (rad)
	Airspeed float64 // Airspeed (m/s)
	Q        float64 // Dynamic pressure (Pa)
}

// AeroBody is a rigid body moving through an atmosphere. It owns the body
// along with the wind and density models used to derive its air state.
type AeroBody struct {
	Body         RigidBody
	windModel    WindModel
	densityModel DensityModel
}

// NewAeroBody returns an AeroBody with no wind and constant ISA standard sea
// level density.
func NewAeroBody(body RigidBody) *AeroBody {
	return NewAeroBodyWithWind(body, NewConstantWind([]float64{0, 0, 0}))
}

// NewAeroBodyWithWind returns an AeroBody with the given WindModel and
// constant ISA standard sea level density.
func NewAeroBodyWithWind(body RigidBody, windModel WindModel) *AeroBody {
	return NewAeroBodyWithModels(body, windModel, StandardDensity{})
}

// NewAeroBodyWithModels returns an AeroBody with the given WindModel and
// DensityModel.
func NewAeroBodyWithModels(body RigidBody, windModel WindModel, densityModel DensityModel) *AeroBody {
	return &AeroBody{Body: body, windModel: windModel, densityModel: densityModel}
}

// GetAirState returns the current aerodynamic state of the body: the angles
// of attack (alpha) and sideslip (beta), the airspeed and the dynamic
// pressure (q), calculated from the wind and density models.
func (a *AeroBody) GetAirState() AirState {
	position := a.Body.Position()
	worldWind := a.windModel.GetWind(position)
	bodyWind := MxV33(a.Body.StateVector().DCM(), worldWind)

	velocity := a.Body.Velocity()
	u := velocity[0] - bodyWind[0]
	v := velocity[1] - bodyWind[1]
	w := velocity[2] - bodyWind[2]

	airspeed := math.Sqrt(u*u + v*v + w*w)
	alpha := math.Atan2(w, u)
	var beta float64
	if airspeed != 0 {
		beta = math.Asin(v / airspeed)
	}
	q := 0.5 * a.densityModel.GetDensity(position) * airspeed * airspeed

	return AirState{Alpha: alpha, Beta: beta, Airspeed: airspeed, Q: q}
}

// Step propagates the body state and wind model by deltaT seconds under the
// supplied forces and torques.
func (a *AeroBody) Step(forces []Force, torques []Torque, deltaT float64) {
	a.windModel.Step(deltaT)
	a.Body.Step(forces, torques, deltaT)
}

// Acceleration returns the body frame acceleration at the start of the
// previous step. See Body.Acceleration.
func (a *AeroBody) Acceleration() []float64 {
	return a.Body.Acceleration()
}

// SetState sets the state vector of the underlying body.
func (a *AeroBody) SetState(newState StateVector) {
	a.Body.SetState(newState)
}

// Position implements the StateView interface.
func (a *AeroBody) Position() []float64 {
	return a.Body.Position()
}

// Velocity implements the StateView interface.
func (a *AeroBody) Velocity() []float64 {
	return a.Body.Velocity()
}

// VelocityInFrame implements the StateView interface.
func (a *AeroBody) VelocityInFrame(frame Frame) []float64 {
	return a.Body.VelocityInFrame(frame)
}

// Attitude implements the StateView interface.
func (a *AeroBody) Attitude() Quaternion {
	return a.Body.Attitude()
}

// Rates implements the StateView interface.
func (a *AeroBody) Rates() []float64 {
	return a.Body.Rates()
}

// RatesInFrame implements the StateView interface.
func (a *AeroBody) RatesInFrame(frame Frame) []float64 {
	return a.Body.RatesInFrame(frame)
}

// StateVector implements the StateView interface.
func (a *AeroBody) StateVector() StateVector {
	return a.Body.StateVector()
}
