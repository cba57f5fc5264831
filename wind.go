package aerso

import (
	"math"
	"math/rand"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// ConstantWind is a WindModel returning a fixed wind vector regardless of
// position or time.
type ConstantWind struct {
	wind []float64
}

// NewConstantWind returns a ConstantWind for the given NED wind vector.
func NewConstantWind(wind []float64) *ConstantWind {
	return &ConstantWind{wind: []float64{wind[0], wind[1], wind[2]}}
}

// GetWind implements the WindModel interface.
func (c *ConstantWind) GetWind(position []float64) []float64 {
	return []float64{c.wind[0], c.wind[1], c.wind[2]}
}

// Step implements the WindModel interface. The field is stationary.
func (c *ConstantWind) Step(deltaT float64) {}

// ShearExponentTypical is the power law shear exponent for open terrain.
const ShearExponentTypical = 0.143

// PowerWind is a WindModel for a power law boundary layer profile:
// speed = uR·(z/zR)^alpha, blowing along a fixed compass bearing with zero
// vertical component.
//
// The vertical position coordinate is used as the height directly, with no
// sign adjustment for the down-positive world axis.
type PowerWind struct {
	uR      float64 // reference wind speed (m/s)
	zR      float64 // reference height (m)
	alpha   float64 // shear exponent
	bearing float64 // compass bearing (deg)
}

// NewPowerWind returns a PowerWind with the configured default shear exponent.
func NewPowerWind(uR, zR, bearing float64) *PowerWind {
	return NewPowerWindWithAlpha(uR, zR, bearing, aersoConfig().shearExponent)
}

// NewPowerWindWithAlpha returns a PowerWind with an explicit shear exponent.
func NewPowerWindWithAlpha(uR, zR, bearing, alpha float64) *PowerWind {
	return &PowerWind{uR: uR, zR: zR, alpha: alpha, bearing: bearing}
}

// GetWind implements the WindModel interface.
func (p *PowerWind) GetWind(position []float64) []float64 {
	speed := p.uR * math.Pow(position[2]/p.zR, p.alpha)
	s, c := math.Sincos(p.bearing * deg2rad)
	return []float64{speed * c, speed * s, 0}
}

// Step implements the WindModel interface. The profile is time invariant.
func (p *PowerWind) Step(deltaT float64) {}

// GustWind is a WindModel adding a first order Gauss-Markov gust to a mean
// wind vector. Step advances the gust state, so a GustWind must not be shared
// between concurrently stepped bodies.
type GustWind struct {
	mean  []float64
	tau   float64 // gust correlation time (s)
	noise *distmv.Normal
	gust  []float64
}

// NewGustWind returns a GustWind around the given mean NED wind. sigma sets
// the stationary standard deviation of each gust component and tau the gust
// correlation time in seconds.
func NewGustWind(mean []float64, sigma, tau float64, src *rand.Rand) *GustWind {
	cov := mat64.NewSymDense(3, []float64{
		sigma * sigma, 0, 0,
		0, sigma * sigma, 0,
		0, 0, sigma * sigma})
	noise, ok := distmv.NewNormal([]float64{0, 0, 0}, cov, src)
	if !ok {
		panic("NOK in Gaussian")
	}
	return &GustWind{
		mean:  []float64{mean[0], mean[1], mean[2]},
		tau:   tau,
		noise: noise,
		gust:  []float64{0, 0, 0},
	}
}

// GetWind implements the WindModel interface.
func (g *GustWind) GetWind(position []float64) []float64 {
	return []float64{g.mean[0] + g.gust[0], g.mean[1] + g.gust[1], g.mean[2] + g.gust[2]}
}

// Step implements the WindModel interface. The gust decays towards zero with
// time constant tau while fresh noise keeps the stationary variance at sigma².
func (g *GustWind) Step(deltaT float64) {
	decay := math.Exp(-deltaT / g.tau)
	diffusion := math.Sqrt(1 - decay*decay)
	w := g.noise.Rand(nil)
	for i := 0; i < 3; i++ {
		g.gust[i] = decay*g.gust[i] + diffusion*w[i]
	}
}
