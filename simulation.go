package aerso

import (
	"sync"
	"time"
)

const (
	// StepSize is the default step size of propagation.
	StepSize = 10 * time.Millisecond
)

var wg sync.WaitGroup

/* Handles the flight dynamics propagations. */

// ControlFunc supplies the control input vector for a given simulation time.
type ControlFunc func(dt time.Time) []float64

// Simulation drives an AffectedBody over a span of simulation time.
type Simulation struct {
	Vehicle                    *AffectedBody // As pointer because the vehicle state changes during propagation.
	StartDT, StopDT, CurrentDT time.Time
	control                    ControlFunc
	step                       time.Duration // time step
	stopChan                   chan (bool)
	histChan                   chan<- (SimState)
	done                       bool
}

// NewSimulation is the same as NewPreciseSimulation with the default step size.
func NewSimulation(vehicle *AffectedBody, start, end time.Time, control ControlFunc, conf ExportConfig) *Simulation {
	return NewPreciseSimulation(vehicle, start, end, control, StepSize, conf)
}

// NewPreciseSimulation returns a new Simulation instance with custom provided time step.
func NewPreciseSimulation(vehicle *AffectedBody, start, end time.Time, control ControlFunc, step time.Duration, conf ExportConfig) *Simulation {
	// If no export is configured, then no output will be written.
	var histChan chan (SimState)
	if !conf.IsUseless() {
		histChan = make(chan (SimState), 1000) // a 1k entry buffer
		wg.Add(1)
		go func() {
			defer wg.Done()
			StreamSimStates(conf, histChan)
		}()
	} else {
		histChan = nil
	}
	if start.Location() != time.UTC {
		start = start.UTC()
	}
	if end.Location() != time.UTC {
		end = end.UTC()
	}

	s := &Simulation{vehicle, start, end, start, control, step, make(chan (bool), 1), histChan, false}
	// Write the first data point.
	if histChan != nil {
		histChan <- SimState{s.CurrentDT, vehicle.StateVector(), vehicle.Body.GetAirState()}
	}

	if end.Before(start) {
		vehicle.logger.Log("level", "warning", "subsys", "sim", "message", "no end date")
	}

	return s
}

// LogStatus returns the status of the propagation and vehicle.
func (s *Simulation) LogStatus() {
	airstate := s.Vehicle.Body.GetAirState()
	s.Vehicle.logger.Log("level", "info", "subsys", "sim", "date", s.CurrentDT, "airspeed(m/s)", airstate.Airspeed, "alt(m)", -s.Vehicle.Position()[2])
}

// PropagateUntil propagates until the given time is reached.
func (s *Simulation) PropagateUntil(dt time.Time) {
	s.StopDT = dt
	s.Propagate()
}

// Propagate starts the propagation.
func (s *Simulation) Propagate() {
	// Add a ticker status report based on the duration of the simulation.
	s.LogStatus()
	ticker := time.NewTicker(10 * time.Second)
	go func() {
		for range ticker.C {
			if s.done {
				break
			}
			s.LogStatus()
		}
	}()
	for {
		select {
		case <-s.stopChan:
			s.done = true // Stop because there is a request to stop.
		default:
		}
		if s.done || s.CurrentDT.Sub(s.StopDT).Nanoseconds() >= 0 {
			break // We've reached the end of the simulation.
		}
		var input []float64
		if s.control != nil {
			input = s.control(s.CurrentDT)
		}
		s.Vehicle.Step(s.step.Seconds(), input)
		s.CurrentDT = s.CurrentDT.Add(s.step)
		if s.histChan != nil {
			s.histChan <- SimState{s.CurrentDT, s.Vehicle.StateVector(), s.Vehicle.Body.GetAirState()}
		}
	}
	s.done = true
	if s.histChan != nil {
		close(s.histChan)
	}
	s.LogStatus()
	s.Vehicle.logger.Log("level", "notice", "subsys", "sim", "status", "finished", "duration", s.CurrentDT.Sub(s.StartDT).String())
	wg.Wait() // Don't return until we're done writing all the files.
}

// StopPropagation is used to stop the propagation before it is completed.
func (s *Simulation) StopPropagation() {
	s.stopChan <- true
}
