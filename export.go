package aerso

import (
	"fmt"
	"os"
	"time"
)

// SimState stores a propagated state.
type SimState struct {
	DT    time.Time
	State StateVector
	Air   AirState
}

// ExportConfig configures the exporting of a propagation.
type ExportConfig struct {
	Filename     string
	AsCSV        bool
	Timestamp    bool
	CSVAppend    func(st SimState) string // Custom export (do not include leading comma)
	CSVAppendHdr func() string            // Header for the custom export
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// StreamSimStates streams the states from the channel to the configured files.
func StreamSimStates(conf ExportConfig, stateChan <-chan SimState) {
	var f *os.File
	for state := range stateChan {
		if !conf.AsCSV {
			continue
		}
		if f == nil {
			f = createCSVFile(conf, state.DT)
			hdr := "time,px,py,pz,u,v,w,qi,qj,qk,qw,p,q,r,alpha,beta,airspeed,dynp"
			if conf.CSVAppendHdr != nil {
				hdr += "," + conf.CSVAppendHdr()
			}
			f.WriteString(hdr + "\n")
		}
		row := state.DT.UTC().Format(time.RFC3339Nano)
		for _, val := range state.State {
			row += fmt.Sprintf(",%f", val)
		}
		row += fmt.Sprintf(",%f,%f,%f,%f", state.Air.Alpha, state.Air.Beta, state.Air.Airspeed, state.Air.Q)
		if conf.CSVAppend != nil {
			row += "," + conf.CSVAppend(state)
		}
		f.WriteString(row + "\n")
	}
	if f != nil {
		f.Close()
	}
}

func createCSVFile(conf ExportConfig, stamp time.Time) *os.File {
	name := conf.Filename
	if conf.Timestamp {
		name += "-" + stamp.UTC().Format("2006-01-02-15.04.05")
	}
	f, err := os.Create(fmt.Sprintf("%s/sim-%s.csv", aersoConfig().outputDir, name))
	if err != nil {
		panic(err)
	}
	fmt.Printf("Saving file to %s.\n", f.Name())
	return f
}
