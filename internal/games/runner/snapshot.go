package runner

import "time"

// Frame is a self-contained copy of everything a renderer needs.
// Hosts that draw outside the cell screen (e.g. a raster window) use it
// so they never hold references into the live simulation.
type Frame struct {
	State   State
	Elapsed time.Duration
	Speed   float64
}

// Snapshot returns a copy of the current simulation state.
func (g *Game) Snapshot() Frame {
	if g.sim == nil {
		return Frame{}
	}
	return Frame{
		State:   g.sim.State().Clone(),
		Elapsed: g.State().Elapsed,
		Speed:   g.sim.Speed(),
	}
}
