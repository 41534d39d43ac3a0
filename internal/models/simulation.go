// Package models defines the core data structures exchanged with the
// schematic editor frontend and the simulation pipeline. It includes the
// circuit snapshot types and the derived netlist/simulation result types.
package models

// Analysis selects the simulation to run on an emitted netlist.
// Parameter strings use SPICE value notation ("1ms", "1MHz").
type Analysis struct {
	Type   string `json:"type" validate:"required,oneof=dc ac transient"`
	Start  string `json:"start,omitempty"`
	Stop   string `json:"stop,omitempty"`
	Step   string `json:"step,omitempty"`
	End    string `json:"end,omitempty"`
	Points int    `json:"points,omitempty" validate:"omitempty,min=1"`
}

// NodeResult is the solved state of one electrical node, keyed by the same
// canonical node name used in the emitted netlist.
type NodeResult struct {
	Voltage float64 `json:"voltage"`
}

// ComponentResult is the solved state of one element, keyed by its emitted
// element name (R1, V1, ...).
type ComponentResult struct {
	Current float64 `json:"current"`
	Power   float64 `json:"power"`
}

// TransientSeries carries time-domain waveforms for transient analysis.
type TransientSeries struct {
	Time     []float64            `json:"time"`
	Voltages map[string][]float64 `json:"voltages"`
}

// SimulationResult is what the façade returns for every analysis, real or
// mock. Mock results are tagged so the UI can distinguish synthetic data.
type SimulationResult struct {
	ID         string                     `json:"id"`
	Type       string                     `json:"type"`
	Mock       bool                       `json:"mock"`
	Message    string                     `json:"message,omitempty"`
	Nodes      map[string]NodeResult      `json:"nodes"`
	Components map[string]ComponentResult `json:"components"`
	Series     *TransientSeries           `json:"series,omitempty"`
	Netlist    string                     `json:"netlist,omitempty"`
}
