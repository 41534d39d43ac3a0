// Package models defines the core data structures exchanged with the
// schematic editor frontend and the simulation pipeline. It includes the
// circuit snapshot types and the derived netlist/simulation result types.
package models

// ComponentKind enumerates the component types the editor can place.
type ComponentKind string

const (
	KindResistor      ComponentKind = "resistor"
	KindCapacitor     ComponentKind = "capacitor"
	KindInductor      ComponentKind = "inductor"
	KindVoltageSource ComponentKind = "voltage_source"
	KindCurrentSource ComponentKind = "current_source"
	KindDiode         ComponentKind = "diode"
	KindGround        ComponentKind = "ground"
)

// TerminalCount returns the number of terminals a component of this kind
// must expose, or -1 for unknown kinds.
func (k ComponentKind) TerminalCount() int {
	switch k {
	case KindResistor, KindCapacitor, KindInductor, KindVoltageSource, KindCurrentSource, KindDiode:
		return 2
	case KindGround:
		return 1
	}
	return -1
}

// ComponentInstance is one placed component. Terminal identifiers are opaque
// and unique across the whole circuit; wires reference them directly.
// Position and styling never reach the backend.
type ComponentInstance struct {
	ID         string         `json:"id"`
	Kind       ComponentKind  `json:"kind"`
	Terminals  []string       `json:"terminals"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Attr returns a string attribute, or "" when absent or not a string.
func (c ComponentInstance) Attr(key string) string {
	if c.Attributes == nil {
		return ""
	}
	if s, ok := c.Attributes[key].(string); ok {
		return s
	}
	return ""
}

// Label returns the user-facing name for validation messages: the "label"
// attribute when present, else the component id.
func (c ComponentInstance) Label() string {
	if l := c.Attr("label"); l != "" {
		return l
	}
	return c.ID
}

// WireConnection joins exactly two terminals. Source/target are bookkeeping
// only; electrically the wire is undirected.
type WireConnection struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Circuit is a consistent snapshot of the editor graph. The pipeline only
// ever reads it; callers must validate and emit against the same snapshot.
type Circuit struct {
	Components []ComponentInstance `json:"components"`
	Wires      []WireConnection    `json:"wires"`
}

// ValidationReport lists blocking errors and advisory warnings for a
// snapshot. Errors must gate simulation; warnings never do.
type ValidationReport struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK reports whether simulation may proceed.
func (r ValidationReport) OK() bool {
	return len(r.Errors) == 0
}
