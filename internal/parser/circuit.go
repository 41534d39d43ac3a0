// Package parser decodes circuit snapshots sent by the editor frontend.
// It handles JSON decoding and structural validation of the graph before
// the netlist pipeline runs.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/circuitsim/core/internal/models"
)

func ParseCircuit(data []byte) (*models.Circuit, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty circuit data")
	}

	var circuit models.Circuit
	if err := json.Unmarshal(data, &circuit); err != nil {
		return nil, fmt.Errorf("failed to unmarshal circuit: %w", err)
	}

	if err := checkStructure(&circuit); err != nil {
		return nil, err
	}

	return &circuit, nil
}

// checkStructure rejects snapshots the pipeline cannot interpret: unknown
// kinds, wrong terminal arity, duplicate ids, wires to unknown terminals.
// Electrical well-formedness (ground, connectivity) is the validator's job.
func checkStructure(circuit *models.Circuit) error {
	componentIDs := make(map[string]bool)
	terminals := make(map[string]bool)

	for _, comp := range circuit.Components {
		if comp.ID == "" {
			return fmt.Errorf("invalid circuit: component with empty id")
		}
		if componentIDs[comp.ID] {
			return fmt.Errorf("invalid circuit: duplicate component id %q", comp.ID)
		}
		componentIDs[comp.ID] = true

		want := comp.Kind.TerminalCount()
		if want < 0 {
			return fmt.Errorf("invalid circuit: component %q has unsupported kind %q", comp.ID, comp.Kind)
		}
		if len(comp.Terminals) != want {
			return fmt.Errorf("invalid circuit: component %q needs %d terminals, has %d", comp.ID, want, len(comp.Terminals))
		}

		for _, term := range comp.Terminals {
			if term == "" {
				return fmt.Errorf("invalid circuit: component %q has an empty terminal id", comp.ID)
			}
			if terminals[term] {
				return fmt.Errorf("invalid circuit: terminal %q belongs to more than one component", term)
			}
			terminals[term] = true
		}
	}

	wireIDs := make(map[string]bool)
	for _, wire := range circuit.Wires {
		if wire.ID != "" {
			if wireIDs[wire.ID] {
				return fmt.Errorf("invalid circuit: duplicate wire id %q", wire.ID)
			}
			wireIDs[wire.ID] = true
		}
		if !terminals[wire.Source] {
			return fmt.Errorf("invalid circuit: wire %q references unknown terminal %q", wire.ID, wire.Source)
		}
		if !terminals[wire.Target] {
			return fmt.Errorf("invalid circuit: wire %q references unknown terminal %q", wire.ID, wire.Target)
		}
	}

	return nil
}
