package netlist

import (
	"fmt"

	"github.com/circuitsim/core/internal/models"
)

// Validate inspects the raw snapshot and reports blocking errors and
// advisory warnings. It counts per-terminal wire degrees itself rather than
// reusing Unify, which only yields partition membership.
//
// An empty circuit is the single error and short-circuits every other check.
// The remaining checks are independent, all run, and append warnings in this
// fixed order: missing ground, zero wires, aggregate unconnected-component
// count, per-component floating terminals.
func Validate(components []models.ComponentInstance, wires []models.WireConnection) models.ValidationReport {
	report := models.ValidationReport{Errors: []string{}, Warnings: []string{}}

	if len(components) == 0 {
		report.Errors = append(report.Errors, "circuit is empty: place at least one component")
		return report
	}

	degrees := make(map[string]int)
	for _, wire := range wires {
		degrees[wire.Source]++
		degrees[wire.Target]++
	}

	hasGround := false
	for _, comp := range components {
		if comp.Kind == models.KindGround {
			hasGround = true
			break
		}
	}
	if !hasGround {
		report.Warnings = append(report.Warnings, "circuit has no ground reference; simulation needs a ground component")
	}

	if len(components) > 1 && len(wires) == 0 {
		report.Warnings = append(report.Warnings, "components are placed but nothing is wired together")
	}

	if len(components) > 2 {
		unconnected := 0
		for _, comp := range components {
			if comp.Kind == models.KindGround {
				continue
			}
			if !isWired(comp, degrees) {
				unconnected++
			}
		}
		if unconnected > 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%d component(s) are not connected to anything", unconnected))
		}
	}

	for _, comp := range components {
		if comp.Kind == models.KindGround {
			continue
		}
		for _, term := range comp.Terminals {
			if degrees[term] == 1 {
				report.Warnings = append(report.Warnings, fmt.Sprintf("%s has a terminal with only one connection and may be floating", comp.Label()))
				break
			}
		}
	}

	return report
}

func isWired(comp models.ComponentInstance, degrees map[string]int) bool {
	for _, term := range comp.Terminals {
		if degrees[term] > 0 {
			return true
		}
	}
	return false
}
