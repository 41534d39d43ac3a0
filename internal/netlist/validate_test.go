package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitsim/core/internal/models"
)

func TestValidate(t *testing.T) {
	t.Run("empty circuit returns exactly one error and no warnings", func(t *testing.T) {
		report := Validate(nil, nil)

		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "empty")
		assert.Empty(t, report.Warnings)
	})

	t.Run("missing ground is a warning, not an error", func(t *testing.T) {
		components := []models.ComponentInstance{
			resistor("r1", "t1", "t2"),
		}

		report := Validate(components, nil)

		assert.Empty(t, report.Errors)
		require.NotEmpty(t, report.Warnings)
		assert.Contains(t, report.Warnings[0], "ground")
	})

	t.Run("three resistors with no wires", func(t *testing.T) {
		components := []models.ComponentInstance{
			resistor("r1", "t1", "t2"),
			resistor("r2", "t3", "t4"),
			resistor("r3", "t5", "t6"),
		}

		report := Validate(components, nil)

		assert.Empty(t, report.Errors)
		require.Len(t, report.Warnings, 3)
		assert.Contains(t, report.Warnings[0], "ground")
		assert.Contains(t, report.Warnings[1], "wired")
		assert.Contains(t, report.Warnings[2], "3 component(s)")
	})

	t.Run("unconnected aggregate only reported above two components", func(t *testing.T) {
		components := []models.ComponentInstance{
			resistor("r1", "t1", "t2"),
			resistor("r2", "t3", "t4"),
		}

		report := Validate(components, nil)

		for _, w := range report.Warnings {
			assert.NotContains(t, w, "component(s)")
		}
	})

	t.Run("ground components excluded from unconnected count", func(t *testing.T) {
		components := []models.ComponentInstance{
			resistor("r1", "t1", "t2"),
			resistor("r2", "t3", "t4"),
			ground("g1", "t5"),
		}
		wires := []models.WireConnection{
			wire("t1", "t3"),
			wire("t2", "t4"),
		}

		report := Validate(components, wires)

		for _, w := range report.Warnings {
			assert.NotContains(t, w, "component(s)")
		}
	})

	t.Run("degree-1 terminal flags the component once", func(t *testing.T) {
		components := []models.ComponentInstance{
			resistor("r1", "t1", "t2"),
			resistor("r2", "t3", "t4"),
			ground("g1", "t5"),
		}
		// Both of r1's terminals have a single connection; r1 is
		// reported once.
		wires := []models.WireConnection{
			wire("t1", "t3"),
			wire("t2", "t4"),
		}

		report := Validate(components, wires)

		flagged := 0
		for _, w := range report.Warnings {
			if w == "r1 has a terminal with only one connection and may be floating" {
				flagged++
			}
		}
		assert.Equal(t, 1, flagged)
	})

	t.Run("floating warning uses the display label when present", func(t *testing.T) {
		components := []models.ComponentInstance{
			{
				ID:         "r1",
				Kind:       models.KindResistor,
				Terminals:  []string{"t1", "t2"},
				Attributes: map[string]any{"label": "Load"},
			},
			resistor("r2", "t3", "t4"),
		}
		wires := []models.WireConnection{
			wire("t1", "t3"),
		}

		report := Validate(components, wires)

		found := false
		for _, w := range report.Warnings {
			if w == "Load has a terminal with only one connection and may be floating" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("ground terminals never produce floating warnings", func(t *testing.T) {
		components := []models.ComponentInstance{
			resistor("r1", "t1", "t2"),
			ground("g1", "t3"),
		}
		wires := []models.WireConnection{
			wire("t1", "t2"),
			wire("t2", "t3"),
		}

		report := Validate(components, wires)

		for _, w := range report.Warnings {
			assert.NotContains(t, w, "g1")
		}
	})

	t.Run("all checks run and warnings keep check order", func(t *testing.T) {
		components := []models.ComponentInstance{
			resistor("r1", "t1", "t2"),
			resistor("r2", "t3", "t4"),
			resistor("r3", "t5", "t6"),
			resistor("r4", "t7", "t8"),
		}
		wires := []models.WireConnection{
			wire("t1", "t3"),
		}

		report := Validate(components, wires)

		assert.Empty(t, report.Errors)
		// no ground, unconnected aggregate (r3, r4), floating (r1, r2)
		require.Len(t, report.Warnings, 4)
		assert.Contains(t, report.Warnings[0], "ground")
		assert.Contains(t, report.Warnings[1], "2 component(s)")
		assert.Contains(t, report.Warnings[2], "r1")
		assert.Contains(t, report.Warnings[3], "r2")
	})

	t.Run("ground-only circuit proceeds with warnings only", func(t *testing.T) {
		components := []models.ComponentInstance{
			ground("g1", "t1"),
			ground("g2", "t2"),
		}

		report := Validate(components, nil)

		assert.Empty(t, report.Errors)
	})
}
