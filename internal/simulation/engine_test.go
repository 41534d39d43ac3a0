package simulation

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitsim/core/internal/models"
)

const sampleNetlist = `* CircuitSim generated netlist
* generated 2025-06-01T12:00:00Z

V1 1 0 DC 5
R1 1 0 1k
`

func testEngine(path string) *Engine {
	return NewEngine(path, time.Second, slog.Default())
}

func TestBuildDeck(t *testing.T) {
	t.Run("dc appends op card", func(t *testing.T) {
		deck := BuildDeck(sampleNetlist, models.Analysis{Type: "dc"})

		assert.Contains(t, deck, "V1 1 0 DC 5")
		assert.Contains(t, deck, ".model DIODE_MODEL")
		assert.Contains(t, deck, "\n.op\n")
		assert.True(t, len(deck) > 0 && deck[len(deck)-1] == '\n')
		assert.Contains(t, deck, "\n.end\n")
	})

	t.Run("transient uses step and end with defaults", func(t *testing.T) {
		deck := BuildDeck(sampleNetlist, models.Analysis{Type: "transient", Step: "10us", End: "5ms"})
		assert.Contains(t, deck, ".tran 10us 5ms")

		deck = BuildDeck(sampleNetlist, models.Analysis{Type: "transient"})
		assert.Contains(t, deck, ".tran 1ms 100ms")
	})

	t.Run("ac uses decade sweep with defaults", func(t *testing.T) {
		deck := BuildDeck(sampleNetlist, models.Analysis{Type: "ac", Start: "10Hz", Stop: "100kHz", Points: 20})
		assert.Contains(t, deck, ".ac dec 20 10Hz 100kHz")

		deck = BuildDeck(sampleNetlist, models.Analysis{Type: "ac"})
		assert.Contains(t, deck, ".ac dec 100 1Hz 1MHz")
	})
}

func TestParseBatchOutput(t *testing.T) {
	t.Run("extracts node voltages and branch currents", func(t *testing.T) {
		output := `Note: No compatibility mode selected!

No. of Data Rows : 1
v(1) = 5.000000e+00
v(2) = 2.500000e+00
v1#branch = -5.00000e-03
`

		result := parseBatchOutput(output)

		require.Contains(t, result.Nodes, "1")
		assert.InDelta(t, 5.0, result.Nodes["1"].Voltage, 1e-9)
		assert.InDelta(t, 2.5, result.Nodes["2"].Voltage, 1e-9)
		require.Contains(t, result.Components, "V1")
		assert.InDelta(t, -0.005, result.Components["V1"].Current, 1e-9)
	})

	t.Run("empty output yields empty maps", func(t *testing.T) {
		result := parseBatchOutput("")
		assert.Empty(t, result.Nodes)
		assert.Empty(t, result.Components)
	})
}

func TestSimulateFallsBackToMock(t *testing.T) {
	t.Run("unconfigured engine returns mock", func(t *testing.T) {
		result := testEngine("").Simulate(context.Background(), sampleNetlist, models.Analysis{Type: "dc"})

		assert.True(t, result.Mock)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, "dc", result.Type)
		assert.Contains(t, result.Message, "mock")
	})

	t.Run("missing binary returns mock", func(t *testing.T) {
		result := testEngine("/nonexistent/ngspice").Simulate(context.Background(), sampleNetlist, models.Analysis{Type: "dc"})

		assert.True(t, result.Mock)
	})
}

func TestMockResult(t *testing.T) {
	t.Run("keys match the netlist's canonical names", func(t *testing.T) {
		result := mockResult("id-1", sampleNetlist, models.Analysis{Type: "dc"}, "engine not configured")

		assert.Contains(t, result.Nodes, "0")
		assert.Contains(t, result.Nodes, "1")
		assert.Contains(t, result.Components, "V1")
		assert.Contains(t, result.Components, "R1")
	})

	t.Run("node voltages derive from the first source", func(t *testing.T) {
		result := mockResult("id-1", sampleNetlist, models.Analysis{Type: "dc"}, "x")

		assert.Equal(t, 0.0, result.Nodes["0"].Voltage)
		assert.Equal(t, 5.0, result.Nodes["1"].Voltage)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first := mockResult("id", sampleNetlist, models.Analysis{Type: "dc"}, "x")
		second := mockResult("id", sampleNetlist, models.Analysis{Type: "dc"}, "x")

		assert.Equal(t, first, second)
	})

	t.Run("voltage source current is negative", func(t *testing.T) {
		result := mockResult("id", sampleNetlist, models.Analysis{Type: "dc"}, "x")

		assert.Negative(t, result.Components["V1"].Current)
		assert.Positive(t, result.Components["R1"].Current)
	})

	t.Run("transient carries waveform series", func(t *testing.T) {
		result := mockResult("id", sampleNetlist, models.Analysis{Type: "transient"}, "x")

		require.NotNil(t, result.Series)
		assert.Len(t, result.Series.Time, 100)
		require.Contains(t, result.Series.Voltages, "1")
		assert.Len(t, result.Series.Voltages["1"], 100)
		// First node holds the source value for the whole window.
		assert.Equal(t, 5.0, result.Series.Voltages["1"][0])
		assert.Equal(t, 5.0, result.Series.Voltages["1"][99])
	})

	t.Run("dc has no series", func(t *testing.T) {
		result := mockResult("id", sampleNetlist, models.Analysis{Type: "dc"}, "x")
		assert.Nil(t, result.Series)
	})

	t.Run("empty analysis type defaults to dc", func(t *testing.T) {
		result := mockResult("id", sampleNetlist, models.Analysis{}, "x")
		assert.Equal(t, "dc", result.Type)
	})
}

func TestScanElements(t *testing.T) {
	t.Run("skips comments, dot cards and blanks", func(t *testing.T) {
		elements := scanElements(sampleNetlist + ".op\n.end\n")

		require.Len(t, elements, 2)
		assert.Equal(t, "V1", elements[0].name)
		assert.Equal(t, []string{"1", "0"}, elements[0].nodes)
		assert.Equal(t, "R1", elements[1].name)
	})
}
