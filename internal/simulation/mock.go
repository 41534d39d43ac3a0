package simulation

import (
	"math"
	"strings"

	"github.com/circuitsim/core/internal/models"
	"github.com/circuitsim/core/internal/netlist"
)

// deckElement is one element card scanned back out of netlist text, used to
// key mock results by the same names a real engine run would report.
type deckElement struct {
	name   string
	nodes  []string
	fields []string
}

// scanElements reads element cards from netlist text, skipping comments,
// dot cards, and blank lines.
func scanElements(netlistText string) []deckElement {
	var elements []deckElement
	for _, line := range strings.Split(netlistText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, ".") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		elements = append(elements, deckElement{
			name:   fields[0],
			nodes:  fields[1:3],
			fields: fields,
		})
	}
	return elements
}

// mockResult builds a deterministic synthetic result from the netlist text
// alone. Node voltages halve per discovered node starting from the first
// source's value, so repeated calls on the same netlist agree exactly.
func mockResult(id, netlistText string, analysis models.Analysis, reason string) *models.SimulationResult {
	elements := scanElements(netlistText)

	sourceVoltage := 5.0
	for _, el := range elements {
		if strings.HasPrefix(strings.ToUpper(el.name), "V") && len(el.fields) >= 5 {
			if v, err := netlist.ParseValue(el.fields[4]); err == nil {
				sourceVoltage = v.Magnitude
			}
			break
		}
	}

	var nodeOrder []string
	seen := map[string]bool{"0": true}
	for _, el := range elements {
		for _, node := range el.nodes {
			if !seen[node] {
				seen[node] = true
				nodeOrder = append(nodeOrder, node)
			}
		}
	}

	nodes := map[string]models.NodeResult{"0": {Voltage: 0}}
	voltage := sourceVoltage
	for _, node := range nodeOrder {
		nodes[node] = models.NodeResult{Voltage: voltage}
		voltage /= 2
	}

	components := make(map[string]models.ComponentResult)
	for _, el := range elements {
		current := sourceVoltage / 1e4
		if strings.HasPrefix(strings.ToUpper(el.name), "V") {
			current = -current
		}
		drop := nodes[el.nodes[0]].Voltage - nodes[el.nodes[1]].Voltage
		components[el.name] = models.ComponentResult{
			Current: current,
			Power:   math.Abs(drop * current),
		}
	}

	result := &models.SimulationResult{
		ID:         id,
		Type:       strings.ToLower(analysis.Type),
		Mock:       true,
		Message:    reason + "; showing mock data",
		Nodes:      nodes,
		Components: components,
		Netlist:    netlistText,
	}
	if result.Type == "" {
		result.Type = "dc"
	}

	if result.Type == "transient" {
		result.Series = mockSeries(nodeOrder, sourceVoltage)
	}

	return result
}

// mockSeries fakes a 100ms charge-up: the first node holds the source value,
// the rest rise exponentially with a 10ms time constant.
func mockSeries(nodeOrder []string, sourceVoltage float64) *models.TransientSeries {
	const points = 100
	const duration = 0.1
	const tau = 0.01

	series := &models.TransientSeries{
		Time:     make([]float64, points),
		Voltages: make(map[string][]float64, len(nodeOrder)),
	}
	for i := range series.Time {
		series.Time[i] = duration * float64(i) / float64(points-1)
	}

	for idx, node := range nodeOrder {
		samples := make([]float64, points)
		for i, t := range series.Time {
			if idx == 0 {
				samples[i] = sourceVoltage
			} else {
				samples[i] = sourceVoltage / 2 * (1 - math.Exp(-t/tau))
			}
		}
		series.Voltages[node] = samples
	}

	return series
}
