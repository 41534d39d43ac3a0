package netlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/circuitsim/core/internal/models"
)

// DefaultTitle is the header comment used when callers do not set one.
const DefaultTitle = "CircuitSim generated netlist"

var kindPrefixes = map[models.ComponentKind]string{
	models.KindResistor:      "R",
	models.KindCapacitor:     "C",
	models.KindInductor:      "L",
	models.KindVoltageSource: "V",
	models.KindCurrentSource: "I",
	models.KindDiode:         "D",
}

// EmitOptions control the fixed header. Timestamp is an explicit input so
// emission stays deterministic; a zero Timestamp means time.Now.
type EmitOptions struct {
	Title     string
	Timestamp time.Time
}

// Emit produces the netlist lines for a snapshot: two header comments, a
// blank line, one element line per non-ground component in input order, and
// a trailing blank line.
//
// Element names concatenate the kind's letter prefix with a 1-based counter
// scoped to that kind (R1, R2, C1, ...), counting in emission order. Ground
// components emit nothing; they only shape node unification. A terminal
// missing from the mapping renders as "0" as a last-resort fallback.
func Emit(components []models.ComponentInstance, nodes map[string]string, opts EmitOptions) []string {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	lines := []string{
		"* " + title,
		"* generated " + ts.UTC().Format(time.RFC3339),
		"",
	}

	counters := make(map[models.ComponentKind]int)
	for _, comp := range components {
		if comp.Kind == models.KindGround {
			continue
		}
		counters[comp.Kind]++
		name := fmt.Sprintf("%s%d", kindPrefixes[comp.Kind], counters[comp.Kind])
		n1 := nodeName(nodes, comp.Terminals[0])
		n2 := nodeName(nodes, comp.Terminals[1])
		lines = append(lines, fmt.Sprintf("%s %s %s %s", name, n1, n2, elementParams(comp)))
	}

	return append(lines, "")
}

// Render joins netlist lines into the final text.
func Render(lines []string) string {
	return strings.Join(lines, "\n")
}

func nodeName(nodes map[string]string, terminal string) string {
	if name, ok := nodes[terminal]; ok {
		return name
	}
	return "0"
}

func elementParams(comp models.ComponentInstance) string {
	switch comp.Kind {
	case models.KindVoltageSource:
		token := ComponentToken(comp.Attr("value"), comp.Kind)
		if strings.EqualFold(comp.Attr("sourceType"), "AC") {
			// Trailing 0 is a fixed phase placeholder.
			return fmt.Sprintf("AC %s 0", token)
		}
		return "DC " + token
	case models.KindCurrentSource:
		return "DC " + ComponentToken(comp.Attr("value"), comp.Kind)
	case models.KindDiode:
		if strings.EqualFold(comp.Attr("type"), "LED") {
			return "LED_MODEL"
		}
		return "DIODE_MODEL"
	default:
		return ComponentToken(comp.Attr("value"), comp.Kind)
	}
}

// ModelBlock returns the static .model cards referenced by emitted diode
// lines, plus generic BJT models. It never depends on circuit content and is
// kept out of Emit so callers control deck composition.
func ModelBlock() string {
	return strings.Join([]string{
		".model DIODE_MODEL D(is=1e-14 n=1.0)",
		".model LED_MODEL D(is=1e-18 n=1.8 rs=10)",
		".model NPN_MODEL NPN(bf=100)",
		".model PNP_MODEL PNP(bf=100)",
	}, "\n")
}
