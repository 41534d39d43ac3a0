// Package simulation hands emitted netlists to an external SPICE engine
// (ngspice in batch mode) and returns structured results keyed by the same
// canonical node and element names used in the netlist text. When the engine
// is unavailable, times out, or crashes, it falls back to a deterministic
// mock result flagged so the UI can tell synthetic data apart.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/circuitsim/core/internal/models"
	"github.com/circuitsim/core/internal/netlist"
)

const DefaultTimeout = 10 * time.Second

type Engine struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewEngine wires a runner for the engine binary at path. An empty path
// means no engine is installed and every request gets a mock result.
func NewEngine(path string, timeout time.Duration, logger *slog.Logger) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{path: path, timeout: timeout, logger: logger}
}

// BuildDeck composes the complete input deck: the emitted netlist, the
// static model block, the analysis card, and ".end".
func BuildDeck(netlistText string, analysis models.Analysis) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(netlistText, "\n"))
	b.WriteString("\n")
	b.WriteString(netlist.ModelBlock())
	b.WriteString("\n")
	b.WriteString(analysisCard(analysis))
	b.WriteString("\n.end\n")
	return b.String()
}

func analysisCard(analysis models.Analysis) string {
	switch strings.ToLower(analysis.Type) {
	case "transient":
		step := analysis.Step
		if step == "" {
			step = "1ms"
		}
		end := analysis.End
		if end == "" {
			end = "100ms"
		}
		return fmt.Sprintf(".tran %s %s", step, end)
	case "ac":
		points := analysis.Points
		if points <= 0 {
			points = 100
		}
		start := analysis.Start
		if start == "" {
			start = "1Hz"
		}
		stop := analysis.Stop
		if stop == "" {
			stop = "1MHz"
		}
		return fmt.Sprintf(".ac dec %d %s %s", points, start, stop)
	default:
		return ".op"
	}
}

// Simulate runs the analysis and always returns a result: engine-missing,
// timeout, and crash all collapse into the mock fallback.
func (e *Engine) Simulate(ctx context.Context, netlistText string, analysis models.Analysis) *models.SimulationResult {
	id := uuid.NewString()
	deck := BuildDeck(netlistText, analysis)

	if e.path == "" {
		return mockResult(id, netlistText, analysis, "simulation engine not configured")
	}
	if _, err := exec.LookPath(e.path); err != nil {
		e.logger.Warn("simulation engine not found", "path", e.path, "error", err)
		return mockResult(id, netlistText, analysis, "simulation engine not installed")
	}

	output, err := e.run(ctx, deck)
	if err != nil {
		e.logger.Warn("simulation engine run failed", "id", id, "error", err)
		return mockResult(id, netlistText, analysis, "simulation engine failed")
	}

	result := parseBatchOutput(output)
	result.ID = id
	result.Type = strings.ToLower(analysis.Type)
	result.Netlist = deck
	return result
}

func (e *Engine) run(ctx context.Context, deck string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "circuitsim-*")
	if err != nil {
		return "", fmt.Errorf("creating deck dir: %w", err)
	}
	defer os.RemoveAll(dir)

	deckPath := filepath.Join(dir, "deck.cir")
	if err := os.WriteFile(deckPath, []byte(deck), 0o600); err != nil {
		return "", fmt.Errorf("writing deck: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.path, "-b", deckPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("running engine: %w", err)
	}
	return string(output), nil
}

var (
	nodeVoltageRe   = regexp.MustCompile(`(?i)v\(([^)]+)\)\s*=\s*([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)`)
	branchCurrentRe = regexp.MustCompile(`(?i)([a-z][a-z0-9_]*)#branch\s*=\s*([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)`)
)

// parseBatchOutput extracts node voltages and branch currents from ngspice
// batch output. Power is only filled where both figures are known.
func parseBatchOutput(output string) *models.SimulationResult {
	result := &models.SimulationResult{
		Nodes:      make(map[string]models.NodeResult),
		Components: make(map[string]models.ComponentResult),
	}

	for _, m := range nodeVoltageRe.FindAllStringSubmatch(output, -1) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		result.Nodes[strings.ToUpper(m[1])] = models.NodeResult{Voltage: v}
	}

	for _, m := range branchCurrentRe.FindAllStringSubmatch(output, -1) {
		i, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		result.Components[strings.ToUpper(m[1])] = models.ComponentResult{Current: i}
	}

	return result
}
