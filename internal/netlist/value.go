// Package netlist turns a circuit snapshot into SPICE netlist text. It
// provides value parsing and formatting, node unification, element line
// emission, and graph validation. Every function is pure: no I/O, no shared
// state, safe to call from any request context.
package netlist

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/circuitsim/core/internal/models"
)

// Value is a parsed component value: magnitude in base units plus the
// human-facing unit symbol ("Ω", "F", ...), which SPICE tokens never carry.
type Value struct {
	Magnitude float64
	Unit      string
}

// prefix covers one SI prefix row: display rendering, SPICE token rendering,
// and the multiplier.
type prefix struct {
	display    string
	spice      string
	multiplier float64
}

// Ordered largest to smallest; formatters pick the first prefix that keeps
// the scaled magnitude at or above 1.
var prefixes = []prefix{
	{"G", "g", 1e9},
	{"M", "meg", 1e6},
	{"k", "k", 1e3},
	{"", "", 1},
	{"m", "m", 1e-3},
	{"µ", "u", 1e-6},
	{"n", "n", 1e-9},
	{"p", "p", 1e-12},
}

var prefixMultipliers = map[string]float64{
	"k": 1e3,
	"K": 1e3,
	"M": 1e6,
	"G": 1e9,
	"m": 1e-3,
	"u": 1e-6,
	"µ": 1e-6,
	"n": 1e-9,
	"p": 1e-12,
}

// Unit symbols stripped from SPICE tokens but preserved for display.
// Multi-rune symbols must precede any single rune they end with.
var unitSymbols = []string{"Hz", "ohm", "Ohm", "OHM", "Ω", "F", "H", "V", "A"}

// Lenient per-kind fallbacks: a typo in a value field must never block
// circuit entry. Callers wanting strictness use ParseValue directly.
var kindDefaults = map[models.ComponentKind]string{
	models.KindResistor:      "1k",
	models.KindCapacitor:     "1u",
	models.KindInductor:      "1m",
	models.KindVoltageSource: "5",
	models.KindCurrentSource: "1",
}

// ParseValue reads a human-entered value like "4.7k", "100nF" or "1kΩ".
// The number may carry a sign and fraction; whitespace before the suffix is
// tolerated. An unknown suffix is kept as the unit with multiplier 1.
func ParseValue(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, fmt.Errorf("empty value")
	}

	end := 0
	seenDigit := false
	for i, r := range s {
		if r == '+' || r == '-' {
			if i != 0 {
				break
			}
		} else if r == '.' || (r >= '0' && r <= '9') {
			if r != '.' {
				seenDigit = true
			}
		} else {
			break
		}
		end = i + len(string(r))
	}
	if !seenDigit {
		return Value{}, fmt.Errorf("invalid value format: %q", raw)
	}

	num, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid value format: %q", raw)
	}

	suffix := strings.TrimSpace(s[end:])
	multiplier, unit := splitSuffix(suffix)

	return Value{Magnitude: num * multiplier, Unit: unit}, nil
}

// splitSuffix separates an SI prefix from a trailing unit symbol.
// "kΩ" -> (1e3, "Ω"), "meg" -> (1e6, ""), "V" -> (1, "V").
func splitSuffix(suffix string) (float64, string) {
	if suffix == "" {
		return 1, ""
	}

	unit := ""
	for _, sym := range unitSymbols {
		if strings.HasSuffix(suffix, sym) {
			unit = sym
			suffix = strings.TrimSuffix(suffix, sym)
			break
		}
	}

	switch {
	case suffix == "":
		return 1, unit
	case strings.EqualFold(suffix, "meg"):
		return 1e6, unit
	case strings.EqualFold(suffix, "micro"):
		return 1e-6, unit
	}

	if m, ok := prefixMultipliers[suffix]; ok {
		return m, unit
	}

	// Unknown suffix: keep it visible rather than guessing a multiplier.
	return 1, suffix + unit
}

// FormatValue renders a value for display, choosing the largest prefix that
// keeps the scaled magnitude at or above 1, with up to two fractional digits
// and trailing zeros trimmed. format(parse("4.7k")) round-trips.
func FormatValue(v Value) string {
	if v.Magnitude == 0 {
		return "0" + v.Unit
	}
	p := pickPrefix(v.Magnitude)
	return formatScaled(v.Magnitude/p.multiplier) + p.display + v.Unit
}

// SpiceToken renders the value as a bare SPICE factor token ("4.7k",
// "1meg", "100n"); unit symbols never appear in element lines.
func SpiceToken(v Value) string {
	if v.Magnitude == 0 {
		return "0"
	}
	p := pickPrefix(v.Magnitude)
	return formatScaled(v.Magnitude/p.multiplier) + p.spice
}

// ComponentToken parses a raw attribute value and renders its SPICE token,
// substituting the kind-specific default when the input is unparsable.
func ComponentToken(raw string, kind models.ComponentKind) string {
	v, err := ParseValue(raw)
	if err != nil {
		if def, ok := kindDefaults[kind]; ok {
			return def
		}
		return "1"
	}
	return SpiceToken(v)
}

func pickPrefix(magnitude float64) prefix {
	abs := math.Abs(magnitude)
	for _, p := range prefixes {
		if abs/p.multiplier >= 1 {
			return p
		}
	}
	// Below a pico: stay in pico rather than inventing smaller prefixes.
	return prefixes[len(prefixes)-1]
}

func formatScaled(scaled float64) string {
	s := strconv.FormatFloat(scaled, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
