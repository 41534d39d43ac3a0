package netlist

import (
	"strconv"

	"github.com/circuitsim/core/internal/models"
)

// disjointSet is a union-find over terminal ids with path compression.
type disjointSet struct {
	parent map[string]string
}

func newDisjointSet() *disjointSet {
	return &disjointSet{parent: make(map[string]string)}
}

func (d *disjointSet) add(x string) {
	if _, ok := d.parent[x]; !ok {
		d.parent[x] = x
	}
}

func (d *disjointSet) find(x string) string {
	d.add(x)
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSet) union(a, b string) {
	ra, rb := d.find(a), d.find(b)
	if ra != rb {
		d.parent[rb] = ra
	}
}

// Unify partitions terminals into electrical nodes and names each partition.
//
// Wires union their two endpoints; every ground-component terminal is forced
// into one reserved partition named "0" regardless of wiring. All other
// partitions get names "1", "2", ... in the order their terminals are first
// encountered in a single ordered scan of components (outer) × terminals
// (inner), so identical input ordering yields byte-identical netlists.
//
// A terminal with no wires keeps its own singleton node; it is never
// dropped. When the circuit has no ground component, no partition is forced
// to "0" — callers must consult Validate before trusting the emitted netlist.
func Unify(components []models.ComponentInstance, wires []models.WireConnection) map[string]string {
	set := newDisjointSet()

	for _, comp := range components {
		for _, term := range comp.Terminals {
			set.add(term)
		}
	}

	for _, wire := range wires {
		set.union(wire.Source, wire.Target)
	}

	groundRoot := ""
	for _, comp := range components {
		if comp.Kind != models.KindGround {
			continue
		}
		for _, term := range comp.Terminals {
			if groundRoot == "" {
				groundRoot = term
			} else {
				set.union(groundRoot, term)
			}
		}
	}
	if groundRoot != "" {
		groundRoot = set.find(groundRoot)
	}

	names := make(map[string]string)
	mapping := make(map[string]string)
	counter := 0

	for _, comp := range components {
		for _, term := range comp.Terminals {
			root := set.find(term)
			name, ok := names[root]
			if !ok {
				if groundRoot != "" && root == groundRoot {
					name = "0"
				} else {
					counter++
					name = strconv.Itoa(counter)
				}
				names[root] = name
			}
			mapping[term] = name
		}
	}

	return mapping
}
