// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"io"
	"net/http"

	"github.com/circuitsim/core/internal/models"
	"github.com/circuitsim/core/internal/netlist"
	"github.com/circuitsim/core/internal/parser"
)

type NetlistResponse struct {
	Netlist string                  `json:"netlist"`
	Models  string                  `json:"models"`
	Report  models.ValidationReport `json:"report"`
}

// NetlistHandler turns a circuit snapshot into SPICE netlist text.
// Validation errors block emission and come back as 422 with the report;
// warnings ride along in the success response.
func NetlistHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	defer r.Body.Close()

	circuit, err := parser.ParseCircuit(body)
	if err != nil {
		http.Error(w, "Invalid circuit: "+err.Error(), http.StatusBadRequest)
		return
	}

	report := netlist.Validate(circuit.Components, circuit.Wires)
	if !report.OK() {
		writeJSON(w, r, http.StatusUnprocessableEntity, NetlistResponse{Report: report})
		return
	}

	nodes := netlist.Unify(circuit.Components, circuit.Wires)
	lines := netlist.Emit(circuit.Components, nodes, netlist.EmitOptions{})

	writeJSON(w, r, http.StatusOK, NetlistResponse{
		Netlist: netlist.Render(lines),
		Models:  netlist.ModelBlock(),
		Report:  report,
	})
}

// ValidateHandler runs the validator alone, for live feedback while the
// user edits. It always answers 200 with the report.
func ValidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	defer r.Body.Close()

	circuit, err := parser.ParseCircuit(body)
	if err != nil {
		http.Error(w, "Invalid circuit: "+err.Error(), http.StatusBadRequest)
		return
	}

	report := netlist.Validate(circuit.Components, circuit.Wires)
	writeJSON(w, r, http.StatusOK, report)
}
