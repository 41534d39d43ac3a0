// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/circuitsim/core/internal/models"
	"github.com/circuitsim/core/internal/simulation"
)

type SimulateRequest struct {
	Netlist  string          `json:"netlist" validate:"required"`
	Analysis models.Analysis `json:"analysis"`
}

// SimulateHandler forwards an emitted netlist to the simulation engine and
// returns the structured result. Engine failures never surface as HTTP
// errors; the engine collapses them into a mock result.
func SimulateHandler(engine *simulation.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req SimulateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		defer r.Body.Close()

		if req.Analysis.Type == "" {
			req.Analysis.Type = "dc"
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid simulation request: "+err.Error())
			return
		}

		result := engine.Simulate(r.Context(), req.Netlist, req.Analysis)
		writeJSON(w, r, http.StatusOK, result)
	}
}
