// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/circuitsim/core/internal/chat"
)

type ChatRequest struct {
	Question string         `json:"question" validate:"required"`
	Context  map[string]any `json:"context"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

// ChatHandler proxies a circuit question to the LLM client, attaching the
// caller-supplied context (netlist or parsed circuit).
func ChatHandler(client *chat.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		defer r.Body.Close()

		if err := validate.Struct(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid chat request: "+err.Error())
			return
		}
		if req.Context == nil {
			req.Context = map[string]any{}
		}

		answer, err := client.Ask(r.Context(), req.Question, req.Context)
		if err != nil {
			writeError(w, r, http.StatusBadGateway, "chat model unavailable: "+err.Error())
			return
		}

		writeJSON(w, r, http.StatusOK, ChatResponse{Answer: answer})
	}
}
