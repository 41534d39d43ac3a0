// Package chat proxies circuit questions to a hosted LLM (the Gemini
// generateContent REST API). Without an API key it answers with a clearly
// tagged mock so the rest of the system stays usable in development.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a chat client. Empty model or baseURL fall back to the
// defaults; an empty apiKey switches the client into mock mode.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Ask sends a question with optional circuit context (netlist preferred,
// else the raw parsed circuit) and returns the model's textual answer.
func (c *Client) Ask(ctx context.Context, question string, circuitContext map[string]any) (string, error) {
	if c.apiKey == "" {
		return mockAnswer(question, circuitContext), nil
	}

	prompt := buildPrompt(question, circuitContext)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat model returned %d: %s", resp.StatusCode, payload)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("chat model returned no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(question string, circuitContext map[string]any) string {
	contextText := ""
	if netlistText, ok := circuitContext["netlist"].(string); ok && netlistText != "" {
		contextText = "SPICE netlist:\n" + netlistText
	} else if circuit, ok := circuitContext["circuit"]; ok {
		if encoded, err := json.Marshal(circuit); err == nil {
			contextText = "Parsed circuit JSON: " + string(encoded)
		}
	}

	return fmt.Sprintf(
		"You are an expert electronics engineer. Given the following circuit context:\n%s\n\n"+
			"Answer the question clearly and concisely:\n%s\n\n"+
			"Explain your reasoning briefly and provide numeric values if simulation data is available.",
		contextText, question)
}

func mockAnswer(question string, circuitContext map[string]any) string {
	keys := make([]string, 0, len(circuitContext))
	for k := range circuitContext {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 5 {
		keys = keys[:5]
	}
	return fmt.Sprintf("[MOCK] I received your question: %q. Context keys: %v", question, keys)
}
