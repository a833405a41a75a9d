//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

type gameView struct {
	Phase    string  `json:"phase"`
	Round    int     `json:"round"`
	Rounds   int     `json:"rounds"`
	Progress float64 `json:"progress"`
	Finished bool    `json:"finished"`
	Cards    [2]struct {
		Content string `json:"content"`
		Cite    string `json:"cite"`
		Tint    string `json:"tint"`
		Visible bool   `json:"visible"`
	} `json:"cards"`
	Summary *struct {
		NumCorrect int    `json:"num_correct"`
		Total      int    `json:"total"`
		Percentage int    `json:"percentage"`
		Message    string `json:"message"`
	} `json:"summary"`
	Controls struct {
		SubmitLabel    string `json:"submit_label"`
		SubmitVisible  bool   `json:"submit_visible"`
		SubmitDisabled bool   `json:"submit_disabled"`
	} `json:"controls"`
}

type gameResponse struct {
	State json.RawMessage `json:"state"`
	View  gameView        `json:"view"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request to %s failed: %v", url, err)
	}
	return resp
}

// startGame begins a fresh session and skips the test when no set has been
// published for today.
func startGame(t *testing.T, baseURL string) gameResponse {
	t.Helper()

	resp := postJSON(t, fmt.Sprintf("%s/v1/game/start", baseURL), map[string]interface{}{})
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		t.Skip("today's question pairs are not published; run `seeder populate` first")
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected start status: %d", resp.StatusCode)
	}

	var out gameResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode start response failed: %v", err)
	}
	return out
}

func step(t *testing.T, baseURL string, state json.RawMessage, event string, option int) (*http.Response, gameResponse) {
	t.Helper()

	payload := map[string]interface{}{
		"state": state,
		"event": event,
		"selection": map[string]bool{
			"option_0": option == 0,
			"option_1": option == 1,
		},
	}
	resp := postJSON(t, fmt.Sprintf("%s/v1/game/step", baseURL), payload)
	defer resp.Body.Close()

	var out gameResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode step response failed: %v", err)
		}
	}
	return resp, out
}
