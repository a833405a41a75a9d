//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"
)

func TestFullGameFlow(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	game := startGame(t, baseURL)

	if game.View.Phase != "pending" || game.View.Round != 0 {
		t.Fatalf("fresh game should be pending at round 0, got %s/%d", game.View.Phase, game.View.Round)
	}
	if !game.View.Controls.SubmitDisabled {
		t.Fatal("submit should be disabled without a selection")
	}

	state := game.State
	lastProgress := -1.0
	for round := 0; round < game.View.Rounds; round++ {
		resp, pending := step(t, baseURL, state, "", 0)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("round %d: render failed with %d", round, resp.StatusCode)
		}
		if pending.View.Progress < lastProgress {
			t.Fatalf("round %d: progress went backwards", round)
		}
		lastProgress = pending.View.Progress

		resp, result := step(t, baseURL, state, "advance", 0)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("round %d: submit failed with %d", round, resp.StatusCode)
		}
		if result.View.Phase != "result" {
			t.Fatalf("round %d: expected result phase, got %s", round, result.View.Phase)
		}
		if result.View.Cards[0].Tint == "" {
			t.Fatalf("round %d: chosen card should be tinted", round)
		}
		if result.View.Cards[0].Cite == "" || result.View.Cards[1].Cite == "" {
			t.Fatalf("round %d: both cards should be attributed", round)
		}

		resp, next := step(t, baseURL, result.State, "advance", -1)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("round %d: next failed with %d", round, resp.StatusCode)
		}
		state = next.State
		if round == game.View.Rounds-1 {
			if !next.View.Finished || next.View.Summary == nil {
				t.Fatal("expected finished view with a summary")
			}
			if next.View.Summary.Total != game.View.Rounds {
				t.Fatalf("summary total %d, want %d", next.View.Summary.Total, game.View.Rounds)
			}
		}
	}

	resp, retried := step(t, baseURL, state, "retry", -1)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retry failed with %d", resp.StatusCode)
	}
	if retried.View.Phase != "pending" || retried.View.Round != 0 || retried.View.Progress != 0 {
		t.Fatalf("retry should restart at round 0, got %s/%d", retried.View.Phase, retried.View.Round)
	}
}
