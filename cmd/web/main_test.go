package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/tomz197/rockfall/internal/score"
)

func TestIndexShowsLeaderboard(t *testing.T) {
	board := score.NewBoard(score.NewMemoryStore(120, 80), 5)
	h := newHandler(board, "play.example.com", "2222")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"ssh -t play.example.com -p 2222", "<li>120</li>", "<li>80</li>"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexEmptyBoard(t *testing.T) {
	h := newHandler(score.NewBoard(score.NewMemoryStore(), 5), "play.example.com", "22")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "No scores yet") {
		t.Error("empty board message missing")
	}
	if strings.Contains(body, "-p 22") {
		t.Error("default port should not be shown")
	}
}

func TestScoresJSON(t *testing.T) {
	h := newHandler(score.NewBoard(score.NewMemoryStore(3, 2, 1), 5), "h", "22")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))

	var got struct {
		HighScores []int `json:"high_scores"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !slices.Equal(got.HighScores, []int{3, 2, 1}) {
		t.Errorf("high_scores = %v", got.HighScores)
	}
}

func TestUnknownPath(t *testing.T) {
	h := newHandler(score.NewBoard(score.NewMemoryStore(), 5), "h", "22")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
