package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/score"
)

const (
	defaultHost    = "0.0.0.0"
	defaultPort    = "8080"
	defaultScoreDB = "/app/data/scores.db"
)

//go:embed index.html
var htmlPage string

var pageTmpl = template.Must(template.New("index").Parse(htmlPage))

// pageData feeds index.html.
type pageData struct {
	SSHHost    string
	SSHPort    string
	HighScores []int
}

func main() {
	closeLog, err := config.SetupLogging(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(); err != nil {
		config.Fail(closeLog, "web server failed", err)
	}
}

func run() error {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_PORT", "2222")
	dbPath := config.GetEnv("SCORE_DB", defaultScoreDB)

	store, err := score.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open score database: %w", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newHandler(score.NewBoard(store, config.HighScoreLimit), sshHost, sshPort),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("Starting web server", "addr", "http://"+srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// newHandler serves the landing page and the leaderboard as JSON.
func newHandler(board *score.Board, sshHost, sshPort string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{SSHHost: sshHost, SSHPort: sshPort, HighScores: board.Load()}
		if err := pageTmpl.Execute(w, data); err != nil {
			log.Error("render page", "err", err)
		}
	})

	mux.HandleFunc("GET /scores", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string][]int{"high_scores": board.Load()}); err != nil {
			log.Error("encode scores", "err", err)
		}
	})

	return mux
}
