package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/desktop"
	"github.com/tomz197/rockfall/internal/score"
)

const appName = "rockfall"

func main() {
	closeLog, err := config.SetupLogging(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Scores and window settings share one data directory
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("scores and settings will not be saved", "err", err)
		m = nil
	}

	board := score.NewBoard(score.NewGdataStore(m), config.HighScoreLimit)
	settings := desktop.NewSettingsManager(m)

	if err := desktop.Run(board, settings); err != nil {
		config.Fail(closeLog, "game error", err)
	}
}
