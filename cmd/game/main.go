package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/loop"
	"github.com/tomz197/rockfall/internal/score"
)

const appName = "rockfall"

func main() {
	// The screen belongs to the game; logs only go somewhere if LOG_FILE says so
	closeLog, err := config.SetupLogging(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := score.OpenGdataStore(appName)
	if err != nil {
		log.Warn("high scores will not be saved", "err", err)
		store = score.NewGdataStore(nil)
	}
	board := score.NewBoard(store, config.HighScoreLimit)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		config.Fail(closeLog, "failed to enable raw mode", err)
	}

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(context.Background(), reader, os.Stdout, board, loop.RunOptions{})
	_ = term.Restore(fd, oldState)
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		config.Fail(closeLog, "game error", err)
	}
}
