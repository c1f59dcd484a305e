package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/rockfall/internal/score"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func TestRunQuits(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(pr), &out,
			score.NewBoard(score.NewMemoryStore(), 5),
			RunOptions{
				Game:         Options{Rand: rand.New(rand.NewSource(1))},
				TermSizeFunc: fixedSize(80, 24),
			})
	}()

	time.Sleep(50 * time.Millisecond)
	if _, err := pw.Write([]byte("q")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on q")
	}

	got := out.String()
	for _, want := range []string{"\033[?25l", "\033[?1000h", "Score: 0", "\033[?25h"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunEndsWithInput(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), &out, nil, RunOptions{
		TermSizeFunc: fixedSize(80, 24),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunTerminalSizeError(t *testing.T) {
	boom := errors.New("no tty")
	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), io.Discard, nil, RunOptions{
		TermSizeFunc: func() (int, int, error) { return 0, 0, boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("Run error = %v, want wrapped %v", err, boom)
	}
}

func TestRunShutdownQuit(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(pr), &out, nil, RunOptions{TermSizeFunc: fixedSize(120, 40)})
	}()

	time.Sleep(50 * time.Millisecond)
	pw.Write([]byte("q"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Error("shutdown notice not drawn")
	}
}
