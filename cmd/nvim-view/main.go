// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: cmd/nvim-view/main.go
// Summary: Replays a recorded redraw trace through the UI controller and
//          renders published frames on a tcell screen.
// Usage: nvim-view [-trace file.db] [-record] [-delay 250ms] [-log file]
//        Without -trace a built-in demo script is played.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/notbaab/neovim-mac/msg"
	"github.com/notbaab/neovim-mac/nvim"
	"github.com/notbaab/neovim-mac/render"
	"github.com/notbaab/neovim-mac/replay"
)

func main() {
	tracePath := flag.String("trace", "", "replay trace database")
	record := flag.Bool("record", false, "write the demo script into -trace and exit")
	delay := flag.Duration("delay", 250*time.Millisecond, "pause between batches")
	logPath := flag.String("log", "", "diagnostics log file (default: discard)")
	flag.Parse()

	if err := run(*tracePath, *record, *delay, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(tracePath string, record bool, delay time.Duration, logPath string) error {
	if record {
		if tracePath == "" {
			return fmt.Errorf("-record requires -trace")
		}
		return recordDemo(tracePath)
	}

	logOut := io.Writer(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	diag := nvim.NewLogDiag(log.New(logOut, "nvim-view ", log.LstdFlags))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	window := &tcellWindow{screen: screen}
	ui := nvim.NewUIController(window, diag)
	window.ui = ui

	done := make(chan error, 1)
	go func() {
		done <- playBatches(ui, tracePath, delay)
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	finished := false
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if err := <-done; err != nil {
				return err
			}
			// Playback done; any key exits.
			finished = true
		case *tcell.EventKey:
			if finished || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func playBatches(ui *nvim.UIController, tracePath string, delay time.Duration) error {
	if tracePath == "" {
		for _, batch := range demoScript() {
			ui.Redraw(batch)
			time.Sleep(delay)
		}
		return nil
	}

	store, err := replay.Open(tracePath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Replay(func(at time.Time, batch []msg.Value) error {
		ui.Redraw(batch)
		time.Sleep(delay)
		return nil
	})
}

func recordDemo(tracePath string) error {
	store, err := replay.Open(tracePath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, batch := range demoScript() {
		if err := store.Append(batch); err != nil {
			return err
		}
	}

	n, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Printf("recorded %d batches to %s\n", n, tracePath)
	return nil
}

// tcellWindow bridges controller callbacks to the screen. Callbacks arrive
// on the replay goroutine, which is the only writer of screen content.
type tcellWindow struct {
	screen tcell.Screen
	ui     *nvim.UIController
}

func (w *tcellWindow) Redraw() {
	render.Draw(w.screen, w.ui.Complete())
	w.screen.Show()
}

func (w *tcellWindow) TitleSet() {
	w.screen.SetTitle(w.ui.Title())
}

func (w *tcellWindow) FontSet() {}

func (w *tcellWindow) OptionsSet() {}
