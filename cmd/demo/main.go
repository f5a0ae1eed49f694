// Command demo runs the color-cell walkthrough: a cell starts at "red",
// receives a burst of updates, and a 50ms poll loop commits and re-renders
// only what the last write left behind. Commit notices drive a styled
// terminal render host.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/statelab/pollstate"
)

var palette = map[string]lipgloss.Color{
	"red":    lipgloss.Color("9"),
	"blue":   lipgloss.Color("12"),
	"green":  lipgloss.Color("10"),
	"yellow": lipgloss.Color("11"),
}

func swatch(color string) pollstate.View {
	c, ok := palette[color]
	if !ok {
		c = lipgloss.Color("7")
	}
	style := lipgloss.NewStyle().
		Foreground(c).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	return pollstate.View(style.Render("background: " + color))
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	hub := pollstate.NewHub()
	defer hub.Close()
	_, notices := hub.Subscribe(16)

	loop, err := pollstate.NewLoopBuilder().
		Interval(50 * time.Millisecond).
		Logger(logger).
		Publish(hub).
		StringCell("color", "red", swatch).
		Build()
	if err != nil {
		logger.Fatal("build loop", zap.Error(err))
	}

	cellHandle, err := loop.Cell("color")
	if err != nil {
		logger.Fatal("lookup cell", zap.Error(err))
	}
	color := cellHandle.(*pollstate.Cell[string])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := loop.Start(ctx); err != nil {
		logger.Fatal("start loop", zap.Error(err))
	}
	defer loop.Stop()

	// Render host: one full redraw per commit notice.
	go func() {
		for n := range notices {
			fmt.Printf("\n%s\n", n.View)
		}
	}()

	fmt.Printf("\n%s\n", swatch("red"))

	// Two writes inside one interval: only "blue" is a real commit...
	color.Set("gray")
	color.Set("blue")
	time.Sleep(120 * time.Millisecond)

	// ...and a redundant write costs nothing.
	color.Set("blue")
	time.Sleep(120 * time.Millisecond)

	color.Set("green")
	time.Sleep(120 * time.Millisecond)

	fmt.Println(loop.Status())
	fmt.Println("Ctrl-C to exit; the loop keeps polling.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	colors := []string{"yellow", "red", "blue", "green"}
	i := 0
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			color.Set(colors[i%len(colors)])
			i++
		case <-sig:
			fmt.Println("\nshutting down")
			return
		}
	}
}
