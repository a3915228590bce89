// Command vlistbench drives the vlist engine over a memsurface host
// at a configurable item count and scroll pattern, reporting render
// latency — a runtime counterpart to the package's own Go benchmarks,
// useful for sizing overscan/compression behavior interactively.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vlist"
	"vlist/surface"
	"vlist/surface/memsurface"
)

type benchItem int

func (b benchItem) ItemKey() any { return int(b) }

func main() {
	var count int
	var steps int

	root := &cobra.Command{
		Use:   "vlistbench",
		Short: "Scroll a generated list through memsurface and report render timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(count, steps)
		},
	}
	root.Flags().IntVar(&count, "count", 1_000_000, "number of items")
	root.Flags().IntVar(&steps, "steps", 500, "number of scroll steps to simulate")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(count, steps int) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	host := memsurface.New(800, 600)
	items := make([]benchItem, count)
	for i := range items {
		items[i] = benchItem(i)
	}

	cfg := vlist.Config[benchItem]{
		Host:       host,
		ItemHeight: 24,
		Items:      items,
		Template: func(item benchItem, index int, state vlist.ItemState) surface.Content {
			return surface.Text(fmt.Sprintf("item %d", item))
		},
	}
	engine := vlist.NewEngine(cfg)
	if err := engine.Mount(context.Background()); err != nil {
		return err
	}
	defer engine.Destroy()

	totalHeight := float64(count) * 24
	start := time.Now()
	now := start
	for i := 0; i < steps; i++ {
		actual := totalHeight * float64(i) / float64(steps)
		now = now.Add(16 * time.Millisecond)
		engine.OnScroll(actual, now)
	}
	elapsed := time.Since(start)

	log.Info().
		Int("items", count).
		Int("steps", steps).
		Dur("elapsed", elapsed).
		Dur("perStep", elapsed/time.Duration(steps)).
		Msg("scroll sweep complete")
	return nil
}
