// Command vlistdemo is a terminal demonstration of the vlist engine
// bound to termhost: a scrollable, keyboard-navigable list of
// generated rows, driven by cobra flags for row count and mode.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vlist"
	"vlist/surface"
	"vlist/termhost"
)

type demoItem struct {
	id   int
	text string
}

func (d demoItem) ItemKey() any { return d.id }

func makeItems(n int) []demoItem {
	items := make([]demoItem, n)
	for i := range items {
		items[i] = demoItem{id: i, text: "row " + strconv.Itoa(i)}
	}
	return items
}

func main() {
	var count int
	var group bool

	root := &cobra.Command{
		Use:   "vlistdemo",
		Short: "Interactive terminal demo of the vlist virtual-list engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(count, group)
		},
	}
	root.Flags().IntVar(&count, "count", 10000, "number of rows to generate")
	root.Flags().BoolVar(&group, "grouped", false, "demo the Group Layout (rows grouped by hundreds)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(count int, grouped bool) error {
	host := termhost.New()

	cfg := vlist.Config[demoItem]{
		Host:       host,
		ItemHeight: 1,
		Items:      makeItems(count),
		Template: func(item demoItem, index int, state vlist.ItemState) surface.Content {
			prefix := "  "
			if state.Selected {
				prefix = "* "
			}
			return surface.Text(prefix + item.text)
		},
		SelectionMode: vlist.SelectionMultiple,
	}
	if grouped {
		cfg.Group = &vlist.GroupConfig[demoItem]{
			KeyOf:        func(item demoItem, index int) any { return item.id / 100 },
			HeaderHeight: func(groupIndex int) float64 { return 1 },
		}
	}

	engine := vlist.NewEngine(cfg)
	if err := engine.Mount(context.Background()); err != nil {
		return err
	}
	defer engine.Destroy()

	program := host.Bind(
		func(msg tea.KeyMsg) {
			key := translateKey(msg)
			if key != "" {
				engine.HandleKey(vlist.KeyEvent{Key: key})
			}
		},
		func(w, h int) {
			engine.OnResize(surface.ResizeEvent{Width: float64(w), Height: float64(h)})
		},
	)

	go func() {
		ticker := time.NewTicker(33 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			engine.Tick(time.Now())
		}
	}()

	_, err := program.Run()
	return err
}

func translateKey(msg tea.KeyMsg) vlist.Key {
	switch msg.String() {
	case "up", "k":
		return vlist.KeyArrowUp
	case "down", "j":
		return vlist.KeyArrowDown
	case "home", "g":
		return vlist.KeyHome
	case "end", "G":
		return vlist.KeyEnd
	case " ":
		return vlist.KeySpace
	case "enter":
		return vlist.KeyEnter
	case "ctrl+c", "q":
		os.Exit(0)
	}
	return ""
}
