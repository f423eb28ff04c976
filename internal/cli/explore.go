package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/measure"
	"github.com/kochwerk/kochwerk/pkg/pipeline"
	"github.com/kochwerk/kochwerk/pkg/scene"
	"github.com/kochwerk/kochwerk/pkg/xform"
)

// maxExploreLevel caps the interactive depth. Level 8 already means
// ~200k vertices per keystroke; deeper levels belong in render.
const maxExploreLevel = 8

// Preview styles
var (
	previewStyle     = lipgloss.NewStyle().Foreground(colorCyan)
	previewDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewWarnStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// exploreModel - Interactive level and map browsing
// =============================================================================

// exploreModel is the bubbletea model for the explore command. Arrow keys
// change the level and cycle through the analytic maps; the preview and
// measurements update in place.
type exploreModel struct {
	Level  int
	MapIdx int
	Maps   []string

	// Save is set when the user accepts the current view for rendering.
	Save bool

	// Preview grid size in terminal cells.
	Cols int
	Rows int

	preview string
	summary measure.Summary
	err     error
}

// newExploreModel creates an explore model positioned at the given level
// and map.
func newExploreModel(level int, mapName string) exploreModel {
	m := exploreModel{
		Level: level,
		Maps:  xform.Names(),
		Cols:  56,
		Rows:  20,
	}
	for i, name := range m.Maps {
		if name == mapName {
			m.MapIdx = i
		}
	}
	return m.recompute()
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Level < maxExploreLevel {
				m.Level++
				return m.recompute(), nil
			}
		case "down", "j":
			if m.Level > 0 {
				m.Level--
				return m.recompute(), nil
			}
		case "right", "l":
			m.MapIdx = (m.MapIdx + 1) % len(m.Maps)
			return m.recompute(), nil
		case "left", "h":
			m.MapIdx = (m.MapIdx - 1 + len(m.Maps)) % len(m.Maps)
			return m.recompute(), nil
		case "enter", "s":
			m.Save = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		cols := msg.Width - 4
		if cols < 40 {
			cols = 40
		}
		if cols > 72 {
			cols = 72
		}
		rows := msg.Height - 12
		if rows < 8 {
			rows = 8
		}
		if rows > 24 {
			rows = 24
		}
		if cols != m.Cols || rows != m.Rows {
			m.Cols = cols
			m.Rows = rows
			return m.recompute(), nil
		}
	}
	return m, nil
}

// recompute regenerates the boundary for the current level and map and
// rebuilds the preview grid and measurements.
func (m exploreModel) recompute() exploreModel {
	f, err := pipeline.Generate(pipeline.Options{Level: m.Level, Map: m.Maps[m.MapIdx]})
	if err != nil {
		m.err = err
		return m
	}
	p, err := f.Polyline()
	if err != nil {
		m.err = err
		return m
	}

	// Terminal cells are roughly twice as tall as wide, so fit into a
	// double-height frame and halve y when plotting.
	s, err := scene.Fit(f, scene.Options{
		Width:  float64(m.Cols),
		Height: float64(m.Rows * 2),
		Margin: 0.05,
	})
	if err != nil {
		m.err = err
		return m
	}

	m.err = nil
	m.summary = measure.Summarize(m.Level, p)
	m.preview = plotPath(s, m.Cols, m.Rows)
	return m
}

// plotPath rasterizes the fitted path onto a cols x rows character grid,
// walking each segment so the outline stays connected.
func plotPath(s scene.Scene, cols, rows int) string {
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
	}

	mark := func(x, y float64) {
		xi, yi := int(x), int(y/2)
		if xi < 0 {
			xi = 0
		}
		if xi >= cols {
			xi = cols - 1
		}
		if yi < 0 {
			yi = 0
		}
		if yi >= rows {
			yi = rows - 1
		}
		grid[yi][xi] = true
	}

	for i := 1; i < len(s.Path); i++ {
		p, q := s.Path[i-1], s.Path[i]
		steps := int(math.Hypot(q.X-p.X, q.Y-p.Y)) + 1
		for j := 0; j <= steps; j++ {
			t := float64(j) / float64(steps)
			mark(p.X+t*(q.X-p.X), p.Y+t*(q.Y-p.Y))
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for _, set := range row {
			if set {
				b.WriteString("█")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Koch Explorer"))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("↑/↓ level  ←/→ map  ⏎ save  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(previewWarnStyle.Render(fmt.Sprintf("  %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(previewStyle.Render(m.preview))
	b.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Map", "Vertices", "Edges", "Perimeter").
		Rows([]string{
			strconv.Itoa(m.Level),
			m.Maps[m.MapIdx],
			strconv.Itoa(m.summary.Vertices),
			strconv.Itoa(m.summary.Edges),
			fmt.Sprintf("%.4f", m.summary.Perimeter),
		}).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  [level %d/%d · map %s]",
		m.Level, maxExploreLevel, m.Maps[m.MapIdx])))

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// exploreCommand creates the explore command, an interactive browser over
// levels and analytic maps.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		level   int
		mapName string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse levels and maps interactively",
		Long: `Browse levels and maps interactively.

The explore command opens a terminal preview of the snowflake boundary.
Arrow keys change the recursion level and cycle through the analytic
maps; vertex counts and perimeter update live. Press enter to render the
current view to SVG, or q to leave without rendering.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateLevel(level, maxExploreLevel); err != nil {
				return err
			}
			if err := pipeline.ValidateMap(mapName); err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), level, mapName, noCache)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", pipeline.DefaultLevel, "starting level (0-8)")
	cmd.Flags().StringVarP(&mapName, "map", "m", pipeline.DefaultMap, "starting map: identity, exp, sin, reciprocal, bessel")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching for the final render")

	return cmd
}

// runExplore drives the TUI and renders the accepted view, if any.
func (c *CLI) runExplore(ctx context.Context, level int, mapName string, noCache bool) error {
	p := tea.NewProgram(newExploreModel(level, mapName))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(exploreModel)
	if !ok || !m.Save {
		printDetail("Nothing rendered")
		return nil
	}

	opts := pipeline.Options{
		Level:   m.Level,
		Map:     m.Maps[m.MapIdx],
		Formats: []string{pipeline.FormatSVG},
	}
	output := fmt.Sprintf("snowflake-l%d-%s.svg", opts.Level, opts.Map)
	return c.runRender(ctx, opts, output, noCache)
}
