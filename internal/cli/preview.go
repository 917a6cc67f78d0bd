package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/deckplan/deckplan/pkg/engine"
)

// previewCommand creates the preview command for inspecting layouts.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [layout.json]",
		Short: "Inspect a planned layout in an interactive TUI",
		Long: `Inspect a planned layout in an interactive TUI.

The preview command renders a character-cell sketch of the canvas with
every placed element, plus a navigable element list showing preset, font,
bounds, and any clamp warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := readLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			if len(result.Elements) == 0 {
				printInfo("Layout has no elements")
				return nil
			}

			model := newPreviewModel(result)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// Preview styles
var (
	previewSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	previewDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	previewCanvasStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// sketch dimensions in character cells
const (
	sketchWidth  = 64
	sketchHeight = 18
)

// previewModel is the bubbletea model for layout inspection.
type previewModel struct {
	result *engine.PlaceResult
	cursor int
}

func newPreviewModel(result *engine.PlaceResult) previewModel {
	return previewModel{result: result}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.result.Elements)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Preview"))
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  %s · %.0f×%.0f pt", m.result.DocumentID, m.result.Canvas.Width, m.result.Canvas.Height)))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	b.WriteString(previewCanvasStyle.Render(m.renderSketch()))
	b.WriteString("\n\n")

	for i, el := range m.result.Elements {
		line := fmt.Sprintf("%c %-10s %5.1fpt  %s", markerFor(i), el.Preset, el.Style.FontSize, truncateText(el.Text, 36))
		if el.WasClamped {
			line += " " + StyleWarning.Render("clamped")
		}
		if i == m.cursor {
			b.WriteString(previewSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(previewNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	sel := m.result.Elements[m.cursor]
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  bounds x=%.1f y=%.1f w=%.1f h=%.1f", sel.Bounds.X, sel.Bounds.Y, sel.Bounds.Width, sel.Bounds.Height)))
	b.WriteString("\n")
	for _, w := range sel.Warnings {
		b.WriteString(StyleWarning.Render("  ! " + w))
		b.WriteString("\n")
	}

	return b.String()
}

// renderSketch draws the canvas as a character grid, one marker letter per
// element. Later elements overwrite earlier ones where boxes overlap.
func (m previewModel) renderSketch() string {
	grid := make([][]rune, sketchHeight)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", sketchWidth))
	}

	scaleX := float64(sketchWidth) / m.result.Canvas.Width
	scaleY := float64(sketchHeight) / m.result.Canvas.Height

	for i, el := range m.result.Elements {
		x0 := clampCell(int(el.Bounds.X*scaleX), sketchWidth)
		x1 := clampCell(int(el.Bounds.Right()*scaleX), sketchWidth)
		y0 := clampCell(int(el.Bounds.Y*scaleY), sketchHeight)
		y1 := clampCell(int(el.Bounds.Bottom()*scaleY), sketchHeight)

		marker := markerFor(i)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				grid[y][x] = marker
			}
		}
	}

	lines := make([]string, sketchHeight)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

func clampCell(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}

// markerFor assigns a stable letter to each element.
func markerFor(i int) rune {
	return rune('A' + i%26)
}
