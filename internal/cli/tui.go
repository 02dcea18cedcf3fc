package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/plug"
)

var (
	inspectDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	inspectHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	inspectCanvasStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Foreground(colorCyan)
)

const (
	inspectStep      = 10.0 // element move per key press
	curvatureStep    = 0.1
	minCanvasCols    = 20
	minCanvasRows    = 6
	inspectChromeRow = 16 // rows used by everything but the canvas
)

// inspectCommand creates the interactive inspector.
func (c *CLI) inspectCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Explore connector shapes interactively",
		Long: `Explore connector shapes interactively in the terminal.

  ←/→  path kind     ↑/↓  end plug      +/-  curvature
  h/j/k/l  move the end rectangle       g  gravity   d  diagonal   q  quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseRect(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := parseRect(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			p := tea.NewProgram(newInspectModel(start, end),
				tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "0,0,120,60", "start rectangle x,y,w,h")
	cmd.Flags().StringVar(&to, "to", "360,200,120,60", "end rectangle x,y,w,h")
	return cmd
}

// =============================================================================
// inspectModel - Interactive connector preview
// =============================================================================

// inspectModel is the bubbletea model of the inspector.
type inspectModel struct {
	start, end geom.Rect
	opts       connector.Options
	kind       int // index into path.Kinds
	plug       int // index into plug.Kinds
	geo        connector.Geometry
	width      int
	height     int
}

func newInspectModel(start, end geom.Rect) inspectModel {
	m := inspectModel{
		start:  start,
		end:    end,
		opts:   connector.Options{Curvature: path.DefaultCurvature},
		plug:   indexOf(plug.Kinds, connector.DefaultEndPlug),
		width:  80,
		height: 32,
	}
	return m.solve()
}

func indexOf[T comparable](s []T, v T) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return 0
}

func (m inspectModel) solve() inspectModel {
	m.opts.Path = path.Kinds[m.kind]
	m.opts.EndPlug = plug.Kinds[m.plug]
	m.geo = connector.Solve(m.start, m.end, m.opts)
	return m
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right":
			m.kind = (m.kind + 1) % len(path.Kinds)
		case "left":
			m.kind = (m.kind + len(path.Kinds) - 1) % len(path.Kinds)
		case "down":
			m.plug = (m.plug + 1) % len(plug.Kinds)
		case "up":
			m.plug = (m.plug + len(plug.Kinds) - 1) % len(plug.Kinds)
		case "+", "=":
			m.opts.Curvature += curvatureStep
		case "-", "_":
			m.opts.Curvature -= curvatureStep
		case "g":
			m.opts.Gravity = !m.opts.Gravity
		case "d":
			m.opts.Diagonal = !m.opts.Diagonal
		case "h":
			m.end.OriginX -= inspectStep
		case "l":
			m.end.OriginX += inspectStep
		case "k":
			m.end.OriginY -= inspectStep
		case "j":
			m.end.OriginY += inspectStep
		default:
			return m, nil
		}
		return m.solve(), nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Connector Inspector"))
	b.WriteString("\n")
	b.WriteString(inspectDimStyle.Render("←/→ path  ↑/↓ plug  +/- curvature  hjkl move  g gravity  d diagonal  q quit"))
	b.WriteString("\n")

	cols := max(m.width-4, minCanvasCols)
	rows := max(m.height-inspectChromeRow, minCanvasRows)
	b.WriteString(inspectCanvasStyle.Render(drawConnector(cols, rows, m.start, m.end, m.geo)))
	b.WriteString("\n")

	endPlug := "none"
	if m.geo.EndPlug != nil {
		endPlug = string(m.geo.EndPlug.Kind)
	}
	rowsData := [][]string{
		{"path", string(m.geo.Kind)},
		{"curvature", path.FormatNumber(m.opts.Curvature)},
		{"sockets", m.geo.StartSocket.String() + " " + iconArrow + " " + m.geo.EndSocket.String()},
		{"gravity", fmt.Sprint(m.opts.Gravity)},
		{"diagonal", fmt.Sprint(m.opts.Diagonal)},
		{"end plug", endPlug},
		{"box", formatBox(m.geo.Box)},
		{"d", truncate(m.geo.D, max(cols-16, 16))},
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(inspectDimStyle).
		Rows(rowsData...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return inspectHeaderStyle
			}
			return StyleValue
		})
	b.WriteString(t.Render())
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
