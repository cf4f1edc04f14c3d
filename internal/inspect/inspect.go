// Package inspect renders engine state as text for debugging: the board,
// the action table, history stacks and per-tick results.
package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pushcore/internal/actiontable"
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/history"
	"github.com/vovakirdan/pushcore/internal/occupancy"
	"github.com/vovakirdan/pushcore/internal/sim"
	"github.com/vovakirdan/pushcore/internal/world"
)

// Board glyphs.
const (
	GlyphEmpty    = '.'
	GlyphStatic   = '#'
	GlyphDynamic  = 'o'
	GlyphVolatile = '*'
	GlyphStacked  = '%'
)

// Styles holds the lipgloss styles used when color is enabled.
type Styles struct {
	Empty    lipgloss.Style
	Static   lipgloss.Style
	Dynamic  lipgloss.Style
	Volatile lipgloss.Style
	Marker   lipgloss.Style
	Header   lipgloss.Style
	Accepted lipgloss.Style
	Rejected lipgloss.Style
	Box      lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Static:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		Dynamic:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Volatile: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Accepted: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Rejected: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// PlainStyles returns styles that add nothing, for logs and golden tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Empty: plain, Static: plain, Dynamic: plain, Volatile: plain,
		Marker: plain, Header: plain, Accepted: plain, Rejected: plain,
		Box: plain,
	}
}

// Renderer turns engine state into text.
type Renderer struct {
	styles Styles
}

// New creates a renderer. Color off gives plain, stable output.
func New(color bool) *Renderer {
	if color {
		return &Renderer{styles: DefaultStyles()}
	}
	return &Renderer{styles: PlainStyles()}
}

// Grid draws an occupancy snapshot with the highest row first.
func (r *Renderer) Grid(g *occupancy.Grid) string {
	return r.board(g, nil)
}

// World draws the world's current snapshot. Marker entities show the first
// letter of their marker.
func (r *Renderer) World(w *world.World, bounds core.Bounds) (string, error) {
	g, err := w.Snapshot(bounds)
	if err != nil {
		return "", err
	}
	markers := make(map[core.Coord]core.MarkerID)
	for _, m := range w.Markers() {
		markers[m.Coord] = m.Marker
	}
	return r.board(g, markers), nil
}

func (r *Renderer) board(g *occupancy.Grid, markers map[core.Coord]core.MarkerID) string {
	var sb strings.Builder
	b := g.Bounds()
	for y := b.H - 1; y >= 0; y-- {
		for x := 0; x < b.W; x++ {
			sb.WriteString(r.cell(g, core.C(x, y), markers))
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (r *Renderer) cell(g *occupancy.Grid, c core.Coord, markers map[core.Coord]core.MarkerID) string {
	occ, ok := g.At(c)
	if !ok {
		return r.styles.Empty.Render(string(GlyphEmpty))
	}
	if m, ok := markers[c]; ok && m != "" {
		return r.styles.Marker.Render(string([]rune(string(m))[0]))
	}
	switch {
	case len(g.Stacked(c)) > 0:
		return r.styles.Volatile.Render(string(GlyphStacked))
	case occ.Volatile:
		return r.styles.Volatile.Render(string(GlyphVolatile))
	case occ.Kind == core.Static:
		return r.styles.Static.Render(string(GlyphStatic))
	default:
		return r.styles.Dynamic.Render(string(GlyphDynamic))
	}
}

// Table draws the 4x4 action table. Rows are ranks, columns are files, both
// labeled with the direction they select.
func (r *Renderer) Table(t actiontable.Table) string {
	order := core.CanonicalOrder()
	var sb strings.Builder

	sb.WriteString(r.styles.Header.Render(fmt.Sprintf("%-6s", "")))
	for _, d := range order {
		sb.WriteString(r.styles.Header.Render(fmt.Sprintf("%-6s", d)))
	}
	for rank := 0; rank < actiontable.Size; rank++ {
		sb.WriteByte('\n')
		sb.WriteString(r.styles.Header.Render(fmt.Sprintf("%-6s", order[rank])))
		for file := 0; file < actiontable.Size; file++ {
			m, ok := t.At(rank, file)
			if !ok {
				sb.WriteString(r.styles.Empty.Render(fmt.Sprintf("%-6s", "-")))
				continue
			}
			sb.WriteString(r.styles.Marker.Render(fmt.Sprintf("%-6s", m)))
		}
	}
	return sb.String()
}

// History lists each tracked entity's position stack, oldest first, and
// its current position.
func (r *Renderer) History(e *sim.Engine) string {
	var lines []string
	for _, id := range e.Tracked() {
		stack := e.PositionStack(id)
		parts := make([]string, len(stack))
		for i, c := range stack {
			parts[i] = c.String()
		}
		cur := "gone"
		if c, ok := e.World().Position(id); ok {
			cur = c.String()
		}
		lines = append(lines, fmt.Sprintf("#%d [%s] -> %s", id, strings.Join(parts, " "), cur))
	}
	if len(lines) == 0 {
		return "(no tracked entities)"
	}
	return strings.Join(lines, "\n")
}

// Step summarizes one tick: each outcome, push events and sublimations.
func (r *Renderer) Step(res sim.StepResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d", res.Tick)
	if res.History != history.None {
		fmt.Fprintf(&sb, " [%s]", res.History)
	}
	for _, o := range res.Outcomes {
		sb.WriteString("\n  ")
		switch {
		case o.Missing:
			sb.WriteString(r.styles.Rejected.Render(fmt.Sprintf("%s: missing", o.Command)))
		case o.Result.Accepted:
			sb.WriteString(r.styles.Accepted.Render(fmt.Sprintf("%s: moved %v", o.Command, o.Result.Moved)))
		default:
			sb.WriteString(r.styles.Rejected.Render(fmt.Sprintf("%s: blocked", o.Command)))
		}
	}
	for _, ev := range res.Events {
		fmt.Fprintf(&sb, "\n  push #%d %s %v", ev.Pusher, ev.Direction, ev.Pushed)
	}
	if len(res.Sublimated) > 0 {
		fmt.Fprintf(&sb, "\n  sublimated %v", res.Sublimated)
	}
	return sb.String()
}

// Frame puts the board and the action table side by side.
func (r *Renderer) Frame(e *sim.Engine, bounds core.Bounds) (string, error) {
	board, err := r.World(e.World(), bounds)
	if err != nil {
		return "", err
	}
	left := r.styles.Box.Render(board)
	right := r.styles.Box.Render(r.Table(e.Table()))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right), nil
}
