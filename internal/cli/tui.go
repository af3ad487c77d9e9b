package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/pipeline"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// Map styles
var (
	mapOceanStyle = lipgloss.NewStyle().Background(lipgloss.Color("17"))
	mapShoreStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	mapMouthStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	mapDimStyle   = lipgloss.NewStyle().Foreground(colorDim)

	// landStyles shade Land from low to high elevation.
	landStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("100")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
)

const (
	mouthGlyph = '*'
	// mapChrome is the number of terminal rows used around the map.
	mapChrome = 9
)

// mouths returns the root cell of every river.
func mouths(rivers []*forest.Tree[field.Point]) map[field.Point]bool {
	out := make(map[field.Point]bool, len(rivers))
	for _, t := range rivers {
		out[t.Value(t.Root())] = true
	}
	return out
}

// landMap renders the land types as plain glyph rows with river mouths
// marked.
func landMap(types field.Field[terrain.LandType], rivers []*forest.Tree[field.Point]) string {
	m := mouths(rivers)
	var b strings.Builder
	for y := 0; y < types.Height(); y++ {
		for x := 0; x < types.Width(); x++ {
			if m[field.Pt(x, y)] {
				b.WriteRune(mouthGlyph)
			} else {
				b.WriteRune(types.At(x, y).Glyph())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// =============================================================================
// MapModel - Scrollable terrain preview
// =============================================================================

// MapModel is the bubbletea model of the preview command.
type MapModel struct {
	Types     *field.Grid[terrain.LandType]
	Elevation *field.Grid[float64]
	Stats     pipeline.Stats
	Mouths    map[field.Point]bool

	// OffsetX and OffsetY are the top-left visible cell.
	OffsetX, OffsetY int
	// Width and Height are the visible extent in cells.
	Width, Height int
}

// NewMapModel creates a preview of a result.
func NewMapModel(res *pipeline.Result) MapModel {
	return MapModel{
		Types:     res.Types,
		Elevation: res.Elevation,
		Stats:     res.Stats,
		Mouths:    mouths(res.Rivers),
		Width:     80,
		Height:    24 - mapChrome,
	}
}

func (m MapModel) Init() tea.Cmd {
	return nil
}

func (m MapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.OffsetY--
		case "down", "j":
			m.OffsetY++
		case "left", "h":
			m.OffsetX--
		case "right", "l":
			m.OffsetX++
		case "pgup", "K":
			m.OffsetY -= m.Height
		case "pgdown", "J":
			m.OffsetY += m.Height
		case "H":
			m.OffsetX -= m.Width
		case "L":
			m.OffsetX += m.Width
		case "g", "home":
			m.OffsetX, m.OffsetY = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 10)
		m.Height = max(msg.Height-mapChrome, 5)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the viewport inside the map.
func (m *MapModel) clamp() {
	m.OffsetX = min(max(m.OffsetX, 0), max(m.Types.Width()-m.Width, 0))
	m.OffsetY = min(max(m.OffsetY, 0), max(m.Types.Height()-m.Height, 0))
}

func (m MapModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Terrain Preview"))
	b.WriteString("\n")
	b.WriteString(mapDimStyle.Render("arrows/hjkl: scroll  HJKL: page  g: home  q: quit"))
	b.WriteString("\n\n")

	xEnd := min(m.OffsetX+m.Width, m.Types.Width())
	yEnd := min(m.OffsetY+m.Height, m.Types.Height())
	for y := m.OffsetY; y < yEnd; y++ {
		for x := m.OffsetX; x < xEnd; x++ {
			b.WriteString(m.cell(x, y))
		}
		b.WriteString("\n")
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	st := m.Stats
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("View", "Rivers", "Landlocked", "Land", "Shore", "Ocean", "Elevation").
		Row(
			fmt.Sprintf("%d,%d", m.OffsetX, m.OffsetY),
			fmt.Sprint(len(st.Rivers)),
			fmt.Sprint(st.Landlocked),
			fmt.Sprint(st.Land),
			fmt.Sprint(st.Shore),
			fmt.Sprint(st.Ocean),
			fmt.Sprintf("%.3f-%.3f", st.Elevation.Min, st.Elevation.Max),
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
	b.WriteString(t.Render())

	return b.String()
}

// cell renders one map cell.
func (m MapModel) cell(x, y int) string {
	lt := m.Types.At(x, y)
	glyph := string(lt.Glyph())
	switch {
	case m.Mouths[field.Pt(x, y)]:
		return mapMouthStyle.Render(string(mouthGlyph))
	case lt == terrain.Ocean:
		return mapOceanStyle.Render(glyph)
	case lt == terrain.Shore:
		return mapShoreStyle.Render(glyph)
	}
	return landStyles[m.band(m.Elevation.At(x, y))].Render("^")
}

// band maps an elevation to an index into landStyles.
func (m MapModel) band(e float64) int {
	lo, hi := m.Stats.Elevation.Min, m.Stats.Elevation.Max
	if hi <= lo {
		return 0
	}
	i := int((e - lo) / (hi - lo) * float64(len(landStyles)))
	return min(max(i, 0), len(landStyles)-1)
}
