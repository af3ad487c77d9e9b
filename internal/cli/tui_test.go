package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/pipeline"
	"github.com/matzehuels/fluvia/pkg/terrain"
)

// testMap is a 4x2 grid: an ocean column, a river mouth and land.
func testMap(t *testing.T) (*field.Grid[terrain.LandType], []*forest.Tree[field.Point]) {
	t.Helper()
	types, err := field.NewGrid[terrain.LandType](4, 2)
	require.NoError(t, err)
	types.Set(0, 0, terrain.Ocean)
	types.Set(0, 1, terrain.Ocean)
	types.Set(1, 0, terrain.Shore)
	types.Set(2, 0, terrain.Shore)

	river := forest.New(field.Pt(1, 0))
	river.AddChild(river.Root(), field.Pt(2, 0))
	return types, []*forest.Tree[field.Point]{river}
}

func TestLandMap(t *testing.T) {
	types, rivers := testMap(t)
	assert.Equal(t, " *~.\n ...\n", landMap(types, rivers))
}

func newTestModel(t *testing.T, w, h int) MapModel {
	t.Helper()
	types, err := field.NewGrid[terrain.LandType](w, h)
	require.NoError(t, err)
	elev, err := field.NewGrid[float64](w, h)
	require.NoError(t, err)
	return NewMapModel(&pipeline.Result{Types: types, Elevation: elev})
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapModelScroll(t *testing.T) {
	m := newTestModel(t, 200, 100)

	tests := []struct {
		name   string
		msg    tea.Msg
		wantX  int
		wantY  int
		before func(*MapModel)
	}{
		{name: "right", msg: key("l"), wantX: 1},
		{name: "down", msg: key("j"), wantY: 1},
		{name: "clamped left", msg: key("h")},
		{name: "page right", msg: key("L"), wantX: 80},
		{name: "page right clamps", msg: key("L"), wantX: 120, before: func(m *MapModel) { m.OffsetX = 100 }},
		{name: "home", msg: key("g"), before: func(m *MapModel) { m.OffsetX, m.OffsetY = 50, 50 }},
		{name: "page down clamps", msg: key("J"), wantY: 100 - m.Height, before: func(m *MapModel) { m.OffsetY = 80 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm := m
			if tt.before != nil {
				tt.before(&mm)
			}
			next, cmd := mm.Update(tt.msg)
			assert.Nil(t, cmd)
			got := next.(MapModel)
			assert.Equal(t, tt.wantX, got.OffsetX, "x")
			assert.Equal(t, tt.wantY, got.OffsetY, "y")
		})
	}
}

func TestMapModelResize(t *testing.T) {
	m := newTestModel(t, 50, 50)
	m.OffsetX = 40

	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	got := next.(MapModel)
	assert.Equal(t, 30, got.Width)
	assert.Equal(t, 20-mapChrome, got.Height)
	assert.Equal(t, 20, got.OffsetX)
}

func TestMapModelQuit(t *testing.T) {
	m := newTestModel(t, 8, 8)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMapModelView(t *testing.T) {
	m := newTestModel(t, 8, 4)
	view := m.View()
	assert.Contains(t, view, "Terrain Preview")
	assert.Contains(t, view, "Landlocked")
	assert.Equal(t, 4, strings.Count(view, strings.Repeat("^", 8)))
}

func TestBand(t *testing.T) {
	m := MapModel{}
	assert.Equal(t, 0, m.band(5), "flat map")

	m.Stats.Elevation.Min, m.Stats.Elevation.Max = 0, 1
	assert.Equal(t, 0, m.band(0))
	assert.Equal(t, len(landStyles)-1, m.band(1))
	assert.Equal(t, 3, m.band(0.5))
}
