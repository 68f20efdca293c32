package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioColumns are three fixed columns followed by two flex columns.
func scenarioColumns() []Column {
	return []Column{
		{Title: "Status", Width: 15, Min: 6},
		{Title: "Conclusion", Width: 12, Min: 4},
		{Title: "Started", Width: 12, Min: 4},
		{Title: "Workflow", Weight: 0.55, Min: 8},
		{Title: "Branch", Weight: 0.45, Min: 6},
	}
}

func sum(ws []int) int {
	total := 0
	for _, w := range ws {
		total += w
	}
	return total
}

func TestSolve_FlexSplitAtWidth80(t *testing.T) {
	res := Solve(scenarioColumns(), 80, nil)

	// 80 - 39 fixed - 6 borders = 35 flex cells: floor(19.25)=19,
	// floor(15.75)=15, remainder 1 to the last flex column.
	assert.Equal(t, []int{15, 12, 12, 19, 16}, res.Widths)
	assert.Equal(t, 80, res.Total)
	assert.Equal(t, []int{16, 29, 42, 62}, res.Separators)
}

func TestSolve_FitsAndRespectsMinimums(t *testing.T) {
	cols := scenarioColumns()
	minW := MinWidth(cols)
	for width := minW; width <= 200; width++ {
		res := Solve(cols, width, nil)
		assert.LessOrEqual(t, sum(res.Widths)+BorderWidth(len(cols)), width, "width %d", width)
		assert.Equal(t, res.Total, sum(res.Widths)+BorderWidth(len(cols)))
		for i, w := range res.Widths {
			assert.GreaterOrEqual(t, w, cols[i].min(), "width %d column %d", width, i)
		}
	}
}

func TestSolve_Deterministic(t *testing.T) {
	cols := scenarioColumns()
	overrides := map[int]int{0: 30, 4: 20}
	first := Solve(cols, 70, overrides)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Solve(cols, 70, overrides))
	}
}

func TestSolve_GreedyShrinkWidestFirstLeftmostOnTie(t *testing.T) {
	cols := []Column{
		{Width: 10, Min: 2},
		{Width: 10, Min: 2},
		{Width: 6, Min: 2},
	}
	// Natural total 26 + 4 borders = 30. Shrinking to 27 takes three
	// cells: col0 (10, leftmost tie), col1 (10 vs 9), col0 (9, tie again).
	res := Solve(cols, 27, nil)
	assert.Equal(t, []int{8, 9, 6}, res.Widths)
	assert.Equal(t, 27, res.Total)
}

func TestSolve_ShrinkSkipsPinnedColumns(t *testing.T) {
	cols := []Column{
		{Width: 10, Min: 2},
		{Width: 10, Min: 2},
		{Width: 10, Min: 2},
	}
	res := Solve(cols, 30, map[int]int{1: 20})
	// 10+20+10+4 = 44, 14 cells to shed from columns 0 and 2 only.
	assert.Equal(t, []int{3, 20, 3}, res.Widths)
	assert.Equal(t, 30, res.Total)
}

func TestSolve_StopsAtMinimums(t *testing.T) {
	cols := []Column{{Width: 10, Min: 5}, {Weight: 1, Min: 5}}
	res := Solve(cols, 8, nil)
	assert.Equal(t, []int{5, 5}, res.Widths)
	assert.Equal(t, 13, res.Total, "cannot fit, stays at minimums")
}

func TestSolve_OverrideClampedToMinimum(t *testing.T) {
	cols := scenarioColumns()
	res := Solve(cols, 120, map[int]int{0: 1, 99: 40})
	assert.Equal(t, 6, res.Widths[0])
}

func TestSolve_RoundingRemainderGoesToLastFlex(t *testing.T) {
	cols := []Column{{Weight: 1}, {Weight: 1}, {Weight: 1}}
	res := Solve(cols, 4+10, nil)
	assert.Equal(t, []int{3, 3, 4}, res.Widths)
}

func TestResult_HitTesting(t *testing.T) {
	res := Solve([]Column{{Width: 3}, {Width: 4}, {Width: 2}}, 20, nil)
	// │abc│defg│hi│
	// 0   4    9  12
	assert.Equal(t, []int{4, 9}, res.Separators)
	tests := []struct {
		x      int
		sep    int
		column int
	}{
		{0, -1, -1},
		{1, -1, 0},
		{3, -1, 0},
		{4, 0, -1},
		{5, -1, 1},
		{9, 1, -1},
		{11, -1, 2},
		{12, -1, -1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.x), func(t *testing.T) {
			assert.Equal(t, tt.sep, res.SeparatorAt(tt.x))
			assert.Equal(t, tt.column, res.ColumnAt(tt.x))
		})
	}
}

func TestTable_DragOverridePersistsAcrossResize(t *testing.T) {
	table := NewTable(scenarioColumns()...)
	res := table.Solve(80)
	sepX := res.Separators[1] // between column 2 and column 3

	require.True(t, table.BeginDrag(res, sepX))
	assert.True(t, table.DragTo(sepX+5))
	live := table.Solve(80)
	assert.Equal(t, 17, live.Widths[1], "live preview while dragging")
	table.EndDrag()

	res = table.Solve(80)
	assert.Equal(t, 17, res.Widths[1])
	assert.Equal(t, 7, res.Widths[2])
	assert.Equal(t, map[int]int{1: 17, 2: 7}, table.Overrides())
	assert.Equal(t, 80, res.Total)

	for _, width := range []int{60, 100, 140} {
		res = table.Solve(width)
		assert.Equal(t, 17, res.Widths[1], "width %d", width)
		assert.Equal(t, 7, res.Widths[2], "width %d", width)
	}

	table.Reset()
	res = table.Solve(80)
	assert.Equal(t, []int{15, 12, 12, 19, 16}, res.Widths)
	assert.False(t, table.HasOverrides())
}

func TestTable_DragRefusesBelowMinimum(t *testing.T) {
	table := NewTable(scenarioColumns()...)
	res := table.Solve(80)
	sepX := res.Separators[1]

	require.True(t, table.BeginDrag(res, sepX))
	assert.True(t, table.DragTo(sepX+8)) // right column 12 -> 4, its minimum
	assert.False(t, table.DragTo(sepX+9), "would take the right column below its minimum")
	assert.False(t, table.DragTo(sepX-9), "would take the left column below its minimum")
	table.EndDrag()

	res = table.Solve(80)
	assert.Equal(t, 20, res.Widths[1])
	assert.Equal(t, 4, res.Widths[2])
}

func TestTable_BeginDragMissesAndCancel(t *testing.T) {
	table := NewTable(scenarioColumns()...)
	res := table.Solve(80)

	assert.False(t, table.BeginDrag(res, 0), "outer border is not draggable")
	assert.False(t, table.BeginDrag(res, 5))
	assert.False(t, table.DragTo(10))

	require.True(t, table.BeginDrag(res, res.Separators[0]))
	table.DragTo(res.Separators[0] + 3)
	table.CancelDrag()
	assert.False(t, table.Dragging())
	assert.False(t, table.HasOverrides())
}

func TestCardGeometry(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Cards
	}{
		{"wide", 100, 40, Cards{Width: 96, Height: 6, Margin: 2, Visible: 6}},
		{"narrow clamps width", 30, 40, Cards{Width: 40, Height: 6, Margin: 2, Visible: 6}},
		{"tiny always shows one", 80, 5, Cards{Width: 76, Height: 6, Margin: 2, Visible: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CardGeometry(tt.width, tt.height, 4))
		})
	}
}
