package layout

// Table pairs column declarations with the user's width overrides and an
// in-progress separator drag.
type Table struct {
	Columns []Column

	overrides map[int]int
	drag      *drag
}

type drag struct {
	sep         int
	startX      int
	left, right int
	baseLeft    int
	baseRight   int
}

// NewTable returns a table over cols without overrides.
func NewTable(cols ...Column) *Table {
	return &Table{Columns: cols, overrides: map[int]int{}}
}

// Solve lays the table out for width. While a drag is in progress its
// pending widths are applied on top of the committed overrides.
func (t *Table) Solve(width int) Result {
	return Solve(t.Columns, width, t.effectiveOverrides())
}

func (t *Table) effectiveOverrides() map[int]int {
	if t.drag == nil {
		return t.overrides
	}
	merged := make(map[int]int, len(t.overrides)+2)
	for k, v := range t.overrides {
		merged[k] = v
	}
	merged[t.drag.sep] = t.drag.left
	merged[t.drag.sep+1] = t.drag.right
	return merged
}

// Overrides returns a copy of the committed overrides.
func (t *Table) Overrides() map[int]int {
	out := make(map[int]int, len(t.overrides))
	for k, v := range t.overrides {
		out[k] = v
	}
	return out
}

// HasOverrides reports whether any width is user-set.
func (t *Table) HasOverrides() bool { return len(t.overrides) > 0 }

// Dragging reports whether a drag is in progress.
func (t *Table) Dragging() bool { return t.drag != nil }

// BeginDrag starts a drag when x is on an interior separator of res.
func (t *Table) BeginDrag(res Result, x int) bool {
	sep := res.SeparatorAt(x)
	if sep < 0 || sep+1 >= len(res.Widths) {
		return false
	}
	t.drag = &drag{
		sep:       sep,
		startX:    x,
		left:      res.Widths[sep],
		right:     res.Widths[sep+1],
		baseLeft:  res.Widths[sep],
		baseRight: res.Widths[sep+1],
	}
	return true
}

// DragTo moves the dragged separator to x. Width moves only between the two
// adjacent columns; a move that would take either below its minimum is
// refused and the last accepted position stays. Reports whether the
// pending widths changed.
func (t *Table) DragTo(x int) bool {
	d := t.drag
	if d == nil {
		return false
	}
	dx := x - d.startX
	left, right := d.baseLeft+dx, d.baseRight-dx
	if left < t.Columns[d.sep].min() || right < t.Columns[d.sep+1].min() {
		return false
	}
	if left == d.left && right == d.right {
		return false
	}
	d.left, d.right = left, right
	return true
}

// EndDrag commits the pending pair as overrides.
func (t *Table) EndDrag() {
	d := t.drag
	if d == nil {
		return
	}
	t.drag = nil
	if d.left == d.baseLeft && d.right == d.baseRight {
		return
	}
	t.overrides[d.sep] = d.left
	t.overrides[d.sep+1] = d.right
}

// CancelDrag abandons a drag without committing it.
func (t *Table) CancelDrag() { t.drag = nil }

// Reset clears every override and any drag.
func (t *Table) Reset() {
	t.overrides = map[int]int{}
	t.drag = nil
}
