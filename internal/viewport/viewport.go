// Package viewport tracks selection and scrolling over an ordered list of
// rows or cards.
package viewport

// State is the selection and scroll position over Count items of which
// Visible fit on screen. After every mutation the selected item lies in
// [Offset, Offset+Visible) and Offset is never negative.
type State struct {
	Selected int
	Offset   int
	Count    int
	Visible  int
}

// New returns a State over count items with visible rows on screen.
func New(count, visible int) State {
	s := State{Count: count, Visible: visible}
	s.EnsureVisible()
	return s
}

// Move shifts the selection by delta, clamped to the list.
func (s *State) Move(delta int) {
	s.Selected += delta
	s.EnsureVisible()
}

// Select jumps to index i, clamped to the list.
func (s *State) Select(i int) {
	s.Selected = i
	s.EnsureVisible()
}

// Top selects the first item.
func (s *State) Top() { s.Select(0) }

// Bottom selects the last item.
func (s *State) Bottom() { s.Select(s.Count - 1) }

// Page moves the selection by n screens.
func (s *State) Page(n int) { s.Move(n * s.visible()) }

// SetCount replaces the item count after a data reset, keeping the
// selection index when it is still in range.
func (s *State) SetCount(count int) {
	s.Count = count
	s.EnsureVisible()
}

// SetVisible changes how many items fit on screen.
func (s *State) SetVisible(visible int) {
	s.Visible = visible
	s.EnsureVisible()
}

// EnsureVisible clamps the selection and scrolls only as far as needed to
// show it. It never re-centers.
func (s *State) EnsureVisible() {
	if s.Count <= 0 {
		s.Selected, s.Offset = 0, 0
		return
	}
	if s.Selected < 0 {
		s.Selected = 0
	}
	if s.Selected > s.Count-1 {
		s.Selected = s.Count - 1
	}

	visible := s.visible()
	if s.Selected < s.Offset {
		s.Offset = s.Selected
	}
	if s.Selected >= s.Offset+visible {
		s.Offset = s.Selected - visible + 1
	}
	if maxOffset := s.Count - visible; s.Offset > maxOffset {
		s.Offset = maxOffset
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}

func (s *State) visible() int {
	if s.Visible < 1 {
		return 1
	}
	return s.Visible
}

// Window returns the half-open range of item indexes on screen.
func (s State) Window() (start, end int) {
	end = s.Offset + s.visible()
	if end > s.Count {
		end = s.Count
	}
	return s.Offset, end
}

// IndexAt maps a screen row (0 = first visible item) to an item index, or
// -1 when the row shows nothing.
func (s State) IndexAt(row int) int {
	if row < 0 || row >= s.visible() {
		return -1
	}
	i := s.Offset + row
	if i >= s.Count {
		return -1
	}
	return i
}
