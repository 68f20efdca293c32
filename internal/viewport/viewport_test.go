package viewport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureVisible_Property(t *testing.T) {
	for count := 0; count <= 12; count++ {
		for visible := 0; visible <= 6; visible++ {
			for selected := -3; selected <= 15; selected++ {
				for offset := -2; offset <= 14; offset += 3 {
					s := State{Selected: selected, Offset: offset, Count: count, Visible: visible}
					s.EnsureVisible()
					name := fmt.Sprintf("c=%d v=%d s=%d o=%d", count, visible, selected, offset)
					assert.GreaterOrEqual(t, s.Offset, 0, name)
					if count == 0 {
						assert.Equal(t, 0, s.Selected, name)
						continue
					}
					v := visible
					if v < 1 {
						v = 1
					}
					assert.LessOrEqual(t, s.Offset, s.Selected, name)
					assert.Less(t, s.Selected, s.Offset+v, name)
					assert.Less(t, s.Selected, count, name)
				}
			}
		}
	}
}

func TestMove_ScrollsOnlyAsFarAsNeeded(t *testing.T) {
	s := New(20, 5)

	s.Move(4)
	assert.Equal(t, 4, s.Selected)
	assert.Equal(t, 0, s.Offset, "still on screen")

	s.Move(1)
	assert.Equal(t, 5, s.Selected)
	assert.Equal(t, 1, s.Offset, "scrolled by one row")

	s.Move(-2)
	assert.Equal(t, 3, s.Selected)
	assert.Equal(t, 1, s.Offset, "no scroll while visible")

	s.Move(-3)
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, 0, s.Offset)

	s.Move(100)
	assert.Equal(t, 19, s.Selected)
	assert.Equal(t, 15, s.Offset)
}

func TestSetCount(t *testing.T) {
	tests := []struct {
		name         string
		start        State
		count        int
		wantSelected int
		wantOffset   int
	}{
		{
			name:         "selection kept when still in range",
			start:        State{Selected: 3, Offset: 1, Count: 10, Visible: 4},
			count:        8,
			wantSelected: 3,
			wantOffset:   1,
		},
		{
			name:         "selection clamped to new last row",
			start:        State{Selected: 9, Offset: 6, Count: 10, Visible: 4},
			count:        3,
			wantSelected: 2,
			wantOffset:   0,
		},
		{
			name:         "emptied list",
			start:        State{Selected: 5, Offset: 2, Count: 10, Visible: 4},
			count:        0,
			wantSelected: 0,
			wantOffset:   0,
		},
		{
			name:         "offset pulled back to fill the window",
			start:        State{Selected: 7, Offset: 6, Count: 10, Visible: 4},
			count:        8,
			wantSelected: 7,
			wantOffset:   4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			s.SetCount(tt.count)
			assert.Equal(t, tt.wantSelected, s.Selected)
			assert.Equal(t, tt.wantOffset, s.Offset)
		})
	}
}

func TestWindowAndIndexAt(t *testing.T) {
	s := State{Selected: 6, Offset: 5, Count: 7, Visible: 4}
	s.EnsureVisible()
	start, end := s.Window()
	assert.Equal(t, 3, start)
	assert.Equal(t, 7, end)
	assert.Equal(t, 3, s.IndexAt(0))
	assert.Equal(t, 6, s.IndexAt(3))
	assert.Equal(t, -1, s.IndexAt(4))
	assert.Equal(t, -1, s.IndexAt(-1))

	short := New(2, 5)
	assert.Equal(t, -1, short.IndexAt(2))
}

func TestPageTopBottom(t *testing.T) {
	s := New(30, 10)
	s.Page(1)
	assert.Equal(t, 10, s.Selected)
	s.Bottom()
	assert.Equal(t, 29, s.Selected)
	assert.Equal(t, 20, s.Offset)
	s.Top()
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, 0, s.Offset)
}
