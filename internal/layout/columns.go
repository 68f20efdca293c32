// Package layout computes concrete column widths for bordered tables and
// the geometry of agent cards, including user width overrides made by
// dragging column separators.
//
// A table of n columns is drawn with n+1 vertical border characters: one
// on each side and one between every pair of columns.
package layout

import "math"

// Column declares one table column. A column with a positive Weight is a
// flex column and shares the space left over by the fixed columns; its
// Width is ignored.
type Column struct {
	Title  string
	Width  int
	Weight float64
	Min    int
}

// Flex reports whether the column is sized by weight.
func (c Column) Flex() bool { return c.Weight > 0 }

func (c Column) min() int {
	if c.Min < 1 {
		return 1
	}
	return c.Min
}

// Result is one layout pass.
type Result struct {
	Widths []int
	// Separators holds the absolute x offset of each interior separator;
	// Separators[i] sits between column i and column i+1.
	Separators []int
	// Total is the drawn width including all border characters.
	Total int
}

// BorderWidth is the number of border characters for n columns.
func BorderWidth(n int) int {
	if n == 0 {
		return 0
	}
	return n + 1
}

// MinWidth is the narrowest terminal the columns fit in.
func MinWidth(cols []Column) int {
	total := BorderWidth(len(cols))
	for _, c := range cols {
		total += c.min()
	}
	return total
}

// Solve lays cols out in width. overrides maps a column index to a user
// chosen width. The steps are, in order:
//
//  1. fixed columns take their declared width; the rest (width minus fixed
//     widths minus borders) is split across flex columns by weight, rounded
//     down, and the rounding remainder goes to the last flex column;
//  2. overrides replace the computed width, raised to the column minimum;
//  3. while the total exceeds width, the widest column without an override
//     (leftmost on ties) that is still above its minimum loses one cell.
//
// Solve is deterministic and has no side effects.
func Solve(cols []Column, width int, overrides map[int]int) Result {
	n := len(cols)
	widths := make([]int, n)
	border := BorderWidth(n)

	fixed, weightSum := 0, 0.0
	lastFlex := -1
	for i, c := range cols {
		if c.Flex() {
			weightSum += c.Weight
			lastFlex = i
			continue
		}
		widths[i] = c.Width
		fixed += c.Width
	}

	if lastFlex >= 0 {
		space := width - fixed - border
		if space < 0 {
			space = 0
		}
		allocated := 0
		for i, c := range cols {
			if !c.Flex() {
				continue
			}
			// The epsilon keeps exact products like 0.57*100 from
			// flooring one cell short.
			w := int(math.Floor(float64(space)*c.Weight/weightSum + 1e-9))
			widths[i] = w
			allocated += w
		}
		widths[lastFlex] += space - allocated
	}

	for i, c := range cols {
		if widths[i] < c.min() {
			widths[i] = c.min()
		}
	}

	pinned := make([]bool, n)
	for i, w := range overrides {
		if i < 0 || i >= n {
			continue
		}
		if w < cols[i].min() {
			w = cols[i].min()
		}
		widths[i] = w
		pinned[i] = true
	}

	total := border
	for _, w := range widths {
		total += w
	}
	for total > width {
		victim := -1
		for i, w := range widths {
			if pinned[i] || w <= cols[i].min() {
				continue
			}
			if victim < 0 || w > widths[victim] {
				victim = i
			}
		}
		if victim < 0 {
			break
		}
		widths[victim]--
		total--
	}

	return Result{Widths: widths, Separators: separators(widths), Total: total}
}

func separators(widths []int) []int {
	if len(widths) < 2 {
		return nil
	}
	seps := make([]int, 0, len(widths)-1)
	x := 0
	for _, w := range widths[:len(widths)-1] {
		x += 1 + w
		seps = append(seps, x)
	}
	return seps
}

// SeparatorAt returns the interior separator drawn at column x, or -1.
func (r Result) SeparatorAt(x int) int {
	for i, sx := range r.Separators {
		if sx == x {
			return i
		}
	}
	return -1
}

// ColumnAt returns the column whose cells cover x, or -1 for borders and
// positions outside the table.
func (r Result) ColumnAt(x int) int {
	start := 1
	for i, w := range r.Widths {
		if x >= start && x < start+w {
			return i
		}
		start += w + 1
	}
	return -1
}
