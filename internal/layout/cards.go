package layout

// Card dimensions in cells. CardHeight includes the blank gap row below
// each card.
const (
	CardHeight     = 6
	CardMargin     = 2
	MinCardWidth   = 40
	cardSideInsets = 4
)

// Cards is the geometry of the card list.
type Cards struct {
	Width   int
	Height  int
	Margin  int
	Visible int
}

// CardGeometry sizes cards for a terminal of width x height cells, of which
// chrome rows are taken by headers and footers.
func CardGeometry(width, height, chrome int) Cards {
	w := width - cardSideInsets
	if w < MinCardWidth {
		w = MinCardWidth
	}
	visible := (height - chrome) / CardHeight
	if visible < 1 {
		visible = 1
	}
	return Cards{Width: w, Height: CardHeight, Margin: CardMargin, Visible: visible}
}
