package ui

// rect is a screen region in cells.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r rect) center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

const (
	targetW   = 17
	targetH   = 8
	shopRowH  = 3
	minShopW  = 28
	maxShopW  = 40
	headerTop = 0
)

// layout places every widget for a given screen size. Positions are
// clamped so that small terminals degrade instead of panicking.
type layout struct {
	width, height int

	titleRow    int
	subtitleRow int
	balanceRow  int
	rateRow     int
	target      rect
	powerRow    int

	paneW   int
	shop    rect
	rows    []rect
	footRow int
}

func computeLayout(width, height, upgrades int) layout {
	l := layout{width: width, height: height}

	shopW := width / 3
	if shopW < minShopW {
		shopW = minShopW
	}
	if shopW > maxShopW {
		shopW = maxShopW
	}
	if shopW > width {
		shopW = width
	}
	l.paneW = width - shopW - 1
	if l.paneW < targetW+2 {
		l.paneW = targetW + 2
	}

	l.titleRow = headerTop
	l.subtitleRow = headerTop + 1
	l.balanceRow = headerTop + 3
	l.rateRow = headerTop + 4
	l.target = rect{X: (l.paneW - targetW) / 2, Y: headerTop + 6, W: targetW, H: targetH}
	if l.target.X < 1 {
		l.target.X = 1
	}
	l.powerRow = l.target.Y + l.target.H + 1

	l.shop = rect{X: l.paneW + 1, Y: headerTop + 3, W: width - l.paneW - 1, H: 1}
	l.rows = make([]rect, upgrades)
	for i := range l.rows {
		l.rows[i] = rect{X: l.shop.X, Y: l.shop.Y + 2 + i*shopRowH, W: l.shop.W, H: shopRowH}
	}

	l.footRow = height - 3
	if lowest := l.powerRow + 2; l.footRow < lowest {
		l.footRow = lowest
	}
	return l
}

// hitUpgrade returns the index of the shop row under (x, y), or -1.
func (l layout) hitUpgrade(x, y int) int {
	for i, r := range l.rows {
		if r.contains(x, y) {
			return i
		}
	}
	return -1
}

// hitTarget reports whether (x, y) lands on the click target and where,
// relative to the target's origin.
func (l layout) hitTarget(x, y int) (int, int, bool) {
	if !l.target.contains(x, y) {
		return 0, 0, false
	}
	return x - l.target.X, y - l.target.Y, true
}
