package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"kashko/internal/domain"
	"kashko/internal/format"
)

const (
	title    = "Kashko Clicker"
	subtitle = "Tap the poop, earn coins!"

	// markerRiseStep is how long a click marker stays on one row before
	// floating up to the next.
	markerRiseStep = 250 * time.Millisecond
)

var (
	purple = tcell.NewRGBColor(147, 51, 234)
	pink   = tcell.NewRGBColor(236, 72, 153)
	yellow = tcell.NewRGBColor(250, 204, 21)

	styleBase     = tcell.StyleDefault
	styleSubtitle = tcell.StyleDefault.Foreground(purple).Bold(true)
	styleBalance  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(purple).Bold(true)
	styleRate     = tcell.StyleDefault.Foreground(purple).Bold(true)
	styleTarget   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(146, 64, 14))
	stylePulse    = styleTarget.Bold(true).Foreground(tcell.NewRGBColor(180, 83, 9))
	styleMarker   = tcell.StyleDefault.Foreground(yellow).Bold(true)
	styleShopHead = tcell.StyleDefault.Foreground(pink).Bold(true)
	styleShopOn   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(purple)
	styleShopOff  = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleCost     = styleShopOn.Foreground(yellow).Bold(true)
	styleFooter   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(251, 146, 60)).Bold(true)

	titleFrom = colorful.Color{R: 0.58, G: 0.20, B: 0.92}
	titleTo   = colorful.Color{R: 0.98, G: 0.57, B: 0.24}
)

var toastColors = map[ToastSeverity]tcell.Style{
	ToastInfo:    tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 200, 200)).Background(tcell.NewRGBColor(40, 40, 50)),
	ToastSuccess: tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 255, 220)).Background(tcell.NewRGBColor(30, 60, 30)),
	ToastError:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 220, 220)).Background(tcell.NewRGBColor(60, 25, 25)),
}

var targetArt = []string{
	"    (   )    ",
	"   (     )   ",
	"  ( o   o )  ",
	" (   \\_/   ) ",
	"(___________)",
}

var iconGlyphs = map[string]rune{
	"Brush":    '/',
	"Home":     '⌂',
	"Factory":  '▟',
	"Tractor":  '¤',
	"Mountain": '▲',
}

// view is everything one frame needs.
type view struct {
	st     domain.State
	lay    layout
	toasts []toast
	now    time.Time
}

func draw(s tcell.Screen, v view) {
	s.Clear()
	drawHeader(s, v)
	drawTarget(s, v)
	drawShop(s, v)
	drawFooter(s, v)
	drawToasts(s, v)
	s.Show()
}

func drawHeader(s tcell.Screen, v view) {
	l := v.lay
	cols := gradient(runewidth.StringWidth(title))
	x := (l.width - runewidth.StringWidth(title)) / 2
	i := 0
	for _, r := range title {
		x = drawText(s, x, l.titleRow, styleBase.Foreground(cols[i]).Bold(true), string(r))
		i++
	}
	drawCentered(s, 0, l.width, l.subtitleRow, styleSubtitle, subtitle)

	drawCentered(s, 0, l.paneW, l.balanceRow, styleBalance, fmt.Sprintf("  %s coins  ", format.Number(v.st.Balance)))
	if rate := format.Rate(v.st.Rate); rate != "" {
		drawCentered(s, 0, l.paneW, l.rateRow, styleRate, rate)
	}
}

func drawTarget(s tcell.Screen, v view) {
	t := v.lay.target
	style := styleTarget
	if v.st.Scale > 1 {
		style = stylePulse
		drawBox(s, rect{X: t.X - 1, Y: t.Y - 1, W: t.W + 2, H: t.H + 2}, stylePulse)
	} else {
		drawBox(s, t, styleTarget)
	}

	top := t.Y + (t.H-len(targetArt))/2
	for i, line := range targetArt {
		drawCentered(s, t.X, t.W, top+i, style, line)
	}

	for _, m := range v.st.Markers {
		rise := 0
		if age := v.now.Sub(m.CreatedAt); age > 0 {
			rise = int(age / markerRiseStep)
		}
		drawText(s, t.X+m.X, t.Y+m.Y-rise, styleMarker, "+"+format.Number(m.Amount))
	}

	drawCentered(s, 0, v.lay.paneW, v.lay.powerRow, styleBase,
		"Click power: "+format.Number(v.st.ClickPower))
}

func drawShop(s tcell.Screen, v view) {
	l := v.lay
	drawText(s, l.shop.X, l.shop.Y, styleShopHead, "Shop")
	for i, u := range v.st.Upgrades {
		if i >= len(l.rows) {
			break
		}
		r := l.rows[i]
		affordable := v.st.Balance >= u.Cost
		style, cost := styleShopOff, styleShopOff
		if affordable {
			style, cost = styleShopOn, styleCost
		}
		fill(s, rect{X: r.X, Y: r.Y, W: r.W, H: r.H - 1}, style)

		glyph, ok := iconGlyphs[u.Icon]
		if !ok {
			glyph = '•'
		}
		name := fmt.Sprintf("%d %c %s", i+1, glyph, u.Name)
		end := drawText(s, r.X+1, r.Y, style.Bold(true), runewidth.Truncate(name, r.W-6, "…"))
		if u.Owned > 0 {
			owned := fmt.Sprintf("x%d", u.Owned)
			x := r.X + r.W - 1 - runewidth.StringWidth(owned)
			if x <= end {
				x = end + 1
			}
			drawText(s, x, r.Y, style.Bold(true), owned)
		}
		x := drawText(s, r.X+1, r.Y+1, style, format.Contribution(u.Contribution))
		drawText(s, x+2, r.Y+1, cost, format.Number(u.Cost)+" coins")
	}
}

func drawFooter(s tcell.Screen, v view) {
	msg := fmt.Sprintf(" Total earned: %s Kashko coins! ", format.Number(v.st.Balance))
	drawCentered(s, 0, v.lay.width, v.lay.footRow, styleFooter, msg)
}

func drawToasts(s tcell.Screen, v view) {
	y := v.lay.height - 1
	for i := len(v.toasts) - 1; i >= 0 && y >= 0; i-- {
		t := v.toasts[i]
		style := toastColors[t.Severity]
		fill(s, rect{X: 0, Y: y, W: v.lay.width, H: 1}, style)
		msg := fmt.Sprintf(" %c %s", toastIcons[t.Severity], t.Title)
		if t.Detail != "" {
			msg += "  " + t.Detail
		}
		drawText(s, 0, y, style.Bold(true), runewidth.Truncate(msg, v.lay.width, "…"))
		y--
	}
}

// gradient spreads n colours from titleFrom to titleTo in HCL space.
func gradient(n int) []tcell.Color {
	cols := make([]tcell.Color, n)
	for i := range cols {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, g, b := titleFrom.BlendHcl(titleTo, t).Clamped().RGB255()
		cols[i] = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return cols
}

// drawText writes text starting at (x, y), clipping to the screen, and
// returns the column just past it.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	w, h := s.Size()
	for _, r := range text {
		if y >= 0 && y < h && x >= 0 && x < w {
			s.SetContent(x, y, r, nil, style)
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}

func drawCentered(s tcell.Screen, x0, width, y int, style tcell.Style, text string) {
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	drawText(s, x0+(width-runewidth.StringWidth(text))/2, y, style, text)
}

func fill(s tcell.Screen, r rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

func drawBox(s tcell.Screen, r rect, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		s.SetContent(x, r.Y, '─', nil, style)
		s.SetContent(x, bottom, '─', nil, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetContent(r.X, y, '│', nil, style)
		s.SetContent(right, y, '│', nil, style)
	}
	s.SetContent(r.X, r.Y, '┌', nil, style)
	s.SetContent(right, r.Y, '┐', nil, style)
	s.SetContent(r.X, bottom, '└', nil, style)
	s.SetContent(right, bottom, '┘', nil, style)
}
