// Package charts renders score card rankings as horizontal bar charts.
package charts

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/padraicbc/scorecard/scorecard"
)

const (
	rowHeight   = 26
	barInset    = 4
	margin      = 16
	titleHeight = 36
	labelGap    = 10
	valueGap    = 6
	fontSize    = 11.0
	titleSize   = 14.0
	minHeight   = 160
	noDataText  = "No data"
)

// Palette holds the colours a chart is drawn with.
type Palette struct {
	Background drawing.Color
	Bar        drawing.Color
	Axis       drawing.Color
	Text       drawing.Color
}

// DefaultPalette matches the page: orange accents on white.
var DefaultPalette = Palette{
	Background: drawing.ColorWhite,
	Bar:        drawing.ColorFromHex("f28e2b"),
	Axis:       drawing.ColorFromHex("888888"),
	Text:       drawing.ColorFromHex("262730"),
}

// Options controls the rendered size. A zero Height grows with the number of bars.
type Options struct {
	Width   int
	Height  int
	Palette Palette
}

func (o Options) size(bars int) (int, int) {
	w := o.Width
	if w <= 0 {
		w = 800
	}
	h := o.Height
	if h <= 0 {
		h = titleHeight + 2*margin + bars*rowHeight
	}
	if h < minHeight {
		h = minHeight
	}
	return w, h
}

// Ranking renders bars top to bottom in the order given, as a PNG.
func Ranking(title string, bars []scorecard.Ranked, opts Options) ([]byte, error) {
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette
	}
	width, height := opts.size(len(bars))

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	r.SetFont(font)

	pal := opts.Palette
	fillRect(r, 0, 0, width, height, pal.Background)

	r.SetFontColor(pal.Text)
	r.SetFontSize(titleSize)
	r.Text(title, margin, margin+int(titleSize))

	if len(bars) == 0 {
		drawCentered(r, noDataText, width, height, pal.Text)
	} else {
		drawBars(r, bars, width, height, pal)
	}

	buf := bytes.NewBuffer([]byte{})
	if err := r.Save(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawBars(r chart.Renderer, bars []scorecard.Ranked, width, height int, pal Palette) {
	r.SetFontSize(fontSize)

	labelWidth, valueWidth := 0, 0
	lo, hi := int64(0), int64(0)
	for _, b := range bars {
		labelWidth = max(labelWidth, r.MeasureText(b.Name).Width())
		valueWidth = max(valueWidth, r.MeasureText(strconv.FormatInt(b.Value, 10)).Width())
		lo = min(lo, b.Value)
		hi = max(hi, b.Value)
	}

	left := margin + labelWidth + labelGap
	right := width - margin - valueWidth - valueGap
	top := margin + titleHeight
	if right <= left {
		right = left + 1
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}
	scale := float64(right-left) / float64(span)
	zero := left + int(float64(-lo)*scale)

	for i, b := range bars {
		y := top + i*rowHeight
		end := zero + int(float64(b.Value)*scale)
		x0, x1 := min(zero, end), max(zero, end)
		if x1 == x0 && b.Value != 0 {
			x1 = x0 + 1
		}
		fillRect(r, x0, y+barInset, x1, y+rowHeight-barInset, pal.Bar)

		r.SetFontColor(pal.Text)
		label := r.MeasureText(b.Name)
		baseline := y + (rowHeight+label.Height())/2
		r.Text(b.Name, left-labelGap-label.Width(), baseline)
		r.Text(strconv.FormatInt(b.Value, 10), x1+valueGap, baseline)
	}

	// Zero axis.
	r.SetStrokeColor(pal.Axis)
	r.SetStrokeWidth(1)
	r.MoveTo(zero, top)
	r.LineTo(zero, min(height-margin, top+len(bars)*rowHeight))
	r.Stroke()
}

func drawCentered(r chart.Renderer, msg string, width, height int, c drawing.Color) {
	r.SetFontColor(c)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}
