package preview

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jsphweid/ballstyle/model"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

var w float64 = 1200
var h float64 = 600
var waveH float64 = 150
var margin float64 = 20

type Color struct {
	R, G, B float64
}

var (
	melodyColor     = Color{1, 0.5, 0}
	backgroundColor = Color{0.55, 0.55, 0.55}
	waveColor       = Color{0.2, 0.4, 0.9}
)

func setRGBColor(dc *gg.Context, c Color) {
	dc.SetRGB(c.R, c.G, c.B)
}

func pitchRange(notes []model.NoteEvent) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, n := range notes {
		lo = math.Min(lo, n.Pitch)
		hi = math.Max(hi, n.Pitch)
	}
	if math.IsInf(lo, 1) {
		return 59, 61
	}
	// keep a semitone of headroom so a single pitch still has height
	return math.Floor(lo) - 1, math.Ceil(hi) + 1
}

// Draw renders a piano roll of notes above the waveform of buf.
func Draw(notes []model.NoteEvent, buf model.AudioBuffer, title string) (*gg.Context, error) {
	dc := gg.NewContext(int(w), int(h))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	total := buf.Duration()
	if total <= 0 {
		total = 1
	}
	rollH := h - waveH - 3*margin
	lo, hi := pitchRange(notes)
	xOf := func(sec float64) float64 { return margin + (w-2*margin)*sec/total }
	yOf := func(pitch float64) float64 { return margin + rollH*(1-(pitch-lo)/(hi-lo)) }

	noteH := math.Max(rollH/(hi-lo), 2)
	for _, n := range notes {
		if n.Volume == 0 {
			continue
		}
		c := melodyColor
		if n.Volume < 1 {
			c = backgroundColor
		}
		x := xOf(n.Start)
		width := math.Max(xOf(n.End)-x, 1)
		dc.DrawRectangle(x, yOf(n.Pitch)-noteH/2, width, noteH)
		setRGBColor(dc, c)
		dc.FillPreserve()
		dc.SetRGBA(0, 0, 0, 1)
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}

	drawWaveform(dc, buf, h-margin-waveH, waveH)

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse font")
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 12}))
	dc.SetRGB(0, 0, 0)
	dc.DrawString(fmt.Sprintf("%s  (%d notes, %.2fs)", title, len(notes), buf.Duration()), margin, margin)
	return dc, nil
}

// drawWaveform plots the min/max envelope of buf, one column per pixel.
func drawWaveform(dc *gg.Context, buf model.AudioBuffer, top, height float64) {
	mid := top + height/2
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.DrawLine(margin, mid, w-margin, mid)
	dc.Stroke()

	cols := int(w - 2*margin)
	if len(buf.Samples) == 0 || cols <= 0 {
		return
	}
	per := int(math.Ceil(float64(len(buf.Samples)) / float64(cols)))
	setRGBColor(dc, waveColor)
	dc.SetLineWidth(1)
	for col := 0; col < cols; col++ {
		from := col * per
		if from >= len(buf.Samples) {
			break
		}
		to := from + per
		if to > len(buf.Samples) {
			to = len(buf.Samples)
		}
		lo, hi := 0.0, 0.0
		for _, v := range buf.Samples[from:to] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		x := margin + float64(col)
		dc.DrawLine(x, mid-hi*height/2, x, mid-lo*height/2)
		dc.Stroke()
	}
}

func EncodePNG(out io.Writer, notes []model.NoteEvent, buf model.AudioBuffer, title string) error {
	dc, err := Draw(notes, buf, title)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(out); err != nil {
		return errors.Wrap(err, "could not encode png")
	}
	return nil
}
