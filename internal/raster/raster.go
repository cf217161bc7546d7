// Package raster draws message blocks into an image using the Go fonts.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// Options controls image rendering.
type Options struct {
	// Width is the image width in pixels.
	Width int
	// Margin is the padding around the content in pixels; zero selects 16,
	// a negative value disables it.
	Margin int
	// FontSize is the body text size in points.
	FontSize float64
	// DPI defaults to 72, making one point one pixel.
	DPI float64
	// Theme supplies colours; nil uses the default theme.
	Theme *types.Theme
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 640
	}
	if o.Margin < 0 {
		o.Margin = 0
	} else if o.Margin == 0 {
		o.Margin = 16
	}
	if o.FontSize <= 0 {
		o.FontSize = 15
	}
	if o.DPI <= 0 {
		o.DPI = 72
	}
	if o.Theme == nil {
		o.Theme = types.DefaultTheme()
	}
	return o
}

// Render lays out blocks at the configured width and draws them.
// The image height grows to fit the content.
func Render(blocks []types.Block, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()
	faces, err := newFaceCache(opts.DPI)
	if err != nil {
		return nil, err
	}
	defer faces.close()

	l := &layout{
		faces:    faces,
		theme:    opts.Theme,
		size:     opts.FontSize,
		maxX:     opts.Width - opts.Margin,
		blockGap: int(opts.FontSize * 0.75),
	}
	l.blocks(blocks, opts.Margin)

	height := 2 * opts.Margin
	for _, ln := range l.lines {
		height += ln.height
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, max(height, 1)))
	fill(img, img.Bounds(), opts.Theme.Colors.Background)

	y := opts.Margin
	for _, ln := range l.lines {
		drawLine(img, ln, y, opts)
		y += ln.height
	}
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawLine(img *image.RGBA, ln line, top int, opts Options) {
	colors := opts.Theme.Colors
	right := opts.Width - opts.Margin
	bottom := top + ln.height

	switch ln.kind {
	case lineCode:
		fill(img, image.Rect(ln.indent-int(opts.FontSize/2), top, right, bottom), colors.CodeBackground)
	case lineRule:
		mid := top + ln.height/2
		fill(img, image.Rect(ln.indent, mid, right, mid+1), colors.Muted)
	}

	barWidth := max(int(opts.FontSize/5), 2)
	for _, x := range ln.bars {
		fill(img, image.Rect(x, top, x+barWidth, bottom), colors.Muted)
	}

	baseline := top + ln.ascent
	for _, f := range ln.frags {
		if f.bg.IsSet() {
			fill(img, image.Rect(f.x, top, f.x+f.width, bottom), f.bg)
		}
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(f.fg),
			Face: f.face,
			Dot:  fixed.P(f.x, baseline),
		}
		d.DrawString(f.text)

		if f.underline {
			fill(img, image.Rect(f.x, baseline+2, f.x+f.width, baseline+3), f.fg)
		}
		if f.strike {
			mid := baseline - f.face.Metrics().XHeight.Ceil()/2
			fill(img, image.Rect(f.x, mid, f.x+f.width, mid+1), f.fg)
		}
	}
}

func fill(img *image.RGBA, r image.Rectangle, c types.Color) {
	if !c.IsSet() {
		return
	}
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}
