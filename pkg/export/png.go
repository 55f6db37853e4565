package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"slices"

	"github.com/paulmach/orb"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultImageWidth is the PNG width used when none is given
	DefaultImageWidth = 1024
	imageMargin       = 16
	labelHeight       = 16
)

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	labelColor      = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	viewColors      = map[projection.View]color.RGBA{
		projection.Front: colornames.Crimson,
		projection.Top:   colornames.Forestgreen,
		projection.SideA: colornames.Darkcyan,
		projection.SideB: colornames.Darkmagenta,
	}
)

// Image rasterizes the projected loops with the same layout as the DXF
// drawing. Closed loops are filled even-odd, so nested loops show as
// holes, and every loop gets an outline in its view color.
func Image(result section.Result, views []projection.View, width int) (*image.RGBA, error) {
	if width <= 2*imageMargin {
		return nil, fmt.Errorf("image width must be larger than %d, got %d", 2*imageMargin, width)
	}

	projected := projection.ProjectAll(result, views)
	shifts := layout(projected, views)

	var (
		total orb.Bound
		found bool
	)
	for _, v := range views {
		b, ok := projection.Extent(projected[v])
		if !ok {
			continue
		}
		b = shiftBound(b, shifts[v])
		if !found {
			total, found = b, true
			continue
		}
		total = total.Union(b)
	}

	scale := 1.0
	drawWidth := float64(width - 2*imageMargin)
	if found && total.Max[0] > total.Min[0] {
		scale = drawWidth / (total.Max[0] - total.Min[0])
	}
	height := 2*imageMargin + labelHeight
	if found {
		height += int(math.Ceil((total.Max[1] - total.Min[1]) * scale))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, backgroundColor)
	if !found {
		return img, nil
	}

	// model y grows upwards, image y downwards
	toPixel := func(p orb.Point, shift float64) orb.Point {
		return orb.Point{
			imageMargin + (p[0]+shift-total.Min[0])*scale,
			float64(imageMargin+labelHeight) + (total.Max[1]-p[1])*scale,
		}
	}

	for _, v := range views {
		b, ok := projection.Extent(projected[v])
		if !ok {
			continue
		}
		col := viewColors[v]
		fill := col
		fill.A = 64

		var rings []orb.Ring
		var lines []orb.LineString
		for _, p := range projected[v] {
			line := make(orb.LineString, len(p.Line))
			for i, pt := range p.Line {
				line[i] = toPixel(pt, shifts[v])
			}
			if p.Closed {
				rings = append(rings, orb.Ring(line))
			}
			lines = append(lines, line)
		}

		fillRings(img, rings, fill)
		for i, line := range lines {
			closed := projected[v][i].Closed
			for j := 0; j+1 < len(line); j++ {
				drawSegment(img, line[j], line[j+1], col)
			}
			if closed && len(line) > 2 {
				drawSegment(img, line[len(line)-1], line[0], col)
			}
		}

		origin := toPixel(orb.Point{b.Min[0], b.Max[1]}, shifts[v])
		drawLabel(img, LayerName(v), int(origin[0]), int(origin[1])-4)
	}
	return img, nil
}

// SavePNG writes the rasterized views of result to path
func SavePNG(path string, result section.Result, views []projection.View, width int) error {
	img, err := Image(result, views, width)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write PNG: %w", err)
	}
	return f.Close()
}

func shiftBound(b orb.Bound, dx float64) orb.Bound {
	b.Min[0] += dx
	b.Max[0] += dx
	return b
}

func fillRect(img *image.RGBA, col color.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// fillRings fills the even-odd interior of rings with a scanline pass
// through pixel centers, blending col over the image.
func fillRings(img *image.RGBA, rings []orb.Ring, col color.RGBA) {
	if len(rings) == 0 {
		return
	}
	bounds := img.Bounds()

	var xs []float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		fy := float64(y) + 0.5
		xs = xs[:0]

		// Find intersections with every ring edge
		for _, ring := range rings {
			n := len(ring)
			for i := 0; i < n; i++ {
				a, b := ring[i], ring[(i+1)%n]
				if a[1] == b[1] {
					continue
				}
				if (fy >= a[1]) == (fy >= b[1]) {
					continue
				}
				t := (fy - a[1]) / (b[1] - a[1])
				xs = append(xs, a[0]+t*(b[0]-a[0]))
			}
		}
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			xStart := int(math.Max(float64(bounds.Min.X), math.Ceil(xs[i]-0.5)))
			xEnd := int(math.Min(float64(bounds.Max.X-1), math.Floor(xs[i+1]-0.5)))
			for x := xStart; x <= xEnd; x++ {
				img.SetRGBA(x, y, blend(img.RGBAAt(x, y), col))
			}
		}
	}
}

// blend draws src with its alpha over an opaque dst
func blend(dst, src color.RGBA) color.RGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

func drawSegment(img *image.RGBA, a, b orb.Point, col color.RGBA) {
	drawLine(img, int(math.Round(a[0])), int(math.Round(a[1])), int(math.Round(b[0])), int(math.Round(b[1])), col)
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if image.Pt(x1, y1).In(bounds) {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func drawLabel(img *image.RGBA, text string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
