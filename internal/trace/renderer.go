package trace

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// Shades used for the different pointer streams
const (
	shadeHover  uint8 = 96
	shadeDrag   uint8 = 192
	shadeFinger uint8 = 255
	shadeLabel  uint8 = 255
)

// cursorKey identifies the cursor stream in the last-position map
const cursorKey int32 = -1

// Renderer draws the path of every dispatched pointer into a grayscale image
type Renderer struct {
	width  int
	height int
	img    *image.Gray
	face   font.Face

	last map[int32]image.Point
}

// NewRenderer creates a new trace renderer
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		width:  width,
		height: height,
		img:    image.NewGray(image.Rect(0, 0, width, height)),
		face:   basicfont.Face7x13,
		last:   make(map[int32]image.Point),
	}
	r.Clear()
	return r
}

// Clear clears the image and forgets pointer positions
func (r *Renderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Black, image.Point{}, draw.Src)
	r.last = make(map[int32]image.Point)
}

// NotifyMotion draws the pointers of one event. Each pointer is joined to its
// previous position; downs and ups are labelled with the pointer id.
func (r *Renderer) NotifyMotion(ev input.MotionEvent) error {
	shade := shadeFor(ev)
	for _, p := range ev.Pointers {
		key := pointerKey(ev, p)
		pt := image.Point{X: int(p.Coords.Pos.X), Y: int(p.Coords.Pos.Y)}
		if prev, ok := r.last[key]; ok {
			r.DrawLine(prev, pt, shade)
		} else {
			r.SetPixel(pt.X, pt.Y, shade)
		}
		r.last[key] = pt
	}

	if ev.PointerCount() == 0 {
		return nil
	}
	ap := ev.ActionPointer()
	key := pointerKey(ev, ap)
	pt := r.last[key]
	switch ev.Action {
	case input.ActionDown, input.ActionPointerDown:
		r.DrawText(pt.X+2, pt.Y-2, fmt.Sprintf("d%d", ap.ID))
	case input.ActionUp, input.ActionPointerUp:
		r.DrawText(pt.X+2, pt.Y+11, fmt.Sprintf("u%d", ap.ID))
		if ev.Classification != input.ClassificationNone {
			delete(r.last, key)
		}
	}
	return nil
}

func pointerKey(ev input.MotionEvent, p input.Pointer) int32 {
	if ev.Classification == input.ClassificationNone {
		return cursorKey
	}
	return p.ID
}

func shadeFor(ev input.MotionEvent) uint8 {
	switch {
	case ev.Classification != input.ClassificationNone:
		return shadeFinger
	case ev.ButtonState != 0:
		return shadeDrag
	default:
		return shadeHover
	}
}

// DrawText draws text with its baseline at the specified position
func (r *Renderer) DrawText(x, y int, text string) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(color.Gray{Y: shadeLabel}),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// DrawLine draws a line between two points, inclusive
func (r *Renderer) DrawLine(from, to image.Point, shade uint8) {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	err := dx + dy
	x, y := from.X, from.Y
	for {
		r.SetPixel(x, y, shade)
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// SetPixel sets a single pixel; points outside the image are ignored
func (r *Renderer) SetPixel(x, y int, shade uint8) {
	r.img.SetGray(x, y, color.Gray{Y: shade})
}

// DrawRect draws a rectangle outline
func (r *Renderer) DrawRect(x, y, width, height int, shade uint8) {
	for i := x; i < x+width; i++ {
		r.SetPixel(i, y, shade)
		r.SetPixel(i, y+height-1, shade)
	}
	for i := y; i < y+height; i++ {
		r.SetPixel(x, i, shade)
		r.SetPixel(x+width-1, i, shade)
	}
}

// Image returns the rendered trace
func (r *Renderer) Image() *image.Gray {
	return r.img
}

// WritePNG encodes the trace as PNG
func (r *Renderer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// SavePNG writes the trace to a PNG file
func (r *Renderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Width returns the renderer width
func (r *Renderer) Width() int {
	return r.width
}

// Height returns the renderer height
func (r *Renderer) Height() int {
	return r.height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
