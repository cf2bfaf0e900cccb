package terminal

import (
	"errors"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/render"
)

// ErrClosed is returned by draw calls after Fini
var ErrClosed = errors.New("terminal: surface closed")

// viewport maps virtual units onto the cell grid
type viewport struct {
	virtualW, virtualH float64
	cols, rows         int
	scaleX, scaleY     float64 // cells per virtual unit
}

func (v *viewport) update(cols, rows int) {
	v.cols, v.rows = cols, rows
	v.scaleX, v.scaleY = 1, 1
	if v.virtualW > 0 && cols > 0 {
		v.scaleX = float64(cols) / v.virtualW
	}
	if v.virtualH > 0 && rows > 0 {
		v.scaleY = float64(rows) / v.virtualH
	}
}

func (v *viewport) toCell(p render.Vec2) (float64, float64) {
	return p.X * v.scaleX, p.Y * v.scaleY
}

func (v *viewport) toVirtualX(cells float64) float64 {
	if v.scaleX == 0 {
		return cells
	}
	return cells / v.scaleX
}

type queuedText struct {
	frag  render.TextFragment
	pos   render.Vec2
	color core.RGB
}

type styleKey struct {
	font  *Font
	color core.RGB
}

// Surface draws render core output onto a tcell screen
type Surface struct {
	screen tcell.Screen
	view   viewport
	bg     core.RGB
	closed bool

	queue  []queuedText
	styles map[styleKey]tcell.Style
}

// NewSurface wraps an initialized screen with a virtual viewport of the given size
// A zero dimension maps one virtual unit to one cell on that axis
func NewSurface(screen tcell.Screen, virtualW, virtualH float64) *Surface {
	s := &Surface{
		screen: screen,
		view:   viewport{virtualW: virtualW, virtualH: virtualH},
		queue:  make([]queuedText, 0, 32),
		styles: make(map[styleKey]tcell.Style, 8),
	}
	s.view.update(screen.Size())
	return s
}

// Screen exposes the wrapped screen for input polling
func (s *Surface) Screen() tcell.Screen {
	return s.screen
}

// Sync redraws the whole terminal after a resize
func (s *Surface) Sync() {
	s.view.update(s.screen.Size())
	s.screen.Sync()
}

// Fini restores the terminal; further draws return ErrClosed
func (s *Surface) Fini() {
	if s.closed {
		return
	}
	s.closed = true
	s.screen.Fini()
}

// Clear fills the grid with color and drops any text left by an aborted frame
func (s *Surface) Clear(color core.RGB) error {
	if s.closed {
		return ErrClosed
	}
	s.view.update(s.screen.Size())
	s.bg = color
	s.queue = s.queue[:0]
	s.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(color)))
	return nil
}

// DrawImage draws sprite so that its Offset pixel lands on Dest, rotated around it
func (s *Surface) DrawImage(sprite *asset.Sprite, p render.DrawParam) error {
	if s.closed {
		return ErrClosed
	}
	if sprite == nil {
		return errors.New("terminal: nil sprite")
	}
	ax, ay := s.view.toCell(p.Dest)

	if p.Rotation == 0 {
		ox := int(math.Round(ax - p.Offset.X))
		oy := int(math.Round(ay - p.Offset.Y))
		for y := 0; y < sprite.Height; y++ {
			for x := 0; x < sprite.Width; x++ {
				s.plot(ox+x, oy+y, sprite.At(x, y))
			}
		}
		return nil
	}

	// Inverse map every cell of the rotated bounding box back into the sprite
	sin, cos := math.Sincos(p.Rotation)
	minX, minY, maxX, maxY := rotatedBounds(sprite, p.Offset, sin, cos)
	for dy := int(math.Floor(minY)); dy <= int(math.Ceil(maxY)); dy++ {
		for dx := int(math.Floor(minX)); dx <= int(math.Ceil(maxX)); dx++ {
			// Sample at the cell center
			lx, ly := float64(dx)+0.5, float64(dy)+0.5
			sx := cos*lx + sin*ly + p.Offset.X
			sy := -sin*lx + cos*ly + p.Offset.Y
			px, py := int(math.Floor(sx)), int(math.Floor(sy))
			s.plot(int(math.Round(ax))+dx, int(math.Round(ay))+dy, sprite.At(px, py))
		}
	}
	return nil
}

// rotatedBounds returns the pivot-relative box covering the rotated sprite
func rotatedBounds(sprite *asset.Sprite, pivot render.Vec2, sin, cos float64) (minX, minY, maxX, maxY float64) {
	corners := [4][2]float64{
		{-pivot.X, -pivot.Y},
		{float64(sprite.Width) - pivot.X, -pivot.Y},
		{-pivot.X, float64(sprite.Height) - pivot.Y},
		{float64(sprite.Width) - pivot.X, float64(sprite.Height) - pivot.Y},
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x := cos*c[0] - sin*c[1]
		y := sin*c[0] + cos*c[1]
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return minX, minY, maxX, maxY
}

func (s *Surface) plot(x, y int, px asset.Pixel) {
	if !px.Opaque {
		return
	}
	if x < 0 || y < 0 || x >= s.view.cols || y >= s.view.rows {
		return
	}
	s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(toTcell(px.Color)))
}

// QueueText defers a text line to FlushText
func (s *Surface) QueueText(frag render.TextFragment, pos render.Vec2, color core.RGB) {
	s.queue = append(s.queue, queuedText{frag: frag, pos: pos, color: color})
}

// FlushText draws every queued line in queue order and empties the queue
// Cells have no sub-cell sampling, so both filter modes snap to the nearest cell
func (s *Surface) FlushText(_ render.FilterMode) error {
	if s.closed {
		return ErrClosed
	}
	for _, q := range s.queue {
		font, ok := q.frag.Font.(*Font)
		if !ok {
			return errors.New("terminal: text fragment font is not a terminal font")
		}
		style := s.style(font, q.color)
		cx, cy := s.view.toCell(q.pos)
		x, y := int(math.Round(cx)), int(math.Round(cy))
		for _, r := range font.Shape(q.frag.Text) {
			if x >= 0 && x < s.view.cols && y >= 0 && y < s.view.rows {
				// Keep the background already painted under the glyph
				_, _, under, _ := s.screen.GetContent(x, y)
				_, bg, _ := under.Decompose()
				s.screen.SetContent(x, y, r, nil, style.Background(bg))
			}
			x += runeAdvance(r) + font.Tracking
		}
	}
	s.queue = s.queue[:0]
	return nil
}

// Pending returns the number of queued text lines
func (s *Surface) Pending() int {
	return len(s.queue)
}

func (s *Surface) style(font *Font, color core.RGB) tcell.Style {
	key := styleKey{font: font, color: color}
	if st, ok := s.styles[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(toTcell(color)).Attributes(font.Attrs)
	s.styles[key] = st
	return st
}

// Present shows the composed frame
func (s *Surface) Present() error {
	if s.closed {
		return ErrClosed
	}
	s.screen.Show()
	return nil
}

func toTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var _ render.Surface = (*Surface)(nil)
