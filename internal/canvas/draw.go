package canvas

import (
	"strconv"
	"strings"

	"github.com/fakeyudi/tracklet/internal/annotation"
)

type cell struct {
	r     rune
	shape *Shape
}

// box holds the border runes of an outlined type.
type box struct {
	tl, tr, bl, br, h, v rune
}

var boxes = map[annotation.ShapeType]box{
	annotation.TypeRectangle: {'┌', '┐', '└', '┘', '─', '│'},
	annotation.TypeEllipse:   {'╭', '╮', '╰', '╯', '─', '│'},
	annotation.TypeCuboid:    {'╔', '╗', '╚', '╝', '═', '║'},
}

const (
	vertexRune = '◆'
	pointRune  = '●'
	lineRune   = '•'
)

// View draws the current render. Highlighted shapes use the highlight colour.
func (c *Canvas) View() string {
	grid := make([][]cell, c.height)
	for y := range grid {
		grid[y] = make([]cell, c.width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}
	set := func(x, y int, r rune, s *Shape) {
		if x < 0 || y < 0 || x >= c.width || y >= c.height {
			return
		}
		grid[y][x] = cell{r: r, shape: s}
	}

	for _, s := range c.shapes {
		drawShape(s, set)
	}

	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		c.writeRow(&sb, row)
	}
	return sb.String()
}

// writeRow renders runs of cells that share a shape with one style.
func (c *Canvas) writeRow(sb *strings.Builder, row []cell) {
	var run strings.Builder
	var cur *Shape
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == nil {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(c.styleFor(cur).Render(run.String()))
		}
		run.Reset()
	}
	for _, cl := range row {
		if cl.shape != cur {
			flush()
			cur = cl.shape
		}
		run.WriteRune(cl.r)
	}
	flush()
}

func drawShape(s *Shape, set func(x, y int, r rune, s *Shape)) {
	o := s.obj
	switch o.Type {
	case annotation.TypePoints:
		for i := 0; i+1 < len(o.Points); i += 2 {
			set(o.Points[i], o.Points[i+1], pointRune, s)
		}
	case annotation.TypePolygon, annotation.TypePolyline:
		n := len(o.Points) / 2
		for i := 0; i+1 < n; i++ {
			line(o.Points[2*i], o.Points[2*i+1], o.Points[2*i+2], o.Points[2*i+3], func(x, y int) { set(x, y, lineRune, s) })
		}
		if o.Type == annotation.TypePolygon && n > 2 {
			line(o.Points[2*n-2], o.Points[2*n-1], o.Points[0], o.Points[1], func(x, y int) { set(x, y, lineRune, s) })
		}
		for i := 0; i < n; i++ {
			set(o.Points[2*i], o.Points[2*i+1], vertexRune, s)
		}
	default:
		x0, y0, x1, y1, ok := o.Bounds()
		if !ok {
			return
		}
		b, known := boxes[o.Type]
		if !known {
			b = boxes[annotation.TypeRectangle]
		}
		drawBox(x0, y0, x1, y1, b, s, set)
		tag := "#" + strconv.Itoa(o.ID)
		if x1-x0-1 >= len(tag) {
			for i, r := range tag {
				set(x0+1+i, y0, r, s)
			}
		}
	}
}

func drawBox(x0, y0, x1, y1 int, b box, s *Shape, set func(x, y int, r rune, s *Shape)) {
	if x0 == x1 || y0 == y1 {
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				set(x, y, b.h, s)
			}
		}
		return
	}
	for x := x0 + 1; x < x1; x++ {
		set(x, y0, b.h, s)
		set(x, y1, b.h, s)
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, b.v, s)
		set(x1, y, b.v, s)
	}
	set(x0, y0, b.tl, s)
	set(x1, y0, b.tr, s)
	set(x0, y1, b.bl, s)
	set(x1, y1, b.br, s)
}

// line walks the cells between two points (Bresenham).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
