package core

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/util"
)

// DefaultCurvature is the fraction of the horizontal span used as the control
// point offset of a connection curve.
const DefaultCurvature = 0.5

const curveSamples = 32

// Bezier is a cubic curve in canvas coordinates.
type Bezier struct {
	P0, C0, C1, P1 V2
}

// NewConnectionCurve builds the S-curve used for edges: the control points are
// pushed horizontally outward from each endpoint by curvature*|to.X-from.X|.
func NewConnectionCurve(from, to V2, curvature float32) Bezier {
	o := curvature * util.Abs(to.X-from.X)
	return Bezier{
		P0: from,
		C0: V2{X: from.X + o, Y: from.Y},
		C1: V2{X: to.X - o, Y: to.Y},
		P1: to,
	}
}

func (b Bezier) Point(t float32) V2 {
	u := 1 - t
	p := rl.Vector2Scale(b.P0, u*u*u)
	p = rl.Vector2Add(p, rl.Vector2Scale(b.C0, 3*u*u*t))
	p = rl.Vector2Add(p, rl.Vector2Scale(b.C1, 3*u*t*t))
	return rl.Vector2Add(p, rl.Vector2Scale(b.P1, t*t*t))
}

// Points samples the curve at n+1 evenly spaced parameters, endpoints included.
func (b Bezier) Points(n int) []V2 {
	if n < 1 {
		n = 1
	}
	pts := make([]V2, n+1)
	for i := range pts {
		pts[i] = b.Point(float32(i) / float32(n))
	}
	return pts
}

// Bounds returns the tight bounding box of the curve, found from the roots of
// its derivative on each axis.
func (b Bezier) Bounds() rl.Rectangle {
	minX, maxX := extrema(b.P0.X, b.C0.X, b.C1.X, b.P1.X)
	minY, maxY := extrema(b.P0.Y, b.C0.Y, b.C1.Y, b.P1.Y)
	return rl.Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Midpoint is the centre of the curve's bounding box, where the delete
// affordance goes.
func (b Bezier) Midpoint() V2 {
	return rectCenter(b.Bounds())
}

func extrema(p0, p1, p2, p3 float32) (lo, hi float32) {
	lo, hi = min(p0, p3), max(p0, p3)

	a := float64(-p0 + 3*p1 - 3*p2 + p3)
	bb := float64(2 * (p0 - 2*p1 + p2))
	c := float64(p1 - p0)

	var roots []float64
	if math.Abs(a) < 1e-9 {
		if math.Abs(bb) > 1e-9 {
			roots = append(roots, -c/bb)
		}
	} else {
		disc := bb*bb - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			roots = append(roots, (-bb+sq)/(2*a), (-bb-sq)/(2*a))
		}
	}

	for _, t := range roots {
		if t <= 0 || t >= 1 {
			continue
		}
		u := 1 - t
		v := float32(u*u*u*float64(p0) + 3*u*u*t*float64(p1) + 3*u*t*t*float64(p2) + t*t*t*float64(p3))
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

// Distance approximates the shortest distance from p to the curve.
func (b Bezier) Distance(p V2) float32 {
	pts := b.Points(curveSamples)
	best := float32(math.MaxFloat32)
	for i := 1; i < len(pts); i++ {
		best = min(best, segmentDistance(p, pts[i-1], pts[i]))
	}
	return best
}

func segmentDistance(p, a, b V2) float32 {
	ab := rl.Vector2Subtract(b, a)
	l2 := rl.Vector2DotProduct(ab, ab)
	if l2 == 0 {
		return rl.Vector2Distance(p, a)
	}
	t := rl.Vector2DotProduct(rl.Vector2Subtract(p, a), ab) / l2
	t = max(0, min(1, t))
	return rl.Vector2Distance(p, rl.Vector2Lerp(a, b, t))
}

// PathData renders the curve as an SVG path "d" attribute.
func (b Bezier) PathData() string {
	return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
		b.P0.X, b.P0.Y, b.C0.X, b.C0.Y, b.C1.X, b.C1.Y, b.P1.X, b.P1.Y)
}
