package tiling

// Point is a position in the host's coordinate space.
// The engine is unit-agnostic: terminal cells and pixels both work.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Lerp linearly interpolates towards q by t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// DistSq returns the squared distance to q.
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Rect is an axis-aligned rectangle described by its min and max corners.
type Rect struct {
	Min Point
	Max Point
}

// NewRect constructs a rectangle from a min corner and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// RectFromMinMax constructs a rectangle from two corners.
func RectFromMinMax(min, max Point) Rect {
	return Rect{Min: min, Max: max}
}

// RectFromCenterSize constructs a rectangle centered on c.
func RectFromCenterSize(c Point, w, h float64) Rect {
	return NewRect(c.X-w/2, c.Y-h/2, w, h)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint.
func (r Rect) Center() Point {
	return Point{
		X: (r.Min.X + r.Max.X) / 2,
		Y: (r.Min.Y + r.Max.Y) / 2,
	}
}

// Contains reports whether p lies inside the rectangle (min-inclusive).
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X &&
		r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Lerp interpolates both corners towards q by t.
func (r Rect) Lerp(q Rect, t float64) Rect {
	return Rect{
		Min: r.Min.Lerp(q.Min, t),
		Max: r.Max.Lerp(q.Max, t),
	}
}

// SplitLeftRightAtFraction splits the rectangle at the given horizontal fraction.
func (r Rect) SplitLeftRightAtFraction(f float64) (left, right Rect) {
	x := r.Min.X + f*r.Width()
	left = Rect{Min: r.Min, Max: Point{X: x, Y: r.Max.Y}}
	right = Rect{Min: Point{X: x, Y: r.Min.Y}, Max: r.Max}
	return left, right
}

// SplitTopBottomAtFraction splits the rectangle at the given vertical fraction.
func (r Rect) SplitTopBottomAtFraction(f float64) (top, bottom Rect) {
	return r.SplitTopBottomAtY(r.Min.Y + f*r.Height())
}

// SplitTopBottomAtY splits the rectangle at the given y coordinate.
func (r Rect) SplitTopBottomAtY(y float64) (top, bottom Rect) {
	top = Rect{Min: r.Min, Max: Point{X: r.Max.X, Y: y}}
	bottom = Rect{Min: Point{X: r.Min.X, Y: y}, Max: r.Max}
	return top, bottom
}
