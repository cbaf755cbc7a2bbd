package game

import "math"

// Mask is a collision shape. Circle and Segment are simple masks; Composite
// groups several of them.
type Mask interface {
	Translate(v Vec) Mask
	simples() []Mask
}

// Circle is a disc with a center and radius.
type Circle struct {
	Center Vec
	Radius float64
}

func (c Circle) Translate(v Vec) Mask { return Circle{Center: c.Center.Add(v), Radius: c.Radius} }
func (c Circle) simples() []Mask      { return []Mask{c} }

// Segment is a finite line between P1 and P2.
type Segment struct {
	P1, P2 Vec
	Dir    Vec // unit direction P1 -> P2
	Normal Vec
	Length float64
}

// NewSegment derives the direction, normal and length of p1-p2.
func NewSegment(p1, p2 Vec) Segment {
	d := p2.Sub(p1)
	dir := d.Unit()
	return Segment{
		P1:     p1,
		P2:     p2,
		Dir:    dir,
		Normal: Vec{dir.Y, -dir.X},
		Length: d.Len(),
	}
}

func (s Segment) Translate(v Vec) Mask { return NewSegment(s.P1.Add(v), s.P2.Add(v)) }
func (s Segment) simples() []Mask      { return []Mask{s} }

// Composite is an ordered group of simple masks.
type Composite []Mask

func (c Composite) Translate(v Vec) Mask {
	out := make(Composite, 0, len(c))
	for _, m := range c {
		out = append(out, m.Translate(v))
	}
	return out
}

func (c Composite) simples() []Mask {
	var out []Mask
	for _, m := range c {
		out = append(out, m.simples()...)
	}
	return out
}

// Intersects reports whether any simple part of a touches any simple part of b.
func Intersects(a, b Mask) bool {
	for _, x := range a.simples() {
		for _, y := range b.simples() {
			if intersectSimple(x, y) {
				return true
			}
		}
	}
	return false
}

func intersectSimple(a, b Mask) bool {
	switch a := a.(type) {
	case Circle:
		switch b := b.(type) {
		case Circle:
			return circleCircle(a, b)
		case Segment:
			return circleSegment(a, b)
		}
	case Segment:
		switch b := b.(type) {
		case Circle:
			return circleSegment(b, a)
		case Segment:
			return segmentSegment(a, b)
		}
	}
	return false
}

func circleCircle(a, b Circle) bool {
	return Dist(a.Center, b.Center) < a.Radius+b.Radius
}

// circleSegment projects the circle center onto the segment's line and checks
// whether either chord endpoint lies strictly inside the segment.
func circleSegment(c Circle, s Segment) bool {
	d := math.Abs(s.P1.Sub(c.Center).Dot(s.Normal))
	if d > c.Radius {
		return false
	}
	along := c.Center.Sub(s.P1).Dot(s.Dir)
	half := math.Sqrt(c.Radius*c.Radius - d*d)
	inside := func(t float64) bool { return t > 0 && t < s.Length }
	return inside(along+half) || inside(along-half)
}

// segmentSegment expresses a's far endpoint in the basis spanned by b's
// endpoints (relative to a.P1). Both coefficients positive means the
// segments cross. A singular basis (parallel) never intersects.
func segmentSegment(a, b Segment) bool {
	v3 := b.P1.Sub(a.P1)
	v4 := b.P2.Sub(a.P1)
	det := v3.X*v4.Y - v4.X*v3.Y
	if det == 0 {
		return false
	}
	v2 := a.P2.Sub(a.P1)
	k3 := (v4.Y*v2.X - v4.X*v2.Y) / det
	k4 := (-v3.Y*v2.X + v3.X*v2.Y) / det
	return k3 > 0 && k4 > 0
}
