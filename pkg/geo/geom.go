// pkg/geo/geom.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import gomath "math"

///////////////////////////////////////////////////////////////////////////
// Vec2

// Vec2 is a plane vector used by the idle-UAV force controller, which
// reasons about attraction/repulsion in a local flattened projection
// rather than directly on the sphere.
type Vec2 [2]float64

func Add2f(a, b Vec2) Vec2   { return Vec2{a[0] + b[0], a[1] + b[1]} }
func Sub2f(a, b Vec2) Vec2   { return Vec2{a[0] - b[0], a[1] - b[1]} }
func Scale2f(a Vec2, s float64) Vec2 { return Vec2{a[0] * s, a[1] * s} }

func Dot2f(a, b Vec2) float64 { return a[0]*b[0] + a[1]*b[1] }

func Length2f(a Vec2) float64 { return gomath.Sqrt(Dot2f(a, a)) }

// Normalize2f returns the unit vector in the direction of a; the zero
// vector maps to itself since it has no well-defined direction.
func Normalize2f(a Vec2) Vec2 {
	if l := Length2f(a); l > 1e-9 {
		return Scale2f(a, 1/l)
	}
	return Vec2{0, 0}
}

///////////////////////////////////////////////////////////////////////////
// Polygon containment

// PointInPolygon reports whether p lies within the closed polygon given
// by pts (implicitly closed: the last vertex connects back to the
// first). It uses a standard even-odd ray cast, with points that fall
// exactly on an edge treated as inside.
func PointInPolygon(p Vec2, pts []Vec2) bool {
	if len(pts) < 3 {
		return false
	}

	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if onSegment(a, b, p) {
			return true
		}
	}

	inside := false
	for i := range pts {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0[1] <= p[1] && p[1] < p1[1]) || (p1[1] <= p[1] && p[1] < p0[1]) {
			x := p0[0] + (p[1]-p0[1])*(p1[0]-p0[0])/(p1[1]-p0[1])
			if x > p[0] {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p Vec2) bool {
	cross := (p[0]-a[0])*(b[1]-a[1]) - (p[1]-a[1])*(b[0]-a[0])
	if Abs(cross) > 1e-9 {
		return false
	}
	dot := (p[0]-a[0])*(b[0]-a[0]) + (p[1]-a[1])*(b[1]-a[1])
	if dot < 0 {
		return false
	}
	sq := (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
	return dot <= sq
}

// PointSegmentDistance returns the distance from p to the closest point
// on the segment v-w.
func PointSegmentDistance(p, v, w Vec2) float64 {
	l2 := Dot2f(Sub2f(w, v), Sub2f(w, v))
	if l2 == 0 {
		return Length2f(Sub2f(p, v))
	}
	t := Clamp(Dot2f(Sub2f(p, v), Sub2f(w, v))/l2, 0, 1)
	proj := Add2f(v, Scale2f(Sub2f(w, v), t))
	return Length2f(Sub2f(p, proj))
}

// NearestPolygonEdgeDistance returns the distance from p to the nearest
// edge of the polygon, and the outward unit normal at the closest point
// (pointing away from the polygon's interior along that edge), used by
// the boundary-repulsion term of the force controller.
func NearestPolygonEdgeDistance(p Vec2, pts []Vec2) (dist float64, outward Vec2) {
	dist = gomath.Inf(1)
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		d := PointSegmentDistance(p, a, b)
		if d < dist {
			dist = d
			edge := Sub2f(b, a)
			// Rotate the edge direction by -90 degrees to get a normal;
			// flip it if it happens to point into the polygon.
			n := Vec2{edge[1], -edge[0]}
			n = Normalize2f(n)
			mid := Scale2f(Add2f(a, b), 0.5)
			probe := Add2f(mid, Scale2f(n, 1e-6))
			if PointInPolygon(probe, pts) {
				n = Scale2f(n, -1)
			}
			outward = n
		}
	}
	return
}
