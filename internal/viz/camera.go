package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
)

// Camera is an orthographic view of a box, turned about the box center.
type Camera struct {
	Pitch, Yaw float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Pitch: 0.35, Yaw: 0.6, Zoom: 1}
}

func (c *Camera) Turn(pitch, yaw float64) {
	c.Pitch += pitch
	c.Yaw += yaw
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(8, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.125, c.Zoom/1.2) }

// Project maps p onto a w by h dot grid so that the box fills the shorter
// side at zoom 1.
func (c *Camera) Project(p r3.Vec, box r3.Box, w, h int) (int, int) {
	center := box.Center()
	extent := r3.Norm(box.Size())
	if extent == 0 {
		extent = 1
	}
	q := r3.NewRotation(c.Yaw, axisY).Rotate(r3.Sub(p, center))
	q = r3.NewRotation(c.Pitch, axisX).Rotate(q)

	scale := c.Zoom * float64(min(w, h)) / extent
	return int(math.Round(q.X*scale)) + w/2, int(math.Round(-q.Y*scale)) + h/2
}

// Draw renders the box edges and one dot per particle.
func (c *Camera) Draw(cv *Canvas, positions []r3.Vec, box r3.Box) {
	cv.Clear()
	w, h := cv.DotWidth(), cv.DotHeight()
	corners := box.Vertices()
	for _, e := range boxEdges {
		x0, y0 := c.Project(corners[e[0]], box, w, h)
		x1, y1 := c.Project(corners[e[1]], box, w, h)
		cv.Line(x0, y0, x1, y1)
	}
	for _, p := range positions {
		cv.Set(c.Project(p, box, w, h))
	}
}

// boxEdges index r3.Box.Vertices.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Bounds returns the smallest box containing every position.
func Bounds(positions []r3.Vec) r3.Box {
	if len(positions) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	return b
}
