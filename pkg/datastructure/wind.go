package datastructure

import (
	"math"
)

// WindVector. u east-west (positive east), v north-south (positive north), w vertical, all m/s.
type WindVector struct {
	U    float64
	V    float64
	W    float64
	HasW bool
}

func NewWindVector(u, v float64) WindVector {
	return WindVector{U: u, V: v}
}

func NewWindVector3(u, v, w float64) WindVector {
	return WindVector{U: u, V: v, W: w, HasW: true}
}

// Magnitude. horizontal speed.
func (w WindVector) Magnitude() float64 {
	return math.Hypot(w.U, w.V)
}

// Dot. horizontal dot product with an (east, north) vector.
func (w WindVector) Dot(east, north float64) float64 {
	return w.U*east + w.V*north
}

// SpeedDirection. derived view of a wind vector, direction in degrees clockwise from north in [0, 360).
type SpeedDirection struct {
	Speed         float64
	Direction     float64
	VerticalSpeed float64
	HasVertical   bool
}
