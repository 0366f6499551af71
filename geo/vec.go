// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Point holds the coordinates of a point in 3D space
type Point [3]float64

// Sub returns a - b
func Sub(a, b Point) Point { return Point{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// Add returns a + b
func Add(a, b Point) Point { return Point{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

// Scale returns α⋅a
func Scale(α float64, a Point) Point { return Point{α * a[0], α * a[1], α * a[2]} }

// Lerp returns a + s⋅(b - a)
func Lerp(a, b Point, s float64) Point {
	return Point{a[0] + s*(b[0]-a[0]), a[1] + s*(b[1]-a[1]), a[2] + s*(b[2]-a[2])}
}

// Dot returns a ⋅ b
func Dot[T constraints.Float](a, b [3]T) T { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns a × b
func Cross[T constraints.Float](a, b [3]T) [3]T {
	return [3]T{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

// Norm returns the Euclidean norm of a
func Norm[T constraints.Float](a [3]T) T { return T(math.Sqrt(float64(Dot(a, a)))) }

// Dist returns the distance between a and b
func Dist(a, b Point) float64 { return Norm(Sub(a, b)) }

// Unit returns a/|a|; a zero vector is returned unchanged
func Unit[T constraints.Float](a [3]T) [3]T {
	n := Norm(a)
	if n == 0 {
		return a
	}
	return [3]T{a[0] / n, a[1] / n, a[2] / n}
}

// Clamp returns x limited to [lo, hi]
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
