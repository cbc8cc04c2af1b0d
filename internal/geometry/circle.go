// Package geometry provides the circle calculator.
package geometry

import "math"

// Circle holds a radius and derives area and circumference on demand.
//
// NewCircle accepts any radius, including negative values. SetRadius rejects
// negatives. Area squares the radius, so its sign is lost; Circumference is
// linear in the radius and keeps it.
type Circle struct {
	radius float64
}

// NewCircle returns a circle with the given radius, unchecked.
func NewCircle(radius float64) *Circle {
	return &Circle{radius: radius}
}

// Radius returns the current radius.
func (c *Circle) Radius() float64 {
	return c.radius
}

// SetRadius updates the radius and reports whether it was accepted.
// Negative values are rejected and leave the circle unchanged; zero is allowed.
func (c *Circle) SetRadius(r float64) bool {
	if r < 0 {
		return false
	}
	c.radius = r
	return true
}

// Area returns π·r².
func (c *Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

// Circumference returns 2·π·r.
func (c *Circle) Circumference() float64 {
	return 2 * math.Pi * c.radius
}
