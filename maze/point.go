package maze

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Point is a grid coordinate. I is the row, J is the column.
type Point struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Unset is the point a driver uses before the user has supplied one.
var Unset = Point{I: -1, J: 1}

// Valid reports whether both components are non-negative
func (p Point) Valid() bool {
	return p.I >= 0 && p.J >= 0
}

// Orb converts the point to planar geometry, with the column on X and the row on Y
func (p Point) Orb() orb.Point {
	return orb.Point{float64(p.J), float64(p.I)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}

// Direction names one of the four neighbor slots of a cell.
type Direction int

const (
	South Direction = iota
	East
	North
	West
)

// Directions lists the neighbor slots in the order searches visit them.
var Directions = [4]Direction{South, East, North, West}

func (d Direction) String() string {
	switch d {
	case South:
		return "South"
	case East:
		return "East"
	case North:
		return "North"
	case West:
		return "West"
	default:
		return "Invalid"
	}
}

// Opposite returns the slot that links back along the same edge
func (d Direction) Opposite() Direction {
	switch d {
	case South:
		return North
	case North:
		return South
	case East:
		return West
	default:
		return East
	}
}

// step returns the coordinate offset of a direction. North is increasing row.
func (d Direction) step() (di, dj int) {
	switch d {
	case South:
		return -1, 0
	case North:
		return 1, 0
	case East:
		return 0, 1
	default:
		return 0, -1
	}
}
