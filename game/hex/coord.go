package hex

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is an axial (q, r) hex coordinate relative to the board center.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Center of the board.
var Center = Coord{}

// Add returns a+b.
func Add(a, b Coord) Coord { return Coord{Q: a.Q + b.Q, R: a.R + b.R} }

// Sub returns a-b.
func Sub(a, b Coord) Coord { return Coord{Q: a.Q - b.Q, R: a.R - b.R} }

// Scale multiplies a vector by k.
func Scale(a Coord, k int) Coord { return Coord{Q: a.Q * k, R: a.R * k} }

// Neg returns the opposite vector.
func (c Coord) Neg() Coord { return Coord{Q: -c.Q, R: -c.R} }

// Equal reports structural equality.
func Equal(a, b Coord) bool { return a.Q == b.Q && a.R == b.R }

// Distance returns the hex-grid distance between two coordinates.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// Collinear reports whether three points lie on one hex line. Coincident
// points are collinear.
func Collinear(a, b, c Coord) bool {
	ab := Distance(a, b)
	bc := Distance(b, c)
	ac := Distance(a, c)
	return ab+bc == ac || ab+ac == bc || bc+ac == ab
}

// Project orders coordinates along direction d using the cube-space dot
// product. Stepping by d always increases the projection by 2.
func Project(c, d Coord) int {
	// cube: x=q, z=r, y=-q-r
	return c.Q*d.Q + c.R*d.R + (c.Q+c.R)*(d.Q+d.R)
}

// Key serializes a coordinate as "q,r".
func Key(c Coord) string {
	return strconv.Itoa(c.Q) + "," + strconv.Itoa(c.R)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Coord, error) {
	qs, rs, ok := strings.Cut(key, ",")
	if !ok {
		return Coord{}, fmt.Errorf("invalid coordinate key %q", key)
	}
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coordinate key %q: %w", key, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coordinate key %q: %w", key, err)
	}
	return Coord{Q: q, R: r}, nil
}

// String implements fmt.Stringer.
func (c Coord) String() string {
	return "(" + Key(c) + ")"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
