package hex

// Directions are the six axial unit vectors. Two coordinates that differ by
// exactly one of them are adjacent.
var Directions = [6]Coord{
	{Q: 1, R: 0},  // East
	{Q: 1, R: -1}, // North-East
	{Q: 0, R: -1}, // North-West
	{Q: -1, R: 0}, // West
	{Q: -1, R: 1}, // South-West
	{Q: 0, R: 1},  // South-East
}

var directionNames = [6]string{"E", "NE", "NW", "W", "SW", "SE"}

const (
	// Radius is the largest distance from Center that is still on the board.
	Radius = 4
	// CellCount is the number of on-board cells for a side length of 5.
	CellCount = 1 + 3*Radius*(Radius+1)
)

// IsOnBoard reports whether c lies within Radius of Center.
func IsOnBoard(c Coord) bool {
	return Distance(Center, c) <= Radius
}

// DirectionIndex returns the index of v in Directions, or -1.
func DirectionIndex(v Coord) int {
	for i, d := range Directions {
		if d == v {
			return i
		}
	}
	return -1
}

// IsDirection reports whether v is one of the six unit vectors.
func IsDirection(v Coord) bool { return DirectionIndex(v) >= 0 }

// DirectionName returns the compass name of a unit vector ("E", "NW", ...).
func DirectionName(v Coord) string {
	if i := DirectionIndex(v); i >= 0 {
		return directionNames[i]
	}
	return "?"
}

// DirectionByName resolves a compass name produced by DirectionName.
func DirectionByName(name string) (Coord, bool) {
	for i, n := range directionNames {
		if n == name {
			return Directions[i], true
		}
	}
	return Coord{}, false
}

// Adjacent reports whether a and b are neighbours.
func Adjacent(a, b Coord) bool { return IsDirection(Sub(b, a)) }

// Axis returns the unit direction along which coords form a contiguous line
// without duplicates. It needs at least two coordinates.
func Axis(coords []Coord) (Coord, bool) {
	if len(coords) < 2 {
		return Coord{}, false
	}
	// The two extremes are the pair with the largest distance.
	a, b, span := coords[0], coords[0], 0
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			if d := Distance(coords[i], coords[j]); d > span {
				a, b, span = coords[i], coords[j], d
			}
		}
	}
	if span != len(coords)-1 {
		return Coord{}, false
	}
	delta := Sub(b, a)
	if delta.Q%span != 0 || delta.R%span != 0 {
		return Coord{}, false
	}
	axis := Coord{Q: delta.Q / span, R: delta.R / span}
	if !IsDirection(axis) {
		return Coord{}, false
	}
	seen := make(map[Coord]bool, len(coords))
	for _, c := range coords {
		if seen[c] {
			return Coord{}, false
		}
		seen[c] = true
		k := Distance(a, c)
		if Add(a, Scale(axis, k)) != c {
			return Coord{}, false
		}
	}
	return axis, true
}

// index tables, built once
var (
	cells   [CellCount]Coord
	indexOf [2*Radius + 1][2*Radius + 1]int8
)

func init() {
	i := 0
	for r := -Radius; r <= Radius; r++ {
		for q := -Radius; q <= Radius; q++ {
			c := Coord{Q: q, R: r}
			if !IsOnBoard(c) {
				indexOf[r+Radius][q+Radius] = -1
				continue
			}
			cells[i] = c
			indexOf[r+Radius][q+Radius] = int8(i)
			i++
		}
	}
}

// Index returns the dense board index of c.
func Index(c Coord) (int, bool) {
	if c.Q < -Radius || c.Q > Radius || c.R < -Radius || c.R > Radius {
		return -1, false
	}
	i := indexOf[c.R+Radius][c.Q+Radius]
	return int(i), i >= 0
}

// CoordAt is the inverse of Index.
func CoordAt(i int) Coord { return cells[i] }

// Cells returns every on-board coordinate, row by row from r=-Radius.
func Cells() []Coord {
	out := make([]Coord, CellCount)
	copy(out, cells[:])
	return out
}

// RowBounds returns the inclusive q range of row r.
func RowBounds(r int) (minQ, maxQ int) {
	return max(-Radius, -r-Radius), min(Radius, -r+Radius)
}
