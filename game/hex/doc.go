// Package hex implements axial hex-grid arithmetic for the Abalone board.
//
// Coordinates are axial (q, r) pairs relative to the board center. The board
// is the hexagon of radius 4 around the center (61 cells). The package is
// stateless apart from a precomputed coordinate-to-index table used by dense
// board representations:
//
//	i, ok := hex.Index(hex.Coord{Q: -1, R: 2})
//	c := hex.CoordAt(i)
//
// Movement is expressed with the six unit vectors in Directions.
package hex
