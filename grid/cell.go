package grid

import "github.com/oklog/ulid/v2"

var noObject ulid.ULID

// NewObjectID returns a fresh id for something that will occupy cells.
func NewObjectID() ulid.ULID {
	return ulid.Make()
}

// Cell is a copy of a grid cell's state. Free cells have a zero Occupant and
// KindNone.
type Cell struct {
	Pos      Coord
	Occupant ulid.ULID
	Kind     Kind
}

func (c Cell) Occupied() bool {
	return c.Occupant != noObject
}
