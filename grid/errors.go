package grid

import "errors"

var (
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrAlreadyOccupied  = errors.New("cell already occupied")
	ErrInvalidObject    = errors.New("invalid object")
	ErrInvalidDimension = errors.New("invalid grid dimensions")
)
