// Package placement reserves rectangular footprints on a grid. A placement
// either claims every cell of its footprint or leaves the grid untouched.
package placement

import (
	"errors"
	"fmt"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/oklog/ulid/v2"
)

var (
	ErrInvalidFootprint = errors.New("invalid footprint")
	ErrBadTransition    = errors.New("bad placement transition")
)

// Compat decides whether a cell's current occupant may be replaced by an
// incoming claim of the given kind.
type Compat func(existing grid.Cell, incoming grid.Kind) bool

func DefaultCompat(existing grid.Cell, incoming grid.Kind) bool {
	return existing.Kind.Overwritable(incoming)
}

type Option func(*Validator)

func WithCompat(fn Compat) Option {
	return func(v *Validator) {
		v.compat = fn
	}
}

type Validator struct {
	grid   *grid.Grid
	compat Compat

	// Indirection over Grid.OccupyCell so tests can fail a claim part way
	// through a footprint.
	occupy func(grid.Coord, ulid.ULID, grid.Kind) error
}

func NewValidator(g *grid.Grid, opts ...Option) *Validator {
	v := &Validator{
		grid:   g,
		compat: DefaultCompat,
		occupy: g.OccupyCell,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) Grid() *grid.Grid {
	return v.grid
}

func (v *Validator) claimable(c grid.Coord, kind grid.Kind) bool {
	cell, ok := v.grid.GetCell(c)
	if !ok {
		return false
	}
	return !cell.Occupied() || v.compat(cell, kind)
}

// CanPlace reports whether every cell of fp is in bounds and either free or
// held by something a claim of kind may replace.
func (v *Validator) CanPlace(fp Footprint, kind grid.Kind) bool {
	if !fp.Valid() || kind == grid.KindNone || !kind.Valid() {
		return false
	}
	for _, c := range fp.Cells() {
		if !v.claimable(c, kind) {
			return false
		}
	}
	return true
}

type undo struct {
	pos  grid.Coord
	prev grid.Cell
}

// Place claims every cell of fp for id. Compatible occupants are replaced.
// On any failure every touched cell is put back the way it was.
func (v *Validator) Place(fp Footprint, id ulid.ULID, kind grid.Kind) error {
	if !v.CanPlace(fp, kind) {
		logging.Warn("placement.Place: rejected", "footprint", fp, "kind", kind, "id", id)
		return fmt.Errorf("place %v %v: %w", kind, fp, ErrInvalidFootprint)
	}

	var log []undo
	for _, c := range fp.Cells() {
		prev, _ := v.grid.GetCell(c)
		log = append(log, undo{pos: c, prev: prev})

		if prev.Occupied() && prev.Occupant != id {
			v.grid.FreeCell(c)
		}
		if err := v.occupy(c, id, kind); err != nil {
			v.rollback(log)
			return fmt.Errorf("place %v %v: %w", kind, fp, err)
		}
	}
	logging.Debug("placement.Place", "footprint", fp, "kind", kind, "id", id)
	return nil
}

func (v *Validator) rollback(log []undo) {
	for i := len(log) - 1; i >= 0; i-- {
		u := log[i]
		v.grid.FreeCell(u.pos)
		if !u.prev.Occupied() {
			continue
		}
		if err := v.grid.OccupyCell(u.pos, u.prev.Occupant, u.prev.Kind); err != nil {
			logging.Error("placement: rollback failed", "pos", u.pos, "err", err)
		}
	}
}

// Remove frees every in-bounds cell of fp, whoever holds it.
func (v *Validator) Remove(fp Footprint) error {
	if !fp.Valid() {
		return fmt.Errorf("remove %v: %w", fp, ErrInvalidFootprint)
	}
	for _, c := range fp.Cells() {
		if v.grid.IsValidPosition(c) {
			v.grid.FreeCell(c)
		}
	}
	logging.Debug("placement.Remove", "footprint", fp)
	return nil
}

// RemoveOwned frees the cells of fp that id still holds. Cells something
// else has since claimed are left alone.
func (v *Validator) RemoveOwned(fp Footprint, id ulid.ULID) error {
	if !fp.Valid() {
		return fmt.Errorf("remove %v: %w", fp, ErrInvalidFootprint)
	}
	for _, c := range fp.Cells() {
		if cell, ok := v.grid.GetCell(c); ok && cell.Occupant == id {
			v.grid.FreeCell(c)
		}
	}
	logging.Debug("placement.RemoveOwned", "footprint", fp, "id", id)
	return nil
}

// Preview sorts the cells of fp by whether a claim of kind could take them.
type Preview struct {
	Valid       []grid.Coord
	Blocked     []grid.Coord
	OutOfBounds []grid.Coord
}

func (p Preview) Placeable() bool {
	return len(p.Valid) > 0 && len(p.Blocked) == 0 && len(p.OutOfBounds) == 0
}

func (v *Validator) Preview(fp Footprint, kind grid.Kind) Preview {
	var p Preview
	for _, c := range fp.Cells() {
		switch {
		case !v.grid.IsValidPosition(c):
			p.OutOfBounds = append(p.OutOfBounds, c)
		case v.claimable(c, kind):
			p.Valid = append(p.Valid, c)
		default:
			p.Blocked = append(p.Blocked, c)
		}
	}
	return p
}
