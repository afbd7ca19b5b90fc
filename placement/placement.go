package placement

import (
	"fmt"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/oklog/ulid/v2"
)

type State int

const (
	Unplaced State = iota
	Placed
	Removed
)

func (s State) String() string {
	switch s {
	case Unplaced:
		return "Unplaced"
	case Placed:
		return "Placed"
	case Removed:
		return "Removed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Placement tracks one object's footprint through its life on the grid.
// Moves and rotations either land or leave the object where it was.
type Placement struct {
	v     *Validator
	id    ulid.ULID
	kind  grid.Kind
	fp    Footprint
	state State
}

func (v *Validator) NewPlacement(id ulid.ULID, kind grid.Kind, width, height int) *Placement {
	return &Placement{
		v:    v,
		id:   id,
		kind: kind,
		fp:   Footprint{Width: width, Height: height},
	}
}

func (p *Placement) ID() ulid.ULID        { return p.id }
func (p *Placement) Kind() grid.Kind      { return p.kind }
func (p *Placement) Footprint() Footprint { return p.fp }
func (p *Placement) State() State         { return p.state }

func (p *Placement) badTransition(op string) error {
	return fmt.Errorf("%s while %v: %w", op, p.state, ErrBadTransition)
}

func (p *Placement) Place(origin grid.Coord) error {
	if p.state != Unplaced {
		return p.badTransition("place")
	}
	fp := p.fp.At(origin)
	if err := p.v.Place(fp, p.id, p.kind); err != nil {
		return err
	}
	p.fp = fp
	p.state = Placed
	return nil
}

func (p *Placement) Move(origin grid.Coord) error {
	if p.state != Placed {
		return p.badTransition("move")
	}
	return p.relocate(p.fp.At(origin))
}

func (p *Placement) Rotate() error {
	if p.state != Placed {
		return p.badTransition("rotate")
	}
	return p.relocate(p.fp.Rotated())
}

// Lifts the object and tries to put it down at 'to'. If that fails the old
// footprint is claimed again.
func (p *Placement) relocate(to Footprint) error {
	from := p.fp
	if err := p.v.RemoveOwned(from, p.id); err != nil {
		return err
	}
	err := p.v.Place(to, p.id, p.kind)
	if err == nil {
		p.fp = to
		return nil
	}
	if restoreErr := p.v.Place(from, p.id, p.kind); restoreErr != nil {
		logging.Error("placement: lost footprint restoring after failed move", "id", p.id, "from", from, "to", to, "err", restoreErr)
		p.state = Removed
		return fmt.Errorf("restoring %v: %w", from, restoreErr)
	}
	return err
}

// Remove frees the cells of the footprint this placement still holds.
// Removing twice is harmless.
func (p *Placement) Remove() error {
	switch p.state {
	case Unplaced:
		return p.badTransition("remove")
	case Removed:
		return nil
	}
	if err := p.v.RemoveOwned(p.fp, p.id); err != nil {
		return err
	}
	p.state = Removed
	return nil
}
