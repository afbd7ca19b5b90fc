package grid

import "fmt"

// Kind is the closed set of object categories that can sit on a cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindCharacter
	KindWall
	KindRoom
	KindBuilding
	KindGhost
	KindFurniture
	KindDoor
	kindCount
)

type kindPolicy struct {
	name  string
	glyph rune

	// Pathfinding may route through cells held by this kind.
	passable bool

	// Kinds that a new claim of this kind may replace without conflict.
	overwrites []Kind
}

var kindPolicies = [kindCount]kindPolicy{
	KindNone:      {name: "None", glyph: '.', passable: true},
	KindCharacter: {name: "Character", glyph: '@', passable: true},
	KindWall:      {name: "Wall", glyph: '#'},
	KindRoom:      {name: "Room", glyph: 'R'},
	KindBuilding:  {name: "Building", glyph: 'B'},
	KindGhost:     {name: "Ghost", glyph: '?', passable: true, overwrites: []Kind{KindGhost}},
	KindFurniture: {name: "Furniture", glyph: 'f'},
	KindDoor:      {name: "Door", glyph: '+', passable: true},
}

func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindPolicies[k].name
}

// The character used for this kind in text dumps of a grid.
func (k Kind) Glyph() rune {
	if !k.Valid() {
		return '!'
	}
	return kindPolicies[k].glyph
}

// Passable reports whether agents may walk through a cell held by this kind.
func (k Kind) Passable() bool {
	return k.Valid() && kindPolicies[k].passable
}

// Overwritable reports whether a claim of kind 'by' may replace an occupant
// of kind k.
func (k Kind) Overwritable(by Kind) bool {
	if !k.Valid() || !by.Valid() {
		return false
	}
	for _, o := range kindPolicies[by].overwrites {
		if o == k {
			return true
		}
	}
	return false
}

// AllKinds lists every kind that can occupy a cell.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindNone + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func ParseKind(name string) (Kind, error) {
	for k := KindNone; k < kindCount; k++ {
		if kindPolicies[k].name == name {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown kind %q", name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("can't marshal %v", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
