package grid

import (
	"fmt"
	"sort"

	"github.com/caffeine-storm/shipyard/logging"
	"github.com/oklog/ulid/v2"
	"github.com/zyedidia/generic/mapset"
)

type indexEntry struct {
	id   ulid.ULID
	kind Kind
}

// Index answers "which cells hold kind K" and "which cells does object O
// hold" without scanning the grid. It is derived from the grid's cells; only
// the owning Grid mutates it.
type Index struct {
	at       map[Coord]indexEntry
	byKind   map[Kind]mapset.Set[Coord]
	byObject map[ulid.ULID]mapset.Set[Coord]
}

func newIndex() *Index {
	return &Index{
		at:       make(map[Coord]indexEntry),
		byKind:   make(map[Kind]mapset.Set[Coord]),
		byObject: make(map[ulid.ULID]mapset.Set[Coord]),
	}
}

func (idx *Index) add(c Coord, id ulid.ULID, kind Kind) {
	if prev, ok := idx.at[c]; ok {
		if strictIndex {
			panic(fmt.Errorf("index: %v added twice (held by %v %v, adding %v %v)", c, prev.kind, prev.id, kind, id))
		}
		logging.Error("index: duplicate add, overwriting", "pos", c, "prevkind", prev.kind, "previd", prev.id, "kind", kind, "id", id)
		idx.remove(c)
	}
	idx.at[c] = indexEntry{id: id, kind: kind}

	kinds, ok := idx.byKind[kind]
	if !ok {
		kinds = mapset.New[Coord]()
		idx.byKind[kind] = kinds
	}
	kinds.Put(c)

	objects, ok := idx.byObject[id]
	if !ok {
		objects = mapset.New[Coord]()
		idx.byObject[id] = objects
	}
	objects.Put(c)
}

func (idx *Index) remove(c Coord) {
	entry, ok := idx.at[c]
	if !ok {
		return
	}
	delete(idx.at, c)

	if kinds, ok := idx.byKind[entry.kind]; ok {
		kinds.Remove(c)
		if kinds.Size() == 0 {
			delete(idx.byKind, entry.kind)
		}
	}
	if objects, ok := idx.byObject[entry.id]; ok {
		objects.Remove(c)
		if objects.Size() == 0 {
			delete(idx.byObject, entry.id)
		}
	}
}

func (idx *Index) clear() {
	idx.at = make(map[Coord]indexEntry)
	idx.byKind = make(map[Kind]mapset.Set[Coord])
	idx.byObject = make(map[ulid.ULID]mapset.Set[Coord])
}

// CellsByKind returns the cells currently held by kind, in row-major order.
// Unknown kinds yield an empty slice.
func (idx *Index) CellsByKind(kind Kind) []Coord {
	kinds, ok := idx.byKind[kind]
	if !ok {
		return []Coord{}
	}
	return sortedCoords(kinds)
}

func (idx *Index) Count(kind Kind) int {
	kinds, ok := idx.byKind[kind]
	if !ok {
		return 0
	}
	return kinds.Size()
}

func (idx *Index) Has(c Coord, kind Kind) bool {
	entry, ok := idx.at[c]
	return ok && entry.kind == kind
}

// Kinds lists every kind holding at least one cell.
func (idx *Index) Kinds() []Kind {
	var kinds []Kind
	for _, k := range AllKinds() {
		if idx.Count(k) > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Total number of indexed cells.
func (idx *Index) Len() int {
	return len(idx.at)
}

func (idx *Index) objectCells(id ulid.ULID) []Coord {
	objects, ok := idx.byObject[id]
	if !ok {
		return []Coord{}
	}
	return sortedCoords(objects)
}

func sortedCoords(set mapset.Set[Coord]) []Coord {
	coords := make([]Coord, 0, set.Size())
	set.Each(func(c Coord) {
		coords = append(coords, c)
	})
	sort.Slice(coords, func(i, j int) bool {
		return rowMajorLess(coords[i], coords[j])
	})
	return coords
}
