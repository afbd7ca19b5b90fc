package pathfind

import (
	"github.com/MobRulesGames/GoLLRB/llrb"
	"github.com/caffeine-storm/shipyard/grid"
)

var neighbours = [4]grid.Coord{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

type node struct {
	pos  grid.Coord
	g, h int
	seq  int
}

func (n *node) f() int {
	return n.g + n.h
}

// Orders the open set by F, then by H so that nodes nearer the goal win, then
// by insertion order so the search is deterministic.
func nodeLess(_a, _b interface{}) bool {
	a := _a.(*node)
	b := _b.(*node)
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

// Returns the start-exclusive path from start to end, or nil if end can't be
// reached.
func (pf *Pathfinder) search(start, end grid.Coord) []grid.Coord {
	open := llrb.New(nodeLess)
	opened := make(map[grid.Coord]*node)
	closed := make(map[grid.Coord]bool)
	parent := make(map[grid.Coord]grid.Coord)
	seq := 0

	push := func(pos grid.Coord, g int) {
		n := &node{pos: pos, g: g, h: grid.Manhattan(pos, end), seq: seq}
		seq++
		opened[pos] = n
		open.ReplaceOrInsert(n)
	}
	push(start, 0)

	for open.Len() > 0 {
		cur := open.DeleteMin().(*node)
		delete(opened, cur.pos)
		if cur.pos == end {
			return pf.unwind(parent, start, end)
		}
		closed[cur.pos] = true

		for _, d := range neighbours {
			next := cur.pos.Add(d)
			if closed[next] || !pf.passable(next) {
				continue
			}
			g := cur.g + 1
			if prev, ok := opened[next]; ok {
				if prev.g <= g {
					continue
				}
				open.Delete(prev)
			}
			parent[next] = cur.pos
			push(next, g)
		}
	}
	return nil
}

func (pf *Pathfinder) unwind(parent map[grid.Coord]grid.Coord, start, end grid.Coord) []grid.Coord {
	var rev []grid.Coord
	for pos := end; pos != start; pos = parent[pos] {
		rev = append(rev, pos)
	}
	path := make([]grid.Coord, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}
