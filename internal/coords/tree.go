package coords

import (
	"errors"
	"slices"
	"strings"

	"github.com/dominikbraun/graph"
)

// rootKey is the hash of the synthetic project vertex. It cannot collide with
// a parsed coordinate because parsed coordinates never have empty components.
const rootKey = "::"

// Tree is the dependency tree as a directed graph rooted at the project.
// Coordinates reached through several paths collapse to a single vertex.
type Tree struct {
	g   graph.Graph[string, Coordinate]
	all []Coordinate
}

func coordinateHash(c Coordinate) string {
	return c.FullName()
}

// ParseTree parses dependency-tree text into a Tree. Nesting is derived from
// the column of the tree marker; lines that do not parse are skipped exactly
// as in Parse.
func ParseTree(text string) *Tree {
	t := &Tree{g: graph.New(coordinateHash, graph.Directed())}
	_ = t.g.AddVertex(Coordinate{})

	// stack[d] holds the key of the most recent vertex seen at depth d.
	var stack []string
	for _, line := range strings.Split(text, "\n") {
		c, depth, ok := parseLine(line)
		if !ok {
			continue
		}
		t.all = append(t.all, c)

		key := coordinateHash(c)
		if err := t.g.AddVertex(c); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			continue
		}

		parent := rootKey
		if depth > 0 && len(stack) > 0 {
			parent = stack[min(depth, len(stack))-1]
		}
		if parent != key {
			_ = t.g.AddEdge(parent, key)
		}

		if depth > len(stack) {
			depth = len(stack)
		}
		stack = append(stack[:depth], key)
	}
	return t
}

// All returns every parsed coordinate in input order, duplicates included.
func (t *Tree) All() []Coordinate {
	return slices.Clone(t.all)
}

// Len returns the number of distinct coordinates in the tree.
func (t *Tree) Len() int {
	n, err := t.g.Order()
	if err != nil || n == 0 {
		return 0
	}
	return n - 1
}

// Ranked returns the distinct coordinates ordered by their shortest distance
// from the project: direct dependencies first, then their dependencies, and
// so on. Ties keep the order of first appearance in the report.
func (t *Tree) Ranked() []Coordinate {
	depths := t.depths()

	seen := make(map[string]bool, len(t.all))
	var out []Coordinate
	for _, c := range t.all {
		key := coordinateHash(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b Coordinate) int {
		return depths[coordinateHash(a)] - depths[coordinateHash(b)]
	})
	return out
}

// Depth returns the shortest distance of c from the project, or -1 when c is
// not part of the tree.
func (t *Tree) Depth(c Coordinate) int {
	d, ok := t.depths()[coordinateHash(c)]
	if !ok {
		return -1
	}
	return d
}

// depths computes shortest-path depths with a breadth-first walk. BFS visits
// vertices in non-decreasing distance order, so the first depth assigned to a
// vertex is its shortest one.
func (t *Tree) depths() map[string]int {
	adj, err := t.g.AdjacencyMap()
	if err != nil {
		return map[string]int{}
	}

	depths := map[string]int{rootKey: 0}
	_ = graph.BFS(t.g, rootKey, func(key string) bool {
		for next := range adj[key] {
			if _, ok := depths[next]; !ok {
				depths[next] = depths[key] + 1
			}
		}
		return false
	})
	delete(depths, rootKey)
	return depths
}
