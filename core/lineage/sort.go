package lineage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"arcade-catalog/core/model"
)

// ErrCycle is returned by Sort when clone_of / rom_of references form a loop.
var ErrCycle = errors.New("reference cycle")

// MaxDepth is the longest reference chain (child, parent, bios root) the upstream data is known to use.
const MaxDepth = 3

// Warning kinds.
const (
	WarnOrder         = "order"
	WarnDepth         = "depth"
	WarnCloneOfClone  = "clone_of_clone"
	WarnDuplicateName = "duplicate_name"
	WarnDuplicateLink = "duplicate_link"
)

// Warning describes a data-integrity defect in a release. Warnings are never fatal.
type Warning struct {
	Kind   string `json:"kind"`
	Game   string `json:"game"`
	Target string `json:"target,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (w Warning) String() string {
	s := w.Kind + ": " + w.Game
	if w.Target != "" {
		s += " -> " + w.Target
	}
	if w.Detail != "" {
		s += " (" + w.Detail + ")"
	}
	return s
}

// Ordering is the parent-first arrangement of a release's games.
type Ordering struct {
	// Games holds the games in emission order.
	Games []model.GameDescriptor

	ParentsOnly        int
	ChildrenAndParents int
	ChildrenOnly       int
	NoRelationships    int

	Warnings []Warning
}

// node is the per-name reachability state.
type node struct {
	first      int
	parents    []string
	referenced bool
	depth      int
	state      uint8
}

const (
	unvisited uint8 = iota
	visiting
	done
)

// Sort orders games so that referenced parents come before the games referencing them.
//
// Games fall into four groups emitted in order: parents only, children and parents (by
// ascending chain depth), children only, no relationships. Input order is preserved inside each
// group. Self references are ignored and a reference to a game missing from the release does not
// make the referencing game a child. On a cycle the ordering is still returned, together with
// an error wrapping ErrCycle.
func Sort(games []model.GameDescriptor) (Ordering, error) {
	var ord Ordering
	nodes := make(map[string]*node, len(games))

	for i, g := range games {
		if _, ok := nodes[g.Name]; ok {
			ord.Warnings = append(ord.Warnings, Warning{Kind: WarnDuplicateName, Game: g.Name})
			continue
		}
		nodes[g.Name] = &node{first: i, parents: g.ParentNames()}
	}
	for _, n := range nodes {
		for _, p := range n.parents {
			if pn, ok := nodes[p]; ok {
				pn.referenced = true
			}
		}
	}

	var cycles []string
	var visit func(name string, path []string) int
	visit = func(name string, path []string) int {
		n := nodes[name]
		switch n.state {
		case done:
			return n.depth
		case visiting:
			loop := append(slices.Clone(path[slices.Index(path, name):]), name)
			cycles = append(cycles, strings.Join(loop, " -> "))
			return 0
		}
		n.state = visiting
		depth := 1
		for _, p := range n.parents {
			if _, ok := nodes[p]; !ok {
				continue
			}
			depth = max(depth, visit(p, append(path, name))+1)
		}
		n.depth = depth
		n.state = done
		return depth
	}
	for _, g := range games {
		visit(g.Name, nil)
	}

	var parentsOnly, both, childrenOnly, none []model.GameDescriptor
	for _, g := range games {
		n := nodes[g.Name]
		isChild := slices.ContainsFunc(g.ParentNames(), func(p string) bool {
			_, ok := nodes[p]
			return ok
		})
		switch {
		case n.referenced && !isChild:
			parentsOnly = append(parentsOnly, g)
		case n.referenced && isChild:
			both = append(both, g)
		case isChild:
			childrenOnly = append(childrenOnly, g)
		default:
			none = append(none, g)
		}
	}
	slices.SortStableFunc(both, func(a, b model.GameDescriptor) int {
		return nodes[a.Name].depth - nodes[b.Name].depth
	})

	ord.Games = make([]model.GameDescriptor, 0, len(games))
	ord.Games = append(ord.Games, parentsOnly...)
	ord.Games = append(ord.Games, both...)
	ord.Games = append(ord.Games, childrenOnly...)
	ord.Games = append(ord.Games, none...)
	ord.ParentsOnly = len(parentsOnly)
	ord.ChildrenAndParents = len(both)
	ord.ChildrenOnly = len(childrenOnly)
	ord.NoRelationships = len(none)

	ord.Warnings = append(ord.Warnings, validate(ord.Games, nodes)...)

	if len(cycles) > 0 {
		return ord, fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycles, "; "))
	}
	return ord, nil
}

// validate checks the emitted order and the domain invariants on reference chains.
func validate(games []model.GameDescriptor, nodes map[string]*node) []Warning {
	var warnings []Warning
	pos := make(map[string]int, len(games))
	for i, g := range games {
		if _, ok := pos[g.Name]; !ok {
			pos[g.Name] = i
		}
	}
	byName := make(map[string]model.GameDescriptor, len(games))
	for _, g := range games {
		if _, ok := byName[g.Name]; !ok {
			byName[g.Name] = g
		}
	}

	for i, g := range games {
		for _, p := range g.ParentNames() {
			pi, ok := pos[p]
			if !ok {
				continue
			}
			if pi >= i {
				warnings = append(warnings, Warning{Kind: WarnOrder, Game: g.Name, Target: p,
					Detail: fmt.Sprintf("parent at %d, child at %d", pi, i)})
			}
		}
		if pos[g.Name] != i {
			continue
		}
		if d := nodes[g.Name].depth; d > MaxDepth {
			warnings = append(warnings, Warning{Kind: WarnDepth, Game: g.Name, Detail: fmt.Sprintf("chain of %d", d)})
		}
		if g.CloneOf != "" && g.CloneOf != g.Name {
			if parent, ok := byName[g.CloneOf]; ok && parent.CloneOf != "" && parent.CloneOf != parent.Name {
				warnings = append(warnings, Warning{Kind: WarnCloneOfClone, Game: g.Name, Target: g.CloneOf,
					Detail: "parent is a clone of " + parent.CloneOf})
			}
		}
	}
	return warnings
}
