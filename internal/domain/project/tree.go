package project

import (
	"fmt"
	"sort"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
)

// Tree holds every node under one project root in an arena.
// Nodes are addressed by their slot; parent/child relations are kept as slot
// indexes so a node reached through its parent and through a child list is
// always the same value.
type Tree struct {
	nodes    []*Work
	index    map[uuid.UUID]int
	children map[int][]int
	parent   map[int]int
	added    map[int]bool
}

// NewTree starts a tree from a root node
func NewTree(root *Work) *Tree {
	t := &Tree{
		index:    make(map[uuid.UUID]int),
		children: make(map[int][]int),
		parent:   make(map[int]int),
		added:    make(map[int]bool),
	}
	root.ParentID = nil
	root.RootID = root.ID
	t.put(root)
	return t
}

// BuildTree arranges loaded nodes into a tree. Exactly one node must have no parent.
func BuildTree(works []*Work) (*Tree, error) {
	var root *Work
	for _, w := range works {
		if w.ParentID == nil {
			if root != nil {
				return nil, shared.NewDomainError("INVALID_TREE", "Project tree has more than one root")
			}
			root = w
		}
	}
	if root == nil {
		return nil, shared.NewDomainError("INVALID_TREE", "Project tree has no root")
	}

	t := &Tree{
		index:    make(map[uuid.UUID]int),
		children: make(map[int][]int),
		parent:   make(map[int]int),
		added:    make(map[int]bool),
	}
	for _, w := range works {
		t.put(w)
	}
	for slot, w := range t.nodes {
		if w.ParentID == nil {
			continue
		}
		p, ok := t.index[*w.ParentID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_TREE", fmt.Sprintf("Work %q references a parent outside the tree", w.Name))
		}
		t.children[p] = append(t.children[p], slot)
		t.parent[slot] = p
	}
	for p := range t.children {
		kids := t.children[p]
		sort.SliceStable(kids, func(i, j int) bool {
			a, b := t.nodes[kids[i]], t.nodes[kids[j]]
			if a.Sequence != b.Sequence {
				return a.Sequence < b.Sequence
			}
			return a.CreatedAt.Before(b.CreatedAt)
		})
	}
	// freshly loaded nodes are not new
	t.added = make(map[int]bool)
	return t, nil
}

func (t *Tree) put(w *Work) int {
	slot := len(t.nodes)
	t.nodes = append(t.nodes, w)
	t.index[w.ID] = slot
	t.added[slot] = true
	return slot
}

// Root returns the project root
func (t *Tree) Root() *Work {
	for slot, w := range t.nodes {
		if _, hasParent := t.parent[slot]; !hasParent && w.ParentID == nil {
			return w
		}
	}
	return nil
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node finds a node by ID
func (t *Tree) Node(id uuid.UUID) (*Work, bool) {
	slot, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.nodes[slot], true
}

// Contains reports whether the node belongs to the tree
func (t *Tree) Contains(id uuid.UUID) bool {
	_, ok := t.index[id]
	return ok
}

// Parent returns the parent of a node, nil for the root
func (t *Tree) Parent(id uuid.UUID) *Work {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	p, ok := t.parent[slot]
	if !ok {
		return nil
	}
	return t.nodes[p]
}

// Children returns the direct children of a node in sequence order
func (t *Tree) Children(id uuid.UUID) []*Work {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	kids := t.children[slot]
	out := make([]*Work, len(kids))
	for i, k := range kids {
		out[i] = t.nodes[k]
	}
	return out
}

// Attach places w as the last child of parentID
func (t *Tree) Attach(parentID uuid.UUID, w *Work) error {
	p, ok := t.index[parentID]
	if !ok {
		return shared.NewDomainError("NOT_FOUND", "Parent work not found in project tree")
	}
	if _, exists := t.index[w.ID]; exists {
		return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Work %q is already in the project tree", w.Name))
	}
	parent := t.nodes[p]
	if w.CompanyID != parent.CompanyID {
		return shared.NewDomainError("INVALID_COMPANY", "Work must belong to the same company as its parent")
	}

	pid := parent.ID
	w.ParentID = &pid
	w.RootID = parent.RootID
	w.Sequence = len(t.children[p]) + 1
	if w.PartyID == nil {
		w.PartyID = parent.PartyID
	}

	slot := t.put(w)
	t.children[p] = append(t.children[p], slot)
	t.parent[slot] = p
	return nil
}

// Walk visits the subtree below id depth first, parents before children.
// The node id itself is not visited.
func (t *Tree) Walk(id uuid.UUID, fn func(node *Work, parent *Work, depth int) error) error {
	slot, ok := t.index[id]
	if !ok {
		return shared.NewDomainError("NOT_FOUND", "Work not found in project tree")
	}
	return t.walk(slot, 1, fn)
}

func (t *Tree) walk(slot, depth int, fn func(node *Work, parent *Work, depth int) error) error {
	for _, k := range t.children[slot] {
		if err := fn(t.nodes[k], t.nodes[slot], depth); err != nil {
			return err
		}
		if err := t.walk(k, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Nodes returns every node, root first, in depth-first order
func (t *Tree) Nodes() []*Work {
	root := t.Root()
	if root == nil {
		return nil
	}
	out := []*Work{root}
	_ = t.Walk(root.ID, func(node *Work, _ *Work, _ int) error {
		out = append(out, node)
		return nil
	})
	return out
}

// Added returns the nodes attached since the tree was built or loaded
func (t *Tree) Added() []*Work {
	var out []*Work
	for _, w := range t.Nodes() {
		if t.added[t.index[w.ID]] {
			out = append(out, w)
		}
	}
	return out
}

// IsAdded reports whether a node was attached since the tree was built or loaded
func (t *Tree) IsAdded(id uuid.UUID) bool {
	slot, ok := t.index[id]
	return ok && t.added[slot]
}
