// Package kdml parses HowNet KDML definitions into sememe trees.
//
// A tree is an arena of nodes addressed by NodeID. Parent links are indices,
// so detaching a node never leaves a dangling pointer: the node stays in the
// arena but is no longer reachable from the root.
package kdml

// NodeID addresses a node inside a Tree.
type NodeID int

// NoNode is the parent of the root and of detached nodes.
const NoNode NodeID = -1

const (
	// RoleSense is the role of the synthetic root.
	RoleSense = "sense"
	// RoleNone is the role of a node whose relation was not annotated.
	RoleNone = "None"
)

// Placeholder markers that stand for a sememe on their own.
const (
	Pointer  = "~"
	Unknown  = "?"
	Variable = "$"
)

// Node is one sememe (or marker) in a tree.
type Node struct {
	Label    string
	Role     string
	Parent   NodeID
	Children []NodeID
}

// Tree is a sememe tree. Node 0 is always the synthetic root.
type Tree struct {
	nodes []Node
}

// NewTree returns a tree holding only a root labeled label.
func NewTree(label string) *Tree {
	return &Tree{nodes: []Node{{Label: label, Role: RoleSense, Parent: NoNode}}}
}

// Root returns the id of the synthetic root.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes in the arena, detached ones included.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node at id.
func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

func (t *Tree) Label(id NodeID) string { return t.nodes[id].Label }

func (t *Tree) Role(id NodeID) string { return t.nodes[id].Role }

func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].Parent }

// Children returns the children of id in source order. The slice must not
// be modified.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].Children }

// IsLeaf reports whether id has no attached children.
func (t *Tree) IsLeaf(id NodeID) bool { return len(t.nodes[id].Children) == 0 }

// add appends a free-standing node and returns its id.
func (t *Tree) add(label, role string) NodeID {
	t.nodes = append(t.nodes, Node{Label: label, Role: role, Parent: NoNode})
	return NodeID(len(t.nodes) - 1)
}

// attach makes child the last child of parent, detaching it from any
// previous parent first.
func (t *Tree) attach(child, parent NodeID) {
	t.detach(child)
	t.nodes[child].Parent = parent
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
}

func (t *Tree) detach(child NodeID) {
	p := t.nodes[child].Parent
	if p == NoNode {
		return
	}
	kids := t.nodes[p].Children
	for i, c := range kids {
		if c == child {
			t.nodes[p].Children = append(kids[:i:i], kids[i+1:]...)
			break
		}
	}
	t.nodes[child].Parent = NoNode
}

// Walk visits every node reachable from the root in pre-order. depth is 0
// for the root. Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range t.nodes[id].Children {
			visit(c, depth+1)
		}
	}
	visit(t.Root(), 0)
}

// Equal reports whether both trees have the same labels, roles and child
// order when walked from their roots.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	var eq func(a, b NodeID) bool
	eq = func(a, b NodeID) bool {
		na, nb := t.nodes[a], o.nodes[b]
		if na.Label != nb.Label || na.Role != nb.Role || len(na.Children) != len(nb.Children) {
			return false
		}
		for i := range na.Children {
			if !eq(na.Children[i], nb.Children[i]) {
				return false
			}
		}
		return true
	}
	return eq(t.Root(), o.Root())
}
