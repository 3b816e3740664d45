package kdml

import "encoding/json"

// DictNode is the nested-mapping form of a tree, used at persistence and
// display boundaries.
type DictNode struct {
	Name     string      `json:"name"`
	Role     string      `json:"role"`
	Children []*DictNode `json:"children,omitempty"`
}

// Export converts t into its nested-mapping form.
func Export(t *Tree) *DictNode {
	var conv func(id NodeID) *DictNode
	conv = func(id NodeID) *DictNode {
		n := t.nodes[id]
		d := &DictNode{Name: n.Label, Role: n.Role}
		for _, c := range n.Children {
			d.Children = append(d.Children, conv(c))
		}
		return d
	}
	return conv(t.Root())
}

// FromDict rebuilds a tree from its nested-mapping form.
func FromDict(d *DictNode) *Tree {
	if d == nil {
		return NewTree("")
	}
	t := &Tree{}
	var build func(d *DictNode, parent NodeID)
	build = func(d *DictNode, parent NodeID) {
		id := t.add(d.Name, d.Role)
		if parent != NoNode {
			t.attach(id, parent)
		}
		for _, c := range d.Children {
			build(c, id)
		}
	}
	build(d, NoNode)
	return t
}

// MarshalJSON encodes the tree in its nested-mapping form.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(Export(t))
}

// UnmarshalJSON decodes a tree from its nested-mapping form.
func (t *Tree) UnmarshalJSON(b []byte) error {
	var d DictNode
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*t = *FromDict(&d)
	return nil
}
