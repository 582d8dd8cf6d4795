package vmf

// Property is a single "key" "value" pair inside a block.
// Keys may repeat; all occurrences are preserved in source order.
type Property struct {
	Key   string
	Value string
}

// Node is one block of a VMF document: a name, ordered properties, and
// ordered child blocks. The root of a parsed document is an anonymous Node
// whose children are the top-level blocks (versioninfo, world, entity, ...).
type Node struct {
	Name     string
	Props    []Property
	Children []*Node
}

// Get returns the value of the last occurrence of key, or "" if absent.
// Last-wins matches how Hammer resolves duplicate keys.
func (n *Node) Get(key string) string {
	v, _ := n.Lookup(key)
	return v
}

// Lookup returns the value of the last occurrence of key and whether the
// key is present at all.
func (n *Node) Lookup(key string) (string, bool) {
	for i := len(n.Props) - 1; i >= 0; i-- {
		if n.Props[i].Key == key {
			return n.Props[i].Value, true
		}
	}
	return "", false
}

// Set replaces the last occurrence of key, or appends the property if the
// key is not present.
func (n *Node) Set(key, value string) {
	for i := len(n.Props) - 1; i >= 0; i-- {
		if n.Props[i].Key == key {
			n.Props[i].Value = value
			return
		}
	}
	n.Props = append(n.Props, Property{Key: key, Value: value})
}

// Add appends a property without looking for an existing occurrence.
func (n *Node) Add(key, value string) {
	n.Props = append(n.Props, Property{Key: key, Value: value})
}

// AddChild appends a child block.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// FirstChild returns the first child block with the given name, or nil.
func (n *Node) FirstChild(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all child blocks with the given name, in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Values returns the values of every occurrence of key, in source order.
// Used for keys that legitimately repeat, like the "v" entries of a
// vertices_plus block.
func (n *Node) Values(key string) []string {
	var out []string
	for _, p := range n.Props {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Walk visits n and every descendant block in document order.
// The visitor returning false prunes the subtree below that node.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}
