package xml

// NodeType identifies the kind of a Node.
type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	CharDataNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Name is an element or attribute name with its literal prefix.
type Name struct {
	Prefix string
	Local  string
}

// String returns the qualified name as written in the document.
func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// Attr is a single attribute.
type Attr struct {
	Name  Name
	Value string
}

// NewAttr creates an attribute.
func NewAttr(prefix, local, value string) Attr {
	return Attr{Name: Name{Prefix: prefix, Local: local}, Value: value}
}

// Node is one node of the tree. Element nodes carry Name, Attrs and Children;
// character data, comments and directives carry Data; processing instructions
// carry Target and Data.
type Node struct {
	Type     NodeType
	Name     Name
	Attrs    []Attr
	Data     string
	Target   string
	Children []*Node
	Parent   *Node
}

// NewElement creates a detached element node.
func NewElement(prefix, local string, attrs ...Attr) *Node {
	return &Node{
		Type:  ElementNode,
		Name:  Name{Prefix: prefix, Local: local},
		Attrs: attrs,
	}
}

// NewText creates a detached character data node.
func NewText(s string) *Node {
	return &Node{Type: CharDataNode, Data: s}
}

// Is reports whether n is an element with the given prefix and local name.
func (n *Node) Is(prefix, local string) bool {
	return n != nil && n.Type == ElementNode && n.Name.Prefix == prefix && n.Name.Local == local
}

// DocumentElement returns the first element child of a document node.
func (n *Node) DocumentElement() *Node {
	for _, c := range n.Children {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(prefix, local string) *Node {
	for _, c := range n.Children {
		if c.Is(prefix, local) {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the child elements with the given name.
func (n *Node) ChildrenNamed(prefix, local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Is(prefix, local) {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in document order. When fn
// returns false the children of that node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Descendants returns every element below n with the given name, in document
// order. Matching elements are not searched further.
func (n *Node) Descendants(prefix, local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		c.Walk(func(x *Node) bool {
			if x.Is(prefix, local) {
				out = append(out, x)
				return false
			}
			return true
		})
	}
	return out
}

// Text returns the concatenated character data of n and its descendants.
func (n *Node) Text() string {
	var s []byte
	n.Walk(func(x *Node) bool {
		if x.Type == CharDataNode {
			s = append(s, x.Data...)
		}
		return true
	})
	return string(s)
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(prefix, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Prefix == prefix && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value in place.
func (n *Node) SetAttr(prefix, local, value string) {
	for i, a := range n.Attrs {
		if a.Name.Prefix == prefix && a.Name.Local == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, NewAttr(prefix, local, value))
}

// RemoveAttr deletes the named attribute if present.
func (n *Node) RemoveAttr(prefix, local string) {
	for i, a := range n.Attrs {
		if a.Name.Prefix == prefix && a.Name.Local == local {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// AppendChild attaches c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	c.Parent = n
	n.Children = append(n.Children, c)
}

// InsertAfter attaches c directly after ref, which must be a child of n. If
// ref is not a child, c is appended.
func (n *Node) InsertAfter(ref, c *Node) {
	i := n.indexOf(ref)
	if i < 0 {
		n.AppendChild(c)
		return
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
		i = n.indexOf(ref)
	}
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+2:], n.Children[i+1:])
	n.Children[i+1] = c
}

// InsertBefore attaches c directly before ref, which must be a child of n.
// If ref is not a child, c is appended.
func (n *Node) InsertBefore(ref, c *Node) {
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	i := n.indexOf(ref)
	if i < 0 {
		n.AppendChild(c)
		return
	}
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// RemoveChild detaches c from n.
func (n *Node) RemoveChild(c *Node) {
	i := n.indexOf(c)
	if i < 0 {
		return
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	c.Parent = nil
}

// RetainChildren keeps the children for which keep returns true and
// detaches the rest. A nil keep detaches every child.
func (n *Node) RetainChildren(keep func(*Node) bool) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if keep != nil && keep(c) {
			kept = append(kept, c)
			continue
		}
		c.Parent = nil
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
}

// Clear detaches every child.
func (n *Node) Clear() { n.RetainChildren(nil) }

func (n *Node) indexOf(c *Node) int {
	for i, x := range n.Children {
		if x == c {
			return i
		}
	}
	return -1
}

// Clone returns a detached deep copy of n.
func (n *Node) Clone() *Node {
	cp := &Node{
		Type:   n.Type,
		Name:   n.Name,
		Data:   n.Data,
		Target: n.Target,
	}
	if len(n.Attrs) > 0 {
		cp.Attrs = make([]Attr, len(n.Attrs))
		copy(cp.Attrs, n.Attrs)
	}
	for _, c := range n.Children {
		cc := c.Clone()
		cc.Parent = cp
		cp.Children = append(cp.Children, cc)
	}
	return cp
}

// LookupPrefix returns the prefix bound to uri on n or its ancestors.
func (n *Node) LookupPrefix(uri string) (string, bool) {
	for x := n; x != nil; x = x.Parent {
		for _, a := range x.Attrs {
			if a.Name.Prefix == "xmlns" && a.Value == uri {
				return a.Name.Local, true
			}
		}
	}
	return "", false
}

// Namespaces returns the prefix to URI declarations made on n.
func (n *Node) Namespaces() map[string]string {
	out := make(map[string]string)
	for _, a := range n.Attrs {
		if a.Name.Prefix == "xmlns" {
			out[a.Name.Local] = a.Value
		}
	}
	return out
}

// EnsureNamespace declares prefix for uri on n unless the prefix is already
// declared there.
func (n *Node) EnsureNamespace(prefix, uri string) {
	if _, ok := n.Attr("xmlns", prefix); ok {
		return
	}
	n.Attrs = append(n.Attrs, NewAttr("xmlns", prefix, uri))
}
