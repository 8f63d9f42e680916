package dom

// Node is a single node in the document tree: either an element with a tag
// name and attributes, or a text node.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Document is a parsed page: the element tree plus any scripts collected
// from <script> tags, in document order.
type Document struct {
	Root    *Node
	Scripts []string
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Scripts: make([]string, 0),
	}
}

// NewElement creates a detached element node.
func NewElement(tag string) *Node {
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: make(map[string]string),
		Children:   make([]*Node, 0),
	}
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// AddChild appends child and sets up the parent relationship.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child. Empty text is ignored.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// RemoveChild removes child from this node's children, clears its parent
// pointer, and returns it. Returns nil if child is not present.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// Detach removes the node from its parent, if it has one.
func (n *Node) Detach() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore inserts newChild before refChild in this node's children.
// If refChild is nil (or not a child), newChild is appended. A newChild that
// already has a parent is removed from that parent first.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}

	if refChild == nil {
		n.AddChild(newChild)
		return newChild
	}

	for i, c := range n.Children {
		if c == refChild {
			n.Children = append(n.Children, nil)
			copy(n.Children[i+1:], n.Children[i:])
			n.Children[i] = newChild
			newChild.Parent = n
			return newChild
		}
	}

	n.AddChild(newChild)
	return newChild
}

// InsertAt inserts child at index i among this node's children, clamping i
// to the valid range. A child that already has a parent is reparented.
func (n *Node) InsertAt(child *Node, i int) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if i < 0 {
		i = 0
	}
	if i >= len(n.Children) {
		n.AddChild(child)
		return
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
	child.Parent = n
}

// IndexInParent returns the index of this node among its parent's children,
// or -1 if it has no parent.
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the node immediately after this one in its parent's
// children, or nil.
func (n *Node) NextSibling() *Node {
	i := n.IndexInParent()
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

// PreviousSibling returns the node immediately before this one in its
// parent's children, or nil.
func (n *Node) PreviousSibling() *Node {
	i := n.IndexInParent()
	if i <= 0 {
		return nil
	}
	return n.Parent.Children[i-1]
}

// Contains returns true if other is n itself or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(other) {
			return true
		}
	}
	return false
}

// InDocument reports whether the node is reachable from the document root.
func (n *Node) InDocument(doc *Document) bool {
	if doc == nil || doc.Root == nil {
		return false
	}
	return doc.Root.Contains(n)
}

// CloneNode returns a copy of the node. If deep is true, all descendants are
// cloned recursively. The clone has no parent.
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{
		Type:    n.Type,
		TagName: n.TagName,
		Text:    n.Text,
	}
	if n.Attributes != nil {
		clone.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			clone.Attributes[k] = v
		}
	}
	if deep {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			childClone := child.CloneNode(true)
			childClone.Parent = clone
			clone.Children[i] = childClone
		}
	} else {
		clone.Children = make([]*Node, 0)
	}
	return clone
}

// Walk calls fn for n and every descendant, in document order. If fn returns
// false the walk stops.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// ElementsWithAttribute returns all element descendants (including n itself)
// that carry the named attribute, in document order.
func (n *Node) ElementsWithAttribute(name string) []*Node {
	var result []*Node
	n.Walk(func(node *Node) bool {
		if node.Type == ElementNode {
			if _, ok := node.GetAttribute(name); ok {
				result = append(result, node)
			}
		}
		return true
	})
	return result
}

// GetElementByID walks the tree and returns the first element with the
// matching id attribute, or nil.
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	d.Root.Walk(func(node *Node) bool {
		if node.Type == ElementNode {
			if val, ok := node.Attributes["id"]; ok && val == id {
				found = node
				return false
			}
		}
		return true
	})
	return found
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var out string
	for _, child := range n.Children {
		out += child.TextContent()
	}
	return out
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = n.Children[:0]
	n.AppendText(text)
}
