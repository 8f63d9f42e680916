package dom

import "strings"

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// SetAttribute sets an attribute, allocating the map on first use.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// RemoveAttribute deletes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	if n.Attributes != nil {
		delete(n.Attributes, name)
	}
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// ID returns the id attribute, or "".
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// Data returns the data-<name> attribute value and whether it is present.
func (n *Node) Data(name string) (string, bool) {
	return n.GetAttribute("data-" + name)
}

// SetData sets the data-<name> attribute.
func (n *Node) SetData(name, value string) {
	n.SetAttribute("data-"+name, value)
}

// HasClass reports whether the class attribute contains the given token.
func (n *Node) HasClass(class string) bool {
	attr, _ := n.GetAttribute("class")
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds a token to the class attribute. Adding a token that is
// already present is a no-op.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	attr, _ := n.GetAttribute("class")
	if attr == "" {
		n.SetAttribute("class", class)
		return
	}
	n.SetAttribute("class", attr+" "+class)
}

// RemoveClass removes a token from the class attribute. Removing a token
// that is absent is a no-op; removing the last token drops the attribute
// entirely so the element serializes as it did before any class was added.
func (n *Node) RemoveClass(class string) {
	attr, ok := n.GetAttribute("class")
	if !ok {
		return
	}
	fields := strings.Fields(attr)
	kept := fields[:0]
	for _, c := range fields {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		n.RemoveAttribute("class")
		return
	}
	n.SetAttribute("class", strings.Join(kept, " "))
}

// ToggleClass adds the token if absent, removes it if present, and returns
// whether the token is present afterwards.
func (n *Node) ToggleClass(class string) bool {
	if n.HasClass(class) {
		n.RemoveClass(class)
		return false
	}
	n.AddClass(class)
	return true
}
