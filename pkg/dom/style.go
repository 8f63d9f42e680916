package dom

import (
	"sort"
	"strings"
)

// StyleProperty returns the value of a property from the node's inline style
// attribute, or "" if not set. Custom properties (--name) work the same way
// as regular properties.
func (n *Node) StyleProperty(prop string) string {
	styles := ParseInlineStyle(n.styleAttr())
	return styles[prop]
}

// SetStyleProperty sets a property on the node's inline style attribute,
// preserving the other declarations.
func (n *Node) SetStyleProperty(prop, value string) {
	styles := ParseInlineStyle(n.styleAttr())
	styles[prop] = value
	n.SetAttribute("style", SerializeInlineStyle(styles))
}

// SetStyleProperties sets several properties at once.
func (n *Node) SetStyleProperties(props map[string]string) {
	styles := ParseInlineStyle(n.styleAttr())
	for k, v := range props {
		styles[k] = v
	}
	n.SetAttribute("style", SerializeInlineStyle(styles))
}

// RemoveStyleProperty deletes a property from the inline style attribute.
func (n *Node) RemoveStyleProperty(prop string) {
	styles := ParseInlineStyle(n.styleAttr())
	if _, ok := styles[prop]; !ok {
		return
	}
	delete(styles, prop)
	n.SetAttribute("style", SerializeInlineStyle(styles))
}

func (n *Node) styleAttr() string {
	attr, _ := n.GetAttribute("style")
	return attr
}

// ParseInlineStyle parses a CSS inline style string into a property map.
// Malformed declarations are skipped.
func ParseInlineStyle(s string) map[string]string {
	result := make(map[string]string)
	s = strings.TrimSpace(s)
	if s == "" {
		return result
	}
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		idx := strings.IndexByte(decl, ':')
		if idx < 0 {
			continue
		}
		prop := strings.TrimSpace(decl[:idx])
		val := strings.TrimSpace(decl[idx+1:])
		if prop == "" {
			continue
		}
		result[prop] = val
	}
	return result
}

// SerializeInlineStyle converts a property map back to a CSS inline style
// string. Properties are sorted for deterministic output.
func SerializeInlineStyle(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(m))
	for _, k := range keys {
		parts = append(parts, k+": "+m[k])
	}
	return strings.Join(parts, "; ")
}
