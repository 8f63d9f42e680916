package dom

import "fmt"

// Parser builds a Document from an HTML string. It is a forgiving parser:
// unmatched end tags are ignored, <p> auto-closes before block elements, and
// <script> content is captured into Document.Scripts rather than the tree.
type Parser struct {
	sc    *scanner
	doc   *Document
	stack []*Node
}

func NewParser(html string) *Parser {
	return &Parser{
		sc:  newScanner(html),
		doc: NewDocument(),
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.doc.Root}

	for {
		tok, err := p.sc.next()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		if tok.kind == tokenEOF {
			break
		}

		switch tok.kind {
		case tokenOpen:
			// Raw text elements: capture scripts, discard styles. Neither
			// produces a tree node.
			if tok.name == "script" {
				p.doc.Scripts = append(p.doc.Scripts, p.sc.rawText("script"))
				continue
			}
			if tok.name == "style" {
				p.sc.rawText("style")
				continue
			}

			if isBlockElement(tok.name) {
				p.autoCloseP()
			}

			node := &Node{
				Type:       ElementNode,
				TagName:    tok.name,
				Attributes: tok.attrs,
				Children:   make([]*Node, 0),
			}
			p.currentParent().AddChild(node)

			if !isVoidElement(tok.name) && !tok.selfClose {
				p.stack = append(p.stack, node)
			}

		case tokenText:
			if tok.text != "" {
				p.currentParent().AppendText(tok.text)
			}

		case tokenClose:
			p.closeTag(tok.name)
		}
	}

	return p.doc, nil
}

// currentParent returns the node new content attaches to (top of stack).
func (p *Parser) currentParent() *Node {
	if len(p.stack) == 0 {
		return p.doc.Root
	}
	return p.stack[len(p.stack)-1]
}

// closeTag pops the stack until the matching tag is found and closed.
// An end tag with no matching open element is ignored.
func (p *Parser) closeTag(tagName string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
}

// autoCloseP closes an open <p> element, without closing past block-level
// containers.
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == "p" {
			p.stack = p.stack[:i]
			return
		}
		if isBlockElement(p.stack[i].TagName) {
			return
		}
	}
}

func isBlockElement(tagName string) bool {
	switch tagName {
	case "address", "article", "aside", "blockquote", "details", "dialog",
		"dd", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol",
		"p", "pre", "section", "table", "ul":
		return true
	}
	return false
}

// Parse builds a Document from an HTML string.
func Parse(html string) (*Document, error) {
	return NewParser(html).Parse()
}
