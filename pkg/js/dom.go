package js

import (
	"strconv"
	"strings"
	"unicode"

	"scrollfx/pkg/dom"

	"github.com/dop251/goja"
)

// domContext holds shared state for DOM bindings within one runtime. It
// caches node-to-proxy mappings so the same JS object is returned for the
// same underlying *dom.Node (needed for === identity checks and for
// unwrapping proxies back to nodes).
type domContext struct {
	vm    *goja.Runtime
	doc   *dom.Document
	cache map[*dom.Node]goja.Value
}

func newDOMContext(vm *goja.Runtime, doc *dom.Document) *domContext {
	return &domContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*dom.Node]goja.Value),
	}
}

// registerDocument sets up the global `document` object.
func registerDocument(vm *goja.Runtime, doc *dom.Document) *domContext {
	ctx := newDOMContext(vm, doc)

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		node := doc.GetElementByID(call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		tag := strings.ToLower(call.Arguments[0].String())
		return ctx.elementArray(collectByTag(doc.Root, tag))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(collectByClass(doc.Root, call.Arguments[0].String()))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		tag := strings.ToLower(call.Arguments[0].String())
		return ctx.elementProxy(dom.NewElement(tag))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.elementProxy(dom.NewText(text))
	})
	docObj.Set("body", bodyProxy(ctx, doc))

	vm.Set("document", docObj)
	return ctx
}

// bodyProxy returns the <body> element when the document has one, otherwise
// the root container so bare fragments still expose an append target.
func bodyProxy(ctx *domContext, doc *dom.Document) goja.Value {
	var body *dom.Node
	doc.Root.Walk(func(n *dom.Node) bool {
		if n.Type == dom.ElementNode && n.TagName == "body" {
			body = n
			return false
		}
		return true
	})
	if body == nil {
		body = doc.Root
	}
	return ctx.elementProxy(body)
}

func collectByTag(node *dom.Node, tag string) []*dom.Node {
	var result []*dom.Node
	node.Walk(func(n *dom.Node) bool {
		if n.Type == dom.ElementNode && n.TagName == tag {
			result = append(result, n)
		}
		return true
	})
	return result
}

func collectByClass(node *dom.Node, cls string) []*dom.Node {
	var result []*dom.Node
	node.Walk(func(n *dom.Node) bool {
		if n.Type == dom.ElementNode && n.HasClass(cls) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// elementArray creates a JS array of element proxies.
func (ctx *domContext) elementArray(nodes []*dom.Node) goja.Value {
	arr := ctx.vm.NewArray()
	for i, n := range nodes {
		arr.Set(strconv.Itoa(i), ctx.elementProxy(n))
	}
	arr.Set("length", len(nodes))
	return arr
}

// elementProxy creates (or retrieves from cache) a DynamicObject wrapping a node.
func (ctx *domContext) elementProxy(node *dom.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode extracts the *dom.Node behind a proxy value, or nil.
func (ctx *domContext) unwrapNode(val goja.Value) *dom.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

// elementAccessor implements goja.DynamicObject for DOM element proxies.
type elementAccessor struct {
	ctx  *domContext
	node *dom.Node
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm

	switch key {
	case "nodeType":
		if e.node.Type == dom.TextNode {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "nodeName":
		if e.node.Type == dom.TextNode {
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(e.node.TagName))
	case "tagName":
		if e.node.Type == dom.TextNode {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(e.node.TagName))
	case "id":
		return vm.ToValue(e.node.ID())
	case "className":
		cls, _ := e.node.GetAttribute("class")
		return vm.ToValue(cls)
	case "textContent":
		return vm.ToValue(e.node.TextContent())
	case "innerHTML":
		return vm.ToValue(e.node.Serialize())
	case "outerHTML":
		return vm.ToValue(e.node.SerializeOuter())
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			val, ok := e.node.GetAttribute(call.Arguments[0].String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				return goja.Undefined()
			}
			e.node.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			return vm.ToValue(e.node.HasAttribute(call.Arguments[0].String()))
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				e.node.RemoveAttribute(call.Arguments[0].String())
			}
			return goja.Undefined()
		})
	case "dataset":
		return newDatasetProxy(e.ctx, e.node)
	case "style":
		return newStyleProxy(vm, e.node)
	case "classList":
		return newClassListProxy(e.ctx, e.node)
	case "children":
		var els []*dom.Node
		for _, c := range e.node.Children {
			if c.Type == dom.ElementNode {
				els = append(els, c)
			}
		}
		return e.ctx.elementArray(els)
	case "childNodes":
		return e.ctx.elementArray(e.node.Children)
	case "parentElement", "parentNode":
		if e.node.Parent != nil && e.node.Parent.TagName != "document" {
			return e.ctx.elementProxy(e.node.Parent)
		}
		return goja.Null()
	case "nextSibling":
		if s := e.node.NextSibling(); s != nil {
			return e.ctx.elementProxy(s)
		}
		return goja.Null()
	case "previousSibling":
		if s := e.node.PreviousSibling(); s != nil {
			return e.ctx.elementProxy(s)
		}
		return goja.Null()
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			child := e.ctx.unwrapNode(call.Arguments[0])
			if child == nil {
				return goja.Null()
			}
			if child.Parent != nil {
				child.Parent.RemoveChild(child)
			}
			e.node.AddChild(child)
			return call.Arguments[0]
		})
	case "removeChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			child := e.ctx.unwrapNode(call.Arguments[0])
			if child == nil || e.node.RemoveChild(child) == nil {
				panic(vm.NewTypeError("Failed to execute 'removeChild': node is not a child"))
			}
			return call.Arguments[0]
		})
	case "insertBefore":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			child := e.ctx.unwrapNode(call.Arguments[0])
			if child == nil {
				return goja.Null()
			}
			var ref *dom.Node
			if len(call.Arguments) > 1 {
				ref = e.ctx.unwrapNode(call.Arguments[1])
			}
			e.node.InsertBefore(child, ref)
			return call.Arguments[0]
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			e.node.Detach()
			return goja.Undefined()
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			other := e.ctx.unwrapNode(call.Arguments[0])
			return vm.ToValue(other != nil && e.node.Contains(other))
		})
	case "cloneNode":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			deep := len(call.Arguments) > 0 && call.Arguments[0].ToBoolean()
			return e.ctx.elementProxy(e.node.CloneNode(deep))
		})
	case "getElementsByTagName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return e.ctx.elementArray(nil)
			}
			tag := strings.ToLower(call.Arguments[0].String())
			var result []*dom.Node
			for _, c := range e.node.Children {
				result = append(result, collectByTag(c, tag)...)
			}
			return e.ctx.elementArray(result)
		})
	case "getElementsByClassName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return e.ctx.elementArray(nil)
			}
			var result []*dom.Node
			for _, c := range e.node.Children {
				result = append(result, collectByClass(c, call.Arguments[0].String())...)
			}
			return e.ctx.elementArray(result)
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		e.node.SetTextContent(val.String())
		return true
	case "className":
		e.node.SetAttribute("class", val.String())
		return true
	case "id":
		e.node.SetAttribute("id", val.String())
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	switch key {
	case "tagName", "nodeName", "nodeType", "id", "className",
		"textContent", "innerHTML", "outerHTML",
		"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
		"dataset", "style", "classList",
		"children", "childNodes", "parentElement", "parentNode",
		"nextSibling", "previousSibling",
		"appendChild", "removeChild", "insertBefore", "remove",
		"contains", "cloneNode",
		"getElementsByTagName", "getElementsByClassName":
		return true
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool { return false }

func (e *elementAccessor) Keys() []string {
	return []string{
		"tagName", "nodeName", "nodeType", "id", "className",
		"textContent", "innerHTML", "outerHTML",
		"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
		"dataset", "style", "classList",
		"children", "childNodes", "parentElement", "parentNode",
		"nextSibling", "previousSibling",
		"appendChild", "removeChild", "insertBefore", "remove",
		"contains", "cloneNode",
		"getElementsByTagName", "getElementsByClassName",
	}
}

// newStyleProxy maps JS camelCase property access to kebab-case declarations
// on the node's inline style attribute.
func newStyleProxy(vm *goja.Runtime, node *dom.Node) goja.Value {
	return vm.NewDynamicObject(&styleAccessor{vm: vm, node: node})
}

type styleAccessor struct {
	vm   *goja.Runtime
	node *dom.Node
}

func (s *styleAccessor) Get(key string) goja.Value {
	return s.vm.ToValue(s.node.StyleProperty(camelToKebab(key)))
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	s.node.SetStyleProperty(camelToKebab(key), val.String())
	return true
}

func (s *styleAccessor) Has(key string) bool { return true }

func (s *styleAccessor) Delete(key string) bool {
	s.node.RemoveStyleProperty(camelToKebab(key))
	return true
}

func (s *styleAccessor) Keys() []string {
	attr, _ := s.node.GetAttribute("style")
	styles := dom.ParseInlineStyle(attr)
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	return keys
}

// newDatasetProxy maps dataset.fooBar to the data-foo-bar attribute.
func newDatasetProxy(ctx *domContext, node *dom.Node) goja.Value {
	return ctx.vm.NewDynamicObject(&datasetAccessor{vm: ctx.vm, node: node})
}

type datasetAccessor struct {
	vm   *goja.Runtime
	node *dom.Node
}

func (d *datasetAccessor) Get(key string) goja.Value {
	val, ok := d.node.Data(camelToKebab(key))
	if !ok {
		return goja.Undefined()
	}
	return d.vm.ToValue(val)
}

func (d *datasetAccessor) Set(key string, val goja.Value) bool {
	d.node.SetData(camelToKebab(key), val.String())
	return true
}

func (d *datasetAccessor) Has(key string) bool {
	return d.node.HasAttribute("data-" + camelToKebab(key))
}

func (d *datasetAccessor) Delete(key string) bool {
	d.node.RemoveAttribute("data-" + camelToKebab(key))
	return true
}

func (d *datasetAccessor) Keys() []string {
	var keys []string
	for name := range d.node.Attributes {
		if strings.HasPrefix(name, "data-") {
			keys = append(keys, kebabToCamel(strings.TrimPrefix(name, "data-")))
		}
	}
	return keys
}

// camelToKebab converts a JS camelCase property name to CSS kebab-case.
func camelToKebab(s string) string {
	if s == "cssFloat" {
		return "float"
	}
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// kebabToCamel converts a kebab-case attribute suffix to camelCase.
func kebabToCamel(s string) string {
	var sb strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
