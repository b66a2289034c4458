package xml

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

const namespaceXML = "http://www.w3.org/XML/1998/namespace"

// TreeBuilder materializes subtrees of a forward token stream. Every start
// and end tag of the stream must be reported; nodes are only allocated while
// at least one capture is open, so memory is bounded by the captured
// elements rather than by the document.
type TreeBuilder struct {
	frames []frame
}

type frame struct {
	node *xmlquery.Node
	ns   map[string]string // namespace URI -> prefix declared on this element
}

// NewTreeBuilder returns an empty builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// Depth returns the number of currently open elements.
func (b *TreeBuilder) Depth() int {
	return len(b.frames)
}

// Active reports whether the innermost open element is being captured.
func (b *TreeBuilder) Active() bool {
	return len(b.frames) > 0 && b.frames[len(b.frames)-1].node != nil
}

// Start records a start tag. When capture is true, or an enclosing element is
// being captured, a node is built and returned; otherwise Start returns nil.
func (b *TreeBuilder) Start(se xml.StartElement, line int, capture bool) *Node {
	f := frame{}
	for _, attr := range se.Attr {
		switch {
		case attr.Name.Space == "xmlns":
			if f.ns == nil {
				f.ns = make(map[string]string)
			}
			f.ns[attr.Value] = attr.Name.Local
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			if f.ns == nil {
				f.ns = make(map[string]string)
			}
			f.ns[attr.Value] = ""
		}
	}

	parent := b.Active()
	if capture || parent {
		f.node = b.element(se, line, f.ns)
		if parent {
			xmlquery.AddChild(b.frames[len(b.frames)-1].node, f.node)
		}
	}
	b.frames = append(b.frames, f)

	if f.node == nil {
		return nil
	}
	return &Node{node: f.node}
}

// End records an end tag and returns the closed node, if it was captured.
func (b *TreeBuilder) End() *Node {
	if len(b.frames) == 0 {
		return nil
	}
	f := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	if f.node == nil {
		return nil
	}
	return &Node{node: f.node}
}

// Text appends character data to the innermost captured element.
func (b *TreeBuilder) Text(data []byte, line int) {
	if !b.Active() {
		return
	}
	parent := b.frames[len(b.frames)-1].node
	xmlquery.AddChild(parent, &xmlquery.Node{
		Type:       xmlquery.TextNode,
		Data:       string(data),
		LineNumber: line,
	})
}

func (b *TreeBuilder) element(se xml.StartElement, line int, own map[string]string) *xmlquery.Node {
	n := &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         se.Name.Local,
		NamespaceURI: se.Name.Space,
		Prefix:       b.prefix(se.Name.Space, own),
		LineNumber:   line,
	}
	n.Attr = make([]xmlquery.Attr, 0, len(se.Attr))
	for _, attr := range se.Attr {
		name := attr.Name
		if name.Space != "" && name.Space != "xmlns" {
			name.Space = b.prefix(name.Space, own)
		}
		n.Attr = append(n.Attr, xmlquery.Attr{
			Name:         name,
			Value:        attr.Value,
			NamespaceURI: attr.Name.Space,
		})
	}
	return n
}

// prefix resolves the prefix bound to uri, innermost declaration first.
// Unbound namespaces keep their raw value, which is what the decoder reports
// for undeclared prefixes.
func (b *TreeBuilder) prefix(uri string, own map[string]string) string {
	if uri == "" {
		return ""
	}
	if uri == namespaceXML {
		return "xml"
	}
	if p, ok := own[uri]; ok {
		return p
	}
	for i := len(b.frames) - 1; i >= 0; i-- {
		if p, ok := b.frames[i].ns[uri]; ok {
			return p
		}
	}
	return uri
}
