// Package poem provides the default poem entity built from a captured
// poem-boundary subtree and the document metadata known when the poem
// started.
package poem

import (
	"strings"

	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/teiscan/core/xml"
)

// titleExpr matches the poem's own heading, whatever its namespace prefix.
var titleExpr = xpath.MustCompile("*[local-name()='head']")

// Poem is one poem of a document. Line and stanza structure is left to
// downstream analysis, which works on Node directly.
type Poem struct {
	node   *xml.Node
	header *xml.Node
	author string
	year   string
	period string
	title  string
}

// New builds a poem from its subtree, the document header (may be nil) and
// the author and year known at the poem's start tag.
func New(node, header *xml.Node, author, year string) *Poem {
	return &Poem{
		node:   node,
		header: header,
		author: author,
		year:   year,
	}
}

// FindTitle sets the title from the first head child of the poem. A poem
// without a head keeps an empty title.
func (p *Poem) FindTitle() {
	head := p.node.Select(titleExpr)
	if head == nil {
		return
	}
	p.title = strings.Join(strings.Fields(head.InnerText()), " ")
}

// SetPeriod assigns the literary period.
func (p *Poem) SetPeriod(period string) {
	p.period = period
}

// Node returns the poem subtree.
func (p *Poem) Node() *xml.Node { return p.node }

// Header returns the document header the poem was built with.
func (p *Poem) Header() *xml.Node { return p.header }

// Author returns the author known when the poem started.
func (p *Poem) Author() string { return p.author }

// Year returns the publication year known when the poem started.
func (p *Poem) Year() string { return p.year }

// Period returns the assigned period, or "".
func (p *Poem) Period() string { return p.period }

// Title returns the title found by FindTitle.
func (p *Poem) Title() string { return p.title }

// Line returns the input line of the poem's start tag.
func (p *Poem) Line() int { return p.node.Line() }

// Lines returns the whitespace-normalized text of each verse line (l child),
// in document order.
func (p *Poem) Lines() []string {
	var lines []string
	for _, l := range p.node.ChildrenNamed("l") {
		lines = append(lines, strings.Join(strings.Fields(l.InnerText()), " "))
	}
	return lines
}
