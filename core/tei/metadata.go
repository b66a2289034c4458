package tei

import (
	"strings"

	"github.com/FocuswithJustin/teiscan/core/xml"
)

// author applies every persName child of a completed author element. Each
// persName overwrites the author; an author without persName changes nothing.
func (s *scanner) author(node *xml.Node) {
	for _, pers := range node.ChildrenNamed("persName") {
		s.res.Author = composeAuthor(childText(pers, "surname"), childText(pers, "forename"))
	}
}

// composeAuthor joins name parts as "surname, forename", falling back to
// whichever part is present. Empty parts count as absent.
func composeAuthor(surname, forename string) string {
	switch {
	case surname != "" && forename != "":
		return surname + ", " + forename
	case surname != "":
		return surname
	default:
		return forename
	}
}

// childText returns the leading text of the last child named local. The
// last child wins as it would when children are read in order.
func childText(node *xml.Node, local string) string {
	var text string
	for _, child := range node.ChildrenNamed(local) {
		text, _ = child.LeadingText()
	}
	return text
}

// classCode records the element text as genre and/or period depending on
// the scheme suffix. The checks are independent and a missing scheme
// matches neither.
func (s *scanner) classCode(scheme string, node *xml.Node) {
	if scheme == "" {
		return
	}
	text, _ := node.LeadingText()
	if strings.HasSuffix(scheme, s.opts.GenreSchemeSuffix) {
		s.res.Genre = text
	}
	if strings.HasSuffix(scheme, s.opts.PeriodSchemeSuffix) {
		s.res.Period = text
	}
}
