package xml

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// NewDecoder returns a token decoder for a TEI stream. Encodings other than
// UTF-8 declared in the prolog are converted through the x/net charset
// tables. With strict false, unknown entities and unbalanced end tags are
// tolerated by the decoder.
//
// Go's decoder never fetches external entities, so DTD references in
// corpus headers are inert.
func NewDecoder(r io.Reader, strict bool) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.Strict = strict
	decoder.CharsetReader = charset.NewReaderLabel
	if !strict {
		decoder.Entity = xml.HTMLEntity
	}
	return decoder
}
