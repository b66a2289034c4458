package xml

import (
	"encoding/xml"
	"strings"

	"github.com/FocuswithJustin/teiscan/core/errors"
)

// QName is a namespace-qualified element name as resolved by the decoder.
type QName struct {
	Space string // namespace URI, empty when unqualified
	Local string
}

// NameOf converts a decoder name into a QName.
func NameOf(n xml.Name) QName {
	return QName{Space: n.Space, Local: strings.TrimSpace(n.Local)}
}

// ParseClark parses Clark notation ("{uri}local"). Strings without a closing
// brace are returned as unqualified names.
func ParseClark(s string) QName {
	if strings.HasPrefix(s, "{") {
		if i := strings.IndexByte(s, '}'); i > 0 {
			return QName{Space: s[1:i], Local: strings.TrimSpace(s[i+1:])}
		}
	}
	return QName{Local: strings.TrimSpace(s)}
}

// LocalName returns the unqualified part of the name. Names without a
// namespace yield a *errors.MalformedTagError.
func (q QName) LocalName() (string, error) {
	if q.Space == "" {
		return "", errors.NewMalformedTag(q.Local, 0, 0)
	}
	return q.Local, nil
}

// Qualified reports whether the name carries a namespace.
func (q QName) Qualified() bool {
	return q.Space != ""
}

// String renders the name in Clark notation.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}
