// Package validation checks source locators before any I/O happens and
// classifies corpus files by their leading bytes.
package validation

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/teiscan/core/errors"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// ValidatePath rejects empty, oversized, or control-character paths with an
// *errors.InvalidInputError.
func ValidatePath(path string) error {
	if path == "" {
		return errors.NewInvalidInput("path", path, "TEI path not set")
	}

	if len(path) > MaxPathLength {
		return errors.NewInvalidInput("path", path[:64]+"...", "path too long")
	}

	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return errors.NewInvalidInput("path", path, "control character not allowed")
		}
	}

	return nil
}

// Compression identifies the container wrapped around an XML stream.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

// HeaderSize is the number of leading bytes DetectCompression inspects.
const HeaderSize = 6

var magicBytes = []struct {
	compression Compression
	magic       []byte
}{
	{CompressionGzip, []byte{0x1f, 0x8b}},
	{CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
}

// DetectCompression classifies a stream from its leading bytes, falling back
// to the file extension when the header is too short to decide.
func DetectCompression(head []byte, filename string) Compression {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(head, sig.magic) {
			return sig.compression
		}
	}
	if len(head) >= HeaderSize {
		return CompressionNone
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		return CompressionGzip
	case ".xz":
		return CompressionXZ
	default:
		return CompressionNone
	}
}
