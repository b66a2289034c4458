// Package source opens corpus files as scoped, forward-only byte streams.
//
// A Source transparently decompresses gzip and xz containers and computes a
// BLAKE3 digest of the raw bytes as they are consumed, so a single pass
// yields both the XML stream and a content identity for the file.
package source

import (
	"bufio"
	"compress/gzip"
	"encoding/hex"
	"io"
	"os"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/teiscan/core/errors"
	"github.com/FocuswithJustin/teiscan/internal/validation"
)

// Source is an open read handle over one corpus file. Callers must Close it;
// Close is safe to call more than once.
type Source struct {
	path        string
	size        int64
	compression validation.Compression

	file    *os.File
	reader  io.Reader
	closers []io.Closer
	hasher  *blake3.Hasher
}

// Open validates path and opens it for streaming.
func Open(path string) (*Source, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.NewIO("stat", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.NewInvalidInput("path", path, "is a directory")
	}

	s := &Source{
		path:   path,
		size:   info.Size(),
		file:   f,
		hasher: blake3.New(),
	}

	buffered := bufio.NewReader(f)
	head, err := buffered.Peek(validation.HeaderSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		s.Close()
		return nil, errors.NewIO("read", path, err)
	}
	s.compression = validation.DetectCompression(head, path)

	raw := io.TeeReader(buffered, s.hasher)
	switch s.compression {
	case validation.CompressionGzip:
		gr, err := gzip.NewReader(raw)
		if err != nil {
			s.Close()
			return nil, errors.NewIO("decompress", path, err)
		}
		s.closers = append(s.closers, gr)
		s.reader = gr
	case validation.CompressionXZ:
		xr, err := xz.NewReader(raw)
		if err != nil {
			s.Close()
			return nil, errors.NewIO("decompress", path, err)
		}
		s.reader = xr
	default:
		s.reader = raw
	}

	return s, nil
}

// Read reads decompressed bytes.
func (s *Source) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close releases the decompressors and the file handle.
func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	if s.file != nil {
		if err := s.file.Close(); err != nil && first == nil {
			first = err
		}
		s.file = nil
	}
	return first
}

// Path returns the path the source was opened from.
func (s *Source) Path() string {
	return s.path
}

// Size returns the on-disk size in bytes.
func (s *Source) Size() int64 {
	return s.size
}

// Compression returns the detected container format.
func (s *Source) Compression() validation.Compression {
	return s.compression
}

// Digest returns the hex BLAKE3 digest of the raw bytes consumed so far.
// It covers the whole file once the stream has been read to EOF.
func (s *Source) Digest() string {
	return hex.EncodeToString(s.hasher.Sum(nil))
}
