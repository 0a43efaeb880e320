package tusk

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// ParseFile parses an MEI document from a file path with default
// options. Gzip-compressed files are detected by their magic bytes
// and decompressed transparently.
func ParseFile(path string) (*Document, error) {
	return ParseFileWithOptions(path, NewOptions())
}

// ParseFileWithOptions parses an MEI file with explicit configuration.
func ParseFileWithOptions(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mei file %s: %w", path, err)
	}
	defer f.Close()

	r, err := maybeGunzip(f)
	if err != nil {
		return nil, fmt.Errorf("read mei file %s: %w", path, err)
	}
	doc, err := ParseWithOptions(r, opts)
	if err != nil {
		return nil, fmt.Errorf("parse mei file %s: %w", path, err)
	}
	return doc, nil
}

func maybeGunzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(head) == 2 && head[0] == 0x1f && head[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}
