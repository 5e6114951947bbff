package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrNoPath = errors.New("buffer has no backing file")
)

// Buffer is an immutable-by-API text document split into lines.
// All methods are thread-safe.
type Buffer struct {
	mu    sync.RWMutex
	path  string
	lines []string
	// starts[i] is the byte offset of line i.
	starts []ByteOffset
	size   ByteOffset
}

// NewBufferFromString creates a buffer holding s.
// CRLF and CR line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	b := &Buffer{}
	b.setText(s)
	return b
}

// NewBufferFromReader creates a buffer from the contents of r.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading buffer: %w", err)
	}
	return NewBufferFromString(string(data)), nil
}

// Open loads the file at path into a new buffer.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	b := NewBufferFromString(string(data))
	b.path = path
	return b, nil
}

// Reload re-reads the backing file.
func (b *Buffer) Reload() error {
	b.mu.RLock()
	path := b.path
	b.mu.RUnlock()
	if path == "" {
		return ErrNoPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", path, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.setText(string(data))
	return nil
}

// setText replaces the content. Caller must hold the write lock (or own b).
func (b *Buffer) setText(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	b.lines = strings.Split(s, "\n")
	b.starts = make([]ByteOffset, len(b.lines))
	var off ByteOffset
	for i, l := range b.lines {
		b.starts[i] = off
		off += ByteOffset(len(l)) + 1
	}
	b.size = ByteOffset(len(s))
}

// Path returns the backing file path, or "" for in-memory buffers.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Text returns the whole content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// Len returns the content length in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lines))
}

// LineText returns the text of line (0-indexed) without its line ending.
// Out-of-range lines return "".
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// PointToOffset converts a point to a byte offset, clamping the column to
// the line length and the line to the last line.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	line := int(p.Line)
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	col := ByteOffset(p.Column)
	if n := ByteOffset(len(b.lines[line])); col > n {
		col = n
	}
	return b.starts[line] + col
}

// OffsetToPoint converts a byte offset to a point.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset <= 0 {
		return Point{}
	}
	if offset > b.size {
		offset = b.size
	}
	// Binary search for the last line starting at or before offset.
	lo, hi := 0, len(b.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Point{Line: uint32(lo), Column: uint32(offset - b.starts[lo])}
}
