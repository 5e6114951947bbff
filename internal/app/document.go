package app

import (
	"path/filepath"
	"sync"

	"github.com/dshills/hintjump/internal/engine/buffer"
)

// Document is an open file. Its absolute path doubles as the pane and
// hint editor ID.
type Document struct {
	// Path is the absolute file path.
	Path string

	// Name is the display name, the path as given on the command line.
	Name string

	// Buffer holds the file content.
	Buffer *buffer.Buffer
}

// DocumentManager tracks open documents in open order.
type DocumentManager struct {
	mu        sync.RWMutex
	documents map[string]*Document // path -> document
	order     []string
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*Document),
	}
}

// Open loads a document from a file.
// Returns the existing document if already open.
func (dm *DocumentManager) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	if doc, exists := dm.documents[absPath]; exists {
		return doc, nil
	}

	buf, err := buffer.Open(absPath)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	doc := &Document{Path: absPath, Name: path, Buffer: buf}
	dm.documents[absPath] = doc
	dm.order = append(dm.order, absPath)
	return doc, nil
}

// Reload re-reads a document from disk.
func (dm *DocumentManager) Reload(path string) (*Document, error) {
	doc, ok := dm.Get(path)
	if !ok {
		return nil, NewOperationError("reload", path, ErrDocumentNotFound)
	}
	if err := doc.Buffer.Reload(); err != nil {
		return nil, NewOperationError("reload", doc.Name, err)
	}
	return doc, nil
}

// Get returns a document by absolute path.
func (dm *DocumentManager) Get(path string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, exists := dm.documents[path]
	return doc, exists
}

// All returns all open documents in open order.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.order))
	for _, path := range dm.order {
		docs = append(docs, dm.documents[path])
	}
	return docs
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.order)
}
