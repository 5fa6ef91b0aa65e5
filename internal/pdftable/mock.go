package pdftable

import (
	"fmt"
	"sync"
)

// MockOpener implements Opener for testing purposes. It serves in-memory
// pages instead of reading PDF files.
type MockOpener struct {
	Pages   []Page
	OpenErr error
	// PageErrs fails Page for the given 0-based indexes.
	PageErrs map[int]error
	CloseErr error

	mu        sync.Mutex
	opened    []string
	documents []*MockDocument
}

// NewMockOpener creates a MockOpener serving pages.
func NewMockOpener(pages ...Page) *MockOpener {
	return &MockOpener{Pages: pages}
}

// Open returns a MockDocument over the configured pages, or OpenErr.
func (o *MockOpener) Open(path string) (Document, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	if o.OpenErr != nil {
		return nil, o.OpenErr
	}
	doc := &MockDocument{pages: o.Pages, pageErrs: o.PageErrs, closeErr: o.CloseErr}
	o.documents = append(o.documents, doc)
	return doc, nil
}

// Opened returns the paths passed to Open.
func (o *MockOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

// Documents returns the documents handed out so far.
func (o *MockOpener) Documents() []*MockDocument {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*MockDocument(nil), o.documents...)
}

// MockDocument is the Document returned by MockOpener.
type MockDocument struct {
	pages    []Page
	pageErrs map[int]error
	closeErr error
	closes   int
}

func (d *MockDocument) NumPages() int { return len(d.pages) }

func (d *MockDocument) Page(index int) (Page, error) {
	if err, ok := d.pageErrs[index]; ok {
		return nil, err
	}
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("invalid page index %d", index)
	}
	return d.pages[index], nil
}

func (d *MockDocument) Close() error {
	d.closes++
	return d.closeErr
}

// Closes is the number of Close calls.
func (d *MockDocument) Closes() int { return d.closes }
