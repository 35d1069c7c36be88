package render

import (
	"html/template"
	"sync"
)

// Container is the element the card list is written into
type Container interface {
	Replace(content template.HTML)
}

// Buffer is an in-memory Container
type Buffer struct {
	mu      sync.Mutex
	content template.HTML
	writes  int
}

// NewBuffer returns an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Replace swaps the whole content
func (b *Buffer) Replace(content template.HTML) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = content
	b.writes++
}

// HTML returns the current content
func (b *Buffer) HTML() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

// Writes returns how many times the content was replaced
func (b *Buffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
