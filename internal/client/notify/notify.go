// Package notify carries transient user-facing notifications ("toasts")
// from services to whichever front end is rendering.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

func Info(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDefault}
}

func Error(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDestructive}
}

// Notifier receives toasts. Implementations must not block.
type Notifier interface {
	Notify(t Toast)
}

// DefaultBufferSize bounds a Buffer created with size <= 0.
const DefaultBufferSize = 32

// Buffer queues toasts until a front end drains them. When full, the oldest
// toast is discarded.
type Buffer struct {
	mu    sync.Mutex
	size  int
	items []Toast
}

func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Buffer{size: size}
}

func (b *Buffer) Notify(t Toast) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == b.size {
		b.items = b.items[1:]
	}
	b.items = append(b.items, t)
}

// Drain returns the queued toasts in arrival order and empties the buffer.
func (b *Buffer) Drain() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Writer prints each toast on its own line as soon as it arrives.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Notify(t Toast) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = io.WriteString(w.w, Format(t)+"\n")
}

// Format renders t as a single line.
func Format(t Toast) string {
	mark := "*"
	if t.Variant == VariantDestructive {
		mark = "!"
	}
	if t.Description == "" {
		return fmt.Sprintf("[%s] %s", mark, t.Title)
	}
	return fmt.Sprintf("[%s] %s: %s", mark, t.Title, t.Description)
}

// Discard drops every toast.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Toast) {}
