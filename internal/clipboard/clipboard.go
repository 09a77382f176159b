// Package clipboard wraps the system clipboard behind a small type the app
// can fake in tests.
package clipboard

import atotto "github.com/atotto/clipboard"

// Clipboard reads and writes the system clipboard.
type Clipboard struct{}

// New returns the system clipboard.
func New() Clipboard {
	return Clipboard{}
}

// ReadAll returns the clipboard contents as text.
func (Clipboard) ReadAll() (string, error) {
	return atotto.ReadAll()
}

// WriteAll replaces the clipboard contents with text.
func (Clipboard) WriteAll(text string) error {
	return atotto.WriteAll(text)
}
