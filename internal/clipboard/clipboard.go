// Package clipboard wraps the platform clipboard behind a small interface
// so the workflow stays testable without touching the real clipboard.
package clipboard

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// Writer is the clipboard-write primitive the workflow depends on.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// System writes to the real platform clipboard.
type System struct{}

// Write copies text to the system clipboard. The underlying call is
// synchronous; the context is checked up front so an already-cancelled
// operation never touches the clipboard.
func (System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
