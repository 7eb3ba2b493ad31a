// Package controller provides output adapters for displaying
// resolution results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "scout.dev/pkg/scout/internal/model"
)

// PathsState is a snapshot of resolver state for display: the root
// path, the indexable explicit paths, and the joined search-order
// rendering produced by the resolver itself.
type PathsState struct {
	Root     string
	Explicit []string
	Joined   string
}

// UI defines the interface for displaying resolutions and resolver
// state. Implementations can use different output methods (simple
// text, TUI, etc).
type UI interface {
	DisplayResolutions(ctx context.Context, report m.Report) error
	DisplayPaths(ctx context.Context, state PathsState) error
}

// NewUI picks the UI implementation: the interactive Bubble Tea
// browser when requested on a terminal, plain tables otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive && IsTTY(os.Stdout) {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
