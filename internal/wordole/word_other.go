//go:build !windows

package wordole

import (
	"context"

	"github.com/goliatone/go-formfill/pkg/checkbox"
)

// Launcher is unavailable off Windows.
type Launcher struct {
	Visible bool
}

// NewLauncher returns a Launcher that always fails with ErrUnsupported.
func NewLauncher() *Launcher {
	return &Launcher{}
}

var _ checkbox.Launcher = (*Launcher)(nil)

func (l *Launcher) Launch(ctx context.Context) (checkbox.Application, error) {
	return nil, ErrUnsupported
}
