//go:build !windows

package wordole

import (
	"context"
	"errors"
	"testing"
)

func TestLaunchUnsupported(t *testing.T) {
	app, err := NewLauncher().Launch(context.Background())
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if app != nil {
		t.Fatalf("expected nil application")
	}
}
