package checkbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formfill/internal/logger"
)

// Report summarises one marking run.
type Report struct {
	State   State
	Marked  []Target
	Skipped []Target
}

// Option customises a Marker.
type Option func(*Marker)

// WithLogger overrides the logger used for per-target messages.
func WithLogger(l logger.Logger) Option {
	return func(m *Marker) {
		if l != nil {
			m.log = l
		}
	}
}

// Marker ticks checkbox form fields of a saved document through an
// automation Launcher. It owns the automation session for the duration of
// Mark and releases it on every exit path.
type Marker struct {
	launcher Launcher
	log      logger.Logger
}

// NewMarker constructs a Marker around launcher.
func NewMarker(launcher Launcher, options ...Option) *Marker {
	m := &Marker{launcher: launcher}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if m.log == nil {
		m.log = logger.GetDefault()
	}
	return m
}

// Mark opens path, checks every target whose field type is TypeCheckBox,
// saves and closes the document. Fields of any other type are logged and
// skipped. The document is closed without saving and the application quit
// even when an earlier step failed or panicked.
func (m *Marker) Mark(ctx context.Context, path string, targets []Target) (report Report, err error) {
	report.State = StateUnopened
	if ctx == nil {
		return report, errors.New("checkbox: context is required")
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if m.launcher == nil {
		return report, errors.New("checkbox: launcher is nil")
	}

	app, err := m.launcher.Launch(ctx)
	if err != nil {
		report.State = StateClosedWithError
		return report, fmt.Errorf("checkbox: launch automation: %w", err)
	}

	var session Session
	defer func() {
		m.release(app, session)
		if err != nil {
			report.State = StateClosedWithError
			return
		}
		report.State = StateClosed
	}()

	session, err = app.Open(ctx, path)
	if err != nil {
		return report, fmt.Errorf("checkbox: open %s: %w", path, err)
	}
	report.State = StateOpened

	var count int
	if count, err = session.FieldCount(); err != nil {
		err = fmt.Errorf("checkbox: count fields in %s: %w", path, err)
		return report, err
	}
	m.log.Debug("opened document for marking", "path", path, "fields", count)

	for _, target := range targets {
		if err = ctx.Err(); err != nil {
			return report, err
		}
		marked, markErr := m.markTarget(session, target, count)
		if markErr != nil {
			err = markErr
			return report, err
		}
		report.State = StateScanned
		if !marked {
			report.Skipped = append(report.Skipped, target)
			continue
		}
		report.State = StateMarked
		report.Marked = append(report.Marked, target)
	}

	if err = session.Save(); err != nil {
		return report, fmt.Errorf("checkbox: save %s: %w", path, err)
	}
	report.State = StateSaved

	if err = session.Close(false); err != nil {
		return report, fmt.Errorf("checkbox: close %s: %w", path, err)
	}
	return report, nil
}

func (m *Marker) markTarget(session Session, target Target, count int) (bool, error) {
	if target.Position < 1 || target.Position > count {
		return false, fmt.Errorf("checkbox: field %d (%s): %w: document has %d form fields",
			target.Position, target.Label, ErrPositionOutOfRange, count)
	}
	field, err := session.Field(target.Position)
	if err != nil {
		return false, fmt.Errorf("checkbox: field %d (%s): %w", target.Position, target.Label, err)
	}
	kind, err := field.Type()
	if err != nil {
		return false, fmt.Errorf("checkbox: field %d (%s) type: %w", target.Position, target.Label, err)
	}
	if kind != TypeCheckBox {
		m.log.Warn("form field is not a checkbox, skipping",
			"position", target.Position, "expected", target.Label, "type", kind)
		return false, nil
	}
	if err := field.SetValue(Checked); err != nil {
		return false, fmt.Errorf("checkbox: check field %d (%s): %w", target.Position, target.Label, err)
	}
	m.log.Info("checked form field", "position", target.Position, "expected", target.Label, "name", field.Name())
	return true, nil
}

// release closes the session without saving and quits the application.
// Errors are logged only; a session already closed by Mark reports nothing.
func (m *Marker) release(app Application, session Session) {
	if session != nil {
		if err := session.Close(false); err != nil {
			m.log.Debug("release: close document", "err", err)
		}
	}
	if app != nil {
		if err := app.Quit(); err != nil {
			m.log.Debug("release: quit application", "err", err)
		}
	}
}
