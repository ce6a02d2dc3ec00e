package ooxml

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/pkg/checkbox"
)

// Automation is a checkbox.Launcher that edits legacy form fields directly in
// the .docx package, so marking works without a Word installation.
type Automation struct {
	fs afero.Fs
}

var _ checkbox.Launcher = (*Automation)(nil)

// NewAutomation returns an Automation reading and writing through fsys.
func NewAutomation(fsys afero.Fs) *Automation {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Automation{fs: fsys}
}

// Launch returns a fresh application handle.
func (a *Automation) Launch(ctx context.Context) (checkbox.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &application{fs: a.fs}, nil
}

type application struct {
	fs   afero.Fs
	quit bool
}

func (app *application) Open(ctx context.Context, path string) (checkbox.Session, error) {
	if app.quit {
		return nil, fmt.Errorf("ooxml: application already quit")
	}
	doc, err := NewOpener(app.fs).Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return &session{fs: app.fs, path: path, doc: doc, fields: doc.FormFields()}, nil
}

func (app *application) Quit() error {
	app.quit = true
	return nil
}

type session struct {
	fs     afero.Fs
	path   string
	doc    *Document
	fields []*FormField
	closed bool
}

func (s *session) FieldCount() (int, error) {
	if s.closed {
		return 0, fmt.Errorf("ooxml: session for %s is closed", s.path)
	}
	return len(s.fields), nil
}

func (s *session) Field(position int) (checkbox.Field, error) {
	if s.closed {
		return nil, fmt.Errorf("ooxml: session for %s is closed", s.path)
	}
	if position < 1 || position > len(s.fields) {
		return nil, fmt.Errorf("%w: %d not in 1..%d", checkbox.ErrPositionOutOfRange, position, len(s.fields))
	}
	return &field{ff: s.fields[position-1]}, nil
}

func (s *session) Save() error {
	if s.closed {
		return fmt.Errorf("ooxml: session for %s is closed", s.path)
	}
	var buf bytes.Buffer
	if _, err := s.doc.WriteTo(&buf); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("ooxml: write %s: %w", s.path, err)
	}
	return nil
}

// Close is idempotent; closing an already closed session is a no-op.
func (s *session) Close(saveChanges bool) error {
	if s.closed {
		return nil
	}
	if saveChanges {
		if err := s.Save(); err != nil {
			return err
		}
	}
	s.closed = true
	return nil
}

type field struct {
	ff *FormField
}

func (f *field) Type() (int, error) { return f.ff.Type(), nil }
func (f *field) Name() string       { return f.ff.Name() }

func (f *field) SetValue(value int) error {
	return f.ff.SetChecked(value != 0)
}
