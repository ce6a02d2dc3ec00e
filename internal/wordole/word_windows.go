//go:build windows

package wordole

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/goliatone/go-formfill/pkg/checkbox"
)

// Launcher starts a hidden Word.Application instance.
type Launcher struct {
	Visible bool
}

// NewLauncher returns a Launcher for Word.Application.
func NewLauncher() *Launcher {
	return &Launcher{}
}

var _ checkbox.Launcher = (*Launcher)(nil)

// Launch initialises COM on a locked OS thread and creates the application.
// The thread stays locked until Quit.
func (l *Launcher) Launch(ctx context.Context) (checkbox.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("wordole: CoInitialize: %w", err)
	}

	unknown, err := oleutil.CreateObject("Word.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("wordole: create Word.Application: %w", err)
	}
	word, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("wordole: query IDispatch: %w", err)
	}
	if _, err := oleutil.PutProperty(word, "Visible", l.Visible); err != nil {
		word.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("wordole: set Visible: %w", err)
	}
	return &application{word: word}, nil
}

type application struct {
	word *ole.IDispatch
}

func (a *application) Open(ctx context.Context, path string) (checkbox.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.word == nil {
		return nil, fmt.Errorf("wordole: application already quit")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("wordole: resolve %s: %w", path, err)
	}
	documents, err := oleutil.GetProperty(a.word, "Documents")
	if err != nil {
		return nil, fmt.Errorf("wordole: Documents: %w", err)
	}
	defer documents.Clear()

	opened, err := oleutil.CallMethod(documents.ToIDispatch(), "Open", abs)
	if err != nil {
		return nil, fmt.Errorf("wordole: open %s: %w", abs, err)
	}
	doc := opened.ToIDispatch()
	fields, err := oleutil.GetProperty(doc, "FormFields")
	if err != nil {
		opened.Clear()
		return nil, fmt.Errorf("wordole: FormFields: %w", err)
	}
	return &session{doc: opened, fields: fields}, nil
}

func (a *application) Quit() error {
	if a.word == nil {
		return nil
	}
	_, err := oleutil.CallMethod(a.word, "Quit")
	a.word.Release()
	a.word = nil
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	if err != nil {
		return fmt.Errorf("wordole: quit: %w", err)
	}
	return nil
}

type session struct {
	doc    *ole.VARIANT
	fields *ole.VARIANT
}

func (s *session) FieldCount() (int, error) {
	if s.doc == nil {
		return 0, fmt.Errorf("wordole: document closed")
	}
	count, err := oleutil.GetProperty(s.fields.ToIDispatch(), "Count")
	if err != nil {
		return 0, fmt.Errorf("wordole: FormFields.Count: %w", err)
	}
	defer count.Clear()
	return int(count.Val), nil
}

func (s *session) Field(position int) (checkbox.Field, error) {
	total, err := s.FieldCount()
	if err != nil {
		return nil, err
	}
	if position < 1 || position > total {
		return nil, fmt.Errorf("%w: %d not in 1..%d", checkbox.ErrPositionOutOfRange, position, total)
	}
	item, err := oleutil.CallMethod(s.fields.ToIDispatch(), "Item", position)
	if err != nil {
		return nil, fmt.Errorf("wordole: FormFields.Item(%d): %w", position, err)
	}
	return &field{item: item}, nil
}

func (s *session) Save() error {
	if s.doc == nil {
		return fmt.Errorf("wordole: document closed")
	}
	if _, err := oleutil.CallMethod(s.doc.ToIDispatch(), "Save"); err != nil {
		return fmt.Errorf("wordole: save: %w", err)
	}
	return nil
}

// Close releases the document. A second call is a no-op.
func (s *session) Close(saveChanges bool) error {
	if s.doc == nil {
		return nil
	}
	_, err := oleutil.CallMethod(s.doc.ToIDispatch(), "Close", saveChanges)
	s.fields.Clear()
	s.doc.Clear()
	s.fields, s.doc = nil, nil
	if err != nil {
		return fmt.Errorf("wordole: close: %w", err)
	}
	return nil
}

type field struct {
	item *ole.VARIANT
}

func (f *field) Type() (int, error) {
	kind, err := oleutil.GetProperty(f.item.ToIDispatch(), "Type")
	if err != nil {
		return 0, fmt.Errorf("wordole: field type: %w", err)
	}
	defer kind.Clear()
	return int(kind.Val), nil
}

func (f *field) Name() string {
	name, err := oleutil.GetProperty(f.item.ToIDispatch(), "Name")
	if err != nil {
		return ""
	}
	defer name.Clear()
	return name.ToString()
}

func (f *field) SetValue(value int) error {
	box, err := oleutil.GetProperty(f.item.ToIDispatch(), "CheckBox")
	if err != nil {
		return fmt.Errorf("wordole: CheckBox: %w", err)
	}
	defer box.Clear()
	if _, err := oleutil.PutProperty(box.ToIDispatch(), "Value", value == checkbox.Checked); err != nil {
		return fmt.Errorf("wordole: set CheckBox.Value: %w", err)
	}
	return nil
}
