package checkbox

import (
	"context"
	"errors"
)

// Form field type codes reported by the automation interface. They match the
// Word object model constants so COM and OOXML backends agree.
const (
	TypeTextInput = 70
	TypeCheckBox  = 71
	TypeDropDown  = 83
)

// Checked is the value written to a checkbox field to tick it.
const Checked = 1

// ErrPositionOutOfRange is returned by sessions for positions outside
// 1..FieldCount.
var ErrPositionOutOfRange = errors.New("checkbox: field position out of range")

// ErrNotCheckBox is returned by fields that cannot hold a checkbox value.
var ErrNotCheckBox = errors.New("checkbox: field is not a checkbox")

// Target declares that the field at Position (1-based) should be checked.
// Label is the description the field is expected to carry; it is used for
// logging only.
type Target struct {
	Position int    `json:"position" yaml:"position"`
	Label    string `json:"label" yaml:"label"`
}

// Field is one entry of an open document's flat form-field list.
type Field interface {
	Type() (int, error)
	Name() string
	SetValue(value int) error
}

// Session is a document opened through the automation interface.
type Session interface {
	FieldCount() (int, error)
	// Field resolves a 1-based position.
	Field(position int) (Field, error)
	Save() error
	Close(saveChanges bool) error
}

// Application is the automation host owning sessions.
type Application interface {
	Open(ctx context.Context, path string) (Session, error)
	Quit() error
}

// Launcher starts an automation host.
type Launcher interface {
	Launch(ctx context.Context) (Application, error)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context) (Application, error)

// Launch calls f.
func (f LauncherFunc) Launch(ctx context.Context) (Application, error) {
	return f(ctx)
}
