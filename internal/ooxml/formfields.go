package ooxml

import (
	"github.com/beevik/etree"

	"github.com/goliatone/go-formfill/pkg/checkbox"
)

// FormField is a legacy form field (w:ffData) in document order.
type FormField struct {
	d    *Document
	data *etree.Element
}

// FormFields lists the legacy form fields of the main story in document
// order, the same order Word uses for its FormFields collection.
func (d *Document) FormFields() []*FormField {
	var out []*FormField
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if d.is(child, "ffData") {
				out = append(out, &FormField{d: d, data: child})
				continue
			}
			walk(child)
		}
	}
	walk(d.body)
	return out
}

// Name returns the bookmark name of the field.
func (f *FormField) Name() string {
	if name := f.d.child(f.data, "name"); name != nil {
		return f.d.val(name)
	}
	return ""
}

// Type maps the field kind onto the automation type codes.
func (f *FormField) Type() int {
	switch {
	case f.d.child(f.data, "checkBox") != nil:
		return checkbox.TypeCheckBox
	case f.d.child(f.data, "ddList") != nil:
		return checkbox.TypeDropDown
	default:
		return checkbox.TypeTextInput
	}
}

// Checked reports the checkbox state; explicit w:checked wins over w:default.
func (f *FormField) Checked() bool {
	box := f.d.child(f.data, "checkBox")
	if box == nil {
		return false
	}
	if state := f.d.child(box, "checked"); state != nil {
		return onOff(f.d.val(state))
	}
	if def := f.d.child(box, "default"); def != nil {
		return onOff(f.d.val(def))
	}
	return false
}

// SetChecked writes an explicit w:checked state. w:checked is the last child
// of w:checkBox, so appending keeps schema order.
func (f *FormField) SetChecked(checked bool) error {
	box := f.d.child(f.data, "checkBox")
	if box == nil {
		return checkbox.ErrNotCheckBox
	}
	state := f.d.child(box, "checked")
	if state == nil {
		state = box.CreateElement(f.d.name("checked"))
	}
	value := "0"
	if checked {
		value = "1"
	}
	state.CreateAttr(f.d.name("val"), value)
	return nil
}
