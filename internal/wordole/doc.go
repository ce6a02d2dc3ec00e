// Package wordole drives Microsoft Word through COM automation to tick legacy
// checkbox form fields. It is only functional on Windows; other platforms get
// a Launcher that reports ErrUnsupported.
package wordole

import "errors"

// ErrUnsupported is returned when COM automation is not available.
var ErrUnsupported = errors.New("wordole: Word automation requires windows")
