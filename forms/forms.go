package forms

import (
	"context"
	"errors"
	"io"
	"net/url"
)

// Errors maps field names to their validation messages.
type Errors map[string]string

// ErrValidation is returned by Submit when field validation blocks the
// write. The per-field messages stay on the form.
var ErrValidation = errors.New("validation failed")

// Uploader abstracts the asset upload adapter so forms only upload when a
// new binary is staged.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// PendingFile is a newly chosen image binary, distinguished from an
// already-uploaded URL string.
type PendingFile struct {
	Name string
	Data io.Reader
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
