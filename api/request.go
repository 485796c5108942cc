package api

import (
	"encoding/json"
	"net/http"

	"github.com/aggroplatform/aggro-admin/forms"
)

const maxUploadSize = 10 << 20 // 10 MB

// deleteConfirmed reports whether the client acknowledged the delete
// prompt. Destructive endpoints reject requests without it.
func deleteConfirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// overlayFormValue copies a multipart field onto the draft only when the
// request carries it, leaving seeded values alone otherwise.
func overlayFormValue(r *http.Request, key string, dst *string) {
	if v := r.FormValue(key); v != "" {
		*dst = v
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pendingFile pulls an optional multipart file field off the request.
// A missing field is not an error; the form decides whether an image
// is required.
func pendingFile(r *http.Request, field string) (*forms.PendingFile, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &forms.PendingFile{Name: header.Filename, Data: file}, nil
}
