package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// UploadError wraps asset host failures: transport errors and responses
// missing the expected URL field. Callers must not overwrite a previously
// stored image URL when they receive one.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("image upload failed: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// Client uploads images to the hosting endpoint: one multipart POST with
// the file and a fixed upload preset, answered with JSON carrying a secure
// URL.
type Client struct {
	BaseURL    string
	Preset     string
	HTTPClient *http.Client
}

func NewClient(baseURL, preset string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Preset:     preset,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the image and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &UploadError{Err: err}
	}
	if err := writer.WriteField("upload_preset", c.Preset); err != nil {
		return "", &UploadError{Err: err}
	}
	if err := writer.Close(); err != nil {
		return "", &UploadError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, &body)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &UploadError{Err: fmt.Errorf("image host returned status %d", resp.StatusCode)}
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &UploadError{Err: err}
	}
	if result.SecureURL == "" {
		return "", &UploadError{Err: fmt.Errorf("response missing secure_url")}
	}
	return result.SecureURL, nil
}
