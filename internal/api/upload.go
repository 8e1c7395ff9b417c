package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/krcglobal/gbms/internal/errors"
)

// File is one file part of a multipart upload.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Form is a multipart form body.
type Form struct {
	fields [][2]string
	files  []File
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set adds a text field. Fields are written in insertion order.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// AddFile adds a file part.
func (f *Form) AddFile(field, name string, content io.Reader) *Form {
	f.files = append(f.files, File{Field: field, Name: name, Content: content})
	return f
}

// encode writes the form and returns the body and its content type.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

// Upload POSTs form as multipart data to path. The content type is the
// multipart boundary type rather than JSON; status handling matches Request.
func (c *Client) Upload(ctx context.Context, path string, form *Form, out any) error {
	if form == nil {
		form = NewForm()
	}

	body, contentType, err := form.encode()
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIUpload, "failed to encode upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIUpload, "failed to create upload request", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	return c.do(req, MessageUploadFailed, out, true)
}
