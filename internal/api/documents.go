package api

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

// DocumentsService talks to /documents.
type DocumentsService struct {
	client *Client
}

// List returns one page of documents.
func (s *DocumentsService) List(ctx context.Context, filter DocumentFilter) (*Envelope[[]Document], error) {
	var out Envelope[[]Document]
	if err := s.client.Get(ctx, "/documents", filter.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns document metadata.
func (s *DocumentsService) Get(ctx context.Context, id int) (*Envelope[Document], error) {
	var out Envelope[Document]
	if err := s.client.Get(ctx, fmt.Sprintf("/documents/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends a file with its metadata as the "file" form part.
func (s *DocumentsService) Upload(ctx context.Context, name string, content io.Reader, meta DocumentUpload) (*Envelope[Document], error) {
	form := NewForm()
	if meta.Title != "" {
		form.Set("title", meta.Title)
	}
	if meta.DocType != "" {
		form.Set("docType", meta.DocType)
	}
	if meta.ProjectID != 0 {
		form.Set("projectId", strconv.Itoa(meta.ProjectID))
	}
	if meta.Description != "" {
		form.Set("description", meta.Description)
	}
	if meta.Department != "" {
		form.Set("department", meta.Department)
	}
	form.AddFile("file", name, content)

	var out Envelope[Document]
	if err := s.client.Upload(ctx, "/documents/upload", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes document metadata.
func (s *DocumentsService) Update(ctx context.Context, id int, fields any) (*Envelope[Document], error) {
	var out Envelope[Document]
	if err := s.client.Put(ctx, fmt.Sprintf("/documents/%d", id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a document.
func (s *DocumentsService) Delete(ctx context.Context, id int) (*Envelope[any], error) {
	var out Envelope[any]
	if err := s.client.Delete(ctx, fmt.Sprintf("/documents/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadURL returns the absolute download link of a document. No request
// is made.
func (s *DocumentsService) DownloadURL(id int) string {
	return fmt.Sprintf("%s/documents/%d/download", s.client.baseURL, id)
}
